package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"finora-backend/internal/models"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"
)

// issueToken prints an access token for username, creating the user when it
// does not exist yet.
func issueToken(ctx context.Context, users repositories.UserStore, tokens services.TokenServiceInterface, username string, out io.Writer) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("usage: finora token <username>")
	}

	user, err := users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user = &models.User{Username: username}
		err = users.Create(ctx, user)
	}
	if err != nil {
		return fmt.Errorf("resolve user %q: %w", username, err)
	}

	token, expiresAt, err := tokens.GenerateAccessToken(user)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "user_id: %d\nexpires_at: %s\ntoken: %s\n", user.ID, expiresAt.UTC().Format(time.RFC3339), token)
	return err
}
