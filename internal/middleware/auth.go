package middleware

import (
	"context"
	stderrors "errors"
	"strings"

	"finora-backend/internal/errors"
	"finora-backend/internal/handlers"
	"finora-backend/internal/models"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"

	"github.com/labstack/echo/v4"
)

// UsernameContextKey holds the authenticated user's username
const UsernameContextKey = "username"

// Authenticate attaches the user named by a bearer token to the request.
// Requests without an Authorization header pass through anonymously; a
// header that is present is always checked. Tokens from the identity
// provider may name a user FINORA has not seen yet: when the token carries a
// username the user is provisioned on first use.
func Authenticate(tokenService services.TokenServiceInterface, userRepo repositories.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			user, err := resolveUser(c.Request().Context(), userRepo, claims)
			if err != nil {
				if stderrors.Is(err, repositories.ErrUserNotFound) {
					return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Unknown user"))
				}
				return handlers.SendSystemError(c, err)
			}

			c.Set(handlers.UserIDContextKey, user.ID)
			c.Set(UsernameContextKey, user.Username)

			return next(c)
		}
	}
}

// RequireAuth rejects requests Authenticate left anonymous
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(handlers.UserIDContextKey).(uint); !ok {
				return handlers.SendError(c, errors.AuthMissingToken)
			}
			return next(c)
		}
	}
}

// resolveUser finds the user a token names, by id first and then by username,
// creating the user when only the username is known.
func resolveUser(ctx context.Context, userRepo repositories.UserStore, claims *models.CustomClaims) (*models.User, error) {
	user, err := userRepo.GetByID(ctx, claims.UserID)
	if err == nil || !stderrors.Is(err, repositories.ErrUserNotFound) {
		return user, err
	}

	username := strings.TrimSpace(claims.Username)
	if username == "" {
		return nil, repositories.ErrUserNotFound
	}

	user, err = userRepo.GetByUsername(ctx, username)
	if err == nil || !stderrors.Is(err, repositories.ErrUserNotFound) {
		return user, err
	}

	user = &models.User{Username: username}
	if err := userRepo.Create(ctx, user); err != nil {
		switch {
		case stderrors.Is(err, repositories.ErrUserAlreadyExists):
			// lost a race with a concurrent first request
			return userRepo.GetByUsername(ctx, username)
		case stderrors.Is(err, models.ErrUsernameTooLong):
			return nil, repositories.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
