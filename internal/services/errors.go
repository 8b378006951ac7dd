package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"finora-backend/internal/repositories"
)

// ValidationError carries per-field messages keyed by JSON field name
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

const (
	outcomeSuccess  = "success"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

func outcomeOf(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &validationErr):
		return outcomeInvalid
	case errors.Is(err, repositories.ErrCategoryNotFound), errors.Is(err, repositories.ErrTransactionNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}
