package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDatabase marks failures of the storage layer itself
	ErrDatabase = errors.New("database error")
	// ErrForeignKeyViolation is returned when a write references a row that
	// does not exist
	ErrForeignKeyViolation = errors.New("referenced record does not exist")
)

// wrapDBError describes a failed action and tags the error so callers can
// tell storage failures and dangling references apart.
func wrapDBError(action string, err error) error {
	if isForeignKeyError(err) {
		return fmt.Errorf("failed to %s: %w: %w", action, ErrForeignKeyViolation, err)
	}
	return fmt.Errorf("failed to %s: %w: %w", action, ErrDatabase, err)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "violates foreign key constraint") ||
		strings.Contains(errStr, "23503")
}
