package services

import (
	"context"
	"time"

	"finora-backend/internal/dto"
	"finora-backend/internal/models"
)

// CategoryServiceInterface defines category business operations
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	// UpdateCategory renames the category; a nil name leaves it unchanged
	UpdateCategory(ctx context.Context, id uint, name *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// TransactionServiceInterface defines transaction business operations
type TransactionServiceInterface interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id uint) (*models.Transaction, error)
	// CreateTransaction persists a transaction owned by ownerID, or by nobody when ownerID is nil
	CreateTransaction(ctx context.Context, ownerID *uint, input dto.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id uint, input dto.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// MetricsRecorderInterface records resource operation and API error metrics
type MetricsRecorderInterface interface {
	RecordOperation(resource, operation, outcome string, duration time.Duration)
	RecordAPIError(code, endpoint string, status int)
}
