package repositories

import (
	"context"

	"finora-backend/internal/models"
)

// CategoryStore defines the contract for category persistence
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category and clears it from every transaction
	// that referenced it.
	Delete(ctx context.Context, id uint) error
}

// TransactionStore defines the contract for transaction persistence.
// Reads resolve the referenced category.
type TransactionStore interface {
	List(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	Create(ctx context.Context, transaction *models.Transaction) error
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id uint) error
}

// UserStore defines the contract for the local user records
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Delete removes the user together with the transactions it owns.
	Delete(ctx context.Context, id uint) error
}
