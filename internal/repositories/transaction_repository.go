package repositories

import (
	"context"
	"errors"

	"finora-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionStore {
	return &TransactionRepository{db: db}
}

// List returns every transaction in insertion order with its category
// resolved at read time.
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).Preload("Category").Order("id").Find(&transactions).Error; err != nil {
		return nil, wrapDBError("list transactions", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Preload("Category").First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, wrapDBError("get transaction by ID", err)
	}

	return &transaction, nil
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(transaction).Error; err != nil {
		return wrapDBError("create transaction", err)
	}

	return nil
}

// Update writes every client editable column. The owner is left as stored.
func (r *TransactionRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	result := r.db.WithContext(ctx).
		Model(transaction).
		Omit(clause.Associations).
		Select("category_id", "description", "amount", "date").
		Updates(transaction)
	if result.Error != nil {
		return wrapDBError("update transaction", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return wrapDBError("delete transaction", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
