package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finora-backend/internal/dto"
	"finora-backend/internal/models"
	"finora-backend/internal/repositories"
)

const resourceTransaction = "transaction"

type TransactionService struct {
	transactionRepo repositories.TransactionStore
	categoryRepo    repositories.CategoryStore
	metrics         MetricsRecorderInterface
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repositories.TransactionStore, categoryRepo repositories.CategoryStore, metrics MetricsRecorderInterface) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		metrics:         metrics,
	}
}

func (s *TransactionService) ListTransactions(ctx context.Context) (transactions []models.Transaction, err error) {
	defer s.observe("list", time.Now(), &err)

	return s.transactionRepo.List(ctx)
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (transaction *models.Transaction, err error) {
	defer s.observe("get", time.Now(), &err)

	return s.transactionRepo.GetByID(ctx, id)
}

// CreateTransaction requires every writable field except the category.
// Any client supplied owner has already been dropped by the request DTO.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID *uint, input dto.TransactionInput) (transaction *models.Transaction, err error) {
	defer s.observe("create", time.Now(), &err)

	if err = requireFullInput(input); err != nil {
		return nil, err
	}

	if err = s.checkCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	transaction = &models.Transaction{
		UserID:      ownerID,
		CategoryID:  input.Category.Ptr(),
		Description: strings.TrimSpace(*input.Description),
		Amount:      *input.Amount,
		Date:        *input.Date,
	}

	if err = s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, s.writeError(ctx, err, input.Category)
	}

	return s.transactionRepo.GetByID(ctx, transaction.ID)
}

// UpdateTransaction applies the non-nil fields of input. The category is
// only touched when the request named it; the owner is never changed.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uint, input dto.TransactionInput) (transaction *models.Transaction, err error) {
	defer s.observe("update", time.Now(), &err)

	transaction, err = s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = s.checkCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	if input.Description != nil {
		transaction.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Category.Set {
		transaction.CategoryID = input.Category.Ptr()
	}
	transaction.Category = nil

	if err = s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, s.writeError(ctx, err, input.Category)
	}

	return s.transactionRepo.GetByID(ctx, id)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uint) (err error) {
	defer s.observe("delete", time.Now(), &err)

	return s.transactionRepo.Delete(ctx, id)
}

func (s *TransactionService) checkCategory(ctx context.Context, category dto.NullableID) error {
	if !category.Valid {
		return nil
	}

	exists, err := s.categoryRepo.Exists(ctx, category.Value)
	if err != nil {
		return err
	}

	if !exists {
		return NewValidationError("categoria_id", fmt.Sprintf("category %d does not exist", category.Value))
	}

	return nil
}

// writeError maps a failed write. A dangling category reference means the
// category was deleted after checkCategory passed.
func (s *TransactionService) writeError(ctx context.Context, err error, category dto.NullableID) error {
	if errors.Is(err, repositories.ErrForeignKeyViolation) && category.Valid {
		if checkErr := s.checkCategory(ctx, category); checkErr != nil {
			return checkErr
		}
	}
	return transactionValidationError(err)
}

func (s *TransactionService) observe(operation string, start time.Time, err *error) {
	s.metrics.RecordOperation(resourceTransaction, operation, outcomeOf(*err), time.Since(start))
}

func requireFullInput(input dto.TransactionInput) error {
	fields := make(map[string]string)
	if input.Description == nil {
		fields["descripcion"] = "is required"
	}
	if input.Amount == nil {
		fields["monto"] = "is required"
	}
	if input.Date == nil {
		fields["fecha"] = "is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func transactionValidationError(err error) error {
	switch {
	case errors.Is(err, models.ErrDescriptionRequired):
		return NewValidationError("descripcion", "must not be blank")
	case errors.Is(err, models.ErrDescriptionTooLong):
		return NewValidationError("descripcion", fmt.Sprintf("must be at most %d characters long", models.MaxDescriptionLength))
	case errors.Is(err, models.ErrDateRequired):
		return NewValidationError("fecha", "is required")
	default:
		return err
	}
}
