package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finora-backend/internal/models"
	"finora-backend/internal/repositories"
)

const resourceCategory = "category"

type CategoryService struct {
	categoryRepo repositories.CategoryStore
	metrics      MetricsRecorderInterface
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryStore, metrics MetricsRecorderInterface) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) (categories []models.Category, err error) {
	defer s.observe("list", time.Now(), &err)

	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (category *models.Category, err error) {
	defer s.observe("get", time.Now(), &err)

	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (category *models.Category, err error) {
	defer s.observe("create", time.Now(), &err)

	category = &models.Category{Name: strings.TrimSpace(name)}
	if err = s.categoryRepo.Create(ctx, category); err != nil {
		return nil, categoryValidationError(err)
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, name *string) (category *models.Category, err error) {
	defer s.observe("update", time.Now(), &err)

	category, err = s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return category, nil
	}

	category.Name = strings.TrimSpace(*name)
	if err = s.categoryRepo.Update(ctx, category); err != nil {
		return nil, categoryValidationError(err)
	}

	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) (err error) {
	defer s.observe("delete", time.Now(), &err)

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) observe(operation string, start time.Time, err *error) {
	s.metrics.RecordOperation(resourceCategory, operation, outcomeOf(*err), time.Since(start))
}

// categoryValidationError turns model hook failures into field errors
func categoryValidationError(err error) error {
	switch {
	case errors.Is(err, models.ErrCategoryNameRequired):
		return NewValidationError("nombre", "must not be blank")
	case errors.Is(err, models.ErrCategoryNameTooLong):
		return NewValidationError("nombre", fmt.Sprintf("must be at most %d characters long", models.MaxCategoryNameLength))
	default:
		return err
	}
}
