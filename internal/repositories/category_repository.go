package repositories

import (
	"context"
	"errors"

	"finora-backend/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryStore {
	return &CategoryRepository{db: db}
}

// List returns every category in insertion order
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, wrapDBError("list categories", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, wrapDBError("get category by ID", err)
	}

	return &category, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapDBError("check category existence", err)
	}

	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return wrapDBError("create category", err)
	}

	return nil
}

// Update writes the category's name. It never inserts.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	result := r.db.WithContext(ctx).Model(category).Select("name").Updates(category)
	if result.Error != nil {
		return wrapDBError("update category", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return wrapDBError("detach transactions from category", err)
		}

		result := tx.Delete(&models.Category{}, id)
		if result.Error != nil {
			return wrapDBError("delete category", result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}

		return nil
	})
}
