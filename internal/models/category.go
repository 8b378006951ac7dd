package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const MaxCategoryNameLength = 100

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name exceeds 100 characters")
)

// Category is a spending category transactions may be filed under
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"nombre"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}

	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
