package handlers

import (
	"finora-backend/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validation.Validator
}

func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
