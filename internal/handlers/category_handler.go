package handlers

import (
	"net/http"

	"finora-backend/internal/dto"
	"finora-backend/internal/errors"
	"finora-backend/internal/logging"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns every category ordered by id
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/categorias/ [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	done := logging.FromContext(c).AddTiming("service_ms")
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	done()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

// CreateCategory creates a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields; VALIDATION_002 - nombre sent as null"
// @Router /api/categorias/ [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if sent, err := sendNullFieldsError(c, &req); sent {
		return err
	}

	if err := c.Validate(req); err != nil {
		return sendRequestValidationError(c, err)
	}

	done := logging.FromContext(c).AddTiming("service_ms")
	category, err := h.categoryService.CreateCategory(c.Request().Context(), *req.Nombre)
	done()
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// GetCategory returns one category
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categorias/{id}/ [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.CategoryNotFound)
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// UpdateCategory replaces a category (PUT)
// @Summary Replace category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields; VALIDATION_002 - nombre sent as null"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categorias/{id}/ [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	return h.update(c, &req, func() *string { return req.Nombre })
}

// PatchCategory partially updates a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.CategoryPatchRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields; VALIDATION_002 - nombre sent as null"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categorias/{id}/ [patch]
func (h *CategoryHandler) PatchCategory(c echo.Context) error {
	var req dto.CategoryPatchRequest
	return h.update(c, &req, func() *string { return req.Nombre })
}

// DeleteCategory deletes a category; transactions filed under it become uncategorized
// @Summary Delete category
// @Tags Categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /api/categorias/{id}/ [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.CategoryNotFound)
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return h.sendError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) update(c echo.Context, req nullableRequest, name func() *string) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.CategoryNotFound)
	}

	if err := c.Bind(req); err != nil {
		return sendBindError(c, err)
	}

	if sent, err := sendNullFieldsError(c, req); sent {
		return err
	}

	if err := c.Validate(req); err != nil {
		return sendRequestValidationError(c, err)
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, name())
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) sendError(c echo.Context, err error) error {
	return sendServiceError(c, err, errors.CategoryNotFound, repositories.ErrCategoryNotFound)
}
