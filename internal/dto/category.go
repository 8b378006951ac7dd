package dto

import "finora-backend/internal/models"

// CategoryRequest is the body of POST and PUT /api/categorias/
type CategoryRequest struct {
	Nombre *string `json:"nombre" validate:"required,nonblank,max=100"`

	nulls []string
}

// CategoryPatchRequest is the body of PATCH /api/categorias/{id}/
type CategoryPatchRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,nonblank,max=100"`

	nulls []string
}

type CategoryResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

func NewCategoryResponse(category *models.Category) *CategoryResponse {
	if category == nil {
		return nil
	}
	return &CategoryResponse{
		ID:     category.ID,
		Nombre: category.Name,
	}
}

func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		response = append(response, *NewCategoryResponse(&categories[i]))
	}
	return response
}
