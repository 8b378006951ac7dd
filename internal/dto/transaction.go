package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"finora-backend/internal/models"
)

// NullableID is an optional, nullable id in a request body. Set reports
// whether the key was present at all; Valid is false for an explicit null.
type NullableID struct {
	Set   bool
	Valid bool
	Value uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		n.Value = 0
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}

	n.Valid = true
	n.Value = id
	return nil
}

// Ptr returns the id, or nil when absent or null.
func (n NullableID) Ptr() *uint {
	if !n.Valid {
		return nil
	}
	id := n.Value
	return &id
}

// TransactionRequest is the body of POST and PUT /api/transacciones/.
// Any usuario key is ignored; the owner comes from the caller's token.
type TransactionRequest struct {
	CategoriaID NullableID `json:"categoria_id"`
	Descripcion *string    `json:"descripcion" validate:"required,nonblank,max=200"`
	Monto       *float64   `json:"monto" validate:"required"`
	Fecha       *string    `json:"fecha" validate:"required,datetime=2006-01-02"`

	nulls []string
}

// TransactionPatchRequest is the body of PATCH /api/transacciones/{id}/
type TransactionPatchRequest struct {
	CategoriaID NullableID `json:"categoria_id"`
	Descripcion *string    `json:"descripcion" validate:"omitempty,nonblank,max=200"`
	Monto       *float64   `json:"monto"`
	Fecha       *string    `json:"fecha" validate:"omitempty,datetime=2006-01-02"`

	nulls []string
}

// TransactionInput is a parsed write request. Nil fields are left untouched
// on update.
type TransactionInput struct {
	Description *string
	Amount      *float64
	Date        *time.Time
	Category    NullableID
}

func (r *TransactionRequest) Input() (TransactionInput, error) {
	return buildInput(r.Descripcion, r.Monto, r.Fecha, r.CategoriaID)
}

func (r *TransactionPatchRequest) Input() (TransactionInput, error) {
	return buildInput(r.Descripcion, r.Monto, r.Fecha, r.CategoriaID)
}

func buildInput(description *string, amount *float64, date *string, category NullableID) (TransactionInput, error) {
	input := TransactionInput{
		Description: description,
		Amount:      amount,
		Category:    category,
	}

	if date != nil {
		parsed, err := models.ParseDate(*date)
		if err != nil {
			return TransactionInput{}, err
		}
		input.Date = &parsed
	}

	return input, nil
}

type TransactionResponse struct {
	ID          uint              `json:"id"`
	Usuario     *uint             `json:"usuario"`
	Categoria   *CategoryResponse `json:"categoria"`
	Descripcion string            `json:"descripcion"`
	Monto       float64           `json:"monto"`
	Fecha       string            `json:"fecha"`
}

func NewTransactionResponse(transaction *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          transaction.ID,
		Usuario:     transaction.UserID,
		Categoria:   NewCategoryResponse(transaction.Category),
		Descripcion: transaction.Description,
		Monto:       transaction.Amount,
		Fecha:       transaction.FormattedDate(),
	}
}

func NewTransactionListResponse(transactions []models.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		response = append(response, *NewTransactionResponse(&transactions[i]))
	}
	return response
}
