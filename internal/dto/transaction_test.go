package dto

import (
	"encoding/json"
	"testing"
	"time"

	"finora-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableID_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantValue uint
	}{
		{name: "absent", body: `{}`},
		{name: "explicit null", body: `{"categoria_id": null}`, wantSet: true},
		{name: "id", body: `{"categoria_id": 7}`, wantSet: true, wantValid: true, wantValue: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req TransactionPatchRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.CategoriaID.Set)
			assert.Equal(t, tt.wantValid, req.CategoriaID.Valid)
			assert.Equal(t, tt.wantValue, req.CategoriaID.Value)
		})
	}
}

func TestNullableID_RejectsNonIntegers(t *testing.T) {
	for _, body := range []string{`{"categoria_id": "1"}`, `{"categoria_id": -1}`, `{"categoria_id": 1.5}`} {
		var req TransactionRequest
		err := json.Unmarshal([]byte(body), &req)

		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, err, &typeErr, body)
		assert.Equal(t, "categoria_id", typeErr.Field, body)
	}
}

func TestNullableID_Ptr(t *testing.T) {
	assert.Nil(t, NullableID{Set: true}.Ptr())

	id := NullableID{Set: true, Valid: true, Value: 3}.Ptr()
	require.NotNil(t, id)
	assert.Equal(t, uint(3), *id)
}

func TestTransactionRequest_IgnoresUsuario(t *testing.T) {
	var req TransactionRequest
	body := `{"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10","usuario":42}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input, err := req.Input()
	require.NoError(t, err)
	assert.Equal(t, "Almuerzo", *input.Description)
	assert.Equal(t, 15000.0, *input.Amount)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *input.Date)
	assert.False(t, input.Category.Set)
}

func TestTransactionPatchRequest_InputKeepsAbsentFieldsNil(t *testing.T) {
	amount := 12.5
	req := TransactionPatchRequest{Monto: &amount}

	input, err := req.Input()
	require.NoError(t, err)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Date)
	assert.Equal(t, 12.5, *input.Amount)
}

func TestNewTransactionResponse_JSON(t *testing.T) {
	categoryID := uint(1)
	transaction := &models.Transaction{
		ID:          1,
		CategoryID:  &categoryID,
		Category:    &models.Category{ID: 1, Name: "Comida"},
		Description: "Almuerzo",
		Amount:      15000,
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(NewTransactionResponse(transaction))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":1,"usuario":null,"categoria":{"id":1,"nombre":"Comida"},"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`,
		string(body))
	assert.Equal(t,
		`{"id":1,"usuario":null,"categoria":{"id":1,"nombre":"Comida"},"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`,
		string(body))
}

func TestNewTransactionResponse_WithoutCategory(t *testing.T) {
	userID := uint(5)
	transaction := &models.Transaction{
		ID:          2,
		UserID:      &userID,
		Description: "Sueldo",
		Amount:      -3.25,
		Date:        time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(NewTransactionResponse(transaction))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":2,"usuario":5,"categoria":null,"descripcion":"Sueldo","monto":-3.25,"fecha":"2024-02-29"}`,
		string(body))
}

func TestNewCategoryListResponse_EmptyIsArray(t *testing.T) {
	body, err := json.Marshal(NewCategoryListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	body, err = json.Marshal(NewTransactionListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
