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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// transactionWriteRequest is implemented by the PUT and PATCH request bodies
type transactionWriteRequest interface {
	nullableRequest
	Input() (dto.TransactionInput, error)
}

// ListTransactions returns every transaction with its category embedded
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/transacciones/ [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	done := logging.FromContext(c).AddTiming("service_ms")
	transactions, err := h.transactionService.ListTransactions(c.Request().Context())
	done()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(transactions))
}

// CreateTransaction records a transaction owned by the authenticated user, if any
// @Summary Create transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields or unknown categoria_id; VALIDATION_002 - Required field sent as null"
// @Router /api/transacciones/ [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.TransactionRequest
	input, ok, err := h.bindInput(c, &req)
	if !ok {
		return err
	}

	done := logging.FromContext(c).AddTiming("service_ms")
	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), getUserIDFromContext(c), input)
	done()
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// GetTransaction returns one transaction
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transacciones/{id}/ [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.TransactionNotFound)
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// UpdateTransaction replaces a transaction's writable fields (PUT)
// @Summary Replace transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body dto.TransactionRequest true "Transaction"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields or unknown categoria_id; VALIDATION_002 - Required field sent as null"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transacciones/{id}/ [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	return h.update(c, &dto.TransactionRequest{})
}

// PatchTransaction updates only the supplied fields
// @Summary Update transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body dto.TransactionPatchRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid fields or unknown categoria_id; VALIDATION_002 - Required field sent as null"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transacciones/{id}/ [patch]
func (h *TransactionHandler) PatchTransaction(c echo.Context) error {
	return h.update(c, &dto.TransactionPatchRequest{})
}

// DeleteTransaction deletes a transaction
// @Summary Delete transaction
// @Tags Transactions
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /api/transacciones/{id}/ [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.TransactionNotFound)
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), id); err != nil {
		return h.sendError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) update(c echo.Context, req transactionWriteRequest) error {
	id, ok := parseIDParam(c)
	if !ok {
		return SendError(c, errors.TransactionNotFound)
	}

	input, ok, err := h.bindInput(c, req)
	if !ok {
		return err
	}

	done := logging.FromContext(c).AddTiming("service_ms")
	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), id, input)
	done()
	if err != nil {
		return h.sendError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// bindInput decodes and validates req. When ok is false the error response
// has already been written and err is what the handler should return.
func (h *TransactionHandler) bindInput(c echo.Context, req transactionWriteRequest) (input dto.TransactionInput, ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return input, false, sendBindError(c, err)
	}

	if sent, err := sendNullFieldsError(c, req); sent {
		return input, false, err
	}

	if err := c.Validate(req); err != nil {
		return input, false, sendRequestValidationError(c, err)
	}

	input, err = req.Input()
	if err != nil {
		return input, false, SendValidationError(c, map[string]string{"fecha": "must be a valid date (YYYY-MM-DD)"})
	}

	return input, true, nil
}

func (h *TransactionHandler) sendError(c echo.Context, err error) error {
	return sendServiceError(c, err, errors.TransactionNotFound, repositories.ErrTransactionNotFound)
}
