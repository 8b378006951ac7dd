package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"finora-backend/internal/errors"
	"finora-backend/internal/logging"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"
	"finora-backend/internal/validation"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through the helpers below rather than returning
// echo.NewHTTPError or writing error bodies with c.JSON:
//
//   - SendError for client errors (4xx), optionally with details
//   - SendValidationError for per-field validation failures
//   - SendSystemError for anything unexpected; the cause is logged, never returned

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
	// MetricsContextKey holds the services.MetricsRecorderInterface that
	// counts error responses
	MetricsContextKey = "metrics"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	errorResponse := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return sendErrorResponse(c, errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends VALIDATION_001 listing every offending field
func SendValidationError(c echo.Context, fields map[string]string) error {
	errorResponse := errors.NewValidationError(fields, getTraceID(c))
	return sendErrorResponse(c, http.StatusBadRequest, errorResponse)
}

// SendSystemError hides err behind SYSTEM_001, or SYSTEM_002 for storage
// failures, and records it on the request log
func SendSystemError(c echo.Context, err error) error {
	wrap := errors.WrapSystemError
	if stderrors.Is(err, repositories.ErrDatabase) {
		wrap = errors.WrapDatabaseError
	}

	errorResponse, internal := wrap(err, getTraceID(c))
	logging.FromContext(c).AddData("internal_error", internal.Error())
	return sendErrorResponse(c, errorResponse.GetHTTPStatus(), errorResponse)
}

func sendErrorResponse(c echo.Context, status int, errorResponse *errors.ErrorResponse) error {
	if metrics, ok := c.Get(MetricsContextKey).(services.MetricsRecorderInterface); ok {
		metrics.RecordAPIError(errorResponse.Error.Code, c.Path(), status)
	}
	return c.JSON(status, errorResponse)
}

// sendBindError reports a request body echo could not decode
func sendBindError(c echo.Context, err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return SendValidationError(c, map[string]string{field: "incorrect type"})
	}

	return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("body: malformed JSON"))
}

// nullableRequest is a decoded body that remembers keys sent as JSON null
type nullableRequest interface {
	NullFields() []string
}

// sendNullFieldsError writes VALIDATION_002 when req set a non-nullable field
// to null. It reports whether a response was written.
func sendNullFieldsError(c echo.Context, req nullableRequest) (bool, error) {
	fields := req.NullFields()
	if len(fields) == 0 {
		return false, nil
	}

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": must not be null")
	}
	return true, SendError(c, errors.ValidationRequiredField, errors.WithDetails(details...))
}

// sendRequestValidationError reports validator failures, falling back to a
// system error for anything that is not a field validation problem
func sendRequestValidationError(c echo.Context, err error) error {
	fields, ok := validation.FieldErrors(err)
	if !ok {
		return SendSystemError(c, err)
	}
	return SendValidationError(c, fields)
}

// sendServiceError maps service failures; notFound is the code used when the
// addressed resource does not exist
func sendServiceError(c echo.Context, err error, notFound errors.ErrorCode, notFoundErr error) error {
	var validationErr *services.ValidationError
	switch {
	case stderrors.As(err, &validationErr):
		return SendValidationError(c, validationErr.Fields)
	case stderrors.Is(err, notFoundErr):
		return SendError(c, notFound)
	default:
		return SendSystemError(c, err)
	}
}
