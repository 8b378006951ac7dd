package middleware

import (
	stderrors "errors"
	"net/http"

	"finora-backend/internal/errors"
	"finora-backend/internal/services"
	"finora-backend/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NewHTTPErrorHandler formats errors that reach echo (unknown routes, wrong
// methods, errors returned by handlers) as standardized error responses
func NewHTTPErrorHandler(logger *logrus.Logger, metrics services.MetricsRecorderInterface) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		traceID := GetTraceID(c)
		errorResponse, httpStatus := buildErrorResponse(err, traceID)

		entry := logger.WithFields(logrus.Fields{
			"trace_id":   traceID,
			"error_code": errorResponse.Error.Code,
			"status":     httpStatus,
			"path":       c.Request().URL.Path,
			"method":     c.Request().Method,
		}).WithError(err)
		if httpStatus >= http.StatusInternalServerError {
			entry.Error("HTTP error occurred")
		} else {
			entry.Warn("HTTP error occurred")
		}

		metrics.RecordAPIError(errorResponse.Error.Code, c.Path(), httpStatus)

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpStatus)
		} else {
			err = c.JSON(httpStatus, errorResponse)
		}
		if err != nil {
			logger.WithField("trace_id", traceID).WithError(err).Error("Failed to send error response")
		}
	}
}

func buildErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	var echoErr *echo.HTTPError
	var serviceErr *services.ValidationError

	if fields, ok := validation.FieldErrors(err); ok {
		return errors.NewValidationError(fields, traceID), http.StatusBadRequest
	}

	switch {
	case stderrors.As(err, &serviceErr):
		return errors.NewValidationError(serviceErr.Fields, traceID), http.StatusBadRequest
	case stderrors.As(err, &echoErr):
		return errors.NewErrorResponse(mapHTTPStatusToErrorCode(echoErr.Code), traceID), echoErr.Code
	default:
		errorResponse, _ := errors.WrapSystemError(err, traceID)
		return errorResponse, errorResponse.GetHTTPStatus()
	}
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return errors.ValidationGeneral
	case http.StatusUnauthorized:
		return errors.AuthMissingToken
	case http.StatusNotFound:
		return errors.ResourceNotFound
	case http.StatusMethodNotAllowed:
		return errors.RequestMethodNotAllowed
	case http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return errors.ValidationInvalidFormat
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		if status >= http.StatusInternalServerError {
			return errors.SystemInternalError
		}
		return errors.ValidationGeneral
	}
}
