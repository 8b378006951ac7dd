package errors

// ErrorCode is a stable, client facing error identifier
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
)

// Resource error codes
const (
	CategoryNotFound    ErrorCode = "CATEGORY_001"
	TransactionNotFound ErrorCode = "TRANSACTION_001"
	ResourceNotFound    ErrorCode = "RESOURCE_001"
)

// Request error codes (REQUEST_*)
const (
	RequestMethodNotAllowed ErrorCode = "REQUEST_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

var errorMessages = map[ErrorCode]string{
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field must not be null",
	ValidationInvalidFormat: "Invalid request body",

	CategoryNotFound:    "Category not found",
	TransactionNotFound: "Transaction not found",
	ResourceNotFound:    "Resource not found",

	RequestMethodNotAllowed: "Method not allowed",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
