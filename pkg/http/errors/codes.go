package errors

// Error codes for standardized error responses
const (
	// Request errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidArgument  = "invalid_argument"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound   = "not_found"
	ErrCodeOutOfRange = "out_of_range"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
