package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline usage errors
const (
	// ErrCodeConsumed indicates a single-use adaptor or materializer was used twice.
	ErrCodeConsumed ErrorCode = "PIPELINE_CONSUMED"
	// ErrCodeInvalidArgument indicates an operator received an out-of-range argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Definition errors
const (
	// ErrCodeInvalidDefinition indicates a pipeline definition failed validation.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
	// ErrCodeUnknownFunction indicates a definition referenced an unregistered function.
	ErrCodeUnknownFunction ErrorCode = "UNKNOWN_FUNCTION"
	// ErrCodeLimitExceeded indicates a run would exceed the configured element limit.
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeTimeout indicates the operation did not finish in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:  true,
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
