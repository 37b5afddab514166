package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors ---

// Consumed creates an AppError for a single-use value that was used again.
// what names the value ("adaptor", "materializer"), op the rejected call.
func Consumed(what, op string) *AppError {
	return &AppError{
		Code: ErrCodeConsumed, Message: fmt.Sprintf("%s already consumed; %s called on a spent value", what, op),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"value": what, "op": op},
	}
}

// InvalidArgument creates an AppError for an invalid operator argument.
func InvalidArgument(arg, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid %s: %s", arg, reason),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"argument": arg},
	}
}

// InvalidDefinition creates an AppError for a definition that failed validation.
func InvalidDefinition(name, reason string) *AppError {
	details := make(map[string]any)
	if name != "" {
		details["pipeline"] = name
	}
	return &AppError{
		Code: ErrCodeInvalidDefinition, Message: reason,
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// UnknownFunction creates an AppError for a function name missing from the registry.
func UnknownFunction(kind, name string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownFunction, Message: fmt.Sprintf("unknown %s function %q", kind, name),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"kind": kind, "func": name},
	}
}

// LimitExceeded creates an AppError for a run that would produce too many elements.
func LimitExceeded(limit int) *AppError {
	return &AppError{
		Code: ErrCodeLimitExceeded, Message: fmt.Sprintf("pipeline would exceed the limit of %d elements", limit),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"limit": limit},
	}
}

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, id),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Timeout creates an AppError for an operation that did not finish in time.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s timed out", operation),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// --- Inspection ---

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsConsumed reports whether err signals reuse of a spent value.
func IsConsumed(err error) bool { return HasCode(err, ErrCodeConsumed) }

// IsNotFound reports whether err is a NOT_FOUND AppError.
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }

// FromError converts any error into an AppError, wrapping unknown errors as internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// FromPanic converts a recovered panic value into an AppError.
// Panics raised by seq operators already carry an AppError.
func FromPanic(r any) *AppError {
	switch v := r.(type) {
	case nil:
		return nil
	case *AppError:
		return v
	case error:
		return FromError(v)
	default:
		return Internal(stderrors.New(fmt.Sprint(v)))
	}
}
