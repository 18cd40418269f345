package functions

import (
	"fmt"
	"net/http"
)

// ErrorType categorizes invocation failures
type ErrorType string

const (
	// ErrorTypeFetch covers transport-level failures where no response was obtained
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRelay covers errors reported by the relay layer via the x-relay-error header
	ErrorTypeRelay ErrorType = "relay"
	// ErrorTypeHTTP covers non-2xx responses without a relay error marker
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeSerialization covers body encoding failures raised before any network I/O
	ErrorTypeSerialization ErrorType = "serialization"
	// ErrorTypeInvalidArgument covers malformed input rejected before any network I/O
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
)

// Error is the typed error returned by all client operations
type Error struct {
	Type    ErrorType
	Message string

	// StatusCode is set only for ErrorTypeHTTP
	StatusCode int

	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by type, so callers can use errors.Is with a sentinel
func (e *Error) Is(target error) bool {
	if targetErr, ok := target.(*Error); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// New creates a new Error
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new Error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return New(errType, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a type and message
func Wrap(err error, errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *Error {
	return Wrap(err, errType, fmt.Sprintf(format, args...))
}

// newHTTPError builds an ErrorTypeHTTP error carrying the response status code
func newHTTPError(statusCode int, message string) *Error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &Error{
		Type:       ErrorTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// IsType checks whether an error is an *Error of the given type
func IsType(err error, errType ErrorType) bool {
	if fErr, ok := err.(*Error); ok {
		return fErr.Type == errType
	}
	return false
}

// GetType returns the error type, or ErrorTypeFetch if err is not an *Error
func GetType(err error) ErrorType {
	if fErr, ok := err.(*Error); ok {
		return fErr.Type
	}
	return ErrorTypeFetch
}
