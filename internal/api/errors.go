package api

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a call needs a session and no usable
// access token exists (missing, or rejected and not refreshable).
var ErrAuthRequired = errors.New("authentication required, please log in")

// ValidationError is a client-side pre-check failure. No request has been
// sent when one of these is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// APIError is a non-2xx response. Detail carries the backend's
// human-readable message when the body had one, otherwise "HTTP <status>".
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// ConnectionError wraps transport-level failures (DNS, refused, timeout).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "could not connect to server"
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ParseError means the backend answered 2xx but the body did not match the
// expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "server returned an invalid response"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UserMessage converts any workflow error into the inline message shown to
// the user. Errors never propagate past a command boundary raw.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		apiErr        *APIError
		connErr       *ConnectionError
		parseErr      *ParseError
	)

	switch {
	case errors.Is(err, ErrAuthRequired):
		return "Please log in before continuing"
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &apiErr):
		return apiErr.Detail
	case errors.As(err, &connErr):
		return "Could not connect to server"
	case errors.As(err, &parseErr):
		return "Server returned an invalid response"
	default:
		return err.Error()
	}
}
