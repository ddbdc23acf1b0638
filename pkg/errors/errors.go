// Package errors defines the console's error vocabulary and its mapping onto
// HTTP statuses and wire codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared by every layer of the console.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrInternal      = errors.New("internal error")
	ErrUnavailable   = errors.New("service unavailable")
)

// AppError carries a wire code, a client-safe message and the HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// kind describes how a sentinel surfaces to clients. An empty message means
// the wrapped error text is safe to show.
type kind struct {
	sentinel error
	code     string
	status   int
	message  string
}

var kinds = []kind{
	{ErrNotFound, "NOT_FOUND", http.StatusNotFound, "resource not found"},
	{ErrAlreadyExists, "ALREADY_EXISTS", http.StatusConflict, "resource already exists"},
	{ErrConflict, "CONFLICT", http.StatusConflict, ""},
	{ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest, ""},
	{ErrForbidden, "FORBIDDEN", http.StatusForbidden, "access denied"},
	{ErrUnavailable, "UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable"},
}

func newError(sentinel error, message string) *AppError {
	for _, k := range kinds {
		if k.sentinel == sentinel {
			return &AppError{Code: k.code, Message: message, Status: k.status, Err: sentinel}
		}
	}
	return Internal(sentinel)
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return newError(ErrNotFound, fmt.Sprintf("%s %q not found", resource, id))
}

// AlreadyExists creates a 409 error for a uniqueness violation.
func AlreadyExists(resource, field, value string) *AppError {
	return newError(ErrAlreadyExists, fmt.Sprintf("%s with %s %q already exists", resource, field, value))
}

// Conflict creates a 409 error for a mutation refused because of the current state.
func Conflict(message string) *AppError {
	return newError(ErrConflict, message)
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return newError(ErrInvalidInput, message)
}

// Forbidden creates a 403 error for a caller outside an allowlist.
func Forbidden(message string) *AppError {
	return newError(ErrForbidden, message)
}

// Unavailable creates a 503 error for a backing store that cannot be reached.
func Unavailable(message string, err error) *AppError {
	e := newError(ErrUnavailable, message)
	e.Err = errors.Join(ErrUnavailable, err)
	return e
}

// Internal creates a 500 error. The cause is kept for logs only.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// From classifies err. An AppError anywhere in the chain is returned as is;
// a bare sentinel gets its kind's code and status; anything else is internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, k := range kinds {
		if !errors.Is(err, k.sentinel) {
			continue
		}
		msg := k.message
		if msg == "" {
			msg = err.Error()
		}
		return &AppError{Code: k.code, Message: msg, Status: k.status, Err: err}
	}
	return Internal(err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	return From(err).Status
}
