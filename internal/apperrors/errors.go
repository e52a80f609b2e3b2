package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the permission required for an operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnknownUser is returned when a user id does not match any known user.
// It wraps ErrNotFound so callers can treat it as a plain lookup miss.
var ErrUnknownUser = fmt.Errorf("unknown user: %w", ErrNotFound)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Used for infrastructure failures (transactions, connections) rather than domain outcomes.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldErrors maps a request field name to a human readable validation message.
type FieldErrors map[string]string

// ValidationError is an ErrValidation carrying per-field messages.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", ErrValidation.Error(), len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
