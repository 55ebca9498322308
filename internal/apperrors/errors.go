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

// ErrForbidden indicates a structurally disallowed operation (e.g. removing a workspace owner).
var ErrForbidden = errors.New("operation forbidden")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrExternalService indicates that a collaborator outside the process (AI advisor, remote API) failed.
var ErrExternalService = errors.New("external service failure")

// AppError carries an HTTP-ish status code and a human message while still
// unwrapping to one of the sentinel errors above.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return NewAppError(404, message, ErrNotFound)
}

// NewConflictError returns an error that matches ErrDuplicate.
func NewConflictError(message string) error {
	return NewAppError(409, message, ErrDuplicate)
}

// NewForbiddenError returns an error that matches ErrForbidden.
func NewForbiddenError(message string) error {
	return NewAppError(403, message, ErrForbidden)
}

// NewValidationFailedError returns an error that matches ErrValidation.
func NewValidationFailedError(message string) error {
	return NewAppError(400, message, ErrValidation)
}

// NewExternalServiceError returns an error that matches ErrExternalService.
func NewExternalServiceError(message string, cause error) error {
	if cause == nil {
		return NewAppError(502, message, ErrExternalService)
	}
	return NewAppError(502, message, fmt.Errorf("%w: %v", ErrExternalService, cause))
}

// Message returns the human readable message of err, preferring the AppError message.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
