package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user is not allowed to perform the
// operation, e.g. a user who is not the assigned approver acting on a request.
var ErrForbidden = errors.New("operation not permitted")

// ErrInvalidState indicates an operation attempted against a document or
// request that is not in an eligible state (posting a non-draft bill,
// approving an already completed request, and so on).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrMissingAccount indicates that a chart-of-accounts entry required by the
// posting engine does not exist for the company. Surfaced as a business
// error (400), not an internal failure, even though it usually means the
// ledger is misconfigured.
var ErrMissingAccount = errors.New("required ledger account not configured")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the
// wrapped cause. Repositories use it to classify persistence failures.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError matching ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewBadRequestError creates a 400 AppError matching ErrValidation via errors.Is.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates a 403 AppError matching ErrForbidden via errors.Is.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// NewConflictError creates a 409 AppError matching ErrInvalidState via errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrInvalidState}
}

// NewInternalServerError creates a 500 AppError matching ErrInternal via errors.Is.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrInternal}
}
