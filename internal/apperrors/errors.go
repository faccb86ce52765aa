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

// ErrInvalidDate indicates a date input that could not be parsed as an instant.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidAccountReference indicates unknown account ids in an aggregate query.
var ErrInvalidAccountReference = errors.New("invalid account reference")

// ErrConcurrencyConflict indicates that account locks could not be acquired in time.
// Callers should retry.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// ErrStoreFailure indicates an error from the underlying persistence layer.
var ErrStoreFailure = errors.New("store failure")

// ErrInternal indicates a bug or broken invariant.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// Unwrap exposes the cause and the sentinel that matches the code, so that
// errors.Is(err, ErrStoreFailure) holds for any 5xx AppError.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	switch {
	case e.Code == http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	case e.Code == http.StatusBadRequest:
		errs = append(errs, ErrValidation)
	case e.Code == http.StatusConflict:
		errs = append(errs, ErrConcurrencyConflict)
	case e.Code >= http.StatusInternalServerError:
		errs = append(errs, ErrStoreFailure)
	}
	return errs
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}
