// Package errors defines the typed errors raised across the service and how
// each type maps to an HTTP status.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypePersistence ErrorType = "PERSISTENCE"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeNotFound:    http.StatusNotFound,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypePersistence: http.StatusInternalServerError,
}

// AppError is a classified error. Message is safe to show to clients; Cause
// and Details may hold storage internals.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Details map[string]interface{}
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status for the error's type
func (e *AppError) Status() int {
	if status, ok := statusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithCode sets a machine-readable code, such as a DynamoDB error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a key to Details
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func newError(typ ErrorType, message string) *AppError {
	return &AppError{Type: typ, Message: message}
}

func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message)
}

// NewNotFoundError reports a missing resource, e.g. "todo not found"
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, resource+" not found")
}

func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message)
}

func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, fmt.Sprintf("service '%s' is unavailable", service))
}

// NewPersistenceError reports a failed storage operation. The cause stays
// reachable through errors.Unwrap.
func NewPersistenceError(operation string, cause error) *AppError {
	return newError(ErrorTypePersistence, fmt.Sprintf("persistence operation '%s' failed", operation)).
		WithCause(cause)
}

// GetAppError returns the first AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, typ ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == typ
}

func IsValidation(err error) bool  { return isType(err, ErrorTypeValidation) }
func IsNotFound(err error) bool    { return isType(err, ErrorTypeNotFound) }
func IsPersistence(err error) bool { return isType(err, ErrorTypePersistence) }
