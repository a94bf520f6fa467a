// Package errs maps the store's three observable error kinds onto HTTP
// status classes, per the boundary contract: NotFound, BadRequest, Internal.
package errs

import (
	"fmt"
	"net/http"
)

// AppError is the single error type every handler and service returns
// across a store boundary. Message is safe to send to the client verbatim;
// Err (when set) is the underlying cause, logged but never serialized.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewNotFoundError(entity string, id interface{}) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// AsAppError unwraps err into an *AppError, wrapping anything else as Internal.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return ae
	}
	return NewInternalError(err)
}
