package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and response shaping.
type Kind string

const (
	KindValidation Kind = "validation_error" // missing or malformed required field
	KindNotFound   Kind = "not_found"        // referenced resource does not exist
	KindStore      Kind = "store_error"      // persistence layer failure
)

// Kinder is implemented by errors that carry a Kind.
type Kinder interface {
	Kind() Kind
}

// ValidationError represents a validation failure with field-level details.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Kind returns the error kind.
func (e *ValidationError) Kind() Kind { return KindValidation }

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Kind returns the error kind.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// StoreError represents a persistence layer failure with context.
type StoreError struct {
	Message string
	Err     error
}

// NewStoreError creates a new store error.
func NewStoreError(message string, err error) *StoreError {
	return &StoreError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind.
func (e *StoreError) Kind() Kind { return KindStore }

// KindOf returns the Kind carried by err. Unclassified errors fall through
// to KindStore so anything unexpected maps to an internal failure.
func KindOf(err error) Kind {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindStore
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
