package service

import (
	"errors"
	"fmt"

	"github.com/shoresh/familytree-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPersonNotFound indicates that the person does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPersonNotFound = errors.New("person not found")

	// ErrSpouseTaken indicates that the requested spouse is already linked to
	// someone else. API layer should map this to HTTP 409 Conflict.
	ErrSpouseTaken = errors.New("spouse is already married to another person")
)

// PersonServiceError wraps errors from the person service with context.
type PersonServiceError struct {
	// Operation is the operation that failed (e.g., "create_person", "delete_person")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PersonServiceError.
func (e *PersonServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("person service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("person service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PersonServiceError) Unwrap() error {
	return e.Err
}

// NewPersonServiceError creates a new PersonServiceError.
// It returns known sentinel errors directly without wrapping.
func NewPersonServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPersonNotFound) || errors.Is(err, store.ErrPersonNotFound) {
		return ErrPersonNotFound
	}
	if errors.Is(err, ErrSpouseTaken) {
		return ErrSpouseTaken
	}

	return &PersonServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
