// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped by a ValidationError naming the field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	// NewInvalidIDError wraps it together with ErrValidation.
	ErrInvalidID = errors.New("invalid ID")

	// ErrSelfReference is returned when a person is set as their own father,
	// mother or spouse.
	ErrSelfReference = fmt.Errorf("%w: a person cannot reference themselves", ErrValidation)
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error // optional cause, e.g. ErrInvalidID
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation and the optional cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidIDError reports a malformed ID in field.
func NewInvalidIDError(field string) error {
	return &ValidationError{Field: field, Message: "has invalid format", Err: ErrInvalidID}
}
