package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnavailable   = errors.New("unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors,
// optionally tied to a location in the source data.
type ValidationError struct {
	Location string
	Errors   []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation")
	if e.Location != "" {
		b.WriteString(" at ")
		b.WriteString(e.Location)
	}
	if len(e.Errors) == 1 {
		fmt.Fprintf(&b, ": %s: %s", e.Errors[0].Field, e.Errors[0].Message)
		return b.String()
	}
	fmt.Fprintf(&b, ": %d errors", len(e.Errors))
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// At returns a copy of the error annotated with a source location.
func (e *ValidationError) At(location string) *ValidationError {
	return &ValidationError{Location: location, Errors: e.Errors}
}
