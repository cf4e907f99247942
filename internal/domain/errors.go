package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

// Quiz errors. All are recoverable and reported to the user as notifications.
var (
	ErrCategoryNotFound = fmt.Errorf("quiz category: %w", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("quiz session: %w", ErrNotFound)
	ErrNoAnswerSelected = errors.New("no answer selected")
	ErrInvalidOption    = fmt.Errorf("option index out of range: %w", ErrValidation)
	ErrQuizComplete     = errors.New("quiz already complete")
)

// Dictionary errors.
var (
	ErrEmptyQuery         = fmt.Errorf("empty query: %w", ErrValidation)
	ErrWordNotFound       = fmt.Errorf("word: %w", ErrNotFound)
	ErrAudioUnavailable   = errors.New("audio unavailable")
	ErrNetworkUnavailable = errors.New("dictionary source unavailable")
)

// ErrSectionNotFound is returned for a page section that does not exist.
var ErrSectionNotFound = fmt.Errorf("section: %w", ErrNotFound)

// ErrPlanNotFound is returned for a payment plan outside the canonical price list.
var ErrPlanNotFound = fmt.Errorf("payment plan: %w", ErrNotFound)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
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
