package models

import "errors"

// Error classes shared by every layer. Callers match them with errors.Is;
// concrete errors wrap one of these with %w.
var (
	// ErrValidation marks bad input: unknown references, out-of-range scores,
	// cross-project edges, self references or cycles.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing task, project, status or notification.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a storage failure. Any partial work is rolled back.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError carries the offending field together with the validation class.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
