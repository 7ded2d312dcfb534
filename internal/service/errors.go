package service

import (
	"errors"

	"github.com/larsreed/recipes-sub000/internal/repository"
)

var (
	// ErrNotFound reports that a referenced id does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrValidation reports a missing or out-of-range field. Use errors.As with
	// *ValidationError for details.
	ErrValidation = errors.New("validation failed")
	// ErrMalformed reports input that cannot be decoded at all, such as bad
	// base64 or an unparseable search pattern.
	ErrMalformed = errors.New("malformed input")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
	// Conflict is set when the value collides with another row, e.g. a
	// duplicate source name.
	Conflict bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func conflict(field, message string) error {
	return &ValidationError{Field: field, Message: message, Conflict: true}
}
