package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence failed")
	ErrEmptyBag     = errors.New("your bag is empty")
	ErrInvalidStep  = errors.New("invalid checkout step")
	ErrUnauthorized = errors.New("unauthorized")
)

// A ValidationError carries a user-facing reason and matches [ErrValidation].
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid returns a [*ValidationError] with a user-facing reason.
func Invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
