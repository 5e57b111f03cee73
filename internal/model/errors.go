package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOrExpiredToken deliberately covers bad, expired and already
	// consumed tokens alike. Callers never learn which one it was.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	ErrUnauthenticated = errors.New("authentication required")
	ErrUploadFailed    = errors.New("image upload failed")
)

// ValidationError reports a malformed input field. The caller can retry with
// corrected data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
