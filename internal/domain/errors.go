package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no row exists for the requested id.
	ErrNotFound = errors.New("reviews: not found")
	// ErrNotPersisted is returned when update or delete is called on a
	// review that has no row id yet.
	ErrNotPersisted = errors.New("reviews: review has not been saved")
)

// ValidationError rejects an attribute assignment that violates its
// constraint. It names the offending field so callers can surface it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
