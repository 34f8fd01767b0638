package validation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every ValidationError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a violated calculator precondition. It is returned
// before any computation takes place.
type ValidationError struct {
	Op     string
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("%s: %s %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s, got %g", e.Op, e.Field, e.Reason, e.Value)
}

// Is lets callers use errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RequirePositive fails when value <= 0 or is NaN.
func RequirePositive(op, field string, value float64) error {
	if !(value > 0) {
		return &ValidationError{Op: op, Field: field, Value: value, Reason: "must be greater than zero"}
	}
	return nil
}

// RequireNonNegative fails when value < 0 or is NaN.
func RequireNonNegative(op, field string, value float64) error {
	if !(value >= 0) {
		return &ValidationError{Op: op, Field: field, Value: value, Reason: "must not be negative"}
	}
	return nil
}

// RequireAtMost fails when value > limit or is NaN.
func RequireAtMost(op, field string, value, limit float64) error {
	if !(value <= limit) {
		return &ValidationError{Op: op, Field: field, Value: value, Reason: fmt.Sprintf("must be at most %g", limit)}
	}
	return nil
}

// RequireNonEmpty fails when a required sequence has no elements.
func RequireNonEmpty(op, field string, length int) error {
	if length == 0 {
		return &ValidationError{Op: op, Field: field, Value: math.NaN(), Reason: "must not be empty"}
	}
	return nil
}
