package correctness

import (
	"errors"
	"fmt"
)

// FAILED prefixes panics raised by constructors that require valid input.
const FAILED = "Condition failed"

// ErrInvalidString is matched by every ValidationError via errors.Is.
var ErrInvalidString = errors.New("invalid string")

// ValidationError describes a value that failed a correctness check.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid string for '%s': %s (value: %q)", e.Field, e.Message, e.Value)
}

// Is reports whether target is ErrInvalidString.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidString
}

// IsValidationError checks if an error is, or wraps, a validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
