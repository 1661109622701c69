package changelog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUnreleased is returned when the document has no "## Unreleased" heading.
	ErrNoUnreleased = errors.New("no Unreleased section found")
	// ErrUnreleasedExists is returned by Reset when a staging block is already present.
	ErrUnreleasedExists = errors.New("Unreleased section already exists")
	// ErrVersionNotFound is returned when no heading exists for the requested version.
	ErrVersionNotFound = errors.New("version heading not found")
	// ErrAlreadyFinalized is returned by Finalize when the version carries a real date.
	ErrAlreadyFinalized = errors.New("version already finalized")
)

// StructuralError reports a missing or unexpected structural element
// in a changelog document.
type StructuralError struct {
	Path string
	// Element is the heading or section the operation looked for (optional).
	Element string
	Err     error
}

func (e *StructuralError) Error() string {
	msg := e.Err.Error()
	if e.Element != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Element)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ValidationError reports invalid operator input. It is always returned
// before the target file is touched.
type ValidationError struct {
	Field    string
	Value    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q (expected: %s)", e.Field, e.Value, e.Expected)
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStructuralError returns true if the error is a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
