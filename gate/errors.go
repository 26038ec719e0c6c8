package gate

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("gate: validation failed")
	// ErrSerialization is matched by every *SerializationError.
	ErrSerialization = errors.New("gate: serialization failed")
)

// ValidationError reports a malformed field combination passed to a constructor.
type ValidationError struct {
	Name   string // gate name being constructed
	Field  string // offending field, e.g. "pauli_ids"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot initialize gate %q: %s: %s", e.Name, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(name, field, format string, args ...any) *ValidationError {
	return &ValidationError{Name: name, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SerializationError reports a field tuple or byte stream that cannot be
// decoded into a valid gate.
type SerializationError struct {
	Op     string // "encode", "decode" or "reconstruct"
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gate %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("gate %s: %s", e.Op, e.Reason)
}

// Is lets errors.Is match both ErrSerialization and the wrapped cause.
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

func (e *SerializationError) Unwrap() error { return e.Err }
