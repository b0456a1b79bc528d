package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for board operations. Typed errors below match these via errors.Is.
var (
	// ErrValidation indicates caller-supplied input was rejected
	ErrValidation = errors.New("validation failed")

	// ErrReference indicates an operation named a task or column that does not exist
	ErrReference = errors.New("unknown reference")

	// ErrInvariant indicates a board that breaks one of the structural invariants
	ErrInvariant = errors.New("board invariant violated")
)

// ValidationError describes a rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferenceKind names the kind of entity a ReferenceError points at
type ReferenceKind string

const (
	RefTask   ReferenceKind = "task"
	RefColumn ReferenceKind = "column"
)

// ReferenceError reports an id absent from the current board.
// Board operations treat this as a no-op; it only surfaces through lookups.
type ReferenceError struct {
	Kind ReferenceKind
	ID   string
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrReference) succeed
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// invariantf wraps ErrInvariant with a formatted reason
func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
