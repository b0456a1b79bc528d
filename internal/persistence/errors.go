package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage indicates a read or write against the store failed
	ErrStorage = errors.New("storage failure")

	// ErrDeserialization indicates a persisted snapshot was unusable
	ErrDeserialization = errors.New("persisted snapshot rejected")

	// ErrRejected indicates Save refused a board that must not be written
	ErrRejected = errors.New("board not persistable")

	// ErrClosed indicates the adapter has been closed
	ErrClosed = errors.New("persistence adapter closed")
)

// StorageError wraps a store failure with the operation and key involved
type StorageError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) succeed
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// DeserializationError wraps the reason a persisted snapshot was discarded
type DeserializationError struct {
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("discarding persisted board: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDeserialization) succeed
func (e *DeserializationError) Is(target error) bool {
	return target == ErrDeserialization
}
