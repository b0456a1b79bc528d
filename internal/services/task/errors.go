package task

import "errors"

// Task-related errors
var (
	// ErrNoColumns indicates the board has no column to receive a new task
	ErrNoColumns = errors.New("board has no columns")

	// ErrIDExhausted indicates the id generator kept returning ids already on the board
	ErrIDExhausted = errors.New("could not allocate a unique task id")
)
