package types

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces task identifiers that are unique for the lifetime of a board.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator hands out random (v4) UUIDs
type UUIDGenerator struct{}

// NewID returns a fresh UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Clock is the date source used for overdue classification
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Useful in tests and snapshots.
type FixedClock time.Time

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Compile-time verification of the default implementations
var (
	_ IDGenerator = UUIDGenerator{}
	_ Clock       = SystemClock{}
	_ Clock       = FixedClock{}
)
