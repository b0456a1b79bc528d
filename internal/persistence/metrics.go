package persistence

import (
	"sync/atomic"
	"time"
)

// Metrics tracks adapter statistics using atomic operations for thread-safety
type Metrics struct {
	Writes        atomic.Int64
	WriteFailures atomic.Int64
	Coalesced     atomic.Int64
	Rejected      atomic.Int64
	lastWrite     atomic.Int64 // unix nanoseconds
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) incWrites(at time.Time) {
	m.Writes.Add(1)
	m.lastWrite.Store(at.UnixNano())
}

func (m *Metrics) incWriteFailures() { m.WriteFailures.Add(1) }
func (m *Metrics) incCoalesced()     { m.Coalesced.Add(1) }
func (m *Metrics) incRejected()      { m.Rejected.Add(1) }

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Writes        int64      `json:"writes"`
	WriteFailures int64      `json:"write_failures"`
	Coalesced     int64      `json:"coalesced"`
	Rejected      int64      `json:"rejected"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Writes:        m.Writes.Load(),
		WriteFailures: m.WriteFailures.Load(),
		Coalesced:     m.Coalesced.Load(),
		Rejected:      m.Rejected.Load(),
	}
	if ns := m.lastWrite.Load(); ns != 0 {
		at := time.Unix(0, ns).UTC()
		s.LastWrite = &at
	}
	return s
}
