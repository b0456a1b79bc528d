// Package converters provides type-safe conversion between the persisted
// board snapshot (JSON documents) and the domain models.
//
// All conversions handle:
// - nullable due dates (JSON null <-> nil *time.Time)
// - ISO-8601 timestamps, written in UTC with nanosecond precision
// - string ids (JSON object keys) <-> typed ids
//
// Conversion failures are explicit - never silent type coercions.
//
// Example usage:
//
//	data, err := converters.MarshalBoard(board)
//	board, err := converters.UnmarshalBoard(data)
package converters

import (
	"fmt"
	"time"

	"github.com/thenoetrevino/taskflow/internal/models"
)

// TaskSnapshot is the persisted form of a task
type TaskSnapshot struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"dueDate"`
}

// TaskToSnapshot converts a models.Task to its persisted form
func TaskToSnapshot(t models.Task) TaskSnapshot {
	s := TaskSnapshot{
		ID:       t.ID,
		Content:  t.Content,
		Priority: string(t.Priority),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format(time.RFC3339Nano)
		s.DueDate = &due
	}
	return s
}

// TaskFromSnapshot converts a persisted task back into a models.Task.
// Accepts any RFC 3339 timestamp, including the millisecond form
// ("2024-05-01T10:00:00.000Z") written by browsers.
func TaskFromSnapshot(s TaskSnapshot) (models.Task, error) {
	priority := models.Priority(s.Priority)
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("task %q: unknown priority %q", s.ID, s.Priority)
	}

	t := models.Task{
		ID:       s.ID,
		Content:  s.Content,
		Priority: priority,
	}
	if s.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *s.DueDate)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %q: invalid due date: %w", s.ID, err)
		}
		due = due.UTC()
		t.DueDate = &due
	}
	return t, nil
}
