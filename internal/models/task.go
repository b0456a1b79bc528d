package models

import (
	"strings"
	"time"
)

// Task represents a single card on the board.
// Its column membership is implied by which Column lists its ID.
type Task struct {
	ID       string
	Content  string
	Priority Priority
	DueDate  *time.Time // nil when the task has no due date
}

// IsOverdue reports whether the due date lies strictly before now
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// HasContent reports whether content is non-empty once surrounding space is trimmed
func HasContent(content string) bool {
	return strings.TrimSpace(content) != ""
}
