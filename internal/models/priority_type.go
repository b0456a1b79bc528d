package models

import "strings"

// Priority represents a task priority level
type Priority string

// Priority values, highest first
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities returns every priority in display order (high, medium, low)
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Label returns the capitalized display name ("High", "Medium", "Low")
func (p Priority) Label() string {
	if p == "" {
		return ""
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePriority converts user input (case-insensitive, surrounding space ignored)
// into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", &ValidationError{Field: "priority", Reason: "is required"}
	}
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Reason: "must be one of high, medium, low"}
	}
	return p, nil
}
