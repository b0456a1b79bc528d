package models

import "slices"

// ColumnID identifies a column. The set of columns is fixed when the board is
// seeded; only their order changes afterwards.
type ColumnID string

// Column represents a kanban board column (e.g., "To Do", "In Progress", "Done").
// TaskIDs holds the column's cards from top to bottom.
type Column struct {
	ID      ColumnID
	Title   string
	TaskIDs []string
}

// IndexOf returns the position of taskID in the column, or -1
func (c Column) IndexOf(taskID string) int {
	return slices.Index(c.TaskIDs, taskID)
}

// Len returns the number of tasks in the column
func (c Column) Len() int {
	return len(c.TaskIDs)
}

// DefaultColumns returns the reference column set in display order
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnTodo, Title: "To Do", TaskIDs: []string{}},
		{ID: ColumnInProgress, Title: "In Progress", TaskIDs: []string{}},
		{ID: ColumnDone, Title: "Done", TaskIDs: []string{}},
	}
}
