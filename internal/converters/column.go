package converters

import (
	"slices"

	"github.com/thenoetrevino/taskflow/internal/models"
)

// ColumnSnapshot is the persisted form of a column
type ColumnSnapshot struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

// ColumnToSnapshot converts a models.Column to its persisted form.
// An empty column serializes its task list as [] rather than null.
func ColumnToSnapshot(c models.Column) ColumnSnapshot {
	ids := slices.Clone(c.TaskIDs)
	if ids == nil {
		ids = []string{}
	}
	return ColumnSnapshot{
		ID:      string(c.ID),
		Title:   c.Title,
		TaskIDs: ids,
	}
}

// ColumnFromSnapshot converts a persisted column back into a models.Column
func ColumnFromSnapshot(s ColumnSnapshot) models.Column {
	ids := slices.Clone(s.TaskIDs)
	if ids == nil {
		ids = []string{}
	}
	return models.Column{
		ID:      models.ColumnID(s.ID),
		Title:   s.Title,
		TaskIDs: ids,
	}
}
