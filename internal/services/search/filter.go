// Package search derives filtered, read-only views of a board.
package search

import (
	"github.com/thenoetrevino/taskflow/internal/models"
)

// FilterBoard returns the board restricted to tasks whose content contains
// term, ignoring case. An empty term returns board itself.
//
// The result is a projection: it shares the task mapping and column order
// with board, keeps every column (empty ones included) and preserves the
// relative order of the matching tasks. It must not be persisted.
func FilterBoard(board models.Board, term string) models.Board {
	if term == "" {
		return board
	}

	columns := make(map[models.ColumnID]models.Column, len(board.Columns))
	for id, col := range board.Columns {
		matched := make([]string, 0, len(col.TaskIDs))
		for _, taskID := range col.TaskIDs {
			if task, ok := board.Tasks[taskID]; ok && models.ContainsFold(task.Content, term) {
				matched = append(matched, taskID)
			}
		}
		col.TaskIDs = matched
		columns[id] = col
	}
	return board.Projected(columns)
}

// MatchCount returns how many tasks on board contain term, ignoring case
func MatchCount(board models.Board, term string) int {
	view := FilterBoard(board, term)
	return view.PlacedTaskCount()
}
