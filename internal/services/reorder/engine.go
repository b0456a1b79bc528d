// Package reorder computes the next board from a finished drag gesture.
//
// Every function here is pure: the input board is never modified and a board
// that needs no change is returned as-is (same version), so callers can tell
// an accepted move from a no-op by comparing versions.
package reorder

import (
	"slices"

	"github.com/thenoetrevino/taskflow/internal/models"
)

// EntityType says what a gesture is moving
type EntityType string

const (
	EntityColumn EntityType = "COLUMN"
	EntityTask   EntityType = "TASK"
)

// BoardDroppable is the droppable id of the column strip itself. Column drags
// carry it as their source and destination column.
const BoardDroppable models.ColumnID = "all-columns"

// Location is a position inside a droppable: a column's task list, or the
// column strip (BoardDroppable) for column drags.
type Location struct {
	ColumnID models.ColumnID
	Index    int
}

// Result describes a finished drag gesture.
// A nil Destination means the gesture was cancelled.
type Result struct {
	Type        EntityType
	DraggableID string
	Source      Location
	Destination *Location
}

// Transition names the branch a Result took through the engine
type Transition int

const (
	NoOp Transition = iota
	ColumnReorder
	IntraColumn
	CrossColumn
)

// String returns a log-friendly name
func (t Transition) String() string {
	switch t {
	case ColumnReorder:
		return "column_reorder"
	case IntraColumn:
		return "intra_column"
	case CrossColumn:
		return "cross_column"
	default:
		return "noop"
	}
}

// Apply returns the board after the gesture r
func Apply(board models.Board, r Result) models.Board {
	next, _ := ApplyWithTransition(board, r)
	return next
}

// ApplyWithTransition returns the board after the gesture r together with the
// transition that produced it. Unknown ids, a missing destination or a
// destination equal to the source all yield NoOp and the unchanged board.
func ApplyWithTransition(board models.Board, r Result) (models.Board, Transition) {
	if r.Destination == nil {
		return board, NoOp
	}
	dst := *r.Destination
	if dst.ColumnID == r.Source.ColumnID && dst.Index == r.Source.Index {
		return board, NoOp
	}

	if r.Type == EntityColumn {
		return moveColumn(board, models.ColumnID(r.DraggableID), r.Source.Index, dst.Index)
	}
	if dst.ColumnID == r.Source.ColumnID {
		return moveWithinColumn(board, r.Source.ColumnID, r.DraggableID, r.Source.Index, dst.Index)
	}
	return moveAcrossColumns(board, r.DraggableID, r.Source, dst)
}

// MoveTask relocates a task to index toIndex of column to, locating its
// current position on the board first.
func MoveTask(board models.Board, taskID string, to models.ColumnID, toIndex int) (models.Board, Transition) {
	from, idx, ok := board.ColumnOf(taskID)
	if !ok {
		return board, NoOp
	}
	return ApplyWithTransition(board, Result{
		Type:        EntityTask,
		DraggableID: taskID,
		Source:      Location{ColumnID: from, Index: idx},
		Destination: &Location{ColumnID: to, Index: toIndex},
	})
}

// MoveColumn relocates column id to position toIndex of the column order
func MoveColumn(board models.Board, id models.ColumnID, toIndex int) (models.Board, Transition) {
	idx := slices.Index(board.ColumnOrder, id)
	if idx < 0 {
		return board, NoOp
	}
	return ApplyWithTransition(board, Result{
		Type:        EntityColumn,
		DraggableID: string(id),
		Source:      Location{ColumnID: BoardDroppable, Index: idx},
		Destination: &Location{ColumnID: BoardDroppable, Index: toIndex},
	})
}

func moveColumn(board models.Board, id models.ColumnID, from, to int) (models.Board, Transition) {
	from = resolveIndex(board.ColumnOrder, id, from)
	if from < 0 {
		return board, NoOp
	}
	order := splice(board.ColumnOrder, from, to)
	if slices.Equal(order, board.ColumnOrder) {
		return board, NoOp
	}
	return board.WithColumnOrder(order).Bump(), ColumnReorder
}

func moveWithinColumn(board models.Board, colID models.ColumnID, taskID string, from, to int) (models.Board, Transition) {
	col, ok := board.Column(colID)
	if !ok {
		return board, NoOp
	}
	from = resolveIndex(col.TaskIDs, taskID, from)
	if from < 0 {
		return board, NoOp
	}
	ids := splice(col.TaskIDs, from, to)
	if slices.Equal(ids, col.TaskIDs) {
		return board, NoOp
	}
	col.TaskIDs = ids
	return board.PutColumn(col).Bump(), IntraColumn
}

func moveAcrossColumns(board models.Board, taskID string, src, dst Location) (models.Board, Transition) {
	start, ok := board.Column(src.ColumnID)
	if !ok {
		return board, NoOp
	}
	finish, ok := board.Column(dst.ColumnID)
	if !ok {
		return board, NoOp
	}
	from := resolveIndex(start.TaskIDs, taskID, src.Index)
	if from < 0 {
		return board, NoOp
	}
	moved := start.TaskIDs[from]

	start.TaskIDs = slices.Delete(slices.Clone(start.TaskIDs), from, from+1)
	finish.TaskIDs = slices.Insert(slices.Clone(finish.TaskIDs), clamp(dst.Index, len(finish.TaskIDs)), moved)

	return board.PutColumn(start).PutColumn(finish).Bump(), CrossColumn
}

// resolveIndex finds the current index of id in seq. The hint is trusted when
// it still points at id; otherwise the id is searched for, so a stale source
// index never moves the wrong item. An empty id trusts an in-range hint.
func resolveIndex[T comparable](seq []T, id T, hint int) int {
	var zero T
	if hint >= 0 && hint < len(seq) && (id == zero || seq[hint] == id) {
		return hint
	}
	if id == zero {
		return -1
	}
	return slices.Index(seq, id)
}

// splice removes seq[from] and re-inserts it at to, where to is an index into
// the sequence after removal, clamped to [0, len].
func splice[T any](seq []T, from, to int) []T {
	out := slices.Clone(seq)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, clamp(to, len(out)), item)
}

func clamp(i, n int) int {
	return max(0, min(i, n))
}
