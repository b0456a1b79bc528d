package models

import (
	"maps"
	"slices"
	"strings"
)

// Board is the aggregate root: every task, every column and the column order.
//
// A Board is treated as an immutable value. Operations never modify a Board
// in place; the copy-on-write helpers below (PutTask, RemoveTask, PutColumn,
// WithColumnOrder) clone the container they touch and return a new Board, so
// a Board handed to a reader is never observed half-updated.
type Board struct {
	Tasks       map[string]Task
	Columns     map[ColumnID]Column
	ColumnOrder []ColumnID

	// Version increases by one with every accepted mutation
	Version int64

	projection bool
}

// DefaultBoard returns the empty three-column reference board
func DefaultBoard() Board {
	b, _ := NewBoard(DefaultColumns())
	return b
}

// NewBoard seeds an empty board with the given columns in display order.
// Any tasks listed on the columns are dropped.
func NewBoard(columns []Column) (Board, error) {
	b := Board{
		Tasks:       map[string]Task{},
		Columns:     make(map[ColumnID]Column, len(columns)),
		ColumnOrder: make([]ColumnID, 0, len(columns)),
	}
	for _, col := range columns {
		if col.ID == "" {
			return Board{}, &ValidationError{Field: "column id", Reason: "cannot be empty"}
		}
		if _, dup := b.Columns[col.ID]; dup {
			return Board{}, &ValidationError{Field: "column id", Reason: "duplicate " + string(col.ID)}
		}
		b.Columns[col.ID] = Column{ID: col.ID, Title: col.Title, TaskIDs: []string{}}
		b.ColumnOrder = append(b.ColumnOrder, col.ID)
	}
	return b, nil
}

// ============================================================================
// READ ACCESSORS
// ============================================================================

// Task returns the task with the given id
func (b Board) Task(id string) (Task, bool) {
	t, ok := b.Tasks[id]
	return t, ok
}

// Column returns the column with the given id
func (b Board) Column(id ColumnID) (Column, bool) {
	c, ok := b.Columns[id]
	return c, ok
}

// ColumnOf locates the column currently holding taskID and the task's index in it
func (b Board) ColumnOf(taskID string) (ColumnID, int, bool) {
	for _, id := range b.ColumnOrder {
		if idx := b.Columns[id].IndexOf(taskID); idx >= 0 {
			return id, idx, true
		}
	}
	return "", -1, false
}

// FirstColumn returns the id of the left-most column
func (b Board) FirstColumn() (ColumnID, bool) {
	if len(b.ColumnOrder) == 0 {
		return "", false
	}
	return b.ColumnOrder[0], true
}

// OrderedColumns returns the columns in display order
func (b Board) OrderedColumns() []Column {
	cols := make([]Column, 0, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if c, ok := b.Columns[id]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// TasksIn returns the tasks of a column in order, skipping unknown ids
func (b Board) TasksIn(id ColumnID) []Task {
	col, ok := b.Columns[id]
	if !ok {
		return nil
	}
	tasks := make([]Task, 0, len(col.TaskIDs))
	for _, taskID := range col.TaskIDs {
		if t, ok := b.Tasks[taskID]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TaskCount returns the number of tasks on the board
func (b Board) TaskCount() int {
	return len(b.Tasks)
}

// PlacedTaskCount returns the number of task ids listed across all columns
func (b Board) PlacedTaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.TaskIDs)
	}
	return n
}

// IsProjection reports whether the board is a derived view (e.g. a search
// result) rather than canonical state. Projections must never be persisted.
func (b Board) IsProjection() bool {
	return b.projection
}

// ============================================================================
// COPY-ON-WRITE HELPERS
// ============================================================================

// PutTask returns a board with t inserted or replaced
func (b Board) PutTask(t Task) Board {
	tasks := maps.Clone(b.Tasks)
	if tasks == nil {
		tasks = map[string]Task{}
	}
	tasks[t.ID] = t
	b.Tasks = tasks
	return b
}

// RemoveTask returns a board without the task mapping entry for id.
// Column references are left alone; callers remove them with PutColumn.
func (b Board) RemoveTask(id string) Board {
	tasks := maps.Clone(b.Tasks)
	delete(tasks, id)
	b.Tasks = tasks
	return b
}

// PutColumn returns a board with c inserted or replaced.
// c.TaskIDs must not alias a slice owned by another board.
func (b Board) PutColumn(c Column) Board {
	cols := maps.Clone(b.Columns)
	if cols == nil {
		cols = map[ColumnID]Column{}
	}
	cols[c.ID] = c
	b.Columns = cols
	return b
}

// WithColumnOrder returns a board using order as its column order
func (b Board) WithColumnOrder(order []ColumnID) Board {
	b.ColumnOrder = order
	return b
}

// Bump returns the board with its version advanced by one
func (b Board) Bump() Board {
	b.Version++
	return b
}

// Projected returns a read-only view sharing this board's tasks and order
// but listing the given columns.
func (b Board) Projected(columns map[ColumnID]Column) Board {
	return Board{
		Tasks:       b.Tasks,
		Columns:     columns,
		ColumnOrder: b.ColumnOrder,
		Version:     b.Version,
		projection:  true,
	}
}

// ============================================================================
// INVARIANTS
// ============================================================================

// Validate checks the structural invariants of the board:
//   - every column is keyed by its own id and columnOrder is a permutation of the keys
//   - every task is keyed by its own id, has content and a known priority
//   - every id listed by a column exists as a task
//   - no task id is listed twice, in the same column or across columns
func (b Board) Validate() error {
	if len(b.ColumnOrder) != len(b.Columns) {
		return invariantf("column order has %d entries for %d columns", len(b.ColumnOrder), len(b.Columns))
	}
	seenCols := make(map[ColumnID]struct{}, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if _, dup := seenCols[id]; dup {
			return invariantf("column %q appears twice in column order", id)
		}
		seenCols[id] = struct{}{}
		if _, ok := b.Columns[id]; !ok {
			return invariantf("column order names unknown column %q", id)
		}
	}

	for key, t := range b.Tasks {
		if key != t.ID {
			return invariantf("task keyed %q carries id %q", key, t.ID)
		}
		if !HasContent(t.Content) {
			return invariantf("task %q has empty content", key)
		}
		if !t.Priority.Valid() {
			return invariantf("task %q has unknown priority %q", key, t.Priority)
		}
	}

	placed := make(map[string]ColumnID, len(b.Tasks))
	for key, col := range b.Columns {
		if key != col.ID {
			return invariantf("column keyed %q carries id %q", key, col.ID)
		}
		for _, taskID := range col.TaskIDs {
			if _, ok := b.Tasks[taskID]; !ok {
				return invariantf("column %q lists unknown task %q", key, taskID)
			}
			if other, dup := placed[taskID]; dup {
				return invariantf("task %q listed in both %q and %q", taskID, other, key)
			}
			placed[taskID] = key
		}
	}
	return nil
}

// Equal reports whether two boards hold the same content, order and version
func (b Board) Equal(other Board) bool {
	if b.Version != other.Version || b.projection != other.projection {
		return false
	}
	if !slices.Equal(b.ColumnOrder, other.ColumnOrder) {
		return false
	}
	if !maps.EqualFunc(b.Columns, other.Columns, func(x, y Column) bool {
		return x.ID == y.ID && x.Title == y.Title && slices.Equal(x.TaskIDs, y.TaskIDs)
	}) {
		return false
	}
	return maps.EqualFunc(b.Tasks, other.Tasks, func(x, y Task) bool {
		if x.ID != y.ID || x.Content != y.Content || x.Priority != y.Priority {
			return false
		}
		if (x.DueDate == nil) != (y.DueDate == nil) {
			return false
		}
		return x.DueDate == nil || x.DueDate.Equal(*y.DueDate)
	})
}

// ContainsFold reports whether content contains term, ignoring case
func ContainsFold(content, term string) bool {
	return strings.Contains(strings.ToLower(content), strings.ToLower(term))
}
