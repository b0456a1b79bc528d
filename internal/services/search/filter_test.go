package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// fixtureBoard places tasks (id -> content) into columns
func fixtureBoard(t *testing.T) models.Board {
	t.Helper()
	b := models.DefaultBoard()
	placement := []struct {
		col     models.ColumnID
		id      string
		content string
	}{
		{models.ColumnTodo, "t1", "Buy milk"},
		{models.ColumnTodo, "t2", "Walk the dog"},
		{models.ColumnTodo, "t3", "Pay MILKMAN invoice"},
		{models.ColumnInProgress, "t4", "Write report"},
		{models.ColumnDone, "t5", "Call mom"},
	}
	for _, p := range placement {
		b = b.PutTask(models.Task{ID: p.id, Content: p.content, Priority: models.PriorityLow})
		col, _ := b.Column(p.col)
		col.TaskIDs = append(append([]string{}, col.TaskIDs...), p.id)
		b = b.PutColumn(col)
	}
	require.NoError(t, b.Validate())
	return b
}

func ids(b models.Board, col models.ColumnID) []string {
	c, _ := b.Column(col)
	return c.TaskIDs
}

func TestFilterBoard_EmptyTermIsIdentity(t *testing.T) {
	t.Parallel()

	board := fixtureBoard(t)
	view := FilterBoard(board, "")

	assert.Equal(t, board, view)
	assert.False(t, view.IsProjection())
}

func TestFilterBoard_SingleMatch(t *testing.T) {
	t.Parallel()

	board := fixtureBoard(t)
	board = board.PutTask(models.Task{ID: "t3", Content: "Pay invoice", Priority: models.PriorityLow})

	view := FilterBoard(board, "milk")

	assert.Equal(t, []string{"t1"}, ids(view, models.ColumnTodo))
	assert.Empty(t, ids(view, models.ColumnInProgress))
	assert.Empty(t, ids(view, models.ColumnDone))

	// canonical board untouched
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(board, models.ColumnTodo))
	assert.Equal(t, []string{"t4"}, ids(board, models.ColumnInProgress))
	assert.Equal(t, []string{"t5"}, ids(board, models.ColumnDone))
}

func TestFilterBoard_CaseInsensitiveAndOrderPreserving(t *testing.T) {
	t.Parallel()

	board := fixtureBoard(t)

	view := FilterBoard(board, "MiLk")

	assert.Equal(t, []string{"t1", "t3"}, ids(view, models.ColumnTodo))
	assert.True(t, view.IsProjection())
	assert.Equal(t, board.ColumnOrder, view.ColumnOrder)
	assert.Equal(t, board.Version, view.Version)
	assert.Len(t, view.Columns, len(board.Columns), "columns stay present while empty")
}

func TestFilterBoard_SharesTaskMapping(t *testing.T) {
	t.Parallel()

	board := fixtureBoard(t)
	view := FilterBoard(board, "report")

	assert.Equal(t, board.TaskCount(), view.TaskCount())
	task, ok := view.Task("t4")
	require.True(t, ok)
	assert.Equal(t, "Write report", task.Content)
	assert.Equal(t, 1, view.PlacedTaskCount())
}

func TestFilterBoard_NoMatches(t *testing.T) {
	t.Parallel()

	board := fixtureBoard(t)
	view := FilterBoard(board, "zebra")

	for _, col := range view.OrderedColumns() {
		assert.Empty(t, col.TaskIDs, "column %s", col.ID)
	}
	assert.Equal(t, 0, MatchCount(board, "zebra"))
	assert.Equal(t, 2, MatchCount(board, "milk"))
	assert.Equal(t, 5, MatchCount(board, ""))
}
