package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskflow/internal/models"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type placed struct {
	col      models.ColumnID
	priority models.Priority
	due      *time.Time
}

func buildBoard(t *testing.T, tasks []placed) models.Board {
	t.Helper()
	b := models.DefaultBoard()
	for i, p := range tasks {
		id := fmt.Sprintf("t%d", i)
		b = b.PutTask(models.Task{ID: id, Content: "task " + id, Priority: p.priority, DueDate: p.due})
		col, _ := b.Column(p.col)
		col.TaskIDs = append(append([]string{}, col.TaskIDs...), id)
		b = b.PutColumn(col)
	}
	require.NoError(t, b.Validate())
	return b
}

func TestSummarize_EmptyBoard(t *testing.T) {
	t.Parallel()

	s := Summarize(models.DefaultBoard(), models.ColumnDone, now)

	assert.Equal(t, 0, s.TotalTasks)
	assert.Equal(t, 0, s.CompletedTasks)
	assert.Equal(t, 0, s.CompletionPercentage)
	assert.Empty(t, s.PriorityDistribution)
	assert.Equal(t, 0, s.OverdueTasks)
}

func TestSummarize_QuarterComplete(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []placed{
		{models.ColumnTodo, models.PriorityHigh, nil},
		{models.ColumnTodo, models.PriorityLow, nil},
		{models.ColumnInProgress, models.PriorityHigh, nil},
		{models.ColumnDone, models.PriorityLow, nil},
	})

	s := Summarize(board, models.ColumnDone, now)

	assert.Equal(t, 4, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 25, s.CompletionPercentage)
	assert.Equal(t, []PriorityCount{
		{Priority: models.PriorityHigh, Count: 2},
		{Priority: models.PriorityLow, Count: 2},
	}, s.PriorityDistribution, "medium bucket is omitted and order stays high, medium, low")
}

func TestSummarize_TerminalColumnIsConfigured(t *testing.T) {
	t.Parallel()

	board := buildBoard(t, []placed{
		{models.ColumnTodo, models.PriorityMedium, nil},
		{models.ColumnInProgress, models.PriorityMedium, nil},
		{models.ColumnInProgress, models.PriorityMedium, nil},
	})

	assert.Equal(t, 0, Summarize(board, models.ColumnDone, now).CompletedTasks)

	s := Summarize(board, models.ColumnInProgress, now)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 67, s.CompletionPercentage)

	missing := Summarize(board, "column-9", now)
	assert.Equal(t, 0, missing.CompletedTasks)
	assert.Equal(t, 3, missing.TotalTasks)
}

func TestSummarize_Overdue(t *testing.T) {
	t.Parallel()

	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	board := buildBoard(t, []placed{
		{models.ColumnTodo, models.PriorityHigh, &yesterday},
		{models.ColumnTodo, models.PriorityHigh, &tomorrow},
		{models.ColumnDone, models.PriorityHigh, &yesterday},
	})

	s := Summarize(board, models.ColumnDone, now)
	assert.Equal(t, 1, s.OverdueTasks, "finished tasks are not overdue")
}

func TestCompletionPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{1, 4, 25},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionPercentage(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}
