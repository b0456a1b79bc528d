package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/taskflow/internal/cli/styles"
	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/services/analytics"
)

// TaskView is the printable form of a task
type TaskView struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Column   string     `json:"column,omitempty"`
	Overdue  bool       `json:"overdue"`
}

// GetID returns the task id for quiet mode
func (v TaskView) GetID() string { return v.ID }

// NewTaskView builds the view of task id on board. The column is empty for
// tasks no column lists.
func NewTaskView(board models.Board, task models.Task, now time.Time) TaskView {
	col, _, _ := board.ColumnOf(task.ID)
	return TaskView{
		ID:       task.ID,
		Content:  task.Content,
		Priority: string(task.Priority),
		DueDate:  task.DueDate,
		Column:   string(col),
		Overdue:  task.IsOverdue(now),
	}
}

// Render formats the task as one line
func (v TaskView) Render() string {
	var b strings.Builder
	b.WriteString(styles.Priority(models.Priority(v.Priority)))
	b.WriteString(" ")
	b.WriteString(v.Content)
	if v.DueDate != nil {
		due := "due " + v.DueDate.Format(time.DateOnly)
		if v.Overdue {
			due = styles.OverdueStyle.Render("overdue " + v.DueDate.Format(time.DateOnly))
		}
		b.WriteString(" ")
		b.WriteString(styles.SubtitleStyle.Render("("))
		b.WriteString(due)
		b.WriteString(styles.SubtitleStyle.Render(")"))
	}
	b.WriteString("\n  ")
	b.WriteString(styles.SubtitleStyle.Render(v.ID))
	return b.String()
}

// ColumnView is the printable form of a column and its tasks
type ColumnView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Tasks []TaskView `json:"tasks"`
}

// Render draws the column as a bordered box
func (v ColumnView) Render() string {
	lines := []string{styles.TitleStyle.Render(fmt.Sprintf("%s (%d)", v.Title, len(v.Tasks)))}
	if len(v.Tasks) == 0 {
		lines = append(lines, styles.SubtitleStyle.Render("No tasks"))
	}
	for _, t := range v.Tasks {
		lines = append(lines, t.Render())
	}
	return styles.ColumnStyle.Render(strings.Join(lines, "\n"))
}

// BoardView is the printable form of a board in column order
type BoardView struct {
	Columns []ColumnView `json:"columns"`
	Search  string       `json:"search,omitempty"`
	Matches *int         `json:"matches,omitempty"`
	Theme   string       `json:"theme"`
	Version int64        `json:"version"`
}

// NewBoardView builds the view of board. Tasks appear in column order,
// top to bottom.
func NewBoardView(board models.Board, theme models.Theme, now time.Time) BoardView {
	view := BoardView{
		Columns: make([]ColumnView, 0, len(board.ColumnOrder)),
		Theme:   string(theme),
		Version: board.Version,
	}
	for _, col := range board.OrderedColumns() {
		cv := ColumnView{ID: string(col.ID), Title: col.Title, Tasks: []TaskView{}}
		for _, task := range board.TasksIn(col.ID) {
			cv.Tasks = append(cv.Tasks, TaskView{
				ID:       task.ID,
				Content:  task.Content,
				Priority: string(task.Priority),
				DueDate:  task.DueDate,
				Column:   string(col.ID),
				Overdue:  task.IsOverdue(now),
			})
		}
		view.Columns = append(view.Columns, cv)
	}
	return view
}

// Render lays the columns out side by side
func (v BoardView) Render() string {
	boxes := make([]string, 0, len(v.Columns))
	for _, col := range v.Columns {
		boxes = append(boxes, col.Render())
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if v.Search != "" {
		header := fmt.Sprintf("Filter: %q", v.Search)
		if v.Matches != nil {
			header = fmt.Sprintf("Filter: %q (%d matching)", v.Search, *v.Matches)
		}
		out = styles.SubtitleStyle.Render(header) + "\n" + out
	}
	return out
}

// StatsView is the printable form of a board summary
type StatsView struct {
	analytics.Summary
}

// Render formats the summary as labelled lines
func (v StatsView) Render() string {
	var b strings.Builder
	line := func(label string, value any) {
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(styles.ValueStyle.Render(fmt.Sprint(value)))
		b.WriteString("\n")
	}
	line("Total:", v.TotalTasks)
	line("Completed:", fmt.Sprintf("%d (%d%%)", v.CompletedTasks, v.CompletionPercentage))
	overdue := fmt.Sprint(v.OverdueTasks)
	if v.OverdueTasks > 0 {
		overdue = styles.OverdueStyle.Render(overdue)
	}
	b.WriteString(styles.LabelStyle.Render("Overdue:"))
	b.WriteString(" ")
	b.WriteString(overdue)
	for _, pc := range v.PriorityDistribution {
		b.WriteString("\n")
		b.WriteString(styles.Priority(pc.Priority))
		b.WriteString(" ")
		b.WriteString(styles.ValueStyle.Render(fmt.Sprint(pc.Count)))
	}
	return b.String()
}

// ChangeView reports the outcome of a mutation that has no richer result
type ChangeView struct {
	Action  string `json:"action"`
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
}

// GetID returns the affected id for quiet mode
func (v ChangeView) GetID() string { return v.ID }

// Render formats the outcome as one line
func (v ChangeView) Render() string {
	if !v.Changed {
		return styles.SubtitleStyle.Render(fmt.Sprintf("No change: %s %s", v.Action, v.ID))
	}
	return styles.SuccessStyle.Render("✓") + fmt.Sprintf(" %s %s", v.Action, v.ID)
}

// ThemeView reports the current theme
type ThemeView struct {
	Theme string `json:"theme"`
}

// GetID returns the theme name for quiet mode
func (v ThemeView) GetID() string { return v.Theme }

// Render formats the theme
func (v ThemeView) Render() string {
	return styles.LabelStyle.Render("Theme:") + " " + styles.ValueStyle.Render(v.Theme)
}
