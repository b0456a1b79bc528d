// Package analytics summarizes a board for the dashboard.
package analytics

import (
	"math"
	"time"

	"github.com/thenoetrevino/taskflow/internal/models"
)

// PriorityCount is one bucket of the priority distribution
type PriorityCount struct {
	Priority models.Priority `json:"priority"`
	Count    int             `json:"count"`
}

// Summary holds the aggregate numbers shown above the board
type Summary struct {
	TotalTasks           int             `json:"total_tasks"`
	CompletedTasks       int             `json:"completed_tasks"`
	CompletionPercentage int             `json:"completion_percentage"`
	PriorityDistribution []PriorityCount `json:"priority_distribution"`
	OverdueTasks         int             `json:"overdue_tasks"`
}

// Summarize computes the summary of board.
//
// Tasks listed in the terminal column count as completed. The priority
// distribution lists only non-empty buckets, always in high, medium, low
// order. Overdue tasks are those due before now outside the terminal column.
func Summarize(board models.Board, terminal models.ColumnID, now time.Time) Summary {
	total := board.TaskCount()

	completed := 0
	done, hasTerminal := board.Column(terminal)
	if hasTerminal {
		completed = done.Len()
	}

	counts := make(map[models.Priority]int, 3)
	for _, t := range board.Tasks {
		counts[t.Priority]++
	}
	distribution := make([]PriorityCount, 0, 3)
	for _, p := range models.Priorities() {
		if n := counts[p]; n > 0 {
			distribution = append(distribution, PriorityCount{Priority: p, Count: n})
		}
	}

	overdue := 0
	for id, t := range board.Tasks {
		if !t.IsOverdue(now) {
			continue
		}
		if hasTerminal && done.IndexOf(id) >= 0 {
			continue
		}
		overdue++
	}

	return Summary{
		TotalTasks:           total,
		CompletedTasks:       completed,
		CompletionPercentage: CompletionPercentage(completed, total),
		PriorityDistribution: distribution,
		OverdueTasks:         overdue,
	}
}

// CompletionPercentage returns round(completed/total*100), or 0 for an empty board
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
