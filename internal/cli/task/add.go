package task

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/models"
	taskservice "github.com/thenoetrevino/taskflow/internal/services/task"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the top of the first column",
		Long: `Add a task to the top of the first column.

Every task needs content and a priority.

Examples:
  # Simple task (human-readable output)
  taskflow task add --content="Write release notes" --priority=medium

  # With a due date
  taskflow task add --content="Ship v2" --priority=high --due=2025-01-31

  # Quiet mode for bash capture
  TASK_ID=$(taskflow task add --content="Fix bug" --priority=low --quiet)
`,
		RunE: handler.Command(runAdd),
	}

	cmd.Flags().String("content", "", "Task content (required)")
	if err := cmd.MarkFlagRequired("content"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("priority", "", "Priority: high, medium, low (required)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD or RFC 3339)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	content, _ := cmd.Flags().GetString("content")
	priorityFlag, _ := cmd.Flags().GetString("priority")
	dueFlag, _ := cmd.Flags().GetString("due")

	priority, err := models.ParsePriority(priorityFlag)
	if err != nil {
		return nil, err
	}
	due, err := cli.ParseDueDate(dueFlag)
	if err != nil {
		return nil, err
	}

	if _, err := c.Session.AddTask(taskservice.AddTaskRequest{
		Content:  content,
		Priority: priority,
		DueDate:  due,
	}); err != nil {
		return nil, err
	}

	// New tasks go on top of the first column
	board := c.Session.Board()
	first, _ := board.FirstColumn()
	tasks := board.TasksIn(first)
	if len(tasks) == 0 {
		return nil, errors.New("added task not found on board")
	}
	return cli.NewTaskView(board, tasks[0], c.Session.Now()), nil
}
