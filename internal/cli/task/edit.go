package task

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
)

// EditCmd returns the task edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace a task's content",
		Long: `Replace a task's content.

Blank content deletes the task.

Examples:
  taskflow task edit --id=<task-id> --content="Write better release notes"
`,
		RunE: handler.Command(runEdit),
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("content", "", "New content (required)")
	if err := cmd.MarkFlagRequired("content"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runEdit(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	id, _ := cmd.Flags().GetString("id")
	content, _ := cmd.Flags().GetString("content")

	if err := cli.RequireTask(c.Session.Board(), id); err != nil {
		return nil, err
	}

	changed, err := c.Session.EditTaskContent(id, content)
	if err != nil {
		return nil, err
	}

	board := c.Session.Board()
	task, ok := board.Task(id)
	if !ok {
		return cli.ChangeView{Action: "deleted", ID: id, Changed: changed}, nil
	}
	if !changed {
		return cli.ChangeView{Action: "edited", ID: id}, nil
	}
	return cli.NewTaskView(board, task, c.Session.Now()), nil
}
