package task

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a task",
		RunE:  handler.Command(runShow),
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	id, _ := cmd.Flags().GetString("id")

	board := c.Session.Board()
	if err := cli.RequireTask(board, id); err != nil {
		return nil, err
	}
	task, _ := board.Task(id)
	return cli.NewTaskView(board, task, c.Session.Now()), nil
}
