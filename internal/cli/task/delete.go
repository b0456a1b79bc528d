package task

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		Long: `Delete a task.

With --column the task is only deleted when that column lists it.

Examples:
  taskflow task delete --id=<task-id>
  taskflow task delete --id=<task-id> --column=column-1 --json
`,
		RunE: handler.Command(runDelete),
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("column", "", "Column expected to hold the task")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	id, _ := cmd.Flags().GetString("id")
	column, _ := cmd.Flags().GetString("column")

	board := c.Session.Board()
	if err := cli.RequireTask(board, id); err != nil {
		return nil, err
	}
	if column != "" {
		if err := cli.RequireColumn(board, models.ColumnID(column)); err != nil {
			return nil, err
		}
	}

	changed, err := c.Session.DeleteTask(id, models.ColumnID(column))
	if err != nil {
		return nil, err
	}
	return cli.ChangeView{Action: "deleted", ID: id, Changed: changed}, nil
}
