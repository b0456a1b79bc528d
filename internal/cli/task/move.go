package task

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to a column position",
		Long: `Move a task to a position in a column.

The index counts from the top of the column (0 is the top) and is clamped
to the column's length.

Examples:
  # Move to the top of "done"
  taskflow task move --id=<task-id> --to=column-3

  # Reorder within a column
  taskflow task move --id=<task-id> --to=column-1 --index=2
`,
		RunE: handler.Command(runMove),
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("to", "", "Destination column ID (required)")
	if err := cmd.MarkFlagRequired("to"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Int("index", 0, "Destination index within the column")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	id, _ := cmd.Flags().GetString("id")
	to, _ := cmd.Flags().GetString("to")
	index, _ := cmd.Flags().GetInt("index")

	if index < 0 {
		return nil, &models.ValidationError{Field: "index", Reason: "cannot be negative"}
	}

	board := c.Session.Board()
	if err := cli.RequireTask(board, id); err != nil {
		return nil, err
	}
	if err := cli.RequireColumn(board, models.ColumnID(to)); err != nil {
		return nil, err
	}

	changed, err := c.Session.MoveTask(id, models.ColumnID(to), index)
	if err != nil {
		return nil, err
	}
	return cli.ChangeView{Action: "moved", ID: id, Changed: changed}, nil
}
