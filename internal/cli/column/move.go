package column

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/models"
)

// MoveCmd returns the column move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a column to a new position",
		Long: `Move a column to a new position in the board.

Examples:
  # Make column-3 the first column
  taskflow column move --id=column-3 --index=0
`,
		RunE: handler.Command(runMove),
	}

	cmd.Flags().String("id", "", "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Int("index", 0, "Destination position (0 is first)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	id, _ := cmd.Flags().GetString("id")
	index, _ := cmd.Flags().GetInt("index")

	if index < 0 {
		return nil, &models.ValidationError{Field: "index", Reason: "cannot be negative"}
	}
	if err := cli.RequireColumn(c.Session.Board(), models.ColumnID(id)); err != nil {
		return nil, err
	}

	changed, err := c.Session.MoveColumn(models.ColumnID(id), index)
	if err != nil {
		return nil, err
	}
	return cli.ChangeView{Action: "moved", ID: id, Changed: changed}, nil
}
