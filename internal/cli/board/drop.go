package board

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/services/reorder"
)

// DropCmd returns the board drop subcommand
func DropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Apply a finished drag gesture",
		Long: `Apply a finished drag gesture, as reported by a drag-and-drop front end.

Locations are written droppable:index. Column drags use the droppable
"all-columns". Omitting --to applies a cancelled drag, which changes nothing.

Examples:
  # Task dragged from the second slot of column-1 to the top of column-3
  taskflow board drop --type=task --id=<task-id> --from=column-1:1 --to=column-3:0

  # First column dragged to the end
  taskflow board drop --type=column --id=column-1 --from=all-columns:0 --to=all-columns:2
`,
		RunE: handler.Command(runDrop),
	}

	cmd.Flags().String("type", "task", "What was dragged: task or column")
	cmd.Flags().String("id", "", "Dragged task or column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("from", "", "Source location droppable:index (required)")
	if err := cmd.MarkFlagRequired("from"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("to", "", "Destination location droppable:index")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDrop(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	typeFlag, _ := cmd.Flags().GetString("type")
	id, _ := cmd.Flags().GetString("id")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	result := reorder.Result{DraggableID: id}
	switch strings.ToLower(typeFlag) {
	case "task":
		result.Type = reorder.EntityTask
	case "column":
		result.Type = reorder.EntityColumn
	default:
		return nil, fmt.Errorf("%w: --type must be task or column", cli.ErrUsage)
	}

	src, err := parseLocation(from)
	if err != nil {
		return nil, err
	}
	result.Source = src
	if to != "" {
		dst, err := parseLocation(to)
		if err != nil {
			return nil, err
		}
		result.Destination = &dst
	}

	changed, err := c.Session.Drop(result)
	if err != nil {
		return nil, err
	}
	return cli.ChangeView{Action: "dropped", ID: id, Changed: changed}, nil
}

// parseLocation reads "droppable:index"
func parseLocation(s string) (reorder.Location, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return reorder.Location{}, fmt.Errorf("%w: location %q is not droppable:index", cli.ErrUsage, s)
	}
	index, err := strconv.Atoi(s[i+1:])
	if err != nil || index < 0 {
		return reorder.Location{}, fmt.Errorf("%w: location %q has no valid index", cli.ErrUsage, s)
	}
	return reorder.Location{ColumnID: models.ColumnID(s[:i]), Index: index}, nil
}
