package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every column and its tasks",
		Long: `Show every column and its tasks in board order.

Examples:
  taskflow board show
  taskflow board show --search=release --json
`,
		RunE: handler.Command(runShow),
	}

	cmd.Flags().String("search", "", "Only show tasks whose content contains this text (case-insensitive)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(_ context.Context, c *cli.CLI, cmd *cobra.Command) (any, error) {
	search, _ := cmd.Flags().GetString("search")

	board := c.Session.Filter(search)
	view := cli.NewBoardView(board, c.Session.Theme(), c.Session.Now())
	if search != "" {
		matches := c.Session.MatchCount(search)
		view.Search = search
		view.Matches = &matches
	}
	return view, nil
}
