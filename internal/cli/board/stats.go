package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
)

// StatsCmd returns the board stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize completion, priorities and overdue tasks",
		RunE:  handler.Command(runStats),
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runStats(_ context.Context, c *cli.CLI, _ *cobra.Command) (any, error) {
	return cli.StatsView{Summary: c.Session.Stats()}, nil
}
