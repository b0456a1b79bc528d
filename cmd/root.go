// Package cmd assembles the taskflow command tree
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli/board"
	"github.com/thenoetrevino/taskflow/internal/cli/column"
	"github.com/thenoetrevino/taskflow/internal/cli/setup"
	"github.com/thenoetrevino/taskflow/internal/cli/task"
	"github.com/thenoetrevino/taskflow/internal/cli/theme"
)

// NewRootCmd returns the taskflow root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "Taskflow - a three-column kanban board",
		Long: `Taskflow keeps a kanban board of tasks in ordered columns.

The board is saved after every change to the configured store
(sqlite, badger, redis or memory).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(theme.ThemeCmd())
	rootCmd.AddCommand(setup.SetupCmd())

	return rootCmd
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
