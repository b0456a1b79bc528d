// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/styles"
)

// Func runs one command against the loaded session and returns the value
// to print. Errors are classified into exit codes by the wrapper.
type Func func(ctx context.Context, c *cli.CLI, cmd *cobra.Command) (any, error)

// Command wraps common command execution logic: it opens the session,
// runs fn, flushes the board to the store and formats the result.
// Returns a cobra RunE compatible function
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		formatter := cli.NewFormatter(cmd)

		c, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.FailWithSuggestion(err, "Check the storage settings in your taskflow config.yaml")
		}
		defer func() {
			if err := c.Close(ctx); err != nil {
				slog.Warn("error closing CLI", "error", err)
			}
		}()

		styles.Init(c.Session.Theme())

		result, err := fn(ctx, c, cmd)
		if err != nil {
			return formatter.Fail(err)
		}

		if err := c.Flush(ctx); err != nil {
			return formatter.FailWithSuggestion(err, "The change was not saved; retry once the store is reachable")
		}

		return formatter.Success(result)
	}
}
