// Package theme implements the theme subcommands
package theme

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/handler"
)

// ThemeCmd returns the theme parent command
func ThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the color theme",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(ToggleCmd())

	return cmd
}

// ShowCmd returns the theme show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		RunE: handler.Command(func(_ context.Context, c *cli.CLI, _ *cobra.Command) (any, error) {
			return cli.ThemeView{Theme: string(c.Session.Theme())}, nil
		}),
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

// ToggleCmd returns the theme toggle subcommand
func ToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between the light and dark theme",
		RunE:  handler.Command(runToggle),
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runToggle(ctx context.Context, c *cli.CLI, _ *cobra.Command) (any, error) {
	theme, err := c.Session.ToggleTheme(ctx)
	if err != nil {
		return nil, err
	}
	return cli.ThemeView{Theme: string(theme)}, nil
}
