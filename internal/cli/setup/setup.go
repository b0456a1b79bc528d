// Package setup writes the taskflow configuration file
package setup

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/cli/styles"
	"github.com/thenoetrevino/taskflow/internal/config"
)

// Result describes the config file after setup
type Result struct {
	Path    string `json:"path"`
	Written bool   `json:"written"`
	Backend string `json:"backend"`
}

// GetID returns the config path for quiet mode
func (r Result) GetID() string { return r.Path }

// Render formats the result
func (r Result) Render() string {
	if !r.Written {
		return styles.SubtitleStyle.Render("Config already exists: " + r.Path)
	}
	return styles.SuccessStyle.Render("✓") + fmt.Sprintf(" Wrote %s (storage: %s)", r.Path, r.Backend)
}

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	var forceFlag bool
	var backendFlag string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file to $XDG_CONFIG_HOME/taskflow/config.yaml
(or ~/.config/taskflow/config.yaml).

An existing file is left alone unless --force is given.

Examples:
  taskflow setup
  taskflow setup --backend=badger --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.NewFormatter(cmd)
			result, err := Install(backendFlag, forceFlag)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(result)
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&backendFlag, "backend", "", "Storage backend: sqlite, badger, redis, memory")

	cli.AddOutputFlags(cmd)
	return cmd
}

// Install writes the default configuration, with backend if given, unless
// a config file exists and force is false
func Install(backend string, force bool) (Result, error) {
	path, err := config.Path()
	if err != nil {
		return Result{}, err
	}

	cfg := config.DefaultFor(backend)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return Result{Path: path, Backend: cfg.Storage.Backend}, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{}, err
	}

	if err := cfg.SaveTo(path); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Result{Path: path, Written: true, Backend: cfg.Storage.Backend}, nil
}
