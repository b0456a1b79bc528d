package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/taskflow/internal/app"
	"github.com/thenoetrevino/taskflow/internal/config"
	"github.com/thenoetrevino/taskflow/internal/logging"
	"github.com/thenoetrevino/taskflow/internal/persistence"
)

// CLI represents the CLI application context
type CLI struct {
	App     *app.App // Application container with services
	Session *app.Session
	Loaded  persistence.LoadResult

	ownsApp bool
}

// NewCLI loads the configuration, initializes logging, opens the
// configured store and loads the board
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	if dir, err := config.DataDir(); err == nil {
		// Logging is best-effort; the CLI works without a log file
		_ = logging.Init(dir, level)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	c := newCLI(ctx, application)
	c.ownsApp = true
	return c, nil
}

func newCLI(ctx context.Context, application *app.App) *CLI {
	session, res := application.OpenSession(ctx)
	return &CLI{
		App:     application,
		Session: session,
		Loaded:  res,
	}
}

// Flush writes any pending board change to the store
func (c *CLI) Flush(ctx context.Context) error {
	return c.App.Persister.Flush(ctx)
}

// Close cleans up CLI resources. An App injected through the context is
// left open for its owner.
func (c *CLI) Close(ctx context.Context) error {
	if !c.ownsApp {
		return c.Flush(ctx)
	}
	return c.App.Close()
}
