package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/taskflow/internal/config"
	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/models"
	"github.com/thenoetrevino/taskflow/internal/persistence"
	taskservice "github.com/thenoetrevino/taskflow/internal/services/task"
	"github.com/thenoetrevino/taskflow/internal/types"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Key-value store holding the board snapshot and theme
	store database.KeyValueStore

	// Persister loads and writes the board
	Persister *persistence.Adapter

	// TaskService applies add/delete/edit mutations
	TaskService *taskservice.Service

	clock  types.Clock
	logger *slog.Logger
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ac := &appConfig{
		ids:    types.UUIDGenerator{},
		clock:  types.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ac)
	}

	seed, err := models.NewBoard(cfg.SeedColumns())
	if err != nil {
		return nil, fmt.Errorf("seed board: %w", err)
	}

	store := ac.store
	if store == nil {
		storeOpts := cfg.StoreOptions()
		storeOpts.Logger = ac.logger
		store, err = database.Open(ctx, storeOpts)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
		}
	}

	persister := persistence.New(store,
		persistence.WithLogger(ac.logger),
		persistence.WithDebounce(cfg.Debounce()),
		persistence.WithKeys(cfg.Storage.BoardKey, cfg.Storage.ThemeKey),
		persistence.WithSeed(func() models.Board { return seed }),
		persistence.WithDefaultTheme(cfg.DefaultTheme()),
	)

	return &App{
		Config:      cfg,
		store:       store,
		Persister:   persister,
		TaskService: taskservice.NewService(ac.ids, taskservice.WithLogger(ac.logger)),
		clock:       ac.clock,
		logger:      ac.logger,
	}, nil
}

// OpenSession loads the persisted board and theme into a new Session
func (a *App) OpenSession(ctx context.Context) (*Session, persistence.LoadResult) {
	board, res := a.Persister.Load(ctx)
	theme := a.Persister.LoadTheme(ctx)

	a.logger.Debug("session opened", "source", res.Source.String(), "tasks", board.TaskCount(), "theme", string(theme))

	return NewSession(board, a.TaskService, a.Persister,
		WithTheme(theme),
		WithSessionClock(a.clock),
		WithTerminalColumn(models.ColumnID(a.Config.Board.TerminalColumn)),
		WithSessionLogger(a.logger),
	), res
}

// Close flushes pending writes and closes the store
func (a *App) Close() error {
	flushErr := a.Persister.Close()
	m := a.Persister.Metrics().Snapshot()
	a.logger.Debug("persister closed",
		"writes", m.Writes,
		"write_failures", m.WriteFailures,
		"coalesced", m.Coalesced,
		"rejected", m.Rejected,
	)
	closeErr := a.store.Close()
	return errors.Join(flushErr, closeErr)
}
