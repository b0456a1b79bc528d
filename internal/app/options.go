package app

import (
	"log/slog"

	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/types"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	store  database.KeyValueStore
	ids    types.IDGenerator
	clock  types.Clock
	logger *slog.Logger
}

// WithStore uses store instead of opening the configured backend.
// The App takes ownership and closes it.
func WithStore(store database.KeyValueStore) Option {
	return func(cfg *appConfig) {
		cfg.store = store
	}
}

// WithIDGenerator sets the source of new task ids
func WithIDGenerator(ids types.IDGenerator) Option {
	return func(cfg *appConfig) {
		cfg.ids = ids
	}
}

// WithClock sets the time source used for overdue checks
func WithClock(clock types.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = clock
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
