// Package cli holds helpers for command tests. It lives apart from
// testutil so service tests can use testutil without importing the app.
package cli

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/thenoetrevino/taskflow/internal/app"
	"github.com/thenoetrevino/taskflow/internal/config"
	"github.com/thenoetrevino/taskflow/internal/database"
	"github.com/thenoetrevino/taskflow/internal/testutil"
	"github.com/thenoetrevino/taskflow/internal/types"
)

// SetupCLITest creates an App over an in-memory store with sequential task
// ids and a fixed clock. The App is closed when the test ends.
func SetupCLITest(t *testing.T) (*database.MemoryStore, *app.App) {
	t.Helper()
	return SetupCLITestWithConfig(t, config.Default())
}

// SetupCLITestWithConfig is SetupCLITest with a custom configuration
func SetupCLITestWithConfig(t *testing.T, cfg *config.Config) (*database.MemoryStore, *app.App) {
	t.Helper()

	store := database.NewMemoryStore()
	appInstance, err := app.New(context.Background(), cfg,
		app.WithStore(store),
		app.WithIDGenerator(&testutil.SequentialIDs{}),
		app.WithClock(types.FixedClock(testutil.FixedNow)),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() {
		_ = appInstance.Close()
	})

	return store, appInstance
}
