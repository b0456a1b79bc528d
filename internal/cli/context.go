package cli

import (
	"context"

	"github.com/thenoetrevino/taskflow/internal/app"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const appKey contextKey = "app"

// WithApp returns a context carrying application. Commands executed with
// it use that App instead of building one from the user's configuration.
func WithApp(ctx context.Context, application *app.App) context.Context {
	return context.WithValue(ctx, appKey, application)
}

// GetCLIFromContext returns a CLI over the App carried by ctx, or a fresh
// one built from the user's configuration
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if application, ok := ctx.Value(appKey).(*app.App); ok && application != nil {
		return newCLI(ctx, application), nil
	}
	return NewCLI(ctx)
}
