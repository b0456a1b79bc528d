package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskflow/internal/app"
	appcli "github.com/thenoetrevino/taskflow/internal/cli"
)

// Output is what a command wrote
type Output struct {
	Stdout string
	Stderr string
}

// ExecuteCLICommand executes a CLI command with a test app instance and
// returns its stdout. The app is injected through the context so the
// command uses the test store.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	out, err := ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
	return out.Stdout, err
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (Output, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(appcli.WithApp(ctx, testApp))
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
