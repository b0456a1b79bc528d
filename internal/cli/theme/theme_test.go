package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskflow/internal/cli"
	"github.com/thenoetrevino/taskflow/internal/config"
	"github.com/thenoetrevino/taskflow/internal/testutil"
	clitest "github.com/thenoetrevino/taskflow/internal/testutil/cli"
)

func TestShowTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = "light"
	_, a := clitest.SetupCLITestWithConfig(t, cfg)

	out, err := clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "light\n", out, "configured default applies when nothing is stored")
}

func TestToggleTheme(t *testing.T) {
	store, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	out, err := clitest.ExecuteCLICommand(t, a, ToggleCmd(), []string{"--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, out)["data"].(map[string]interface{})
	assert.Equal(t, "light", data["theme"])

	stored, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", string(stored))

	out, err = clitest.ExecuteCLICommand(t, a, ShowCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, out, "light")

	out, err = clitest.ExecuteCLICommand(t, a, ToggleCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
}

func TestToggleTheme_StorageFailure(t *testing.T) {
	store, a := clitest.SetupCLITest(t)
	require.NoError(t, store.Close())

	_, err := clitest.ExecuteCLICommand(t, a, ToggleCmd(), []string{})
	require.Error(t, err)

	var cmdErr *cli.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, cli.ExitError, cmdErr.Code)
}
