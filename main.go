package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/taskflow/cmd"
	"github.com/thenoetrevino/taskflow/internal/cli"
)

func main() {
	// Root context with signal handling so pending writes get flushed
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	err := cmd.Execute(ctx)
	cancel()

	if err != nil {
		// Command failures were already reported by the output formatter
		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
