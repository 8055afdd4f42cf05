package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/sheetdock/internal/cli"
	sderrors "github.com/matzehuels/sheetdock/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, sderrors.UserMessage(err))
		os.Exit(sderrors.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	// Read by config.Load in the root's PersistentPreRunE.
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	return root.ExecuteContext(ctx)
}
