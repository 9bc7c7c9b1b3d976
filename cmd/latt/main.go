package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/internal/cli"
	"github.com/latt-dev/latt/pkg/errors"
	"github.com/latt-dev/latt/pkg/lattice"
)

// Exit statuses distinguish the three failure categories so shell
// scripts can react to each without parsing stderr.
const (
	exitFileNotFound = 1
	exitParseError   = 2
	exitGraphCycle   = 3
	exitInterrupted  = 130 // standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitStatus(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitStatus maps an error to the process exit status.
func exitStatus(err error) int {
	if stderrors.Is(err, lattice.ErrCycle) {
		return exitGraphCycle
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return exitFileNotFound
	case errors.ErrCodeParse:
		return exitParseError
	case errors.ErrCodeCycle:
		return exitGraphCycle
	}
	return 1
}
