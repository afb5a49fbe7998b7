// Package main is the entry point for the smoke harness.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/smoke/cmd/smoke/commands"
	"go.trai.ch/smoke/internal/app"
	"go.trai.ch/smoke/internal/core/domain"
	_ "go.trai.ch/smoke/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.ExitCodeGeneric
	}
	defer cleanup()
	if components.Telemetry != nil {
		defer func() { _ = components.Telemetry.Close() }()
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// Step failures were already reported while the run progressed.
		if errors.Is(err, domain.ErrRunFailed) {
			return cli.ExitCode()
		}
		components.Logger.Error(err)
		return domain.ExitCodeGeneric
	}
	return cli.ExitCode()
}
