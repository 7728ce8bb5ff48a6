package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/cli"
	"github.com/specialistvlad/robotrack/internal/hcl"
)

// main is the entrypoint for the robotrack application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// Ctrl-C aborts the active run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl.NewLoader()
	robotrackApp, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	defer robotrackApp.Close()

	err = robotrackApp.Run(ctx)
	if errors.Is(err, app.ErrConfig) {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	return err
}
