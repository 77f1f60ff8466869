// Package main is the entry point for the pixdeck CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/yaklabco/pixdeck/internal/cli"
	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/internal/window"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/present"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info, cli.WithDisplay(openWindow))

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}

func openWindow(ctx context.Context, p *present.Presenter, cfg *config.Config) error {
	width, height := cfg.WindowSize()
	return window.Run(ctx, p, window.Options{
		Title:  cfg.Present.Title,
		Width:  width,
		Height: height,
		Scale:  cfg.Present.Scale,
		FPS:    cfg.Present.FPS,
		Logger: logging.Default(),
	})
}
