// Package cli provides the Cobra command structure for pixdeck.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/internal/logging"

	// Built-in applets register themselves with applet.DefaultRegistry.
	_ "github.com/yaklabco/pixdeck/pkg/applet/bounce"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Option configures the root command.
type Option func(*rootOptions)

type rootOptions struct {
	display Display
}

// WithDisplay sets the window the present command runs in.
func WithDisplay(d Display) Option {
	return func(o *rootOptions) { o.display = d }
}

// NewRootCommand creates the root pixdeck command with all subcommands.
func NewRootCommand(info BuildInfo, opts ...Option) *cobra.Command {
	var ro rootOptions
	for _, opt := range opts {
		opt(&ro)
	}


	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "pixdeck",
		Short: "Present markdown slide decks on a pixel canvas",
		Long: `pixdeck lays out markdown slide decks on a small fixed-resolution canvas
and presents them in a scaled window with animated page transitions,
clickable links and embedded interactive applets.

Decks can also be exported to PNG pages and an animated walkthrough GIF.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newPresentCommand(ro.display))
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newOutlineCommand())
	rootCmd.AddCommand(newAppsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
