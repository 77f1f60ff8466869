package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/reporter"
)

type outlineFlags struct {
	format  string
	compact bool
}

func newOutlineCommand() *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline <deck.md>...",
		Short: "Print the slides of decks",
		Long: `Print each slide of the given decks with its page, section, heading level,
title, link count and embedded figures.`,
		Example: `  pixdeck outline talk.md
  pixdeck outline --format table talk.md
  pixdeck outline --format json a.md b.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json (default from config)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json output")

	return cmd
}

func runOutline(cmd *cobra.Command, paths []string, flags *outlineFlags) error {
	ctx := commandContext(cmd)

	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}

	overrides := &config.Config{Format: config.OutputFormat(flags.format)}
	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	parser := newParser(cfg)
	outlines := make([]reporter.DeckOutline, 0, len(paths))
	for _, path := range paths {
		d, err := deck.Load(ctx, path, parser)
		if err != nil {
			return err
		}
		outlines = append(outlines, reporter.NewDeckOutline(d))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Color:   colorMode,
		Compact: flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, outlines); err != nil {
		return fmt.Errorf("report outline: %w", err)
	}
	return nil
}
