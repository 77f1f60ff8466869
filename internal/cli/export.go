package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/internal/ui/pretty"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/present"
	"github.com/yaklabco/pixdeck/pkg/runner"
)

func newExportCommand() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Render decks to images",
		Long: `Render every page of each deck to a PNG file and, with --gif, an animated
walkthrough that advances through the deck with full transitions.

Paths may be deck files or directories, which are searched for .md and
.markdown files. Each deck gets its own directory under --out.`,
		Example: `  pixdeck export talk.md
  pixdeck export --out site/slides --gif decks/
  pixdeck export --ignore 'drafts/**' --jobs 4 .`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Export.Dir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&cfg.Export.GIF, "gif", false, "also write an animated walkthrough per deck")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to skip")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, overrides *config.Config) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutDir:       cfg.Export.Dir,
		Config:       cfg,
	}

	logger.Debug("starting export",
		logging.FieldPaths, opts.Paths,
		logging.FieldOutput, opts.OutDir,
		logging.FieldJobs, opts.Jobs)

	exportRunner := runner.New(newParser(cfg), present.NewExporter(cfg, nil))
	result, err := exportRunner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	if _, err := fmt.Fprint(out, styles.FormatExportSummary(result.Stats)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if result.HasFailures() {
		return fmt.Errorf("%w: %d of %d decks", ErrRenderFailed,
			result.Stats.DecksErrored, result.Stats.DecksDiscovered)
	}
	return nil
}
