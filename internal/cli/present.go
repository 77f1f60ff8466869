package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/present"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

// Display runs p in an interactive window until it quits.
type Display func(ctx context.Context, p *present.Presenter, cfg *config.Config) error

var errNoDisplay = errors.New("no display available")

type presentFlags struct {
	page int
}

func newPresentCommand(display Display) *cobra.Command {
	cfg := &config.Config{}
	flags := &presentFlags{}

	cmd := &cobra.Command{
		Use:   "present <deck.md>",
		Short: "Present a deck in a window",
		Long: `Open a window and present a deck.

Navigation:
  Down, J, Space        next page
  Up, K, Shift+Space    previous page
  Left/Right, H/L       previous / next section
  Click                 open a link or use an embedded applet
  Ctrl+R                reload the deck
  Ctrl+Q                quit`,
		Example: `  pixdeck present talk.md
  pixdeck present --scale 4 --show-fps talk.md
  pixdeck present --page 12 talk.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(cmd, args[0], cfg, flags, display)
		},
	}

	cmd.Flags().IntVar(&cfg.Present.Scale, "scale", 0, "window magnification (default from config)")
	cmd.Flags().IntVar(&cfg.Present.FPS, "fps", 0, "target frame rate (default from config)")
	cmd.Flags().BoolVar(&cfg.Present.ShowFPS, "show-fps", false, "draw the measured frame rate")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page to start on (0-based)")

	return cmd
}

func runPresent(cmd *cobra.Command, path string, overrides *config.Config, flags *presentFlags, display Display) error {
	if display == nil {
		return errNoDisplay
	}

	ctx := logging.WithFields(commandContext(cmd), logging.FieldDeck, path)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	parser := newParser(cfg)
	d, err := deck.Load(ctx, path, parser)
	if err != nil {
		return err
	}
	if flags.page < 0 || flags.page >= d.Len() {
		return fmt.Errorf("%w: page %d out of range [0, %d]", ErrUsage, flags.page, d.LastPage())
	}

	th, err := theme.New(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer func() { _ = th.Close() }()

	p := present.New(ctx, cfg, th, d,
		present.WithLogger(logger),
		present.WithLoader(func(ctx context.Context) (*deck.Deck, error) {
			return deck.Load(ctx, path, parser)
		}))
	if flags.page > 0 {
		if err := p.Show(flags.page); err != nil {
			return err
		}
	}

	logger.Info("presenting", logging.FieldPages, d.Len(), logging.FieldScale, cfg.Present.Scale)

	return display(ctx, p, cfg)
}
