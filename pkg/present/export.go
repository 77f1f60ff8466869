package present

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"image/gif"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/charmbracelet/log"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/fsutil"
	"github.com/yaklabco/pixdeck/pkg/input"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

// WalkthroughName is the file name of the animated export.
const WalkthroughName = "walkthrough.gif"

// PageName returns the file name of an exported page.
func PageName(page int) string {
	return fmt.Sprintf("page-%03d.png", page)
}

// DeckName derives the export directory name of a deck from its path.
func DeckName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "deck"
	}
	return name
}

// Exporter writes decks as images.
type Exporter struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewExporter creates an exporter. A nil logger uses the one carried by
// the export context.
func NewExporter(cfg *config.Config, logger *log.Logger) *Exporter {
	return &Exporter{cfg: cfg, logger: logger}
}

// Export renders every page of d to outDir/<deck>/page-NNN.png and, when
// enabled, an animated walkthrough. It returns the files written. Each call
// builds its own theme, so decks may be exported concurrently.
func (e *Exporter) Export(ctx context.Context, d *deck.Deck, outDir string) ([]string, error) {
	th, err := theme.New(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("export theme: %w", err)
	}
	defer func() { _ = th.Close() }()

	dir := filepath.Join(outDir, DeckName(d.Path))
	logger := cmp.Or(e.logger, logging.FromContext(ctx)).With(logging.FieldDeck, d.Path)

	p := New(ctx, e.cfg, th, d,
		WithChrome(false),
		WithOpener(discardOpener{}),
		WithLogger(logger))

	var files []string
	for page := range d.Len() {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		if err := p.Show(page); err != nil {
			return files, err
		}
		frame, err := p.Draw()
		if err != nil {
			return files, err
		}

		path := filepath.Join(dir, PageName(page))
		if err := writePNG(ctx, path, frame.Image()); err != nil {
			return files, err
		}
		files = append(files, path)
		logger.Debug("page exported", logging.FieldPage, page, logging.FieldOutput, path)
	}

	if e.cfg.Export.GIF {
		path := filepath.Join(dir, WalkthroughName)
		if err := e.walkthrough(ctx, d, th, path, logger); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	return files, nil
}

func writePNG(ctx context.Context, path string, img image.Image) error {
	encode := imgio.PNGEncoder()
	return fsutil.WriteAtomicFunc(ctx, path, fsutil.DefaultFileMode, func(w io.Writer) error {
		return encode(w, img)
	})
}

// walkthrough records the deck as seen when pressing space through it:
// each page held still, then the transition to the next.
func (e *Exporter) walkthrough(ctx context.Context, d *deck.Deck, th *theme.Theme, path string, logger *log.Logger) error {
	fps := max(e.cfg.Present.FPS, 1)
	step := time.Second / time.Duration(fps)
	delay := max(100/fps, 1)

	p := New(ctx, e.cfg, th, d, WithOpener(discardOpener{}), WithLogger(logger))
	anim := &gif.GIF{}
	now := time.Unix(0, 0)

	tick := func(state input.State) error {
		now = now.Add(step)
		if err := p.Tick(state, now); err != nil {
			return err
		}
		frame, err := p.Draw()
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, canvas.Quantize(frame.Image(), th.Palette))
		anim.Delay = append(anim.Delay, delay)
		return ctx.Err()
	}

	for page := range d.Len() {
		for range max(e.cfg.Export.HoldFrames, 1) {
			if err := tick(input.State{}); err != nil {
				return err
			}
		}
		if page == d.LastPage() {
			break
		}
		if err := tick(input.Press(input.KeySpace)); err != nil {
			return err
		}
		for p.Controller().Transition().Active() {
			if err := tick(input.State{}); err != nil {
				return err
			}
		}
	}

	return fsutil.WriteAtomicFunc(ctx, path, fsutil.DefaultFileMode, func(w io.Writer) error {
		return gif.EncodeAll(w, anim)
	})
}
