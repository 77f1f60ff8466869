// Package layout paints one slide's markdown tree onto a fixed-size
// surface. It tracks the cursor, indentation, fonts, colours, list markers
// and alignment while descending the tree, collects clickable link regions,
// and handles figure directives by drawing images or embedding applets.
package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/highlight"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

// ErrUnbalanced reports a style stack left unbalanced after a render.
var ErrUnbalanced = errors.New("layout stacks unbalanced")

// LinkRegion is a clickable rectangle in slide pixels. The bounds are
// inclusive on every edge.
type LinkRegion struct {
	X1, Y1, X2, Y2 int
	URL            string
}

// Contains reports whether (x, y) lies inside the region.
func (r LinkRegion) Contains(x, y int) bool {
	return r.X1 <= x && x <= r.X2 && r.Y1 <= y && y <= r.Y2
}

// Embedder receives the applets requested by figure directives.
type Embedder interface {
	Embed(page int, desc *applet.Descriptor, place applet.Placement) error
}

// Engine renders slides. It is not safe for concurrent use because font
// faces carry glyph caches.
type Engine struct {
	cfg         *config.Config
	theme       *theme.Theme
	highlighter *highlight.Highlighter
	embedder    Embedder
	logger      *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEmbedder routes applet figures to e. Without one, applet figures are
// skipped.
func WithEmbedder(e Embedder) Option {
	return func(eng *Engine) {
		eng.embedder = e
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(eng *Engine) {
		eng.logger = l
	}
}

// New creates an engine.
func New(cfg *config.Config, th *theme.Theme, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		theme:  th,
		logger: logging.Default(),
	}
	if cfg.Highlight.Enabled {
		e.highlighter = highlight.New(cfg.Highlight.DetectLanguage)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Theme returns the engine's theme.
func (e *Engine) Theme() *theme.Theme {
	return e.theme
}

// Render clears s to the background colour and lays out slide onto it. It
// returns the link regions of the page; a previous render's regions are
// never carried over.
func (e *Engine) Render(ctx context.Context, slide *deck.Slide, s canvas.Surface) ([]LinkRegion, error) {
	s.Clear(e.theme.Colors.Background)

	v := newVisitor(ctx, e, slide, s)
	if err := v.children(slide.Root); err != nil {
		return nil, fmt.Errorf("render page %d: %w", slide.Page, err)
	}
	if err := v.balanced(); err != nil {
		return nil, fmt.Errorf("render page %d: %w", slide.Page, err)
	}

	return v.links, nil
}
