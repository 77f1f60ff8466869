// Package present drives a loaded deck frame by frame: it feeds input to
// navigation and embedded applets, composites the cached slide bitmaps with
// the transition animation, and draws the on-screen affordances. The same
// presenter backs the interactive window and offline exports.
package present

import (
	"context"
	"fmt"
	"image"
	"math"
	"strconv"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/cache"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/input"
	"github.com/yaklabco/pixdeck/pkg/layout"
	"github.com/yaklabco/pixdeck/pkg/nav"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

// overlayLevel is the dither level of the overlay shown while an applet
// has the pointer.
const overlayLevel = 0.5

// Loader reloads the deck for Ctrl+R.
type Loader func(ctx context.Context) (*deck.Deck, error)

// Option configures a Presenter.
type Option func(*Presenter)

// WithOpener sets how clicked links are opened.
func WithOpener(o Opener) Option {
	return func(p *Presenter) { p.opener = o }
}

// WithLoader enables reloading.
func WithLoader(l Loader) Option {
	return func(p *Presenter) { p.loader = l }
}

// WithRegistry sets the applet registry. The default is
// applet.DefaultRegistry.
func WithRegistry(r *applet.Registry) Option {
	return func(p *Presenter) { p.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// WithChrome toggles the walker, the chevrons and the FPS label.
func WithChrome(on bool) Option {
	return func(p *Presenter) { p.chrome = on }
}

// Presenter runs the per-frame update and draw of a deck.
type Presenter struct {
	ctx      context.Context
	cfg      *config.Config
	theme    *theme.Theme
	logger   *log.Logger
	opener   Opener
	loader   Loader
	registry *applet.Registry
	chrome   bool

	engine   *layout.Engine
	ctrl     *nav.Controller
	cache    *cache.Cache
	tracker  *input.Tracker
	meter    Meter
	walker   Walker
	chevrons []*Chevron
	frame    *canvas.Frame

	// capturing is true while the pointer is over a running applet.
	capturing bool
	quit      bool
}

// New creates a presenter showing page 0 of d. ctx bounds slide rendering
// and reloads.
func New(ctx context.Context, cfg *config.Config, th *theme.Theme, d *deck.Deck, opts ...Option) *Presenter {
	p := &Presenter{
		ctx:      ctx,
		cfg:      cfg,
		theme:    th,
		logger:   logging.Default(),
		opener:   NewBrowserOpener(),
		registry: applet.DefaultRegistry,
		chrome:   true,
	}
	for _, opt := range opts {
		opt(p)
	}

	host := applet.NewHost(p.registry, p.logger)
	p.engine = layout.New(cfg, th, layout.WithEmbedder(host), layout.WithLogger(p.logger))
	p.ctrl = nav.New(d, cfg.Present.TransitionRate, host)
	p.cache = cache.New(cfg.Canvas.Width, cfg.Canvas.Height, th.Palette, p.renderPage)
	p.tracker = input.NewTracker(cfg.Present.KeyHold, cfg.Present.KeyRepeat)

	w, h := cfg.WindowSize()
	p.frame = canvas.NewFrame(w, h, th.Palette)
	p.chevrons = Chevrons(image.Pt(w-20, h-20))
	p.walker.Place(cfg.Canvas.Width, 0, d.Len())

	return p
}

// Controller exposes the navigation state.
func (p *Presenter) Controller() *nav.Controller {
	return p.ctrl
}

// Quit reports whether Ctrl+Q was pressed.
func (p *Presenter) Quit() bool {
	return p.quit
}

// Capturing reports whether an applet received the last frame's input.
func (p *Presenter) Capturing() bool {
	return p.capturing
}

// Walker returns the progress walker.
func (p *Presenter) Walker() Walker {
	return p.walker
}

// FPS returns the measured frame rate, or the configured one before the
// first measurement.
func (p *Presenter) FPS() float64 {
	if v := p.meter.Value(); v > 0 {
		return v
	}
	return float64(p.cfg.Present.FPS)
}

func (p *Presenter) renderPage(page int, bmp *canvas.Bitmap) error {
	slide := p.ctrl.Deck().Slide(page)
	if slide == nil {
		return fmt.Errorf("page %d out of range", page)
	}
	links, err := p.engine.Render(p.ctx, slide, bmp)
	if err != nil {
		return err
	}
	p.ctrl.SetLinks(page, links)
	return nil
}

// Show jumps to page without a transition.
func (p *Presenter) Show(page int) error {
	p.ctrl.GoTo(page)
	p.ctrl.Decay(0)
	p.walker.Place(p.cfg.Canvas.Width, p.ctrl.Page(), p.ctrl.Deck().Len())
	_, err := p.cache.Get(p.ctrl.Page())
	return err
}

// slidePoint converts a window point to slide pixels.
func (p *Presenter) slidePoint(x, y int) (int, int) {
	pad := p.cfg.Canvas.Padding
	return x - pad, y - pad
}

// Tick runs one frame of input handling at time now.
func (p *Presenter) Tick(state input.State, now time.Time) error {
	p.meter.Tick(now)
	p.tracker.Update(state)

	p.capturing = p.updateApp()
	if p.capturing {
		return nil
	}

	if p.tracker.Chord(input.KeyCtrl, input.KeyQ) || p.tracker.Pressed(input.KeyEscape) {
		p.quit = true
	}
	if p.tracker.Chord(input.KeyCtrl, input.KeyR) {
		p.reload()
	}

	p.ctrl.Decay(p.FPS())

	if p.tracker.Clicked() {
		p.openLink()
	}

	mx, my := p.tracker.Mouse()
	for _, c := range p.chevrons {
		c.Hover = c.Over(mx, my)
		if p.tracker.Triggered(c.Action) || (c.Hover && p.tracker.Clicked()) {
			p.ctrl.Do(c.Action)
			c.Hover = true
		}
	}

	p.walker.Update(p.cfg.Canvas.Width, p.ctrl.Page(), p.ctrl.Deck().Len(), p.tracker.Frame())

	// Rendering the current page registers its links and applets.
	if _, err := p.cache.Get(p.ctrl.Page()); err != nil {
		return err
	}
	return nil
}

// updateApp forwards input to the current page's applet while the pointer
// is over it and no transition runs.
func (p *Presenter) updateApp() bool {
	handle, ok := p.ctrl.App()
	if !ok || p.ctrl.Transition().Active() {
		return false
	}
	x, y := p.slidePoint(p.tracker.Mouse())
	if !handle.Placement.Contains(x, y) {
		return false
	}
	handle.App.Update(p.tracker)
	return true
}

func (p *Presenter) openLink() {
	url, ok := p.ctrl.LinkAt(p.slidePoint(p.tracker.Mouse()))
	if !ok {
		return
	}
	p.logger.Info("opening link", logging.FieldURL, url)
	if err := p.opener.Open(url); err != nil {
		p.logger.Warn("open link failed", logging.FieldURL, url, logging.FieldError, err)
	}
}

func (p *Presenter) reload() {
	if p.loader == nil {
		return
	}
	d, err := p.loader(p.ctx)
	if err != nil {
		p.logger.Error("reload failed", logging.FieldError, err)
		return
	}
	p.ctrl.Reset(d)
	p.cache.Invalidate()
	p.walker.Place(p.cfg.Canvas.Width, p.ctrl.Page(), d.Len())
	p.logger.Info("deck reloaded", logging.FieldPages, d.Len())
}

// Draw composites the current frame.
func (p *Presenter) Draw() (*canvas.Frame, error) {
	f := p.frame
	colors := p.theme.Colors
	f.Clear(colors.Window)

	if err := p.drawSlides(f); err != nil {
		return nil, err
	}
	p.drawApp(f)

	if p.chrome {
		_, h := f.Size()
		if p.cfg.Present.Walker {
			p.walker.Draw(f, h-walkerHeight-4, colors.Walker, colors.Window)
		}
		if !p.capturing {
			for _, c := range p.chevrons {
				if c.Action != input.Retreat && p.ctrl.Legal(c.Action) {
					c.Draw(f, colors.NavIdle, colors.NavActive)
				}
			}
		}
		if p.cfg.Present.ShowFPS {
			label := "FPS: " + strconv.Itoa(int(math.Round(p.FPS())))
			drawLabel(f, 5, h-3, label, colors.Overlay, p.theme.Font(theme.Default).Face)
		}
	}

	return f, nil
}

func (p *Presenter) drawSlides(f *canvas.Frame) error {
	pad := p.cfg.Canvas.Padding
	tr := p.ctrl.Transition()

	if !tr.Active() {
		bmp, err := p.cache.Get(p.ctrl.Page())
		if err != nil {
			return err
		}
		f.Blit(bmp, pad, pad, canvas.Solid())
		if p.capturing {
			w, h := f.Size()
			f.FillRect(0, 0, w, h, p.theme.Colors.Overlay, overlayLevel)
		}
		return nil
	}

	next, err := p.cache.Get(p.ctrl.Page())
	if err != nil {
		return err
	}
	prev, err := p.cache.Get(tr.From)
	if err != nil {
		return err
	}

	oldX, oldY, newX, newY := p.offsets(tr)
	key := p.theme.Colors.Background
	f.Blit(prev, oldX, oldY, canvas.BlitOptions{ColorKey: key, Level: tr.Progress})
	f.Blit(next, newX, newY, canvas.BlitOptions{ColorKey: key, Level: 1 - tr.Progress})
	return nil
}

// offsets returns the window positions of the outgoing and incoming slide.
// The outgoing slide leaves along the direction while the incoming one
// arrives from the opposite side, both eased quadratically.
func (p *Presenter) offsets(tr nav.Transition) (int, int, int, int) {
	pad := float64(p.cfg.Canvas.Padding)
	w, h := float64(p.cfg.Canvas.Width), float64(p.cfg.Canvas.Height)
	r := tr.Progress
	out, in := (1-r)*(1-r), r*r

	oldX, oldY, newX, newY := pad, pad, pad, pad
	switch tr.Direction {
	case nav.Down:
		oldY, newY = pad-h*out, pad+h*in
	case nav.Up:
		oldY, newY = pad+h*out, pad-h*in
	case nav.Right:
		oldX, newX = pad-w*out, pad+w*in
	case nav.Left:
		oldX, newX = pad+w*out, pad-w*in
	}
	return int(oldX), int(oldY), int(newX), int(newY)
}

func (p *Presenter) drawApp(f *canvas.Frame) {
	handle, ok := p.ctrl.App()
	if !ok || p.ctrl.Transition().Active() {
		return
	}

	bmp := handle.App.Render()
	pal := handle.Palette
	if pal == nil {
		pal = p.theme.Palette
	}

	img := image.Image(canvas.Resolve(bmp, pal))
	place := handle.Placement
	bounds := place.Bounds()
	if place.Scale != 1 {
		img = transform.Resize(img, bounds.Dx(), bounds.Dy(), transform.NearestNeighbor)
	}

	pad := p.cfg.Canvas.Padding
	f.BlitImage(img, pad+bounds.Min.X, pad+bounds.Min.Y)
	if p.capturing {
		f.RectB(pad+bounds.Min.X, pad+bounds.Min.Y, bounds.Dx(), bounds.Dy(), p.theme.Colors.ChildFrame)
	}
}

// drawLabel writes s with its baseline at y.
func drawLabel(f *canvas.Frame, x, y int, s string, col int, face font.Face) {
	d := font.Drawer{
		Dst:  f.Image(),
		Src:  image.NewUniform(f.Palette().Color(col)),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
