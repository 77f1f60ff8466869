package applet

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/canvas"
)

// Placement positions an app on its slide, in slide pixels.
type Placement struct {
	X, Y int

	// Width and Height are the app's logical size, as constructed.
	Width, Height int

	// Scale magnifies the app on screen.
	Scale float64
}

// Place centres an app horizontally on a canvas of canvasWidth at row y.
// The requested width and height are the on-screen size; with a scale the
// app is constructed smaller so that scaling restores that size.
func Place(canvasWidth, y, width, height int, scale float64) Placement {
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(width) / scale)
	h := int(float64(height) / scale)
	x := (canvasWidth - int(float64(w)*scale)) / 2
	if x < 0 {
		x = 0
	}
	return Placement{X: x, Y: y, Width: w, Height: h, Scale: scale}
}

// Bounds returns the on-screen rectangle.
func (p Placement) Bounds() image.Rectangle {
	return image.Rect(p.X, p.Y,
		p.X+int(float64(p.Width)*p.Scale),
		p.Y+int(float64(p.Height)*p.Scale))
}

// Contains reports whether the slide point (x, y) lies over the app.
func (p Placement) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.Bounds())
}

// Handle is a live app with its placement and saved palette.
type Handle struct {
	Page      int
	Name      string
	App       App
	Placement Placement

	// Palette resolves the app's bitmap; nil means the host palette.
	Palette canvas.Palette
}

// Host owns the app instances of a loaded deck, one per page at most.
type Host struct {
	registry *Registry
	handles  map[int]*Handle
	logger   *log.Logger
}

// NewHost creates a host that builds apps from registry.
func NewHost(registry *Registry, logger *log.Logger) *Host {
	if logger == nil {
		logger = logging.Default()
	}
	return &Host{
		registry: registry,
		handles:  make(map[int]*Handle),
		logger:   logger,
	}
}

// Embed creates the app for page unless it already exists. Re-rendering a
// page keeps its running instance.
func (h *Host) Embed(page int, desc *Descriptor, place Placement) error {
	if _, ok := h.handles[page]; ok {
		return nil
	}

	app, err := h.registry.New(desc.App, place.Width, place.Height, desc.Options)
	if err != nil {
		return err
	}

	handle := &Handle{Page: page, Name: desc.App, App: app, Placement: place}
	if p, ok := app.(Paletted); ok {
		handle.Palette = p.Palette().Clone()
	}
	h.handles[page] = handle

	h.logger.Debug("applet started",
		logging.FieldPage, page,
		logging.FieldApp, desc.App,
		logging.FieldScale, place.Scale)

	return nil
}

// Handle returns the app embedded on page.
func (h *Host) Handle(page int) (*Handle, bool) {
	handle, ok := h.handles[page]
	return handle, ok
}

// Len returns the number of live apps.
func (h *Host) Len() int {
	return len(h.handles)
}

// Reset drops every app, as on deck reload.
func (h *Host) Reset() {
	h.handles = make(map[int]*Handle)
}
