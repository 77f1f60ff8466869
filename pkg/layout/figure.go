package layout

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/nfnt/resize"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/fsutil"
)

// wildcard is the extension that tries every figure type in priority order.
const wildcard = ".*"

// FigureExtensions lists the figure file types, applets first.
func FigureExtensions() []string {
	return []string{applet.Ext, ".png", ".jpg", ".jpeg"}
}

// ResolveFigure finds the file a figure argument refers to. A ".*"
// extension picks the first existing file in FigureExtensions order.
func ResolveFigure(path string) (string, string, bool) {
	if base, ok := strings.CutSuffix(path, wildcard); ok {
		for _, ext := range FigureExtensions() {
			if fsutil.Exists(base + ext) {
				return base + ext, ext, true
			}
		}
		return "", "", false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(FigureExtensions(), ext) || !fsutil.Exists(path) {
		return "", "", false
	}
	return path, ext, true
}

func (v *visitor) directive(d *directive.Directive) error {
	if d.Name != directive.NameFigure {
		v.logger.Warn("unsupported directive", logging.FieldDirective, d.Name)
		return nil
	}

	path, ext, ok := ResolveFigure(filepath.Join(v.slide.Dir, filepath.FromSlash(d.Args)))
	if !ok {
		v.logger.Warn("figure not found", logging.FieldArgs, d.Args)
		return nil
	}

	if ext == applet.Ext {
		return v.embed(d, path)
	}
	return v.image(d, path)
}

func (v *visitor) embed(d *directive.Directive, path string) error {
	desc, err := applet.LoadDescriptor(v.ctx, path)
	if err != nil {
		v.logger.Warn("applet descriptor unusable", logging.FieldPath, path, logging.FieldError, err)
		return nil
	}

	fig, err := d.Figure(
		cmp.Or(desc.Width, v.e.cfg.Figure.AppWidth),
		cmp.Or(desc.Height, v.e.cfg.Figure.AppHeight),
	)
	if err != nil {
		return fmt.Errorf("figure %s: %w", d.Args, err)
	}
	if extra := d.Unconsumed(directive.OptScale, directive.OptWidth, directive.OptHeight); len(extra) > 0 {
		v.logger.Warn("unsupported figure options", logging.FieldOptions, extra)
	}

	if v.e.embedder == nil {
		v.logger.Debug("applet skipped", logging.FieldApp, desc.App)
		return nil
	}

	scale := 1.0
	if fig.Scale > 0 {
		scale = float64(fig.Scale) / 100
	}
	place := applet.Place(v.width, v.y, fig.Width, fig.Height, scale)

	if err := v.e.embedder.Embed(v.slide.Page, desc, place); err != nil {
		v.logger.Warn("applet not started", logging.FieldApp, desc.App, logging.FieldError, err)
	}
	return nil
}

// image draws a picture centred on the canvas. Without a scale option it
// shrinks to fit the canvas width.
func (v *visitor) image(d *directive.Directive, path string) error {
	pct, hasScale, err := d.Int(directive.OptScale)
	if err != nil {
		return fmt.Errorf("figure %s: %w", d.Args, err)
	}
	if extra := d.Unconsumed(directive.OptScale); len(extra) > 0 {
		v.logger.Warn("unsupported figure options", logging.FieldOptions, extra)
	}

	img, err := imgio.Open(path)
	if err != nil {
		v.logger.Warn("figure unreadable", logging.FieldPath, path, logging.FieldError, err)
		return nil
	}

	b := img.Bounds()
	scale := float64(v.width) / float64(max(b.Dx(), v.width))
	if hasScale {
		scale = float64(pct) / 100
	}

	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w <= 0 || h <= 0 {
		return nil
	}

	scaled := resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor)
	margin := max((v.width-w)/2, 0)
	v.s.DrawImage(v.x+margin, v.y, scaled)

	return nil
}
