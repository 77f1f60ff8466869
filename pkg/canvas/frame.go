package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Opaque is the dither level that draws every pixel.
const Opaque = 1.0

// BlitOptions controls how a bitmap is composited onto a frame.
type BlitOptions struct {
	// Palette resolves the bitmap's indices. Nil uses the frame palette.
	Palette Palette

	// ColorKey is an index left transparent, or NoColor.
	ColorKey int

	// Level is the dither level; Opaque draws every pixel.
	Level float64
}

// Solid returns options for an opaque blit without a colour key.
func Solid() BlitOptions {
	return BlitOptions{ColorKey: NoColor, Level: Opaque}
}

// Frame is the RGBA image presented to the window or written to exports.
type Frame struct {
	img *image.RGBA
	pal Palette
}

// NewFrame allocates a w×h frame drawing with pal.
func NewFrame(w, h int, pal Palette) *Frame {
	return &Frame{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		pal: pal,
	}
}

// Image exposes the frame pixels.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Size returns the frame dimensions.
func (f *Frame) Size() (int, int) {
	return f.img.Rect.Dx(), f.img.Rect.Dy()
}

// Palette returns the host palette.
func (f *Frame) Palette() Palette {
	return f.pal
}

// Clear fills the frame with col.
func (f *Frame) Clear(col int) {
	draw.Draw(f.img, f.img.Rect, image.NewUniform(f.pal.Color(col)), image.Point{}, draw.Src)
}

// FillRect fills a rectangle at the given dither level.
func (f *Frame) FillRect(x, y, w, h, col int, level float64) {
	if col < 0 {
		return
	}
	c := f.pal.Color(col)
	r := image.Rect(x, y, x+w, y+h).Intersect(f.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if Dithered(px, py, level) {
				f.img.SetRGBA(px, py, c)
			}
		}
	}
}

// RectB outlines a rectangle.
func (f *Frame) RectB(x, y, w, h, col int) {
	if w <= 0 || h <= 0 {
		return
	}
	f.Line(x, y, x+w-1, y, col)
	f.Line(x, y+h-1, x+w-1, y+h-1, col)
	f.Line(x, y, x, y+h-1, col)
	f.Line(x+w-1, y, x+w-1, y+h-1, col)
}

// Line draws a line, both ends inclusive.
func (f *Frame) Line(x1, y1, x2, y2, col int) {
	if col < 0 {
		return
	}
	c := f.pal.Color(col)
	plotLine(x1, y1, x2, y2, func(x, y int) {
		if (image.Point{X: x, Y: y}).In(f.img.Rect) {
			f.img.SetRGBA(x, y, c)
		}
	})
}

// Blit composites src with its top-left corner at (x, y).
func (f *Frame) Blit(src *Bitmap, x, y int, opt BlitOptions) {
	if src == nil || opt.Level <= 0 {
		return
	}

	pal := opt.Palette
	if pal == nil {
		pal = f.pal
	}

	sb := src.img.Rect
	dst := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Intersect(f.img.Rect)
	for py := dst.Min.Y; py < dst.Max.Y; py++ {
		for px := dst.Min.X; px < dst.Max.X; px++ {
			if !Dithered(px, py, opt.Level) {
				continue
			}
			idx := int(src.img.ColorIndexAt(px-x+sb.Min.X, py-y+sb.Min.Y))
			if idx == opt.ColorKey {
				continue
			}
			f.img.SetRGBA(px, py, pal.Color(idx))
		}
	}
}

// BlitImage draws an already resolved image at (x, y), respecting its alpha.
func (f *Frame) BlitImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	draw.Draw(f.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

// Resolve converts an indexed bitmap to RGBA using pal.
func Resolve(src *Bitmap, pal Palette) *image.RGBA {
	b := src.img.Rect
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetRGBA(x, y, pal.Color(int(src.img.ColorIndexAt(x+b.Min.X, y+b.Min.Y))))
		}
	}
	return out
}

// Quantize maps an RGBA frame onto pal, for GIF output.
func Quantize(img image.Image, pal Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal.Std())
	nearest := make(map[color.RGBA]uint8)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.RGBA)
			idx, ok := nearest[c]
			if !ok {
				idx = uint8(pal.Nearest(c))
				nearest[c] = idx
			}
			out.SetColorIndex(x, y, idx)
		}
	}
	return out
}
