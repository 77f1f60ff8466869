package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// coverage is the glyph alpha at or above which a pixel is set.
const coverage = 0x80

// Bitmap is an indexed-colour image. It implements Surface.
type Bitmap struct {
	img *image.Paletted
	pal Palette
}

// NewBitmap allocates a w×h bitmap filled with colour 0.
func NewBitmap(w, h int, pal Palette) *Bitmap {
	return &Bitmap{
		img: image.NewPaletted(image.Rect(0, 0, w, h), pal.Std()),
		pal: pal,
	}
}

// Image exposes the underlying paletted image.
func (b *Bitmap) Image() *image.Paletted {
	return b.img
}

// Palette returns the palette the bitmap was created with.
func (b *Bitmap) Palette() Palette {
	return b.pal
}

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() (int, int) {
	r := b.img.Bounds()
	return r.Dx(), r.Dy()
}

// At returns the colour index at (x, y), or NoColor outside the bitmap.
func (b *Bitmap) At(x, y int) int {
	if !(image.Point{X: x, Y: y}).In(b.img.Rect) {
		return NoColor
	}
	return int(b.img.ColorIndexAt(x, y))
}

// Set writes colour index col at (x, y). Out-of-bounds writes are dropped.
func (b *Bitmap) Set(x, y, col int) {
	if col < 0 || col >= MaxColors {
		return
	}
	if !(image.Point{X: x, Y: y}).In(b.img.Rect) {
		return
	}
	b.img.SetColorIndex(x, y, uint8(col))
}

// Clear fills the whole bitmap with col.
func (b *Bitmap) Clear(col int) {
	if col < 0 {
		return
	}
	for i := range b.img.Pix {
		b.img.Pix[i] = uint8(col)
	}
}

// Rect fills a rectangle.
func (b *Bitmap) Rect(x, y, w, h, col int) {
	if col < 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(b.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			b.img.SetColorIndex(px, py, uint8(col))
		}
	}
}

// RectB outlines a rectangle.
func (b *Bitmap) RectB(x, y, w, h, col int) {
	if w <= 0 || h <= 0 {
		return
	}
	b.Line(x, y, x+w-1, y, col)
	b.Line(x, y+h-1, x+w-1, y+h-1, col)
	b.Line(x, y, x, y+h-1, col)
	b.Line(x+w-1, y, x+w-1, y+h-1, col)
}

// Line draws a line with Bresenham's algorithm, both ends inclusive.
func (b *Bitmap) Line(x1, y1, x2, y2, col int) {
	plotLine(x1, y1, x2, y2, func(x, y int) { b.Set(x, y, col) })
}

// Text rasterises s with 1-bit coverage so glyph edges stay crisp.
func (b *Bitmap) Text(x, y int, s string, col int, face font.Face) {
	if s == "" || col < 0 || face == nil {
		return
	}

	bounds, _ := font.BoundString(face, s)
	rect := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	if rect.Empty() {
		return
	}

	mask := image.NewAlpha(rect)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.Point26_6{}}
	d.DrawString(s)

	baseline := y + face.Metrics().Ascent.Ceil()
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			if mask.AlphaAt(px, py).A >= coverage {
				b.Set(x+px, baseline+py, col)
			}
		}
	}
}

// DrawImage quantises img to the bitmap's palette. Pixels with less than
// half opacity are skipped.
func (b *Bitmap) DrawImage(x, y int, img image.Image) {
	if img == nil || len(b.pal) == 0 {
		return
	}

	src := img.Bounds()
	nearest := make(map[color.RGBA]int)
	for sy := src.Min.Y; sy < src.Max.Y; sy++ {
		for sx := src.Min.X; sx < src.Max.X; sx++ {
			c := color.RGBAModel.Convert(img.At(sx, sy)).(color.RGBA)
			if c.A < coverage {
				continue
			}
			idx, ok := nearest[c]
			if !ok {
				idx = b.pal.Nearest(c)
				nearest[c] = idx
			}
			b.Set(x+sx-src.Min.X, y+sy-src.Min.Y, idx)
		}
	}
}

func plotLine(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
