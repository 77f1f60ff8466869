package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrPalette is returned for palette entries that do not parse.
var ErrPalette = errors.New("invalid palette")

// MaxColors is the largest palette an indexed bitmap can address.
const MaxColors = 256

// Palette maps colour indices to RGB values.
type Palette []color.RGBA

// ParsePalette parses "#RRGGBB" or "RRGGBB" entries.
func ParsePalette(entries []string) (Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrPalette)
	}
	if len(entries) > MaxColors {
		return nil, fmt.Errorf("%w: %d entries exceeds %d", ErrPalette, len(entries), MaxColors)
	}

	pal := make(Palette, 0, len(entries))
	for i, entry := range entries {
		c, err := ParseHex(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrPalette, i, err)
		}
		pal = append(pal, c)
	}
	return pal, nil
}

// ParseHex parses a single "#RRGGBB" colour.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Color returns the colour at index i; out-of-range indices are black.
func (p Palette) Color(i int) color.RGBA {
	if i < 0 || i >= len(p) {
		return color.RGBA{A: 0xff}
	}
	return p[i]
}

// Has reports whether i indexes the palette.
func (p Palette) Has(i int) bool {
	return i >= 0 && i < len(p)
}

// Nearest returns the index of the palette colour closest to c.
func (p Palette) Nearest(c color.Color) int {
	r, g, b, _ := c.RGBA()
	best, bestDist := 0, uint32(1<<32-1)
	for i, pc := range p {
		dr := diff(r>>8, uint32(pc.R))
		dg := diff(g>>8, uint32(pc.G))
		db := diff(b>>8, uint32(pc.B))
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Std converts the palette for use with image.Paletted and image/gif.
func (p Palette) Std() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	return append(Palette(nil), p...)
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
