// Package canvas provides the drawing primitives slides are painted with:
// indexed bitmaps for slide pages, RGBA frames for compositing, and a
// recording surface for tests.
package canvas

import (
	"image"

	"golang.org/x/image/font"
)

// NoColor disables a background or colour key.
const NoColor = -1

// Surface is the set of primitives the layout engine draws with. Colours
// are palette indices; NoColor draws nothing.
type Surface interface {
	Size() (width, height int)
	Clear(col int)
	Rect(x, y, w, h, col int)
	RectB(x, y, w, h, col int)
	Line(x1, y1, x2, y2, col int)

	// Text draws s with its top-left corner at (x, y).
	Text(x, y int, s string, col int, face font.Face)

	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(x, y int, img image.Image)
}
