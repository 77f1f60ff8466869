package present

import "github.com/yaklabco/pixdeck/pkg/canvas"

// Facing is the direction the walker looks.
type Facing int

const (
	FacingDown Facing = iota
	FacingLeft
	FacingRight
)

const (
	walkerWidth  = 8
	walkerHeight = 12
	runDistance  = 32
)

// walkCycle offsets the stride for each of the four animation phases.
//nolint:gochecknoglobals // Read-only animation table.
var walkCycle = [4]int{-1, 0, -1, 1}

// Walker is the sprite that walks along the bottom edge to show progress
// through the deck.
type Walker struct {
	X      int
	Facing Facing
	Stride int
}

// Place puts the walker at the position for page without walking.
func (w *Walker) Place(width, page, pages int) {
	w.X = width * page / max(1, pages-1)
	w.Facing = FacingDown
	w.Stride = 0
}

// Update moves one step toward the position of page. The walker runs when
// the target is far away and stands still on single-page decks.
func (w *Walker) Update(width, page, pages, frame int) {
	if pages <= 1 {
		w.Facing, w.Stride = FacingDown, 0
		return
	}

	diff := width*page/(pages-1) - w.X
	if diff == 0 {
		w.Facing, w.Stride = FacingDown, 0
		return
	}

	speed, div := 1, 5
	if abs(diff) >= runDistance {
		speed, div = 2, 2
	}

	if diff > 0 {
		w.Facing = FacingRight
		w.X += min(speed, diff)
	} else {
		w.Facing = FacingLeft
		w.X -= min(speed, -diff)
	}
	w.Stride = walkCycle[frame/div%len(walkCycle)]
}

// Draw paints the sprite with its feet on the line y+walkerHeight.
func (w *Walker) Draw(f *canvas.Frame, y, col, eye int) {
	x := w.X
	f.FillRect(x+2, y, 4, 4, col, canvas.Opaque)
	f.FillRect(x+1, y+4, 6, 4, col, canvas.Opaque)

	switch w.Facing {
	case FacingLeft:
		f.FillRect(x+2, y+1, 1, 1, eye, canvas.Opaque)
	case FacingRight:
		f.FillRect(x+5, y+1, 1, 1, eye, canvas.Opaque)
	case FacingDown:
		f.FillRect(x+3, y+1, 1, 1, eye, canvas.Opaque)
		f.FillRect(x+4, y+1, 1, 1, eye, canvas.Opaque)
	}

	left, right := 4, 4
	switch w.Stride {
	case -1:
		left = 3
	case 1:
		right = 3
	}
	f.FillRect(x+2, y+8, 1, left, col, canvas.Opaque)
	f.FillRect(x+5, y+8, 1, right, col, canvas.Opaque)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
