package canvas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
)

// Op names a recorded drawing call.
type Op string

// Recorded operations.
const (
	OpClear Op = "clear"
	OpRect  Op = "rect"
	OpRectB Op = "rectb"
	OpLine  Op = "line"
	OpText  Op = "text"
	OpImage Op = "image"
)

// Call is one recorded drawing call. Unused fields are zero.
type Call struct {
	Op   Op
	X, Y int
	// W and H are the rectangle or image size; for lines they hold the end point.
	W, H int
	Col  int
	Text string
	Face font.Face
}

func (c Call) String() string {
	switch c.Op {
	case OpText:
		return fmt.Sprintf("text(%d,%d,%q,%d)", c.X, c.Y, c.Text, c.Col)
	case OpClear:
		return fmt.Sprintf("clear(%d)", c.Col)
	default:
		return fmt.Sprintf("%s(%d,%d,%d,%d,%d)", c.Op, c.X, c.Y, c.W, c.H, c.Col)
	}
}

// Recorder is a Surface that records calls instead of drawing.
type Recorder struct {
	Width, Height int
	Calls         []Call
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear(col int) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Col: col})
}

func (r *Recorder) Rect(x, y, w, h, col int) {
	r.Calls = append(r.Calls, Call{Op: OpRect, X: x, Y: y, W: w, H: h, Col: col})
}

func (r *Recorder) RectB(x, y, w, h, col int) {
	r.Calls = append(r.Calls, Call{Op: OpRectB, X: x, Y: y, W: w, H: h, Col: col})
}

func (r *Recorder) Line(x1, y1, x2, y2, col int) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X: x1, Y: y1, W: x2, H: y2, Col: col})
}

func (r *Recorder) Text(x, y int, s string, col int, face font.Face) {
	r.Calls = append(r.Calls, Call{Op: OpText, X: x, Y: y, Text: s, Col: col, Face: face})
}

func (r *Recorder) DrawImage(x, y int, img image.Image) {
	b := img.Bounds()
	r.Calls = append(r.Calls, Call{Op: OpImage, X: x, Y: y, W: b.Dx(), H: b.Dy()})
}

// Filter returns the calls with the given op, in order.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns the strings of all text calls, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Filter(OpText) {
		out = append(out, c.Text)
	}
	return out
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
