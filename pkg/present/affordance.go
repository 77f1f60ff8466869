package present

import (
	"image"
	"math"

	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/input"
)

// chevronSlots gives each action its rotation slot; slot i points at
// 45+90i degrees, so 0 points down and 3 right.
var chevronSlots = []struct {
	action input.Action
	slot   int
}{
	{input.PageDown, 0},
	{input.SectionLeft, 1},
	{input.PageUp, 2},
	{input.SectionRight, 3},
	{input.Advance, 4},
	{input.Retreat, 6},
}

// Chevron is an on-screen navigation button: two strokes forming an
// arrow, hot when the pointer is over its bounding box.
type Chevron struct {
	Action input.Action
	Origin image.Point
	Lines  [2][2]image.Point
	Bounds image.Rectangle
	Hover  bool
}

func newChevron(action input.Action, slot int, origin image.Point) *Chevron {
	angle := float64(45*(1+2*slot)) * math.Pi / 180
	sin, cos := math.Sincos(angle)
	rotate := func(x, y float64) image.Point {
		return image.Pt(int(math.Round(x*cos-y*sin)), int(math.Round(x*sin+y*cos)))
	}

	c := &Chevron{Action: action, Origin: origin}
	c.Lines[0] = [2]image.Point{rotate(9, 9), rotate(2, 9)}
	c.Lines[1] = [2]image.Point{rotate(9, 9), rotate(9, 2)}

	// Advance and retreat are smaller arrows pulled toward the centre.
	var shift [2]int
	switch action {
	case input.Advance:
		shift = [2]int{-9, -6}
	case input.Retreat:
		shift = [2]int{9, 6}
	}
	for i := range c.Lines {
		c.Lines[i][0].Y += shift[0]
		c.Lines[i][1].Y += shift[1]
	}

	minP, maxP := c.Lines[0][0], c.Lines[0][0]
	for _, line := range c.Lines {
		for _, p := range line {
			minP = image.Pt(min(minP.X, p.X), min(minP.Y, p.Y))
			maxP = image.Pt(max(maxP.X, p.X), max(maxP.Y, p.Y))
		}
	}
	c.Bounds = image.Rectangle{Min: minP, Max: maxP}

	return c
}

// Chevrons builds the six navigation buttons around origin.
func Chevrons(origin image.Point) []*Chevron {
	out := make([]*Chevron, 0, len(chevronSlots))
	for _, s := range chevronSlots {
		out = append(out, newChevron(s.action, s.slot, origin))
	}
	return out
}

// Over reports whether window point (x, y) is over the chevron. The
// bounds are inclusive.
func (c *Chevron) Over(x, y int) bool {
	p := image.Pt(x, y).Sub(c.Origin)
	return c.Bounds.Min.X <= p.X && p.X <= c.Bounds.Max.X &&
		c.Bounds.Min.Y <= p.Y && p.Y <= c.Bounds.Max.Y
}

// Draw strokes the chevron.
func (c *Chevron) Draw(f *canvas.Frame, idle, active int) {
	col := idle
	if c.Hover {
		col = active
	}
	for _, line := range c.Lines {
		a, b := line[0].Add(c.Origin), line[1].Add(c.Origin)
		f.Line(a.X, a.Y, b.X, b.Y, col)
	}
}
