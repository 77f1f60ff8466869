// Package bounce is a small demo applet: a ball bouncing inside its frame.
// The arrow keys push the ball and space pauses it.
package bounce

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/input"
)

// Name is the registry name of the applet.
const Name = "bounce"

const (
	colorBackground = iota
	colorBall
	colorTrail
	colorBorder
)

const (
	defaultRadius = 6
	defaultSpeed  = 2
	maxSpeed      = 8
)

func init() {
	applet.DefaultRegistry.Register(Name, New)
}

var palette = canvas.Palette{
	{R: 0x1D, G: 0x2B, B: 0x53, A: 0xFF},
	{R: 0xFF, G: 0xEC, B: 0x27, A: 0xFF},
	{R: 0x7E, G: 0x25, B: 0x53, A: 0xFF},
	{R: 0xC2, G: 0xC3, B: 0xC7, A: 0xFF},
}

// Ball is the bounce applet.
type Ball struct {
	width, height int
	radius        int
	x, y          int
	vx, vy        int
	paused        bool
	screen        *canvas.Bitmap
}

// New constructs the applet. Recognised options are "radius" and "speed".
func New(width, height int, options map[string]string) (applet.App, error) { //nolint:ireturn // registry factory
	radius, err := intOption(options, "radius", defaultRadius)
	if err != nil {
		return nil, err
	}
	speed, err := intOption(options, "speed", defaultSpeed)
	if err != nil {
		return nil, err
	}
	if width < 2*radius || height < 2*radius {
		return nil, fmt.Errorf("%dx%d is too small for radius %d", width, height, radius)
	}

	return &Ball{
		width:  width,
		height: height,
		radius: radius,
		x:      width / 2,
		y:      height / 2,
		vx:     speed,
		vy:     speed,
		screen: canvas.NewBitmap(width, height, palette),
	}, nil
}

func intOption(options map[string]string, key string, def int) (int, error) {
	raw, ok := options[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("option %s: %q is not a positive integer", key, raw)
	}
	return n, nil
}

// Palette implements applet.Paletted.
func (b *Ball) Palette() canvas.Palette {
	return palette
}

// Position returns the ball centre.
func (b *Ball) Position() (int, int) {
	return b.x, b.y
}

// Paused reports whether the ball is frozen.
func (b *Ball) Paused() bool {
	return b.paused
}

// Update advances the ball one frame.
func (b *Ball) Update(in *input.Tracker) {
	if in.Pressed(input.KeySpace) || in.Pressed(input.PadA) {
		b.paused = !b.paused
	}
	if b.paused {
		return
	}

	switch {
	case in.Btn(input.KeyLeft):
		b.vx = clamp(b.vx-1, -maxSpeed, maxSpeed)
	case in.Btn(input.KeyRight):
		b.vx = clamp(b.vx+1, -maxSpeed, maxSpeed)
	}
	switch {
	case in.Btn(input.KeyUp):
		b.vy = clamp(b.vy-1, -maxSpeed, maxSpeed)
	case in.Btn(input.KeyDown):
		b.vy = clamp(b.vy+1, -maxSpeed, maxSpeed)
	}

	b.x, b.vx = bounce(b.x+b.vx, b.vx, b.radius, b.width-1-b.radius)
	b.y, b.vy = bounce(b.y+b.vy, b.vy, b.radius, b.height-1-b.radius)
}

// Render draws the current frame.
func (b *Ball) Render() *canvas.Bitmap {
	b.screen.Clear(colorBackground)
	b.screen.RectB(0, 0, b.width, b.height, colorBorder)
	b.screen.Line(b.x-b.vx*3, b.y-b.vy*3, b.x, b.y, colorTrail)
	r := b.radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				b.screen.Set(b.x+dx, b.y+dy, colorBall)
			}
		}
	}
	return b.screen
}

func bounce(pos, vel, lo, hi int) (int, int) {
	switch {
	case pos < lo:
		return lo + (lo - pos), -vel
	case pos > hi:
		return hi - (pos - hi), -vel
	default:
		return pos, vel
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
