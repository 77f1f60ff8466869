// Package input turns per-frame device snapshots into button edges with
// key repeat, and maps them onto the six navigation actions.
package input

// Button identifies a keyboard key, gamepad button or mouse button.
type Button uint8

// Buttons known to the frame driver.
const (
	KeyUp Button = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyQ
	KeyR
	KeySpace
	KeyShift
	KeyCtrl
	KeyEscape

	PadUp
	PadDown
	PadLeft
	PadRight
	PadA
	PadB

	MouseLeft

	buttonCount
)

// Set is a set of buttons held down.
type Set uint64

// With returns s with b added.
func (s Set) With(b Button) Set {
	return s | 1<<b
}

// Has reports whether b is in s.
func (s Set) Has(b Button) bool {
	return s&(1<<b) != 0
}

// State is one frame's device snapshot. Mouse coordinates are window
// pixels after undoing the display scale.
type State struct {
	Down   Set
	MouseX int
	MouseY int
}

// Press returns a State with the given buttons down.
func Press(buttons ...Button) State {
	var s State
	for _, b := range buttons {
		s.Down = s.Down.With(b)
	}
	return s
}

// At returns a copy of s with the mouse at (x, y).
func (s State) At(x, y int) State {
	s.MouseX, s.MouseY = x, y
	return s
}

// Tracker derives press edges and key repeat from successive States.
type Tracker struct {
	hold   int
	repeat int
	frame  int
	state  State

	// held counts frames since each button went down; -1 when up.
	held [buttonCount]int
}

// NewTracker creates a tracker. A held button repeats after hold frames,
// then every repeat frames.
func NewTracker(hold, repeat int) *Tracker {
	t := &Tracker{hold: hold, repeat: repeat}
	for i := range t.held {
		t.held[i] = -1
	}
	return t
}

// Update advances one frame.
func (t *Tracker) Update(s State) {
	t.frame++
	t.state = s
	for b := Button(0); b < buttonCount; b++ {
		switch {
		case !s.Down.Has(b):
			t.held[b] = -1
		default:
			t.held[b]++
		}
	}
}

// Frame returns the number of updates so far.
func (t *Tracker) Frame() int {
	return t.frame
}

// Btn reports whether b is down.
func (t *Tracker) Btn(b Button) bool {
	return t.state.Down.Has(b)
}

// Pressed reports whether b went down this frame.
func (t *Tracker) Pressed(b Button) bool {
	return t.held[b] == 0
}

// Repeat reports a press edge, then a repeat every repeat frames once b has
// been held for hold frames.
func (t *Tracker) Repeat(b Button) bool {
	d := t.held[b]
	if d < 0 {
		return false
	}
	if d == 0 {
		return true
	}
	if t.hold <= 0 || t.repeat <= 0 || d < t.hold {
		return false
	}
	return (d-t.hold)%t.repeat == 0
}

// Mouse returns the pointer position.
func (t *Tracker) Mouse() (int, int) {
	return t.state.MouseX, t.state.MouseY
}

// Clicked reports a left-button press edge.
func (t *Tracker) Clicked() bool {
	return t.Pressed(MouseLeft)
}

// Chord reports a press of b while modifier is held.
func (t *Tracker) Chord(modifier, b Button) bool {
	return t.Btn(modifier) && t.Pressed(b)
}
