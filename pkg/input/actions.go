package input

// Action is a logical navigation command.
type Action int

// Actions, in the order their on-screen chevrons are laid out.
const (
	PageDown Action = iota
	SectionLeft
	PageUp
	SectionRight
	Advance
	Retreat
)

// Actions lists every action.
func Actions() []Action {
	return []Action{PageDown, SectionLeft, PageUp, SectionRight, Advance, Retreat}
}

func (a Action) String() string {
	switch a {
	case PageDown:
		return "page-down"
	case SectionLeft:
		return "section-left"
	case PageUp:
		return "page-up"
	case SectionRight:
		return "section-right"
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// Triggered reports whether the bindings for a fired this frame. Keys
// repeat when held; gamepad buttons fire once per press.
func (t *Tracker) Triggered(a Action) bool {
	switch a {
	case PageDown:
		return t.Repeat(KeyDown) || t.Repeat(KeyJ) || t.Pressed(PadDown)
	case SectionLeft:
		return t.Repeat(KeyLeft) || t.Repeat(KeyH) || t.Pressed(PadLeft)
	case PageUp:
		return t.Repeat(KeyUp) || t.Repeat(KeyK) || t.Pressed(PadUp)
	case SectionRight:
		return t.Repeat(KeyRight) || t.Repeat(KeyL) || t.Pressed(PadRight)
	case Advance:
		return (t.Repeat(KeySpace) && !t.Btn(KeyShift)) || t.Pressed(PadA)
	case Retreat:
		return (t.Repeat(KeySpace) && t.Btn(KeyShift)) || t.Pressed(PadB)
	default:
		return false
	}
}
