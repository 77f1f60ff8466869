package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/yaklabco/pixdeck/pkg/input"
)

//nolint:gochecknoglobals // Read-only lookup table.
var keyBindings = map[glfw.Key]input.Button{
	glfw.KeyUp:           input.KeyUp,
	glfw.KeyDown:         input.KeyDown,
	glfw.KeyLeft:         input.KeyLeft,
	glfw.KeyRight:        input.KeyRight,
	glfw.KeyH:            input.KeyH,
	glfw.KeyJ:            input.KeyJ,
	glfw.KeyK:            input.KeyK,
	glfw.KeyL:            input.KeyL,
	glfw.KeyQ:            input.KeyQ,
	glfw.KeyR:            input.KeyR,
	glfw.KeySpace:        input.KeySpace,
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeyLeftShift:    input.KeyShift,
	glfw.KeyRightShift:   input.KeyShift,
	glfw.KeyLeftControl:  input.KeyCtrl,
	glfw.KeyRightControl: input.KeyCtrl,
}

//nolint:gochecknoglobals // Read-only lookup table.
var padBindings = map[glfw.GamepadButton]input.Button{
	glfw.ButtonDpadUp:    input.PadUp,
	glfw.ButtonDpadDown:  input.PadDown,
	glfw.ButtonDpadLeft:  input.PadLeft,
	glfw.ButtonDpadRight: input.PadRight,
	glfw.ButtonA:         input.PadA,
	glfw.ButtonB:         input.PadB,
}

// devices polls keyboard, mouse and the first gamepad.
type devices struct {
	win   *glfw.Window
	scale int
}

func (d *devices) snapshot() input.State {
	var s input.State

	for key, b := range keyBindings {
		if d.win.GetKey(key) == glfw.Press {
			s.Down = s.Down.With(b)
		}
	}

	if d.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		s.Down = s.Down.With(input.MouseLeft)
	}
	x, y := d.win.GetCursorPos()
	s.MouseX, s.MouseY = int(x)/d.scale, int(y)/d.scale

	if glfw.Joystick1.IsGamepad() {
		if pad := glfw.Joystick1.GetGamepadState(); pad != nil {
			for btn, b := range padBindings {
				if pad.Buttons[btn] == glfw.Press {
					s.Down = s.Down.With(b)
				}
			}
		}
	}

	return s
}
