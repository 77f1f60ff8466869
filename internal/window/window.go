// Package window opens the presentation window and runs the frame loop:
// device input is polled into an input.State, handed to the presenter, and
// the composited frame is uploaded to a GL texture scaled up with nearest
// filtering.
package window

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/input"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// Presenter is the per-frame driver the window runs.
type Presenter interface {
	Tick(state input.State, now time.Time) error
	Draw() (*canvas.Frame, error)
	Quit() bool
}

// Options sizes and titles the window.
type Options struct {
	Title string

	// Width and Height are the frame size in pixels before scaling.
	Width, Height int

	// Scale is the integer magnification.
	Scale int

	// FPS caps the frame rate.
	FPS int

	Logger *log.Logger
}

// Run opens the window and drives p until it quits, the window is closed
// or ctx is cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, p Presenter, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	scale := max(opts.Scale, 1)
	fps := max(opts.FPS, 1)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(opts.Width*scale, opts.Height*scale, opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	logger.Debug("window opened",
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		logging.FieldScale, scale,
		logging.FieldFPS, fps)

	r, err := newRenderer(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer r.close()

	dev := &devices{win: win, scale: scale}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for !win.ShouldClose() && !p.Quit() {
		if err := ctx.Err(); err != nil {
			return err
		}

		glfw.PollEvents()
		if err := p.Tick(dev.snapshot(), time.Now()); err != nil {
			return fmt.Errorf("tick: %w", err)
		}

		frame, err := p.Draw()
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		r.present(frame.Image(), win.GetFramebufferSize)
		win.SwapBuffers()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}
