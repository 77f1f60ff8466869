// Package applet defines the contract for interactive mini-applications
// embedded in slides, the registry of built-in applets, and the host that
// owns their instances per page.
package applet

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/input"
)

// ErrUnknownApp is returned when a descriptor names an unregistered applet.
var ErrUnknownApp = errors.New("unknown applet")

// App is an embedded mini-application. Update is only called while the
// pointer is over the app and no transition is running.
type App interface {
	Update(in *input.Tracker)
	Render() *canvas.Bitmap
}

// Paletted is implemented by apps that draw with their own colour table.
type Paletted interface {
	Palette() canvas.Palette
}

// Factory constructs an app with the given logical size. Options come from
// the app descriptor.
type Factory func(width, height int, options map[string]string) (App, error)

// Registry maps applet names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. An existing factory with the same name is replaced.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New constructs the app registered under name.
func (r *Registry) New(name string, width, height int, options map[string]string) (App, error) { //nolint:ireturn // factories return the interface
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownApp, name)
	}
	app, err := f(width, height, options)
	if err != nil {
		return nil, fmt.Errorf("applet %s: %w", name, err)
	}
	return app, nil
}

// DefaultRegistry is the global registry for built-in applets.
// Applets register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for applet registration
var DefaultRegistry = NewRegistry()
