// Package theme holds the named fonts and the palette a deck is drawn with.
package theme

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
)

// Role names a font slot.
type Role string

// Font roles.
const (
	Title     Role = "title"
	PageTitle Role = "pagetitle"
	Default   Role = "default"
	Strong    Role = "strong"
	Em        Role = "em"
	Literal   Role = "literal"
)

// Roles lists every font role.
func Roles() []Role {
	return []Role{Title, PageTitle, Default, Strong, Em, Literal}
}

// Font is a face plus its line metrics.
type Font struct {
	Role Role
	Face font.Face

	// Height is the glyph box height (ascent + descent) in pixels.
	Height int
}

// Width returns the advance width of s in pixels.
func (f *Font) Width(s string) int {
	return font.MeasureString(f.Face, s).Ceil()
}

// Theme is the font and colour registry for one renderer. Faces are not
// safe for concurrent use, so each goroutine rendering slides needs its own
// Theme.
type Theme struct {
	Palette canvas.Palette
	Colors  config.ColorRoles
	fonts   map[Role]*Font
}

// New builds a theme from configuration.
func New(cfg *config.Config) (*Theme, error) {
	pal, err := canvas.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}

	specs := map[Role]config.FontSpec{
		Title:     cfg.Fonts.Title,
		PageTitle: cfg.Fonts.PageTitle,
		Default:   cfg.Fonts.Default,
		Strong:    cfg.Fonts.Strong,
		Em:        cfg.Fonts.Em,
		Literal:   cfg.Fonts.Literal,
	}

	t := &Theme{
		Palette: pal,
		Colors:  cfg.Colors,
		fonts:   make(map[Role]*Font, len(specs)),
	}

	parsed := make(map[string]*opentype.Font)
	for role, spec := range specs {
		face, err := loadFace(role, spec, parsed)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", role, err)
		}
		m := face.Metrics()
		t.fonts[role] = &Font{
			Role:   role,
			Face:   face,
			Height: (m.Ascent + m.Descent).Ceil(),
		}
	}

	return t, nil
}

// Font returns the font for role, falling back to the default font.
func (t *Theme) Font(role Role) *Font {
	if f, ok := t.fonts[role]; ok {
		return f
	}
	return t.fonts[Default]
}

// Close releases the font faces.
func (t *Theme) Close() error {
	for _, f := range t.fonts {
		if err := f.Face.Close(); err != nil {
			return err
		}
	}
	return nil
}

func loadFace(role Role, spec config.FontSpec, parsed map[string]*opentype.Font) (font.Face, error) {
	key := spec.Path
	if key == "" {
		key = "builtin:" + string(role)
	}

	otf, ok := parsed[key]
	if !ok {
		data, err := fontData(role, spec.Path)
		if err != nil {
			return nil, err
		}
		otf, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		parsed[key] = otf
	}

	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

func fontData(role Role, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		return data, nil
	}

	switch role {
	case Title, PageTitle, Strong:
		return gobold.TTF, nil
	case Em:
		return goitalic.TTF, nil
	case Literal:
		return gomono.TTF, nil
	default:
		return goregular.TTF, nil
	}
}
