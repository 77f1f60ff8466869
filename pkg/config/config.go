// Package config defines core configuration types for pixdeck.
// These types are pure data structures; discovery and layering live in
// internal/configloader.
package config

// OutputFormat specifies the output format for deck outlines.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// CanvasConfig sizes the slide canvas and the window border around it.
type CanvasConfig struct {
	// Width and Height are the slide bitmap size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Padding is the border between the window edge and the slide.
	Padding int `yaml:"padding"`
}

// LayoutConfig holds the constants of the markdown layout engine.
type LayoutConfig struct {
	// ParagraphMargin is the extra gap after a paragraph, as a fraction of
	// the active glyph height.
	ParagraphMargin float64 `yaml:"paragraph_margin"`

	// WrapMargin is the extra gap inserted when a line wraps. It must be
	// smaller than ParagraphMargin.
	WrapMargin float64 `yaml:"wrap_margin"`

	// ListIndent is the indentation pushed by each list level.
	ListIndent int `yaml:"list_indent"`

	// CodePadding is the left padding of fenced code blocks.
	CodePadding int `yaml:"code_padding"`

	// LineHeight is the nominal line height used for trailing code block gaps.
	LineHeight int `yaml:"line_height"`

	// BulletMarkers are the bullet glyphs by nesting depth (first entry is depth 1).
	BulletMarkers []string `yaml:"bullet_markers"`

	// HeadingMarker is drawn before h3 page titles.
	HeadingMarker string `yaml:"heading_marker"`
}

// FontSpec selects a face. An empty Path uses the embedded Go font for the role.
type FontSpec struct {
	Path string  `yaml:"path,omitempty"`
	Size float64 `yaml:"size"`
}

// FontsConfig names the face used for each text role.
type FontsConfig struct {
	Title     FontSpec `yaml:"title"`
	PageTitle FontSpec `yaml:"pagetitle"`
	Default   FontSpec `yaml:"default"`
	Strong    FontSpec `yaml:"strong"`
	Em        FontSpec `yaml:"em"`
	Literal   FontSpec `yaml:"literal"`
}

// ColorRoles maps drawing roles to palette indices.
type ColorRoles struct {
	Text         int `yaml:"text"`
	Background   int `yaml:"background"`
	Emphasis     int `yaml:"emphasis"`
	Strong       int `yaml:"strong"`
	Link         int `yaml:"link"`
	CodeFG       int `yaml:"code_fg"`
	CodeBG       int `yaml:"code_bg"`
	CodeBlockFG  int `yaml:"code_block_fg"`
	CodeBlockBG  int `yaml:"code_block_bg"`
	Keyword      int `yaml:"keyword"`
	OperatorWord int `yaml:"operator_word"`
	StringDouble int `yaml:"string_double"`
	Window       int `yaml:"window"`
	NavIdle      int `yaml:"nav_idle"`
	NavActive    int `yaml:"nav_active"`
	Overlay      int `yaml:"overlay"`
	ChildFrame   int `yaml:"child_frame"`
	Walker       int `yaml:"walker"`
}

// ParserConfig controls markdown parsing.
type ParserConfig struct {
	// Linkify turns bare URLs into links.
	Linkify bool `yaml:"linkify"`
}

// HighlightConfig controls fenced code highlighting.
type HighlightConfig struct {
	Enabled bool `yaml:"enabled"`

	// DetectLanguage guesses the lexer from the code when the fence's
	// language tag is not recognised.
	DetectLanguage bool `yaml:"detect_language"`
}

// FigureConfig holds defaults for the figure directive.
type FigureConfig struct {
	AppWidth  int `yaml:"app_width"`
	AppHeight int `yaml:"app_height"`
}

// PresentConfig controls the interactive frame driver.
type PresentConfig struct {
	Title string `yaml:"title"`

	// FPS is the target frame rate.
	FPS int `yaml:"fps"`

	// Scale is the integer window magnification.
	Scale int `yaml:"scale"`

	// KeyHold and KeyRepeat are in frames.
	KeyHold   int `yaml:"key_hold"`
	KeyRepeat int `yaml:"key_repeat"`

	// TransitionRate is the progress decay per second.
	TransitionRate float64 `yaml:"transition_rate"`

	ShowFPS bool `yaml:"show_fps"`
	Walker  bool `yaml:"walker"`
}

// ExportConfig controls offline rendering.
type ExportConfig struct {
	Dir string `yaml:"dir"`
	GIF bool   `yaml:"gif"`

	// HoldFrames is how long each page stays still in a walkthrough GIF.
	HoldFrames int `yaml:"hold_frames"`
}

// Config is the root configuration structure for pixdeck.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Layout    LayoutConfig    `yaml:"layout"`
	Fonts     FontsConfig     `yaml:"fonts"`
	Palette   []string        `yaml:"palette"`
	Colors    ColorRoles      `yaml:"colors"`
	Parser    ParserConfig    `yaml:"parser"`
	Highlight HighlightConfig `yaml:"highlight"`
	Figure    FigureConfig    `yaml:"figure"`
	Present   PresentConfig   `yaml:"present"`
	Export    ExportConfig    `yaml:"export"`

	// Ignore contains glob patterns for decks to skip during export.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the outline output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel export workers.
	Jobs int `yaml:"-"`
}

// DefaultPalette is the 16-colour table used when none is configured.
func DefaultPalette() []string {
	return []string{
		"#000000", "#2B335F", "#7E2072", "#19959C",
		"#8B4852", "#395C98", "#A9C1FF", "#EEEEEE",
		"#D4186C", "#D38441", "#E9C35B", "#70C6A9",
		"#7696DE", "#A3A3A3", "#FF9798", "#EDC7B0",
	}
}

// DefaultBulletMarkers returns the bullet glyphs by depth.
func DefaultBulletMarkers() []string {
	return []string{"●", "○", "■", "▲", "▼", "▪"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:   384,
			Height:  216,
			Padding: 9,
		},
		Layout: LayoutConfig{
			ParagraphMargin: 0.5,
			WrapMargin:      0.25,
			ListIndent:      9,
			CodePadding:     9,
			LineHeight:      18,
			BulletMarkers:   DefaultBulletMarkers(),
			HeadingMarker:   "# ",
		},
		Fonts: FontsConfig{
			Title:     FontSpec{Size: 24},
			PageTitle: FontSpec{Size: 16},
			Default:   FontSpec{Size: 12},
			Strong:    FontSpec{Size: 12},
			Em:        FontSpec{Size: 12},
			Literal:   FontSpec{Size: 12},
		},
		Palette: DefaultPalette(),
		Colors: ColorRoles{
			Text:         0,
			Background:   7,
			Emphasis:     9,
			Strong:       4,
			Link:         5,
			CodeFG:       1,
			CodeBG:       6,
			CodeBlockFG:  7,
			CodeBlockBG:  0,
			Keyword:      6,
			OperatorWord: 2,
			StringDouble: 10,
			Window:       7,
			NavIdle:      5,
			NavActive:    9,
			Overlay:      13,
			ChildFrame:   8,
			Walker:       1,
		},
		Parser:    ParserConfig{Linkify: true},
		Highlight: HighlightConfig{Enabled: true},
		Figure: FigureConfig{
			AppWidth:  355,
			AppHeight: 200,
		},
		Present: PresentConfig{
			Title:          "pixdeck",
			FPS:            30,
			Scale:          3,
			KeyHold:        15,
			KeyRepeat:      1,
			TransitionRate: 3,
			Walker:         true,
		},
		Export: ExportConfig{
			Dir:        "dist",
			HoldFrames: 30,
		},
		Format: FormatText,
	}
}

// WindowSize returns the full window size: the canvas plus padding on the
// left, right and top edges.
func (c *Config) WindowSize() (int, int) {
	return c.Canvas.Width + c.Canvas.Padding*2, c.Canvas.Height + c.Canvas.Padding
}
