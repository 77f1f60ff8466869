package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "colors.link").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) positive(field string, v int) {
	if v <= 0 {
		r.fail(field, v, "must be > 0")
	}
}

func (r *ValidationResult) nonNegative(field string, v int) {
	if v < 0 {
		r.fail(field, v, "must be >= 0")
	}
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	result.positive("canvas.width", cfg.Canvas.Width)
	result.positive("canvas.height", cfg.Canvas.Height)
	result.nonNegative("canvas.padding", cfg.Canvas.Padding)

	validateLayout(cfg, result)
	validateFonts(cfg, result)
	validateColors(cfg, result)

	result.positive("figure.app_width", cfg.Figure.AppWidth)
	result.positive("figure.app_height", cfg.Figure.AppHeight)

	result.positive("present.fps", cfg.Present.FPS)
	result.positive("present.scale", cfg.Present.Scale)
	result.nonNegative("present.key_hold", cfg.Present.KeyHold)
	result.nonNegative("present.key_repeat", cfg.Present.KeyRepeat)
	if cfg.Present.TransitionRate <= 0 {
		result.fail("present.transition_rate", cfg.Present.TransitionRate, "must be > 0")
	}

	result.nonNegative("export.hold_frames", cfg.Export.HoldFrames)

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func validateLayout(cfg *config.Config, result *ValidationResult) {
	l := cfg.Layout
	if l.WrapMargin < 0 {
		result.fail("layout.wrap_margin", l.WrapMargin, "must be >= 0")
	}
	// Wrapped lines must be told apart from new paragraphs.
	if l.ParagraphMargin <= l.WrapMargin {
		result.fail("layout.paragraph_margin", l.ParagraphMargin,
			"must be greater than layout.wrap_margin (%g)", l.WrapMargin)
	}
	result.nonNegative("layout.list_indent", l.ListIndent)
	result.nonNegative("layout.code_padding", l.CodePadding)
	result.positive("layout.line_height", l.LineHeight)
	if len(l.BulletMarkers) == 0 {
		result.fail("layout.bullet_markers", l.BulletMarkers, "at least one marker is required")
	}
}

func validateFonts(cfg *config.Config, result *ValidationResult) {
	specs := []struct {
		name string
		spec config.FontSpec
	}{
		{"title", cfg.Fonts.Title},
		{"pagetitle", cfg.Fonts.PageTitle},
		{"default", cfg.Fonts.Default},
		{"strong", cfg.Fonts.Strong},
		{"em", cfg.Fonts.Em},
		{"literal", cfg.Fonts.Literal},
	}
	for _, s := range specs {
		field := "fonts." + s.name
		if s.spec.Size <= 0 {
			result.fail(field+".size", s.spec.Size, "must be > 0")
		}
		if s.spec.Path != "" {
			if _, err := os.Stat(s.spec.Path); err != nil {
				result.fail(field+".path", s.spec.Path, "font file not readable: %v", err)
			}
		}
	}
}

func validateColors(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Palette) == 0 || len(cfg.Palette) > canvas.MaxColors {
		result.fail("palette", len(cfg.Palette), "must have between 1 and %d entries", canvas.MaxColors)
		return
	}
	for i, entry := range cfg.Palette {
		if _, err := canvas.ParseHex(entry); err != nil {
			result.fail(fmt.Sprintf("palette[%d]", i), entry, "%v", err)
		}
	}

	c := cfg.Colors
	roles := []struct {
		name string
		idx  int
	}{
		{"text", c.Text}, {"background", c.Background},
		{"emphasis", c.Emphasis}, {"strong", c.Strong}, {"link", c.Link},
		{"code_fg", c.CodeFG}, {"code_bg", c.CodeBG},
		{"code_block_fg", c.CodeBlockFG}, {"code_block_bg", c.CodeBlockBG},
		{"keyword", c.Keyword}, {"operator_word", c.OperatorWord}, {"string_double", c.StringDouble},
		{"window", c.Window}, {"nav_idle", c.NavIdle}, {"nav_active", c.NavActive},
		{"overlay", c.Overlay}, {"child_frame", c.ChildFrame}, {"walker", c.Walker},
	}
	for _, r := range roles {
		if r.idx < 0 || r.idx >= len(cfg.Palette) {
			result.fail("colors."+r.name, r.idx, "index out of palette range [0, %d)", len(cfg.Palette))
		}
	}

	if c.Text == c.Background {
		result.warn("colors.text", c.Text, "text and background use the same colour")
	}
}

// validateIgnorePatterns checks that ignore patterns compile.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if pattern == "" {
			result.warn(fmt.Sprintf("ignore[%d]", i), pattern, "empty ignore pattern")
			continue
		}
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}
