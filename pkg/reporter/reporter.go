// Package reporter prints deck outlines.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/pixdeck/pkg/deck"
)

// DeckOutline is the outline of one loaded deck.
type DeckOutline struct {
	Path     string
	Pages    int
	Sections int
	Slides   []deck.OutlineEntry
}

// NewDeckOutline summarises d.
func NewDeckOutline(d *deck.Deck) DeckOutline {
	return DeckOutline{
		Path:     d.Path,
		Pages:    d.Len(),
		Sections: len(d.SectionStarts),
		Slides:   d.Outline(),
	}
}

// Reporter writes deck outlines.
type Reporter interface {
	Report(ctx context.Context, outlines []DeckOutline) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
