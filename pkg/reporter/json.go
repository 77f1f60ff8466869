package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pixdeck/pkg/deck"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Decks []JSONDeck `json:"decks"`
}

// JSONDeck is one deck's outline.
type JSONDeck struct {
	Path     string              `json:"path"`
	Pages    int                 `json:"pages"`
	Sections int                 `json:"sections"`
	Slides   []deck.OutlineEntry `json:"slides"`
}

// JSONReporter formats outlines as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, outlines []DeckOutline) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := JSONOutput{Decks: make([]JSONDeck, 0, len(outlines))}
	for _, o := range outlines {
		slides := o.Slides
		if slides == nil {
			slides = []deck.OutlineEntry{}
		}
		out.Decks = append(out.Decks, JSONDeck{
			Path:     o.Path,
			Pages:    o.Pages,
			Sections: o.Sections,
			Slides:   slides,
		})
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
