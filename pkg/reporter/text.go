package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/pixdeck/internal/ui/pretty"
)

// TextReporter prints one line per slide.
type TextReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, outlines []DeckOutline) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for i, o := range outlines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatDeckHeader(o.Path, o.Pages, o.Sections))
		for _, e := range o.Slides {
			fmt.Fprintln(r.bw, r.styles.FormatSlide(e))
		}
	}
	return nil
}
