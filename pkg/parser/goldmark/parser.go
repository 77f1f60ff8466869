// Package goldmark turns deck markdown into an mdast tree using goldmark.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/pixdeck/pkg/mdast"
)

// Options configures the parser.
type Options struct {
	// Linkify turns bare URLs and www. addresses into links.
	Linkify bool
}

// Parser parses deck markdown with goldmark.
type Parser struct {
	md goldmark.Markdown
}

// New creates a parser. Strikethrough is always enabled so that "~~x~~"
// does not leak tildes onto slides.
func New(opts Options) *Parser {
	exts := []goldmark.Extender{extension.Strikethrough}
	if opts.Linkify {
		exts = append(exts, extension.Linkify)
	}

	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(exts...)),
	}
}

// Parse converts raw Markdown bytes into an mdast document.
func (p *Parser) Parse(ctx context.Context, content []byte) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	src := copyContent(content)
	gmDoc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return newMapper(src).mapDocument(gmDoc), nil
}

// copyContent creates a copy of the content slice; goldmark segments point
// into it for the lifetime of the mapping.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
