// Package highlight splits fenced code into coloured spans using chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Kind is the colour category of a span.
type Kind int

// Span kinds.
const (
	Plain Kind = iota
	Keyword
	OperatorWord
	StringDouble

	// Newline ends the current line; its Text is empty.
	Newline
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case OperatorWord:
		return "operator-word"
	case StringDouble:
		return "string-double"
	case Newline:
		return "newline"
	default:
		return "plain"
	}
}

// Span is one run of text in a single colour category.
type Span struct {
	Kind Kind
	Text string
}

// Highlighter tokenises code for a fence language tag.
type Highlighter struct {
	detect bool
}

// New creates a highlighter. With detect set, code whose tag is unknown is
// classified by content.
func New(detect bool) *Highlighter {
	return &Highlighter{detect: detect}
}

// Lexer resolves the chroma lexer for tag, or nil.
func (h *Highlighter) Lexer(tag, code string) chroma.Lexer { //nolint:ireturn // chroma's lexer interface
	if lexer := lexers.Get(tag); lexer != nil {
		return lexer
	}

	if name, ok := resolveAlias(tag); ok {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}

	if h.detect {
		if name, ok := detect([]byte(code)); ok {
			return lexers.Get(name)
		}
	}

	return nil
}

// Tokenize splits code into spans. It returns false when no lexer matches
// tag. Leading and trailing blank lines are dropped and the result always
// ends with a Newline span.
func (h *Highlighter) Tokenize(tag, code string) ([]Span, bool) {
	lexer := h.Lexer(tag, code)
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	source := strings.Trim(code, "\r\n") + "\n"
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, false
	}

	var spans []Span
	for _, tok := range it.Tokens() {
		kind := classify(tok.Type)
		lines := strings.Split(tok.Value, "\n")
		for i, part := range lines {
			if i > 0 {
				spans = append(spans, Span{Kind: Newline})
			}
			if part != "" {
				spans = append(spans, Span{Kind: kind, Text: part})
			}
		}
	}

	if len(spans) == 0 || spans[len(spans)-1].Kind != Newline {
		spans = append(spans, Span{Kind: Newline})
	}

	return spans, true
}

func classify(t chroma.TokenType) Kind {
	switch {
	case t == chroma.OperatorWord:
		return OperatorWord
	case t == chroma.LiteralStringDouble:
		return StringDouble
	case t.InCategory(chroma.Keyword):
		return Keyword
	default:
		return Plain
	}
}
