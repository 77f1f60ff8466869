package layout

import (
	"strings"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/highlight"
	"github.com/yaklabco/pixdeck/pkg/mdast"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

const tabWidth = 4

func (v *visitor) codeBlock(n *mdast.Node) error {
	var info string
	if n.Block != nil && n.Block.CodeBlock != nil {
		info = n.Block.CodeBlock.Info
	}
	content := n.Literal()

	if d, ok := directive.Parse(info, content); ok {
		return v.directive(d)
	}
	content = expandTabs(content)

	colors := v.e.theme.Colors
	return v.withFont(theme.Literal, func() error {
		return v.withColor(colors.CodeBlockFG, canvas.NoColor, func() error {
			return v.withAlign(AlignLeft, func() error {
				return v.fence(info, content)
			})
		})
	})
}

// fence paints a code block: a background box one line taller than the
// code, then the code inset by the code padding.
func (v *visitor) fence(info, content string) error {
	lines := splitLines(content)
	f := v.font()
	lh := f.Height

	widest := 0
	for _, line := range lines {
		widest = max(widest, f.Width(line))
	}
	v.s.Rect(v.x, v.y, lh+widest, lh+len(lines)*lh, v.e.theme.Colors.CodeBlockBG)

	return v.withIndent(v.e.cfg.Layout.CodePadding, func() error {
		v.y += lh / 2
		v.lineStart = true

		done, err := v.highlighted(language(info), content)
		if err != nil {
			return err
		}
		if !done {
			for _, line := range lines {
				if line != "" {
					v.draw(line)
				}
				v.crlf(gapNone)
			}
		}

		v.y += v.e.cfg.Layout.LineHeight / 2
		return nil
	})
}

// highlighted draws content coloured by token category. It returns false
// when there is no language or no lexer for it.
func (v *visitor) highlighted(lang, content string) (bool, error) {
	if lang == "" || v.e.highlighter == nil {
		return false, nil
	}

	spans, ok := v.e.highlighter.Tokenize(lang, content)
	if !ok {
		v.logger.Debug("no highlighter for language", logging.FieldLanguage, lang)
		return false, nil
	}

	colors := v.e.theme.Colors
	for _, span := range spans {
		var err error
		switch span.Kind {
		case highlight.Newline:
			v.crlf(gapNone)
		case highlight.Keyword:
			err = v.span(colors.Keyword, span.Text)
		case highlight.OperatorWord:
			err = v.span(colors.OperatorWord, span.Text)
		case highlight.StringDouble:
			err = v.span(colors.StringDouble, span.Text)
		case highlight.Plain:
			v.draw(span.Text)
		}
		if err != nil {
			return true, err
		}
	}
	return true, nil
}

func (v *visitor) span(col int, text string) error {
	return v.withColor(col, canvas.NoColor, func() error {
		v.draw(text)
		return nil
	})
}

// expandTabs replaces tabs with spaces up to the next multiple of tabWidth
// columns.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// language returns the first word of a fence info string.
func language(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitLines splits s into lines without their terminators. A final line
// terminator does not start another line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
