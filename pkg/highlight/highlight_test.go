package highlight_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/highlight"
)

func join(spans []highlight.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Kind == highlight.Newline {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func find(spans []highlight.Span, kind highlight.Kind) []string {
	var out []string
	for _, s := range spans {
		if s.Kind == kind {
			out = append(out, s.Text)
		}
	}
	return out
}

func TestTokenize_Go(t *testing.T) {
	t.Parallel()

	code := "func main() {\n\treturn\n}\n"
	spans, ok := highlight.New(false).Tokenize("go", code)
	require.True(t, ok)

	assert.Equal(t, code, join(spans), "spans reconstruct the source")
	assert.Contains(t, find(spans, highlight.Keyword), "func")
	assert.Contains(t, find(spans, highlight.Keyword), "return")
	assert.Len(t, find(spans, highlight.Newline), 3)
	assert.Equal(t, highlight.Newline, spans[len(spans)-1].Kind)

	for _, s := range spans {
		assert.NotContains(t, s.Text, "\n")
	}
}

func TestTokenize_PythonCategories(t *testing.T) {
	t.Parallel()

	spans, ok := highlight.New(false).Tokenize("python", "x = a and \"hi\"\n")
	require.True(t, ok)

	assert.Contains(t, find(spans, highlight.OperatorWord), "and")
	assert.Contains(t, strings.Join(find(spans, highlight.StringDouble), ""), "hi")
}

func TestTokenize_TrimsBlankLines(t *testing.T) {
	t.Parallel()

	spans, ok := highlight.New(false).Tokenize("go", "\n\nx := 1\n\n\n")
	require.True(t, ok)
	assert.Equal(t, "x := 1\n", join(spans))
}

func TestTokenize_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := highlight.New(false).Tokenize("definitely-not-a-language", "hello\n")
	assert.False(t, ok)
}

func TestTokenize_Detect(t *testing.T) {
	t.Parallel()

	code := "#!/usr/bin/env python3\nprint('x')\n"

	_, ok := highlight.New(false).Tokenize("mystery", code)
	assert.False(t, ok)

	spans, ok := highlight.New(true).Tokenize("mystery", code)
	require.True(t, ok)
	assert.Equal(t, code, join(spans))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "keyword", highlight.Keyword.String())
	assert.Equal(t, "plain", highlight.Plain.String())
	assert.Equal(t, "newline", highlight.Newline.String())
}
