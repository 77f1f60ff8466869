package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/parser/goldmark"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

func newTestVisitor(t *testing.T, src string) *visitor {
	t.Helper()

	cfg := config.NewConfig()
	th, err := theme.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = th.Close() })

	doc, err := goldmark.New(goldmark.Options{}).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	ss := deck.Split("", doc)
	require.NotEmpty(t, ss)

	return newVisitor(context.Background(), New(cfg, th), ss[0], canvas.NewRecorder(384, 216))
}

func TestVisitor_BalancedDetectsLeaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		leak func(v *visitor)
	}{
		{name: "font", leak: func(v *visitor) { v.fonts = append(v.fonts, theme.Strong) }},
		{name: "color", leak: func(v *visitor) { v.colors = append(v.colors, colorPair{fg: 1, bg: canvas.NoColor}) }},
		{name: "indent", leak: func(v *visitor) { v.indents = append(v.indents, 9) }},
		{name: "list", leak: func(v *visitor) { v.lists = append(v.lists, listContext{next: 1}) }},
		{name: "link", leak: func(v *visitor) { v.link = &pendingLink{url: "https://go.dev"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestVisitor(t, "# A\n")
			require.NoError(t, v.balanced())

			tt.leak(v)
			require.ErrorIs(t, v.balanced(), ErrUnbalanced)
		})
	}
}

func TestVisitor_GuardsRestoreOnError(t *testing.T) {
	t.Parallel()

	v := newTestVisitor(t, "# A\n")
	errBody := errors.New("body failed")

	err := v.withIndent(9, func() error {
		return v.withFont(theme.Literal, func() error {
			return v.withColor(3, 4, func() error {
				return v.withAlign(AlignRight, func() error {
					assert.Equal(t, 9, v.x)
					assert.Equal(t, theme.Literal, v.fonts[len(v.fonts)-1])
					assert.Equal(t, colorPair{fg: 3, bg: 4}, v.color())
					return errBody
				})
			})
		})
	})

	require.ErrorIs(t, err, errBody)
	assert.Equal(t, []int{0}, v.indents)
	assert.Equal(t, 0, v.x)
	assert.Equal(t, AlignLeft, v.align)
	require.NoError(t, v.balanced())
}

func TestVisitor_NestedContentUnwinds(t *testing.T) {
	t.Parallel()

	src := "### Nested\n\n" +
		"- *one* and **two**\n" +
		"  1. [inner](https://go.dev) `code`\n" +
		"     - deepest *level*\n" +
		"- back out\n\n" +
		"```go\nfunc main() {}\n```\n\n" +
		"Closing paragraph.\n"
	v := newTestVisitor(t, src)

	require.NoError(t, v.children(v.slide.Root))
	require.NoError(t, v.balanced())

	assert.Equal(t, []int{0}, v.indents)
	assert.Equal(t, []theme.Role{theme.Default}, v.fonts)
	assert.Equal(t, v.e.theme.Colors.Text, v.color().fg)
	assert.Equal(t, 0, v.x)
	assert.Len(t, v.links, 1)
}
