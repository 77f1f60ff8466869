package nav_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/input"
	"github.com/yaklabco/pixdeck/pkg/layout"
	"github.com/yaklabco/pixdeck/pkg/nav"
	"github.com/yaklabco/pixdeck/pkg/parser/goldmark"
)

// Pages: 0 A(h1) 1 a1 2 a2 | 3 B(h2) 4 b1 | 5 C(h1)
const threeSections = "# A\n\n### a1\n\n### a2\n\n## B\n\n### b1\n\n# C\n"

func newDeck(t *testing.T, src string) *deck.Deck {
	t.Helper()

	doc, err := goldmark.New(goldmark.Options{}).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	d, err := deck.New("", doc)
	require.NoError(t, err)
	return d
}

func newController(t *testing.T, src string) *nav.Controller {
	t.Helper()
	return nav.New(newDeck(t, src), 3, applet.NewHost(applet.NewRegistry(), nil))
}

func TestController_Paging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start int
		op    func(*nav.Controller) bool
		want  int
		moved bool
	}{
		{name: "next page", start: 0, op: (*nav.Controller).NextPage, want: 1, moved: true},
		{name: "next page stops at section end", start: 2, op: (*nav.Controller).NextPage, want: 2},
		{name: "next page stops at last page", start: 5, op: (*nav.Controller).NextPage, want: 5},
		{name: "prev page", start: 2, op: (*nav.Controller).PrevPage, want: 1, moved: true},
		{name: "prev page stops at section start", start: 3, op: (*nav.Controller).PrevPage, want: 3},
		{name: "next section", start: 1, op: (*nav.Controller).NextSection, want: 3, moved: true},
		{name: "next section from middle", start: 4, op: (*nav.Controller).NextSection, want: 5, moved: true},
		{name: "next section clamps", start: 5, op: (*nav.Controller).NextSection, want: 5},
		{name: "prev section", start: 4, op: (*nav.Controller).PrevSection, want: 0, moved: true},
		{name: "prev section clamps", start: 1, op: (*nav.Controller).PrevSection, want: 0, moved: true},
		{name: "prev section at start", start: 0, op: (*nav.Controller).PrevSection, want: 0},
		{name: "forward crosses sections", start: 2, op: (*nav.Controller).Forward, want: 3, moved: true},
		{name: "forward clamps", start: 5, op: (*nav.Controller).Forward, want: 5},
		{name: "backward crosses sections", start: 3, op: (*nav.Controller).Backward, want: 2, moved: true},
		{name: "backward clamps", start: 0, op: (*nav.Controller).Backward, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newController(t, threeSections)
			c.GoTo(tt.start)
			c.Decay(0)

			moved := tt.op(c)
			assert.Equal(t, tt.moved, moved)
			assert.Equal(t, tt.want, c.Page())
			assert.Equal(t, tt.moved, c.Transition().Active())
		})
	}
}

func TestController_Directions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to int
		want     nav.Direction
	}{
		{from: 0, to: 1, want: nav.Down},
		{from: 2, to: 3, want: nav.Right},
		{from: 4, to: 5, want: nav.Right},
		{from: 2, to: 1, want: nav.Up},
		{from: 3, to: 2, want: nav.Left},
		{from: 5, to: 4, want: nav.Left},
		{from: 4, to: 0, want: nav.Up},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			t.Parallel()

			c := newController(t, threeSections)
			c.GoTo(tt.from)
			require.True(t, c.GoTo(tt.to))

			tr := c.Transition()
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.want, tr.Direction)
			assert.InDelta(t, 1.0, tr.Progress, 1e-9)
		})
	}
}

func TestController_StaysInBounds(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	rng := rand.New(rand.NewPCG(1, 2))
	actions := input.Actions()

	for range 1000 {
		c.Do(actions[rng.IntN(len(actions))])
		if rng.IntN(3) == 0 {
			c.Decay(30)
		}
		require.GreaterOrEqual(t, c.Page(), 0)
		require.LessOrEqual(t, c.Page(), c.Deck().LastPage())
	}
}

func TestController_NextPrevInverse(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	for page := range c.Deck().Len() {
		c.GoTo(page)
		if !c.CanNextPage() {
			continue
		}
		require.True(t, c.NextPage())
		require.True(t, c.PrevPage())
		assert.Equal(t, page, c.Page())
	}
}

func TestController_Decay(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	require.True(t, c.Forward())

	prev := c.Transition().Progress
	ticks := 0
	for c.Transition().Active() {
		c.Decay(30)
		p := c.Transition().Progress
		assert.Less(t, p, prev)
		assert.GreaterOrEqual(t, p, 0.0)
		prev = p
		ticks++
		require.LessOrEqual(t, ticks, 11)
	}
	assert.GreaterOrEqual(t, ticks, 10)
}

func TestController_InterruptTransition(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	require.True(t, c.Forward())
	c.Decay(30)
	c.Decay(30)
	require.Less(t, c.Transition().Progress, 1.0)

	// Page moves restart the animation.
	require.True(t, c.Do(input.Retreat))
	tr := c.Transition()
	assert.InDelta(t, 1.0, tr.Progress, 1e-9)
	assert.Equal(t, nav.Up, tr.Direction)
	assert.Equal(t, 0, c.Page())

	// Section paging waits for the animation to finish.
	assert.False(t, c.Do(input.SectionRight))
	assert.Equal(t, 0, c.Page())

	c.Decay(0)
	assert.True(t, c.Do(input.SectionRight))
	assert.Equal(t, 3, c.Page())
}

func TestController_SinglePage(t *testing.T) {
	t.Parallel()

	c := newController(t, "# Only\n")
	for _, a := range input.Actions() {
		assert.False(t, c.Do(a), a.String())
		assert.False(t, c.Legal(a), a.String())
	}
	assert.Equal(t, 0, c.Page())
}

func TestController_Legal(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)

	c.GoTo(1)
	assert.True(t, c.Legal(input.PageDown))
	assert.True(t, c.Legal(input.PageUp))
	assert.True(t, c.Legal(input.SectionRight))
	assert.True(t, c.Legal(input.SectionLeft))
	assert.True(t, c.Legal(input.Advance))

	c.GoTo(5)
	assert.False(t, c.Legal(input.PageDown))
	assert.False(t, c.Legal(input.PageUp))
	assert.False(t, c.Legal(input.SectionRight))
	assert.False(t, c.Legal(input.Advance))
	assert.True(t, c.Legal(input.Retreat))
}

func TestController_Links(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	c.SetLinks(0, []layout.LinkRegion{{X1: 0, Y1: 0, X2: 10, Y2: 10, URL: "https://example.com"}})

	url, ok := c.LinkAt(5, 5)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", url)

	_, ok = c.LinkAt(11, 5)
	assert.False(t, ok)

	c.SetLinks(0, nil)
	_, ok = c.LinkAt(5, 5)
	assert.False(t, ok, "regions are replaced, not appended")

	c.SetLinks(1, []layout.LinkRegion{{X2: 10, Y2: 10, URL: "u"}})
	c.Forward()
	_, ok = c.LinkAt(5, 5)
	assert.False(t, ok, "links are inert during a transition")
	c.Decay(0)
	_, ok = c.LinkAt(5, 5)
	assert.True(t, ok)
}

func TestController_Reset(t *testing.T) {
	t.Parallel()

	c := newController(t, threeSections)
	c.GoTo(5)
	c.SetLinks(5, []layout.LinkRegion{{X2: 1, Y2: 1, URL: "u"}})

	c.Reset(newDeck(t, "# A\n\n### a1\n"))
	assert.Equal(t, 1, c.Page())
	assert.False(t, c.Transition().Active())
	assert.Empty(t, c.Links(5))
	_, ok := c.App()
	assert.False(t, ok)
}
