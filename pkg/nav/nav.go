// Package nav implements slide navigation: the current page, section
// paging, and the transition animation started by every page change.
package nav

import (
	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/input"
	"github.com/yaklabco/pixdeck/pkg/layout"
)

// Direction is the axis and sense of a slide transition.
type Direction int

const (
	Down Direction = iota
	Up
	Right
	Left
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Transition is the animation between two pages. Progress runs from 1 at
// the start to 0 at the end; zero means no transition is running.
type Transition struct {
	Progress  float64
	From      int
	Direction Direction
}

// Active reports whether the transition is still running.
func (t Transition) Active() bool {
	return t.Progress > 0
}

// direction picks the animation for a move from one slide to another.
// Section slides slide sideways and pages within a section vertically.
func direction(from, to *deck.Slide) Direction {
	if to.Page > from.Page {
		if to.Level == 3 {
			return Down
		}
		return Right
	}
	if from.Level == 3 {
		return Up
	}
	return Left
}

// Controller owns the navigation state of a loaded deck.
type Controller struct {
	deck       *deck.Deck
	page       int
	transition Transition
	rate       float64
	links      map[int][]layout.LinkRegion
	apps       *applet.Host
}

// New creates a controller on page 0. rate is the transition progress
// consumed per second.
func New(d *deck.Deck, rate float64, apps *applet.Host) *Controller {
	return &Controller{
		deck:  d,
		rate:  rate,
		links: make(map[int][]layout.LinkRegion),
		apps:  apps,
	}
}

// Deck returns the loaded deck.
func (c *Controller) Deck() *deck.Deck {
	return c.deck
}

// Page returns the current page.
func (c *Controller) Page() int {
	return c.page
}

// Slide returns the current slide.
func (c *Controller) Slide() *deck.Slide {
	return c.deck.Slide(c.page)
}

// Transition returns the transition state.
func (c *Controller) Transition() Transition {
	return c.transition
}

// Apps returns the applet host of the deck.
func (c *Controller) Apps() *applet.Host {
	return c.apps
}

// Reset swaps in a reloaded deck. The page is kept when it still exists;
// the transition, applets and link regions are dropped.
func (c *Controller) Reset(d *deck.Deck) {
	c.deck = d
	c.page = min(c.page, d.LastPage())
	c.transition = Transition{}
	c.links = make(map[int][]layout.LinkRegion)
	if c.apps != nil {
		c.apps.Reset()
	}
}

// GoTo moves to page, clamped to the deck, and starts a transition when
// the page changes. It reports whether the page changed.
func (c *Controller) GoTo(page int) bool {
	page = max(0, min(page, c.deck.LastPage()))
	if page == c.page {
		return false
	}

	from := c.deck.Slide(c.page)
	to := c.deck.Slide(page)
	c.transition = Transition{
		Progress:  1,
		From:      c.page,
		Direction: direction(from, to),
	}
	c.page = page
	return true
}

// NextPage moves down within the section. It does nothing on the last
// page of a section.
func (c *Controller) NextPage() bool {
	if !c.CanNextPage() {
		return false
	}
	return c.GoTo(c.page + 1)
}

// PrevPage moves up within the section. It does nothing on a section's
// first page.
func (c *Controller) PrevPage() bool {
	if !c.CanPrevPage() {
		return false
	}
	return c.GoTo(c.page - 1)
}

// NextSection jumps to the first page of the next section.
func (c *Controller) NextSection() bool {
	starts := c.deck.SectionStarts
	sec := min(c.Slide().Section+1, len(starts)-1)
	return c.GoTo(starts[sec])
}

// PrevSection jumps to the first page of the previous section.
func (c *Controller) PrevSection() bool {
	sec := max(c.Slide().Section-1, 0)
	return c.GoTo(c.deck.SectionStarts[sec])
}

// Forward moves to the next page regardless of sections.
func (c *Controller) Forward() bool {
	return c.GoTo(c.page + 1)
}

// Backward moves to the previous page regardless of sections.
func (c *Controller) Backward() bool {
	return c.GoTo(c.page - 1)
}

// CanNextPage reports whether NextPage would move.
func (c *Controller) CanNextPage() bool {
	return c.page != c.deck.LastPage() && !c.deck.IsSectionStart(c.page+1)
}

// CanPrevPage reports whether PrevPage would move.
func (c *Controller) CanPrevPage() bool {
	return !c.deck.IsSectionStart(c.page)
}

// Legal reports whether a navigation affordance for a should be offered.
func (c *Controller) Legal(a input.Action) bool {
	switch a {
	case input.PageDown:
		return c.CanNextPage()
	case input.PageUp:
		return c.CanPrevPage()
	case input.SectionRight:
		return c.page < c.deck.LastSectionStart()
	case input.SectionLeft:
		return c.page != 0
	case input.Advance:
		return c.page < c.deck.LastPage()
	case input.Retreat:
		return c.page > 0
	default:
		return false
	}
}

// Do performs a navigation action. Section paging is ignored while a
// transition runs; page moves interrupt it and start a new one.
func (c *Controller) Do(a input.Action) bool {
	switch a {
	case input.PageDown:
		return c.NextPage()
	case input.PageUp:
		return c.PrevPage()
	case input.SectionRight:
		if c.transition.Active() {
			return false
		}
		return c.NextSection()
	case input.SectionLeft:
		if c.transition.Active() {
			return false
		}
		return c.PrevSection()
	case input.Advance:
		return c.Forward()
	case input.Retreat:
		return c.Backward()
	default:
		return false
	}
}

// Decay advances the transition by one frame at the given frame rate. A
// non-positive rate ends the transition.
func (c *Controller) Decay(fps float64) {
	if !c.transition.Active() {
		return
	}
	if fps <= 0 {
		c.transition.Progress = 0
		return
	}
	c.transition.Progress = max(c.transition.Progress-c.rate/fps, 0)
}

// SetLinks replaces the link regions of page.
func (c *Controller) SetLinks(page int, links []layout.LinkRegion) {
	c.links[page] = links
}

// Links returns the link regions of page.
func (c *Controller) Links(page int) []layout.LinkRegion {
	return c.links[page]
}

// LinkAt returns the URL under slide point (x, y) on the current page.
// Links are inert while a transition runs.
func (c *Controller) LinkAt(x, y int) (string, bool) {
	if c.transition.Active() {
		return "", false
	}
	for _, r := range c.links[c.page] {
		if r.Contains(x, y) {
			return r.URL, true
		}
	}
	return "", false
}

// App returns the applet embedded on the current page.
func (c *Controller) App() (*applet.Handle, bool) {
	if c.apps == nil {
		return nil, false
	}
	return c.apps.Handle(c.page)
}
