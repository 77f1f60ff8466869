package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pixdeck/pkg/deck"
)

// FormatDeckHeader formats the heading line of a deck outline.
func (s *Styles) FormatDeckHeader(path string, pages, sections int) string {
	return fmt.Sprintf("%s %s",
		s.FilePath.Render(path),
		s.Dim.Render(fmt.Sprintf("(%s, %s)", plural(pages, "page"), plural(sections, "section"))),
	)
}

// FormatSlide formats one outline entry. Section starts are flush left;
// continuation slides are indented under them.
func (s *Styles) FormatSlide(e deck.OutlineEntry) string {
	var b strings.Builder

	b.WriteString(s.Page.Render(fmt.Sprintf("%4d", e.Page)))
	b.WriteString("  ")

	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	switch e.Level {
	case 1, 2:
		b.WriteString(s.SectionTitle.Render(title))
	default:
		b.WriteString("  ")
		b.WriteString(s.SlideTitle.Render(title))
	}

	if e.Links > 0 {
		b.WriteString("  ")
		b.WriteString(s.Link.Render(plural(e.Links, "link")))
	}
	for _, f := range e.Figures {
		b.WriteString("  ")
		b.WriteString(s.Figure.Render("[" + f + "]"))
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
