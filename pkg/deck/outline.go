package deck

import (
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/mdast"
)

// OutlineEntry summarises one slide.
type OutlineEntry struct {
	Page    int      `json:"page"`
	Section int      `json:"section"`
	Level   int      `json:"level"`
	Title   string   `json:"title"`
	Links   int      `json:"links"`
	Figures []string `json:"figures,omitempty"`
}

// Outline lists every slide with its link count and figure references.
func (d *Deck) Outline() []OutlineEntry {
	entries := make([]OutlineEntry, 0, len(d.Slides))

	for _, s := range d.Slides {
		entry := OutlineEntry{
			Page:    s.Page,
			Section: s.Section,
			Level:   s.HeadingLevel,
			Title:   s.Title,
		}

		for _, link := range mdast.FindByKind(s.Root, mdast.NodeLink) {
			if link.Inline != nil && link.Inline.Link != nil && link.Inline.Link.Destination != "" {
				entry.Links++
			}
		}

		for _, block := range mdast.FindByKind(s.Root, mdast.NodeCodeBlock) {
			dir, ok := directive.Parse(block.Block.CodeBlock.Info, block.Literal())
			if ok && dir.Name == directive.NameFigure {
				entry.Figures = append(entry.Figures, dir.Args)
			}
		}

		entries = append(entries, entry)
	}

	return entries
}
