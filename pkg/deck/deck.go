// Package deck splits a parsed markdown document into slides and records
// where each section starts.
package deck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/fsutil"
	"github.com/yaklabco/pixdeck/pkg/mdast"
)

// ErrEmptyDeck is returned for a document with no content.
var ErrEmptyDeck = errors.New("deck has no slides")

// Parser turns deck source into an mdast document.
type Parser interface {
	Parse(ctx context.Context, content []byte) (*mdast.Node, error)
}

// Slide is one navigable page of the deck.
type Slide struct {
	// Dir is the directory of the deck file; figure paths resolve against it.
	Dir string

	Section int
	Page    int

	// Level classifies the slide for navigation: 1 and 2 start a section,
	// 3 continues one.
	Level int

	// HeadingLevel is the level of the slide's opening heading, or 0 for a
	// preamble slide without one.
	HeadingLevel int

	Title string

	// Root is a document node holding the slide's blocks in order.
	Root *mdast.Node
}

// StartsSection reports whether the slide is classified h1 or h2.
func (s *Slide) StartsSection() bool {
	return s.Level == 1 || s.Level == 2
}

// Deck is an ordered list of slides.
type Deck struct {
	// Path is the source file, empty for decks built in memory.
	Path string

	// Info is the file state at load time.
	Info *fsutil.FileInfo

	Slides []*Slide

	// SectionStarts lists the page of each section's first slide. It always
	// begins with 0.
	SectionStarts []int
}

// Load reads, parses and splits the deck at path.
func Load(ctx context.Context, path string, parser Parser) (*Deck, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	doc, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	d, err := New(filepath.Dir(abs), doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	d.Info = info

	return d, nil
}

// New splits doc into slides whose figure paths resolve against dir. The
// children of doc are moved into the slides. Figure directives are
// validated so that malformed options fail here rather than mid-show.
func New(dir string, doc *mdast.Node) (*Deck, error) {
	slides := Split(dir, doc)
	if len(slides) == 0 {
		return nil, ErrEmptyDeck
	}

	d := &Deck{Slides: slides}
	for _, s := range slides {
		if s.StartsSection() {
			d.SectionStarts = append(d.SectionStarts, s.Page)
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Split cuts doc at every h1-h3 heading. Blocks before the first heading
// form a preamble slide.
func Split(dir string, doc *mdast.Node) []*Slide {
	var (
		slides  []*Slide
		current *Slide
		section int
	)

	for _, block := range doc.Children() {
		if level := block.HeadingLevel(); level >= 1 && level <= 3 {
			if current != nil {
				slides = append(slides, current)
				if level <= 2 {
					section++
				}
			}
			current = &Slide{
				Dir:          dir,
				Section:      section,
				Page:         len(slides),
				Level:        level,
				HeadingLevel: level,
				Title:        block.PlainText(),
				Root:         mdast.NewDocument(),
			}
		} else if current == nil {
			current = &Slide{Dir: dir, Root: mdast.NewDocument()}
		}

		mdast.AppendChild(current.Root, block)
	}

	if current != nil {
		slides = append(slides, current)
	}

	// The first page always opens the first section.
	if len(slides) > 0 && !slides[0].StartsSection() {
		slides[0].Level = 1
	}

	return slides
}

func (d *Deck) validate() error {
	for _, s := range d.Slides {
		for _, block := range mdast.FindByKind(s.Root, mdast.NodeCodeBlock) {
			dir, ok := directive.Parse(block.Block.CodeBlock.Info, block.Literal())
			if !ok {
				continue
			}
			if err := dir.Validate(); err != nil {
				return fmt.Errorf("page %d: %w", s.Page, err)
			}
		}
	}
	return nil
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.Slides)
}

// LastPage returns the index of the final slide.
func (d *Deck) LastPage() int {
	return len(d.Slides) - 1
}

// Slide returns the slide at page, or nil when out of range.
func (d *Deck) Slide(page int) *Slide {
	if page < 0 || page >= len(d.Slides) {
		return nil
	}
	return d.Slides[page]
}

// IsSectionStart reports whether page is the first page of a section.
func (d *Deck) IsSectionStart(page int) bool {
	for _, p := range d.SectionStarts {
		if p == page {
			return true
		}
	}
	return false
}

// LastSectionStart returns the first page of the final section.
func (d *Deck) LastSectionStart() int {
	return d.SectionStarts[len(d.SectionStarts)-1]
}
