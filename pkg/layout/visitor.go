package layout

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/mdast"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

// Align is the horizontal alignment of a line.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// lineGap selects the extra space added by a line break.
type lineGap int

const (
	gapNone lineGap = iota
	gapWrap
	gapParagraph
)

type colorPair struct {
	fg, bg int
}

type listContext struct {
	ordered bool
	next    int
}

type pendingLink struct {
	url     string
	started bool
	x, y    int
}

// visitor holds the state of a single render.
type visitor struct {
	ctx    context.Context
	e      *Engine
	slide  *deck.Slide
	s      canvas.Surface
	logger *log.Logger
	width  int

	x, y    int
	indents []int
	fonts   []theme.Role
	colors  []colorPair
	lists   []listContext
	align   Align

	// lineStart is true until the first segment of a line is drawn.
	lineStart bool

	link  *pendingLink
	links []LinkRegion
}

func newVisitor(ctx context.Context, e *Engine, slide *deck.Slide, s canvas.Surface) *visitor {
	w, _ := s.Size()
	return &visitor{
		ctx:       ctx,
		e:         e,
		slide:     slide,
		s:         s,
		logger:    e.logger.With(logging.FieldPage, slide.Page),
		width:     w,
		indents:   []int{0},
		fonts:     []theme.Role{theme.Default},
		colors:    []colorPair{{fg: e.theme.Colors.Text, bg: canvas.NoColor}},
		lineStart: true,
		links:     []LinkRegion{},
	}
}

func (v *visitor) font() *theme.Font {
	return v.e.theme.Font(v.fonts[len(v.fonts)-1])
}

func (v *visitor) color() colorPair {
	return v.colors[len(v.colors)-1]
}

func (v *visitor) indent() int {
	return v.indents[len(v.indents)-1]
}

func (v *visitor) glyphHeight() int {
	return v.font().Height
}

func (v *visitor) balanced() error {
	if len(v.indents) != 1 || len(v.fonts) != 1 || len(v.colors) != 1 || len(v.lists) != 0 || v.link != nil {
		return fmt.Errorf("%w: indents=%d fonts=%d colors=%d lists=%d",
			ErrUnbalanced, len(v.indents), len(v.fonts), len(v.colors), len(v.lists))
	}
	return nil
}

func (v *visitor) withFont(role theme.Role, body func() error) error {
	v.fonts = append(v.fonts, role)
	defer func() { v.fonts = v.fonts[:len(v.fonts)-1] }()
	return body()
}

func (v *visitor) withColor(fg, bg int, body func() error) error {
	v.colors = append(v.colors, colorPair{fg: fg, bg: bg})
	defer func() { v.colors = v.colors[:len(v.colors)-1] }()
	return body()
}

// withIndent pushes an indent of dx from the current x and pops it after body.
func (v *visitor) withIndent(dx int, body func() error) error {
	v.x += dx
	v.indents = append(v.indents, v.x)
	defer func() {
		popped := v.indents[len(v.indents)-1]
		v.indents = v.indents[:len(v.indents)-1]
		v.x -= popped - v.indent()
	}()
	return body()
}

func (v *visitor) withAlign(a Align, body func() error) error {
	prev := v.align
	v.align = a
	defer func() { v.align = prev }()
	return body()
}

// crlf returns to the current indent and moves down one glyph height plus
// the requested gap.
func (v *visitor) crlf(gap lineGap) {
	v.flushLink()

	h := v.glyphHeight()
	v.x = v.indent()
	v.y += h
	switch gap {
	case gapParagraph:
		v.y += int(float64(h) * v.e.cfg.Layout.ParagraphMargin)
	case gapWrap:
		v.y += int(float64(h) * v.e.cfg.Layout.WrapMargin)
	case gapNone:
	}
	v.lineStart = true
}

// draw paints one segment at the cursor and advances x. Alignment applies
// only to the first segment of a line.
func (v *visitor) draw(text string) {
	f := v.font()
	w := f.Width(text)

	if v.lineStart {
		switch v.align {
		case AlignCenter:
			v.x = (v.width - w) / 2
		case AlignRight:
			v.x = v.width - w
		case AlignLeft:
		}
		v.lineStart = false
	}

	if v.link != nil && !v.link.started {
		v.link.started = true
		v.link.x, v.link.y = v.x, v.y
	}

	c := v.color()
	if c.bg >= 0 {
		v.s.Rect(v.x, v.y, w, f.Height, c.bg)
	}
	v.s.Text(v.x, v.y, text, c.fg, f.Face)
	v.x += w
}

// text draws s with greedy wrapping at the right canvas edge.
func (v *visitor) text(s string) {
	for s != "" {
		n := v.fit(s, v.width-v.x)
		if n == 0 {
			if v.x > v.indent() {
				v.crlf(gapWrap)
				continue
			}
			_, n = utf8.DecodeRuneInString(s)
		}
		v.draw(s[:n])
		s = s[n:]
		if s != "" {
			v.crlf(gapWrap)
		}
	}
}

// fit returns the byte length of the longest rune prefix of s no wider than
// maxWidth.
func (v *visitor) fit(s string, maxWidth int) int {
	f := v.font()
	if f.Width(s) <= maxWidth {
		return len(s)
	}
	best := 0
	for i := range s {
		if i == 0 {
			continue
		}
		if f.Width(s[:i]) > maxWidth {
			break
		}
		best = i
	}
	return best
}

func (v *visitor) flushLink() {
	l := v.link
	if l == nil || !l.started {
		return
	}
	h := v.glyphHeight()
	v.s.Line(l.x, l.y+h, v.x, l.y+h, v.e.theme.Colors.Link)
	if l.url != "" {
		v.links = append(v.links, LinkRegion{X1: l.x, Y1: l.y, X2: v.x, Y2: l.y + h, URL: l.url})
	}
	l.started = false
}

func (v *visitor) children(n *mdast.Node) error {
	for child := n.FirstChild; child != nil; child = child.Next {
		if err := v.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// visit lays out n and its descendants.
func (v *visitor) visit(n *mdast.Node) error {
	if err := v.ctx.Err(); err != nil {
		return err
	}

	switch n.Kind {
	case mdast.NodeDocument:
		return v.children(n)
	case mdast.NodeHeading:
		return v.heading(n)
	case mdast.NodeParagraph:
		if err := v.children(n); err != nil {
			return err
		}
		v.crlf(gapParagraph)
		return nil
	case mdast.NodeList:
		return v.list(n)
	case mdast.NodeListItem:
		return v.listItem(n)
	case mdast.NodeText:
		v.text(n.Literal())
		return nil
	case mdast.NodeEmphasis:
		return v.withColor(v.e.theme.Colors.Emphasis, canvas.NoColor, func() error {
			return v.withFont(theme.Em, func() error { return v.children(n) })
		})
	case mdast.NodeStrong:
		return v.withColor(v.e.theme.Colors.Strong, canvas.NoColor, func() error {
			return v.withFont(theme.Strong, func() error { return v.children(n) })
		})
	case mdast.NodeLink:
		return v.linkNode(n)
	case mdast.NodeCodeSpan:
		return v.withFont(theme.Literal, func() error {
			return v.withColor(v.e.theme.Colors.CodeFG, v.e.theme.Colors.CodeBG, func() error {
				v.draw(n.Literal())
				return nil
			})
		})
	case mdast.NodeCodeBlock:
		return v.codeBlock(n)
	case mdast.NodeSoftBreak, mdast.NodeHardBreak:
		v.crlf(gapWrap)
		return nil
	case mdast.NodeHTMLInline:
		if isLineBreakTag(n.Literal()) {
			v.crlf(gapWrap)
		}
		return nil
	case mdast.NodeHTMLBlock:
		if isLineBreakTag(n.Literal()) {
			v.crlf(gapParagraph)
		}
		return nil
	case mdast.NodeBlockquote, mdast.NodeThematicBreak, mdast.NodeImage,
		mdast.NodeStrikethrough, mdast.NodeRaw:
		v.logger.Debug("no layout for node", logging.FieldKind, n.Kind)
		return v.children(n)
	default:
		v.logger.Debug("unknown node", logging.FieldKind, n.Kind)
		return nil
	}
}

func isLineBreakTag(html string) bool {
	switch strings.TrimSpace(html) {
	case "<br>", "<br/>", "<br />":
		return true
	default:
		return false
	}
}

func (v *visitor) heading(n *mdast.Node) error {
	role, align, marker := theme.Strong, AlignLeft, false

	switch n.HeadingLevel() {
	case 1, 2:
		role, align = theme.Title, AlignCenter
	case 3:
		role, align, marker = theme.PageTitle, AlignLeft, true
	}

	v.align = align
	return v.withFont(role, func() error {
		switch n.HeadingLevel() {
		case 1:
			v.crlf(gapNone)
		case 2:
			v.crlf(gapNone)
			v.crlf(gapNone)
		}
		if marker {
			v.draw(v.e.cfg.Layout.HeadingMarker)
		}

		if err := v.children(n); err != nil {
			return err
		}

		v.crlf(gapNone)
		v.crlf(gapNone)
		return nil
	})
}

func (v *visitor) list(n *mdast.Node) error {
	ordered := n.Block != nil && n.Block.List != nil && n.Block.List.Ordered

	err := v.withIndent(v.e.cfg.Layout.ListIndent, func() error {
		v.lists = append(v.lists, listContext{ordered: ordered, next: 1})
		defer func() { v.lists = v.lists[:len(v.lists)-1] }()
		return v.children(n)
	})
	if err != nil {
		return err
	}

	v.y += v.glyphHeight() / 4
	return nil
}

func (v *visitor) marker() string {
	if len(v.lists) == 0 {
		return ""
	}
	ctx := v.lists[len(v.lists)-1]
	if ctx.ordered {
		return fmt.Sprintf("%d. ", ctx.next)
	}

	markers := v.e.cfg.Layout.BulletMarkers
	if len(markers) == 0 {
		return ""
	}
	depth := min(len(v.lists), len(markers))
	return markers[depth-1]
}

func (v *visitor) listItem(n *mdast.Node) error {
	marker := v.marker()

	// Markers sit at the pre-indent position regardless of alignment.
	x := v.x
	v.lineStart = false
	v.draw(marker)
	v.x = x

	dx := max(v.glyphHeight(), v.font().Width(marker))
	err := v.withIndent(dx, func() error {
		return v.children(n)
	})
	if len(v.lists) > 0 {
		v.lists[len(v.lists)-1].next++
	}
	return err
}

func (v *visitor) linkNode(n *mdast.Node) error {
	url := ""
	if n.Inline != nil && n.Inline.Link != nil {
		url = n.Inline.Link.Destination
	}

	v.link = &pendingLink{url: url}
	err := v.withColor(v.e.theme.Colors.Link, canvas.NoColor, func() error {
		return v.children(n)
	})
	v.flushLink()
	v.link = nil
	return err
}
