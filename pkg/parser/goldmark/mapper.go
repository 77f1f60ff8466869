package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/pixdeck/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren maps all children of a goldmark node. A goldmark text node
// that ends in a line break becomes a text leaf followed by a break leaf.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			m.appendText(parent, textNode)
			continue
		}
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
	}
}

func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewHeading(gmn.Level)
		m.mapChildren(gmn, node)

	// Tight list items wrap their text in a TextBlock; it lays out like a
	// paragraph.
	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewParagraph()
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = mdast.NewList(gmn.IsOrdered(), gmn.Start)
		m.mapChildren(gmn, node)

	case *ast.ListItem:
		node = mdast.NewListItem()
		m.mapChildren(gmn, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmn, node)

	case *ast.FencedCodeBlock:
		info := ""
		if gmn.Info != nil {
			info = strings.TrimSpace(string(gmn.Info.Value(m.content)))
		}
		node = mdast.NewCodeBlock(info, m.lines(gmn))

	case *ast.CodeBlock:
		node = mdast.NewCodeBlock("", m.lines(gmn))

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		html := m.lines(gmn)
		if gmn.HasClosure() {
			html += string(gmn.ClosureLine.Value(m.content))
		}
		node = mdast.NewHTMLBlock(html)

	// Inline-level nodes.
	case *ast.Emphasis:
		if gmn.Level == 2 {
			node = mdast.NewStrong()
		} else {
			node = mdast.NewEmphasis()
		}
		m.mapChildren(gmn, node)

	case *ast.CodeSpan:
		node = mdast.NewCodeSpan(m.codeSpanText(gmn))

	case *ast.Link:
		node = mdast.NewLink(string(gmn.Destination))
		m.mapChildren(gmn, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
		}}
		m.mapChildren(gmn, node)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		var html []byte
		for i := 0; i < gmn.Segments.Len(); i++ {
			seg := gmn.Segments.At(i)
			html = append(html, seg.Value(m.content)...)
		}
		node = mdast.NewHTMLInline(string(html))

	case *ast.String:
		node = mdast.NewText(string(gmn.Value))

	// Extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough)
		m.mapChildren(gmn, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

func (m *mapper) appendText(parent *mdast.Node, textNode *ast.Text) {
	if value := textNode.Value(m.content); len(value) > 0 {
		mdast.AppendChild(parent, mdast.NewText(string(value)))
	}

	switch {
	case textNode.HardLineBreak():
		mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
	case textNode.SoftLineBreak():
		mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
	}
}

// lines joins the raw source lines of a block node.
func (m *mapper) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(m.content))
	}
	return b.String()
}

func (m *mapper) codeSpanText(codeSpan *ast.CodeSpan) string {
	var b strings.Builder
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Value(m.content))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	url := string(al.URL(m.content))
	if al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}

	return mdast.NewLink(url, mdast.NewText(string(al.Label(m.content))))
}
