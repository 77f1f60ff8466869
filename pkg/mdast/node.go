// Package mdast is the slide token tree: a closed set of markdown node
// kinds produced by the parser and consumed by the deck splitter and the
// layout engine.
package mdast

import "strconv"

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline
	NodeStrikethrough

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // lookup table
var kindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
	NodeStrikethrough: "Strikethrough",
	NodeRaw:           "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline, NodeStrikethrough:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// HeadingLevel returns the heading level, or 0 if n is not a heading.
func (n *Node) HeadingLevel() int {
	if n == nil || n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// Literal returns the raw content carried by leaf nodes: the text of Text
// and CodeSpan, the markup of HTML nodes and the body of code blocks.
func (n *Node) Literal() string {
	switch {
	case n == nil:
		return ""
	case n.Inline != nil && n.Inline.Text != nil:
		return string(n.Inline.Text)
	case n.Block != nil && n.Block.CodeBlock != nil:
		return n.Block.CodeBlock.Content
	case n.Block != nil:
		return n.Block.HTML
	default:
		return ""
	}
}

// PlainText concatenates the text of all Text and CodeSpan descendants.
// Soft and hard breaks contribute a single space.
func (n *Node) PlainText() string {
	var out []byte

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(child *Node) error {
		switch child.Kind {
		case NodeText, NodeCodeSpan:
			out = append(out, child.Literal()...)
		case NodeSoftBreak, NodeHardBreak:
			out = append(out, ' ')
		}
		return nil
	})

	return string(out)
}
