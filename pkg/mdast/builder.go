package mdast

// NewNode creates a new node of the specified kind with no parent or children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument(children ...*Node) *Node {
	return withChildren(NewNode(NodeDocument), children)
}

// NewHeading creates a heading of the given level.
func NewHeading(level int, children ...*Node) *Node {
	n := NewNode(NodeHeading)
	n.Block = &BlockAttrs{HeadingLevel: level}
	return withChildren(n, children)
}

// NewParagraph creates a paragraph.
func NewParagraph(children ...*Node) *Node {
	return withChildren(NewNode(NodeParagraph), children)
}

// NewText creates a text leaf.
func NewText(text string) *Node {
	n := NewNode(NodeText)
	n.Inline = &InlineAttrs{Text: []byte(text)}
	return n
}

// NewCodeSpan creates an inline code leaf.
func NewCodeSpan(code string) *Node {
	n := NewNode(NodeCodeSpan)
	n.Inline = &InlineAttrs{Text: []byte(code)}
	return n
}

// NewEmphasis creates an emphasis container.
func NewEmphasis(children ...*Node) *Node {
	return withChildren(NewNode(NodeEmphasis), children)
}

// NewStrong creates a strong emphasis container.
func NewStrong(children ...*Node) *Node {
	return withChildren(NewNode(NodeStrong), children)
}

// NewLink creates a link to dest.
func NewLink(dest string, children ...*Node) *Node {
	n := NewNode(NodeLink)
	n.Inline = &InlineAttrs{Link: &LinkAttrs{Destination: dest}}
	return withChildren(n, children)
}

// NewList creates a list. Ordered lists count from start.
func NewList(ordered bool, start int, items ...*Node) *Node {
	n := NewNode(NodeList)
	n.Block = &BlockAttrs{List: &ListAttrs{Ordered: ordered, StartNumber: start}}
	return withChildren(n, items)
}

// NewListItem creates a list item.
func NewListItem(children ...*Node) *Node {
	return withChildren(NewNode(NodeListItem), children)
}

// NewCodeBlock creates a fenced code block with the given info string.
func NewCodeBlock(info, content string) *Node {
	n := NewNode(NodeCodeBlock)
	n.Block = &BlockAttrs{CodeBlock: &CodeBlockAttrs{Info: info, Content: content}}
	return n
}

// NewHTMLBlock creates a raw HTML block.
func NewHTMLBlock(html string) *Node {
	n := NewNode(NodeHTMLBlock)
	n.Block = &BlockAttrs{HTML: html}
	return n
}

// NewHTMLInline creates a raw inline HTML leaf.
func NewHTMLInline(html string) *Node {
	n := NewNode(NodeHTMLInline)
	n.Inline = &InlineAttrs{Text: []byte(html)}
	return n
}

func withChildren(n *Node, children []*Node) *Node {
	for _, child := range children {
		AppendChild(n, child)
	}
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
