package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// HTML is the raw markup of a NodeHTMLBlock.
	HTML string
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// StartNumber is the starting number for ordered lists.
	StartNumber int
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Info is the info string (language identifier or directive).
	Info string

	// Content is the verbatim body, each line terminated by a newline.
	Content string
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the content of NodeText, NodeCodeSpan and NodeHTMLInline.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string
}
