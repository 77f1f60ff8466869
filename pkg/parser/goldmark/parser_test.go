package goldmark_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/mdast"
	"github.com/yaklabco/pixdeck/pkg/parser/goldmark"
)

func parse(t *testing.T, opts goldmark.Options, src string) *mdast.Node {
	t.Helper()

	doc, err := goldmark.New(opts).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, mdast.NodeDocument, doc.Kind)
	return doc
}

func kinds(nodes []*mdast.Node) []mdast.NodeKind {
	out := make([]mdast.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	doc := parse(t, goldmark.Options{}, "# Intro\n\nHello\n\n## Next\n\n### Detail\n")

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeHeading, mdast.NodeParagraph, mdast.NodeHeading, mdast.NodeHeading,
	}, kinds(doc.Children()))

	headings := mdast.FindByKind(doc, mdast.NodeHeading)
	require.Len(t, headings, 3)
	assert.Equal(t, 1, headings[0].HeadingLevel())
	assert.Equal(t, "Intro", headings[0].PlainText())
	assert.Equal(t, 3, headings[2].HeadingLevel())
}

func TestParse_Breaks(t *testing.T) {
	t.Parallel()

	t.Run("soft", func(t *testing.T) {
		t.Parallel()

		para := parse(t, goldmark.Options{}, "one\ntwo\n").FirstChild
		assert.Equal(t, []mdast.NodeKind{
			mdast.NodeText, mdast.NodeSoftBreak, mdast.NodeText,
		}, kinds(para.Children()))
		assert.Equal(t, "one", para.FirstChild.Literal())
		assert.Equal(t, "two", para.LastChild.Literal())
	})

	t.Run("hard", func(t *testing.T) {
		t.Parallel()

		para := parse(t, goldmark.Options{}, "one  \ntwo\n").FirstChild
		require.Len(t, mdast.FindByKind(para, mdast.NodeHardBreak), 1)
		assert.Equal(t, "one", strings.TrimSpace(para.FirstChild.Literal()))
	})
}

func TestParse_CodeBlocks(t *testing.T) {
	t.Parallel()

	doc := parse(t, goldmark.Options{}, "```python\nprint(1)\nx = 2\n```\n\n```{figure} img.*\n:scale: 50\n```\n\n    indented\n")

	blocks := mdast.FindByKind(doc, mdast.NodeCodeBlock)
	require.Len(t, blocks, 3)

	assert.Equal(t, "python", blocks[0].Block.CodeBlock.Info)
	assert.Equal(t, "print(1)\nx = 2\n", blocks[0].Literal())

	assert.Equal(t, "{figure} img.*", blocks[1].Block.CodeBlock.Info)
	assert.Equal(t, ":scale: 50\n", blocks[1].Literal())

	assert.Empty(t, blocks[2].Block.CodeBlock.Info)
	assert.Equal(t, "indented\n", blocks[2].Literal())
}

func TestParse_Lists(t *testing.T) {
	t.Parallel()

	doc := parse(t, goldmark.Options{}, "- a\n- b\n\n3. x\n4. y\n")

	lists := mdast.FindByKind(doc, mdast.NodeList)
	require.Len(t, lists, 2)

	assert.False(t, lists[0].Block.List.Ordered)
	assert.Equal(t, 2, lists[0].ChildCount())

	item := lists[0].FirstChild
	require.Equal(t, mdast.NodeListItem, item.Kind)
	assert.Equal(t, mdast.NodeParagraph, item.FirstChild.Kind, "tight item text maps to a paragraph")

	assert.True(t, lists[1].Block.List.Ordered)
	assert.Equal(t, 3, lists[1].Block.List.StartNumber)
}

func TestParse_Inlines(t *testing.T) {
	t.Parallel()

	doc := parse(t, goldmark.Options{}, "*em* **strong** `code` ~~gone~~ [site](https://example.com) <https://go.dev>\n")

	assert.Len(t, mdast.FindByKind(doc, mdast.NodeEmphasis), 1)
	assert.Len(t, mdast.FindByKind(doc, mdast.NodeStrong), 1)
	assert.Len(t, mdast.FindByKind(doc, mdast.NodeStrikethrough), 1)

	spans := mdast.FindByKind(doc, mdast.NodeCodeSpan)
	require.Len(t, spans, 1)
	assert.Equal(t, "code", spans[0].Literal())

	links := mdast.FindByKind(doc, mdast.NodeLink)
	require.Len(t, links, 2)
	assert.Equal(t, "https://example.com", links[0].Inline.Link.Destination)
	assert.Equal(t, "site", links[0].PlainText())
	assert.Equal(t, "https://go.dev", links[1].Inline.Link.Destination)
	assert.Equal(t, "https://go.dev", links[1].PlainText())
}

func TestParse_Linkify(t *testing.T) {
	t.Parallel()

	src := "see https://example.com/x now\n"

	off := parse(t, goldmark.Options{}, src)
	assert.Empty(t, mdast.FindByKind(off, mdast.NodeLink))

	on := parse(t, goldmark.Options{Linkify: true}, src)
	links := mdast.FindByKind(on, mdast.NodeLink)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/x", links[0].Inline.Link.Destination)
}

func TestParse_HTML(t *testing.T) {
	t.Parallel()

	doc := parse(t, goldmark.Options{}, "<br>\n\nbefore<br>after\n")

	blocks := mdast.FindByKind(doc, mdast.NodeHTMLBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, "<br>", strings.TrimSpace(blocks[0].Literal()))

	inline := mdast.FindByKind(doc, mdast.NodeHTMLInline)
	require.Len(t, inline, 1)
	assert.Equal(t, "<br>", inline[0].Literal())
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.New(goldmark.Options{}).Parse(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}
