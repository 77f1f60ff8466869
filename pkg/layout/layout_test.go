package layout_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/canvas"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/layout"
	"github.com/yaklabco/pixdeck/pkg/parser/goldmark"
	"github.com/yaklabco/pixdeck/pkg/theme"
)

const (
	canvasW = 384
	canvasH = 216
)

type fixture struct {
	cfg    *config.Config
	theme  *theme.Theme
	engine *layout.Engine
}

func newFixture(t *testing.T, opts ...layout.Option) *fixture {
	t.Helper()

	cfg := config.NewConfig()
	th, err := theme.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = th.Close() })

	return &fixture{cfg: cfg, theme: th, engine: layout.New(cfg, th, opts...)}
}

func slides(t *testing.T, dir, src string) []*deck.Slide {
	t.Helper()

	doc, err := goldmark.New(goldmark.Options{Linkify: true}).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return deck.Split(dir, doc)
}

func (f *fixture) render(t *testing.T, slide *deck.Slide) (*canvas.Recorder, []layout.LinkRegion) {
	t.Helper()

	rec := canvas.NewRecorder(canvasW, canvasH)
	links, err := f.engine.Render(context.Background(), slide, rec)
	require.NoError(t, err)
	return rec, links
}

func findText(t *testing.T, rec *canvas.Recorder, s string) canvas.Call {
	t.Helper()

	for _, c := range rec.Filter(canvas.OpText) {
		if c.Text == s {
			return c
		}
	}
	require.Failf(t, "text not drawn", "%q not in %v", s, rec.Texts())
	return canvas.Call{}
}

// findTrimmed is findText ignoring surrounding spaces, which the parser may
// attach to neighbouring text.
func findTrimmed(t *testing.T, rec *canvas.Recorder, s string) canvas.Call {
	t.Helper()

	for _, c := range rec.Filter(canvas.OpText) {
		if strings.TrimSpace(c.Text) == s {
			return c
		}
	}
	require.Failf(t, "text not drawn", "%q not in %v", s, rec.Texts())
	return canvas.Call{}
}

func TestRender_TitleAndParagraphCentred(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "# Intro\n\nHello\n\n## Next\n")
	require.Len(t, ss, 2)

	rec, links := f.render(t, ss[0])

	assert.Equal(t, []string{"Intro", "Hello"}, rec.Texts())
	assert.Empty(t, links)

	title := f.theme.Font(theme.Title)
	intro := findText(t, rec, "Intro")
	assert.Equal(t, (canvasW-title.Width("Intro"))/2, intro.X)
	assert.Equal(t, title.Height, intro.Y)

	body := f.theme.Font(theme.Default)
	hello := findText(t, rec, "Hello")
	assert.Equal(t, (canvasW-body.Width("Hello"))/2, hello.X)
	assert.Greater(t, hello.Y, intro.Y)

	clears := rec.Filter(canvas.OpClear)
	require.Len(t, clears, 1)
	assert.Equal(t, f.cfg.Colors.Background, clears[0].Col)
}

func TestRender_HeadingLevels(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "## Sub\n\n### Page\n")
	require.Len(t, ss, 2)

	rec, _ := f.render(t, ss[0])
	sub := findText(t, rec, "Sub")
	assert.Equal(t, 2*f.theme.Font(theme.Title).Height, sub.Y)

	rec, _ = f.render(t, ss[1])
	require.Equal(t, []string{"# ", "Page"}, rec.Texts())
	marker := findText(t, rec, "# ")
	assert.Equal(t, 0, marker.X)
	assert.Equal(t, 0, marker.Y)
	page := findText(t, rec, "Page")
	assert.Equal(t, f.theme.Font(theme.PageTitle).Width("# "), page.X)
}

func TestRender_WrapIsLossless(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 12))
	ss := slides(t, "", text+"\n")
	require.Len(t, ss, 1)

	rec, _ := f.render(t, ss[0])
	calls := rec.Filter(canvas.OpText)
	require.Greater(t, len(calls), 1, "text should wrap")

	font := f.theme.Font(theme.Default)
	var joined strings.Builder
	rows := make(map[int]bool)
	for i, c := range calls {
		assert.LessOrEqual(t, font.Width(c.Text), canvasW-c.X, "segment %d too wide", i)
		rows[c.Y] = true
		joined.WriteString(c.Text)
	}
	assert.Greater(t, len(rows), 1)
	assert.Equal(t, text, joined.String())
}

func TestRender_OrderedMarkers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "1. a\n   1. x\n   2. y\n   3. z\n2. b\n3. c\n")

	rec, _ := f.render(t, ss[0])

	var markers []string
	for _, s := range rec.Texts() {
		if strings.HasSuffix(s, ". ") {
			markers = append(markers, s)
		}
	}
	assert.Equal(t, []string{"1. ", "1. ", "2. ", "3. ", "2. ", "3. "}, markers)

	outer := findText(t, rec, "a")
	inner := findText(t, rec, "x")
	assert.Greater(t, inner.X, outer.X)
}

func TestRender_BulletMarkersByDepth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "- a\n  - b\n    - c\n")

	rec, _ := f.render(t, ss[0])
	assert.Equal(t, []string{"●", "a", "○", "b", "■", "c"}, rec.Texts())

	marker := findText(t, rec, "●")
	item := findText(t, rec, "a")
	assert.Equal(t, f.cfg.Layout.ListIndent, marker.X)
	assert.Greater(t, item.X, marker.X)
	assert.Equal(t, marker.Y, item.Y)
}

func TestRender_StyleOverlays(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "*em* and **strong** and `code`\n")

	rec, _ := f.render(t, ss[0])

	assert.Equal(t, f.cfg.Colors.Emphasis, findText(t, rec, "em").Col)
	assert.Equal(t, f.theme.Font(theme.Em).Face, findText(t, rec, "em").Face)
	assert.Equal(t, f.cfg.Colors.Strong, findText(t, rec, "strong").Col)
	assert.Equal(t, f.cfg.Colors.Text, findTrimmed(t, rec, "and").Col)

	code := findText(t, rec, "code")
	assert.Equal(t, f.cfg.Colors.CodeFG, code.Col)
	assert.Equal(t, f.theme.Font(theme.Literal).Face, code.Face)

	rects := rec.Filter(canvas.OpRect)
	require.Len(t, rects, 1)
	assert.Equal(t, f.cfg.Colors.CodeBG, rects[0].Col)
	assert.Equal(t, code.X, rects[0].X)
}

func TestRender_Links(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "[go](https://go.dev) tail\n")

	rec, links := f.render(t, ss[0])

	body := f.theme.Font(theme.Default)
	w, h := body.Width("go"), body.Height
	require.Len(t, links, 1)
	assert.Equal(t, layout.LinkRegion{X1: 0, Y1: 0, X2: w, Y2: h, URL: "https://go.dev"}, links[0])
	assert.Equal(t, f.cfg.Colors.Link, findText(t, rec, "go").Col)
	assert.Equal(t, f.cfg.Colors.Text, findTrimmed(t, rec, "tail").Col)

	lines := rec.Filter(canvas.OpLine)
	require.Len(t, lines, 1)
	assert.Equal(t, canvas.Call{Op: canvas.OpLine, X: 0, Y: h, W: w, H: h, Col: f.cfg.Colors.Link}, lines[0])

	// A second render replaces the regions instead of appending.
	_, again := f.render(t, ss[0])
	assert.Len(t, again, 1)
}

func TestRender_LinkWithoutURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ss := slides(t, "", "[nowhere]()\n")

	rec, links := f.render(t, ss[0])
	assert.Empty(t, links)
	assert.Len(t, rec.Filter(canvas.OpLine), 1)
}

func TestLinkRegion_Contains(t *testing.T) {
	t.Parallel()

	r := layout.LinkRegion{X1: 10, Y1: 10, X2: 20, Y2: 15}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(20, 15))
	assert.False(t, r.Contains(21, 12))
	assert.False(t, r.Contains(15, 9))
}

func TestRender_Breaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "soft", src: "first\nsecond\n"},
		{name: "hard", src: "first  \nsecond\n"},
		{name: "inline br", src: "first<br>second\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			rec, _ := f.render(t, slides(t, "", tt.src)[0])

			first := findTrimmed(t, rec, "first")
			second := findTrimmed(t, rec, "second")
			assert.Equal(t, 0, second.X)
			assert.Greater(t, second.Y, first.Y)
		})
	}
}

func TestRender_CodeBlockVerbatim(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec, _ := f.render(t, slides(t, "", "```\nline one\nline two\n```\n")[0])

	rects := rec.Filter(canvas.OpRect)
	require.Len(t, rects, 1)
	lit := f.theme.Font(theme.Literal)
	assert.Equal(t, f.cfg.Colors.CodeBlockBG, rects[0].Col)
	assert.Equal(t, lit.Height+2*lit.Height, rects[0].H)

	one := findText(t, rec, "line one")
	two := findText(t, rec, "line two")
	assert.Equal(t, f.cfg.Layout.CodePadding, one.X)
	assert.Equal(t, f.cfg.Colors.CodeBlockFG, one.Col)
	assert.Equal(t, one.Y+lit.Height, two.Y)
}

func TestRender_CodeBlockHighlighted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec, _ := f.render(t, slides(t, "", "```go\nfunc main() {}\n```\n")[0])

	kw := findText(t, rec, "func")
	assert.Equal(t, f.cfg.Colors.Keyword, kw.Col)
	assert.Equal(t, f.cfg.Layout.CodePadding, kw.X)
}

func TestRender_CodeBlockTabs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec, _ := f.render(t, slides(t, "", "```\n\tx := 1\nab\tc\n```\n")[0])
	assert.Equal(t, []string{"    x := 1", "ab  c"}, rec.Texts())

	rec, _ = f.render(t, slides(t, "", "```go\nfunc main() {\n\treturn\n}\n```\n")[0])
	for _, text := range rec.Texts() {
		assert.NotContains(t, text, "\t")
	}
	findText(t, rec, "return")
}

func TestRender_CodeBlockUnknownLanguage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec, _ := f.render(t, slides(t, "", "```nosuchlang\nplain words\n```\n")[0])

	c := findText(t, rec, "plain words")
	assert.Equal(t, f.cfg.Colors.CodeBlockFG, c.Col)
}

func TestRender_UnsupportedDirective(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rec, _ := f.render(t, slides(t, "", "```{note} anything\n:scale: 5\n```\n")[0])
	assert.Len(t, rec.Calls, 1, "only the clear call")
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 0xD4, G: 0x18, B: 0x6C, A: 0xFF})
		}
	}
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, img))
}

func TestRender_FigureImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		w, h       int
		block      string
		wantX      int
		wantW      int
		wantH      int
		wantImages int
	}{
		{
			name: "explicit scale", w: 100, h: 40,
			block: "```{figure} diagram.png\n:scale: 50\n```\n",
			wantX: (canvasW - 50) / 2, wantW: 50, wantH: 20, wantImages: 1,
		},
		{
			name: "wide image fits canvas", w: 768, h: 100,
			block: "```{figure} diagram.png\n```\n",
			wantX: 0, wantW: 384, wantH: 50, wantImages: 1,
		},
		{
			name: "small image keeps size", w: 100, h: 40,
			block: "```{figure} diagram.*\n```\n",
			wantX: (canvasW - 100) / 2, wantW: 100, wantH: 40, wantImages: 1,
		},
		{
			name: "missing figure", w: 10, h: 10,
			block:      "```{figure} other.png\n```\n",
			wantImages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writePNG(t, filepath.Join(dir, "diagram.png"), tt.w, tt.h)

			f := newFixture(t)
			rec, _ := f.render(t, slides(t, dir, tt.block)[0])

			images := rec.Filter(canvas.OpImage)
			require.Len(t, images, tt.wantImages)
			if tt.wantImages == 0 {
				return
			}
			assert.Equal(t, tt.wantX, images[0].X)
			assert.Equal(t, 0, images[0].Y)
			assert.Equal(t, tt.wantW, images[0].W)
			assert.Equal(t, tt.wantH, images[0].H)
		})
	}
}

func TestRender_MalformedOptionFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "diagram.png"), 10, 10)

	f := newFixture(t)
	ss := slides(t, dir, "```{figure} diagram.png\n:scale: big\n```\n")

	_, err := f.engine.Render(context.Background(), ss[0], canvas.NewRecorder(canvasW, canvasH))
	require.Error(t, err)
	assert.ErrorIs(t, err, directive.ErrOption)
}

type embedCall struct {
	page  int
	desc  *applet.Descriptor
	place applet.Placement
}

type recordingEmbedder struct {
	calls []embedCall
}

func (r *recordingEmbedder) Embed(page int, desc *applet.Descriptor, place applet.Placement) error {
	r.calls = append(r.calls, embedCall{page: page, desc: desc, place: place})
	return nil
}

func TestRender_FigureApplet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ball.app"), []byte("app: bounce\n"), 0o644))
	writePNG(t, filepath.Join(dir, "ball.png"), 10, 10)

	emb := &recordingEmbedder{}
	f := newFixture(t, layout.WithEmbedder(emb))
	ss := slides(t, dir, "### Demo\n\n```{figure} ball.*\n:scale: 50\n:width: 200\n:height: 100\n:speed: 3\n```\n")

	rec, _ := f.render(t, ss[0])

	assert.Empty(t, rec.Filter(canvas.OpImage), "applet wins over image")
	require.Len(t, emb.calls, 1)
	call := emb.calls[0]
	assert.Equal(t, 0, call.page)
	assert.Equal(t, "bounce", call.desc.App)
	assert.Equal(t, 92, call.place.X)
	assert.Equal(t, 400, call.place.Width)
	assert.Equal(t, 200, call.place.Height)
	assert.InDelta(t, 0.5, call.place.Scale, 1e-9)
	assert.Positive(t, call.place.Y)
}

func TestRender_FigureAppletDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ball.app"), []byte("app: bounce\n"), 0o644))

	emb := &recordingEmbedder{}
	f := newFixture(t, layout.WithEmbedder(emb))
	f.render(t, slides(t, dir, "```{figure} ball.app\n```\n")[0])

	require.Len(t, emb.calls, 1)
	place := emb.calls[0].place
	assert.Equal(t, 355, place.Width)
	assert.Equal(t, 200, place.Height)
	assert.Equal(t, (canvasW-355)/2, place.X)
}

func TestRender_FigureAppletWithoutEmbedder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ball.app"), []byte("app: bounce\n"), 0o644))

	f := newFixture(t)
	rec, _ := f.render(t, slides(t, dir, "```{figure} ball.app\n```\n")[0])
	assert.Len(t, rec.Calls, 1)
}

func TestResolveFigure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "a.png", "b.jpeg", "c.gif"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	tests := []struct {
		arg     string
		want    string
		wantExt string
		wantOK  bool
	}{
		{arg: "a.*", want: "a.png", wantExt: ".png", wantOK: true},
		{arg: "b.*", want: "b.jpeg", wantExt: ".jpeg", wantOK: true},
		{arg: "a.jpg", want: "a.jpg", wantExt: ".jpg", wantOK: true},
		{arg: "c.gif"},
		{arg: "c.*"},
		{arg: "missing.png"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			path, ext, ok := layout.ResolveFigure(filepath.Join(dir, tt.arg))
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, filepath.Join(dir, tt.want), path)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.engine.Render(ctx, slides(t, "", "# T\n")[0], canvas.NewRecorder(canvasW, canvasH))
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkRender(b *testing.B) {
	cfg := config.NewConfig()
	th, err := theme.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = th.Close() }()

	src := "### Detail\n\nSome *emphasis*, **strong** and `code` with a [link](https://go.dev).\n\n" +
		"- one\n- two\n  1. nested\n  2. ordered\n\n```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```\n"
	doc, err := goldmark.New(goldmark.Options{}).Parse(context.Background(), []byte(src))
	if err != nil {
		b.Fatal(err)
	}
	slide := deck.Split("", doc)[0]

	engine := layout.New(cfg, th)
	bmp := canvas.NewBitmap(canvasW, canvasH, th.Palette)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := engine.Render(ctx, slide, bmp); err != nil {
			b.Fatal(err)
		}
	}
}
