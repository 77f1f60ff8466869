package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, s := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.SectionTitle.Render("test"),
		styles.Figure.Render("test"),
	} {
		assert.Equal(t, "test", s, "no-color styles add no formatting")
	}
}

func TestStyles_AllFieldsRender(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for _, s := range []string{
		styles.Error.Render("x"),
		styles.Warning.Render("x"),
		styles.Info.Render("x"),
		styles.FilePath.Render("x"),
		styles.Page.Render("x"),
		styles.SectionTitle.Render("x"),
		styles.SlideTitle.Render("x"),
		styles.Link.Render("x"),
		styles.Figure.Render("x"),
		styles.SummaryTitle.Render("x"),
		styles.Success.Render("x"),
		styles.Failure.Render("x"),
		styles.TableHeader.Render("x"),
		styles.TableSectionRow.Render("x"),
		styles.TableSeparator.Render("x"),
		styles.Dim.Render("x"),
	} {
		assert.Contains(t, s, "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{"always", "always", true},
		{"never", "never", false},
		{"auto non-tty", "auto", false},
		{"empty is auto", "", false},
		{"unknown is auto", "unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf), tt.name)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
