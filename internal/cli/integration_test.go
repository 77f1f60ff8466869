package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/internal/cli"
	"github.com/yaklabco/pixdeck/pkg/config"
	"github.com/yaklabco/pixdeck/pkg/present"
	"github.com/yaklabco/pixdeck/pkg/reporter"
)

const testDeck = "# Intro\n\nHello [Go](https://go.dev)\n\n## Part two\n\nWorld\n\n### Detail\n\nMore\n"

// fixture writes a deck and an isolating config file into a temp dir.
func fixture(t *testing.T, deck string) (dir, deckPath, cfgPath string) {
	t.Helper()

	dir = t.TempDir()
	deckPath = filepath.Join(dir, "talk.md")
	require.NoError(t, os.WriteFile(deckPath, []byte(deck), 0o644))

	cfgPath = filepath.Join(dir, "pixdeck.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("export:\n  hold_frames: 2\n"), 0o644))

	return dir, deckPath, cfgPath
}

func execute(t *testing.T, opts []cli.Option, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo(), opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestIntegration_Export(t *testing.T) {
	t.Parallel()

	dir, deckPath, cfgPath := fixture(t, testDeck)
	out := filepath.Join(dir, "dist")

	stdout, err := execute(t, nil, "export", "--config", cfgPath, "--color", "never",
		"--out", out, "--gif", deckPath)
	require.NoError(t, err)

	for _, name := range []string{"page-000.png", "page-001.png", "page-002.png", present.WalkthroughName} {
		assert.FileExists(t, filepath.Join(out, "talk", name))
	}
	assert.Contains(t, stdout, "1 deck exported, 3 pages, 4 files written")
}

func TestIntegration_ExportFailure(t *testing.T) {
	t.Parallel()

	dir, _, cfgPath := fixture(t, testDeck)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), nil, 0o644))
	out := filepath.Join(t.TempDir(), "dist")

	stdout, err := execute(t, nil, "export", "--config", cfgPath, "--color", "never",
		"--out", out, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrRenderFailed)
	assert.Equal(t, cli.ExitRenderFailed, cli.ExitCode(err))

	assert.FileExists(t, filepath.Join(out, "talk", "page-000.png"))
	assert.Contains(t, stdout, "(1 failed)")
}

func TestIntegration_OutlineJSON(t *testing.T) {
	t.Parallel()

	_, deckPath, cfgPath := fixture(t, testDeck)

	stdout, err := execute(t, nil, "outline", "--config", cfgPath, "--format", "json", deckPath)
	require.NoError(t, err)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Decks, 1)

	d := got.Decks[0]
	assert.Equal(t, deckPath, d.Path)
	assert.Equal(t, 3, d.Pages)
	assert.Equal(t, 2, d.Sections)
	require.Len(t, d.Slides, 3)
	assert.Equal(t, "Intro", d.Slides[0].Title)
	assert.Equal(t, 1, d.Slides[0].Links)
	assert.Equal(t, 3, d.Slides[2].Level)
}

func TestIntegration_OutlineText(t *testing.T) {
	t.Parallel()

	_, deckPath, cfgPath := fixture(t, testDeck)

	stdout, err := execute(t, nil, "outline", "--config", cfgPath, "--color", "never", deckPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Part two")
	assert.Contains(t, stdout, "Detail")
}

func TestIntegration_Errors(t *testing.T) {
	t.Parallel()

	dir, deckPath, cfgPath := fixture(t, testDeck)
	badCfg := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badCfg, []byte("present:\n  fps: 0\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format", []string{"outline", "--config", cfgPath, "--format", "xml", deckPath}, cli.ExitInvalidUsage},
		{"missing deck", []string{"outline", "--config", cfgPath, filepath.Join(dir, "nope.md")}, cli.ExitInputError},
		{"invalid config", []string{"outline", "--config", badCfg, deckPath}, cli.ExitConfigError},
		{"missing config", []string{"outline", "--config", filepath.Join(dir, "nope.yml"), deckPath}, cli.ExitConfigError},
		{"page out of range", []string{"present", "--config", cfgPath, "--page", "7", deckPath}, cli.ExitInvalidUsage},
		{"apps format", []string{"apps", "--format", "xml"}, cli.ExitInvalidUsage},
	}

	display := cli.WithDisplay(func(context.Context, *present.Presenter, *config.Config) error { return nil })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, []cli.Option{display}, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err))
		})
	}
}

func TestIntegration_Present(t *testing.T) {
	t.Parallel()

	_, deckPath, cfgPath := fixture(t, testDeck)

	var (
		page  = -1
		scale int
	)
	display := cli.WithDisplay(func(_ context.Context, p *present.Presenter, cfg *config.Config) error {
		page = p.Controller().Page()
		scale = cfg.Present.Scale
		return nil
	})

	_, err := execute(t, []cli.Option{display}, "present", "--config", cfgPath, "--scale", "5", "--page", "2", deckPath)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 5, scale)
}

func TestIntegration_PresentWithoutDisplay(t *testing.T) {
	t.Parallel()

	_, deckPath, cfgPath := fixture(t, testDeck)

	_, err := execute(t, nil, "present", "--config", cfgPath, deckPath)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".pixdeck.yml")

	_, err := execute(t, nil, "init", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# pixdeck configuration")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)

	_, err = execute(t, nil, "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, nil, "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestIntegration_Apps(t *testing.T) {
	t.Parallel()

	stdout, err := execute(t, nil, "apps", "--format", "json")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &names))
	assert.Contains(t, names, "bounce")
}
