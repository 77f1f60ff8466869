package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/internal/cli"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/fsutil"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	require.NotNil(t, cmd)
	assert.Equal(t, "pixdeck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"present", "export", "outline", "apps", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{"present", []string{"scale", "fps", "show-fps", "page"}},
		{"export", []string{"out", "gif", "jobs", "ignore"}},
		{"outline", []string{"format", "compact"}},
		{"init", []string{"force", "output"}},
		{"apps", []string{"format"}},
		{"version", []string{"short"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, flag := range tt.flags {
				assert.NotNil(t, sub.Flags().Lookup(flag), "missing --%s", flag)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"short", []string{"version", "--short"}, []string{"1.2.3\n"}},
		{"full", []string{"version"}, []string{"pixdeck", "1.2.3", "abc123", "2026-01-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			var stdout bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.want {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "present")
	assert.Contains(t, out, "--config")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"render failed", fmt.Errorf("%w: 1 of 2 decks", cli.ErrRenderFailed), cli.ExitRenderFailed},
		{"usage", fmt.Errorf("%w: bad format", cli.ErrUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: fps must be positive", cli.ErrConfig), cli.ExitConfigError},
		{"missing deck", fmt.Errorf("load deck: %w", fsutil.ErrNotFound), cli.ExitInputError},
		{"empty deck", fmt.Errorf("talk.md: %w", deck.ErrEmptyDeck), cli.ExitInputError},
		{"bad option", fmt.Errorf("page 3: %w", directive.ErrOption), cli.ExitInputError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
