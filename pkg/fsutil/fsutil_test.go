package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pixdeck/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "deck.md")
		require.NoError(t, os.WriteFile(path, []byte("# Intro\n"), 0o644))

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Intro\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(8), info.Size)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deck.md")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	changed, err := fsutil.Changed(info)
	require.NoError(t, err)
	assert.False(t, changed)

	later := info.ModTime.Add(2 * time.Second)
	require.NoError(t, os.WriteFile(path, []byte("one two"), 0o644))
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = fsutil.Changed(info)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(path))
	changed, err = fsutil.Changed(info)
	require.NoError(t, err)
	assert.True(t, changed)
}
