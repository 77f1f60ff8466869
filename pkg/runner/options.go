// Package runner exports many decks concurrently.
package runner

import "github.com/yaklabco/pixdeck/pkg/config"

// Options controls a multi-deck export.
type Options struct {
	// Paths are the user-specified decks or directories. If empty, defaults
	// to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered decks. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip files or directories. Patterns use / as separator;
	// * stays within a path segment and ** crosses segments. A pattern also
	// matches when it matches the base name alone.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives one subdirectory per deck.
	OutDir string

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of deck file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
