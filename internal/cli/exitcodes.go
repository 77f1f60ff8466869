package cli

import (
	"errors"

	"github.com/yaklabco/pixdeck/pkg/applet"
	"github.com/yaklabco/pixdeck/pkg/deck"
	"github.com/yaklabco/pixdeck/pkg/directive"
	"github.com/yaklabco/pixdeck/pkg/fsutil"
)

// Exit codes for pixdeck.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRenderFailed indicates that some decks could not be exported.
	ExitRenderFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInputError indicates a missing or malformed deck.
	ExitInputError = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrRenderFailed is returned when an export finishes with failed decks.
	ErrRenderFailed = errors.New("render failed")

	// ErrConfig wraps configuration loading and validation failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage wraps bad flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed):
		return ExitRenderFailed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, deck.ErrEmptyDeck),
		errors.Is(err, directive.ErrOption),
		errors.Is(err, applet.ErrUnknownApp):
		return ExitInputError
	default:
		return ExitInternalError
	}
}
