package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/pixdeck/pkg/runner"
)

// FormatExportSummary formats export statistics as a single line.
// Example: "3 decks exported, 42 pages, 45 files written (1 failed)".
func (s *Styles) FormatExportSummary(stats runner.Stats) string {
	if stats.DecksDiscovered == 0 {
		return s.Warning.Render("No decks found") + "\n"
	}

	parts := []string{
		s.Success.Render(plural(stats.DecksExported, "deck") + " exported"),
		plural(stats.PagesRendered, "page"),
		plural(stats.FilesWritten, "file") + " written",
	}

	line := strings.Join(parts, ", ")
	if stats.DecksErrored > 0 {
		line += " " + s.Failure.Render(fmt.Sprintf("(%d failed)", stats.DecksErrored))
	}
	return line + "\n"
}
