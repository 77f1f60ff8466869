package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/pixdeck/pkg/deck"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // PAGE, SEC, TITLE, LINKS, FIGURES
	pageWidth        = 4
	sectionWidth     = 3
	linksWidth       = 5
	minTitleWidth    = 20
	minFigureWidth   = 7
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableFormatter formats deck outlines as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	title   int
	figures int
}

// FormatOutline formats the entries of one deck as a table.
func (t *TableFormatter) FormatOutline(entries []deck.OutlineEntry) string {
	if len(entries) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(entries)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %*s  %*s  %-*s  %*s  %-*s",
		pageWidth, "PAGE",
		sectionWidth, "SEC",
		widths.title, "TITLE",
		linksWidth, "LINKS",
		widths.figures, "FIGURES",
	)))
	b.WriteString("\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths))))
	b.WriteString("\n")

	for _, e := range entries {
		title := e.Title
		if e.Level > 2 {
			title = "  " + title
		}
		row := fmt.Sprintf(" %*d  %*d  %-*s  %*s  %-*s",
			pageWidth, e.Page,
			sectionWidth, e.Section,
			widths.title, truncateString(title, widths.title),
			linksWidth, countOrBlank(e.Links),
			widths.figures, truncateString(strings.Join(e.Figures, ", "), widths.figures),
		)
		if e.Level == 1 || e.Level == 2 {
			row = t.styles.TableSectionRow.Render(row)
		}
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *TableFormatter) calculateColumnWidths(entries []deck.OutlineEntry) columnWidths {
	widths := columnWidths{title: minTitleWidth, figures: minFigureWidth}
	for _, e := range entries {
		widths.title = max(widths.title, len(e.Title)+2)
		widths.figures = max(widths.figures, len(strings.Join(e.Figures, ", ")))
	}

	// Constrain to terminal width, shrinking figures before titles.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.figures = max(minFigureWidth, widths.figures-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.title = max(minTitleWidth, widths.title-excess)
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return pageWidth + sectionWidth + widths.title + linksWidth + widths.figures +
		tablePadding*tableColumnCount
}

func countOrBlank(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
