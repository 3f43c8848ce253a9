package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/croft/stalecheck/internal/stale"
)

// ansiRegex matches ANSI color sequences and OSC 8 hyperlink wrappers so
// width calculations see only visible text.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

// TableFormatter formats the report as a terminal table.
type TableFormatter struct{}

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns,
// stripping ANSI escape sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, targetWidth int) string {
	width := displayWidth(s)
	if width >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-width)
}

// repoLabel strips the scheme from a repo URL for a tighter column.
func repoLabel(url string) string {
	label := strings.TrimPrefix(url, "https://")
	return strings.TrimPrefix(label, "http://")
}

// Format outputs the report as a table sorted descending by days inactive.
func (f *TableFormatter) Format(report Report, w io.Writer) error {
	results := report.SortedResults()
	if len(results) == 0 {
		fmt.Fprintln(w, "No stale repositories found.")
		return nil
	}

	headers := []string{"Repository", "Days Inactive", "Last Active", "Visibility"}
	if report.WantsMetric(stale.MetricRelease) {
		headers = append(headers, "Last Release")
	}
	if report.WantsMetric(stale.MetricPR) {
		headers = append(headers, "Last PR")
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		row := []string{
			hyperlink(repoLabel(res.URL), res.URL),
			f.colorDays(res.DaysInactive, report.ThresholdDays),
			res.LastActiveDate,
			res.Visibility,
		}
		if report.WantsMetric(stale.MetricRelease) {
			row = append(row, dayCount(res.DaysSinceLastRelease))
		}
		if report.WantsMetric(stale.MetricPR) {
			row = append(row, dayCount(res.DaysSinceLastPR))
		}
		rows = append(rows, row)
	}

	widths := columnWidths(headers, rows)

	writeRow(w, headers, widths)
	total := len(widths)*2 - 2
	for _, cw := range widths {
		total += cw
	}
	fmt.Fprintln(w, strings.Repeat("-", total))
	for _, row := range rows {
		writeRow(w, row, widths)
	}

	return nil
}

// colorDays renders the days-inactive count, colored by how far past the
// threshold the repository is.
func (f *TableFormatter) colorDays(days, threshold int) string {
	s := fmt.Sprintf("%d", days)
	if threshold > 0 && days > 2*threshold {
		return color.RedString(s)
	}
	return color.YellowString(s)
}

// columnWidths computes the display width of each column.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := displayWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	return widths
}

func writeRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = padRight(cell, widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}
