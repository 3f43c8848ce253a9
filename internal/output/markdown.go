package output

import (
	"fmt"
	"io"

	"github.com/croft/stalecheck/internal/stale"
)

// MarkdownFormatter formats the report as a markdown document with a table
// sorted descending by days inactive.
type MarkdownFormatter struct{}

// Format outputs the report as markdown.
func (f *MarkdownFormatter) Format(report Report, w io.Writer) error {
	fmt.Fprintln(w, "# Inactive Repositories")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "The following repos have not had a push event for more than %d days:\n", report.ThresholdDays)
	fmt.Fprintln(w)

	fmt.Fprint(w, "| Repository URL | Days Inactive | Last Push Date | Visibility |")
	if report.WantsMetric(stale.MetricRelease) {
		fmt.Fprint(w, " Days Since Last Release |")
	}
	if report.WantsMetric(stale.MetricPR) {
		fmt.Fprint(w, " Days Since Last PR |")
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "| --- | --- | --- | --- |")
	if report.WantsMetric(stale.MetricRelease) {
		fmt.Fprint(w, " --- |")
	}
	if report.WantsMetric(stale.MetricPR) {
		fmt.Fprint(w, " --- |")
	}
	fmt.Fprintln(w)

	for _, res := range report.SortedResults() {
		fmt.Fprintf(w, "| %s | %d | %s | %s |", res.URL, res.DaysInactive, res.LastActiveDate, res.Visibility)
		if report.WantsMetric(stale.MetricRelease) {
			fmt.Fprintf(w, " %s |", dayCount(res.DaysSinceLastRelease))
		}
		if report.WantsMetric(stale.MetricPR) {
			fmt.Fprintf(w, " %s |", dayCount(res.DaysSinceLastPR))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// dayCount renders an optional day count, "-" when absent.
func dayCount(days *int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *days)
}
