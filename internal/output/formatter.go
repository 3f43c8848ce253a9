// Package output renders classification results as a terminal table,
// markdown, or JSON. Display ordering (descending by days inactive) is
// applied here, not in the engine.
package output

import (
	"fmt"
	"io"
	"slices"

	"github.com/croft/stalecheck/internal/stale"
)

// Format represents the output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("invalid format %q (must be table, markdown, or json)", s)
}

// Report bundles the classification results with the run parameters the
// renderers need.
type Report struct {
	Results       []stale.Result
	ThresholdDays int
	Organization  string

	// Metrics lists the supplemental metrics that were requested; only
	// those columns are rendered.
	Metrics []stale.Metric
}

// WantsMetric reports whether the given metric column should be rendered.
func (r Report) WantsMetric(m stale.Metric) bool {
	return slices.Contains(r.Metrics, m)
}

// SortedResults returns a copy of the results sorted descending by days
// inactive. Ties keep their classification order.
func (r Report) SortedResults() []stale.Result {
	sorted := slices.Clone(r.Results)
	slices.SortStableFunc(sorted, func(a, b stale.Result) int {
		return b.DaysInactive - a.DaysInactive
	})
	return sorted
}

// Formatter defines the interface for output formatters.
type Formatter interface {
	Format(report Report, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
