package output

import (
	"testing"

	"github.com/croft/stalecheck/internal/stale"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "table", want: FormatTable},
		{input: "json", want: FormatJSON},
		{input: "markdown", want: FormatMarkdown},
		{input: "", wantErr: true},
		{input: "yaml", wantErr: true},
		{input: "JSON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortedResults(t *testing.T) {
	report := Report{
		Results: []stale.Result{
			{URL: "https://github.com/o/a", DaysInactive: 40},
			{URL: "https://github.com/o/b", DaysInactive: 400},
			{URL: "https://github.com/o/c", DaysInactive: 40},
			{URL: "https://github.com/o/d", DaysInactive: 90},
		},
	}

	sorted := report.SortedResults()

	// Descending by days inactive; the a/c tie keeps classification order.
	wantURLs := []string{
		"https://github.com/o/b",
		"https://github.com/o/d",
		"https://github.com/o/a",
		"https://github.com/o/c",
	}
	for i, want := range wantURLs {
		if sorted[i].URL != want {
			t.Errorf("sorted[%d].URL = %s, want %s", i, sorted[i].URL, want)
		}
	}

	// The original slice is untouched.
	if report.Results[0].URL != "https://github.com/o/a" {
		t.Error("SortedResults() mutated the report's result order")
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) did not return a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatMarkdown).(*MarkdownFormatter); !ok {
		t.Error("NewFormatter(markdown) did not return a MarkdownFormatter")
	}
	if _, ok := NewFormatter(FormatTable).(*TableFormatter); !ok {
		t.Error("NewFormatter(table) did not return a TableFormatter")
	}
}
