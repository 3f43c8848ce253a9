package output

import (
	"encoding/json"
	"io"

	"github.com/croft/stalecheck/internal/stale"
)

// JSONFormatter formats the report as JSON. Every record has the same fixed
// field set; supplemental metrics serialize as null when absent. Results
// keep their classification order.
type JSONFormatter struct {
	Pretty bool
}

// Format outputs the results as a JSON array.
func (f *JSONFormatter) Format(report Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	results := report.Results
	if results == nil {
		// An empty scan still renders a valid (empty) array.
		results = []stale.Result{}
	}
	return encoder.Encode(results)
}
