package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/croft/stalecheck/internal/stale"
)

func TestJSONFormat(t *testing.T) {
	report := Report{
		Results: []stale.Result{
			{
				URL:                  "https://github.com/o/r",
				DaysInactive:         400,
				LastActiveDate:       "2025-04-01",
				Visibility:           "public",
				DaysSinceLastRelease: intPtr(42),
			},
		},
	}

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d records, want 1", len(decoded))
	}

	rec := decoded[0]
	// Every record carries the full fixed key set; absent metrics are null.
	for _, key := range []string{"url", "daysInactive", "lastPushDate", "visibility", "daysSinceLastRelease", "daysSinceLastPR"} {
		if _, ok := rec[key]; !ok {
			t.Errorf("record missing key %q: %v", key, rec)
		}
	}
	if rec["url"] != "https://github.com/o/r" {
		t.Errorf("url = %v", rec["url"])
	}
	if rec["daysInactive"] != float64(400) {
		t.Errorf("daysInactive = %v, want 400", rec["daysInactive"])
	}
	if rec["daysSinceLastRelease"] != float64(42) {
		t.Errorf("daysSinceLastRelease = %v, want 42", rec["daysSinceLastRelease"])
	}
	if rec["daysSinceLastPR"] != nil {
		t.Errorf("daysSinceLastPR = %v, want null", rec["daysSinceLastPR"])
	}
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty report = %q, want []", got)
	}
}

func TestJSONFormatKeepsClassificationOrder(t *testing.T) {
	report := Report{
		Results: []stale.Result{
			{URL: "https://github.com/o/a", DaysInactive: 40},
			{URL: "https://github.com/o/b", DaysInactive: 400},
		},
	}

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// JSON output is not resorted; a (fewer days) stays first.
	out := buf.String()
	if strings.Index(out, "o/a") > strings.Index(out, "o/b") {
		t.Errorf("JSON reordered results:\n%s", out)
	}
}
