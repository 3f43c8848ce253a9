package stale

// Result is the record produced for each repository that crosses the
// inactivity threshold. The shape is fixed: the supplemental fields are
// always part of the record and serialize as null when the metric was not
// requested, not available, or inapplicable.
type Result struct {
	URL            string `json:"url"`
	DaysInactive   int    `json:"daysInactive"`
	LastActiveDate string `json:"lastPushDate"`
	Visibility     string `json:"visibility"`

	// DaysSinceLastRelease and DaysSinceLastPR are nil when absent.
	DaysSinceLastRelease *int `json:"daysSinceLastRelease"`
	DaysSinceLastPR      *int `json:"daysSinceLastPR"`
}

// Visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)
