package cmd

// Options holds the shared command-line options for the stalecheck CLI.
type Options struct {
	Organization   string
	Days           int
	ActivityMethod string
	Metrics        []string
	ExemptRepos    []string
	ExemptTopics   []string

	Format     string
	ReportsDir string
	NoReports  bool

	Verbosity int

	// TUI is tri-state: nil = auto, true = force, false = disable.
	TUI *bool
}
