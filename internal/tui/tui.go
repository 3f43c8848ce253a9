package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the progress display and blocks until the events channel is
// closed or a DoneEvent arrives. Rendering is inline, not alt-screen, so
// the report output that follows stays in the scrollback.
func Run(events <-chan Event) error {
	p := tea.NewProgram(NewModel(events))
	_, err := p.Run()
	return err
}

// ShouldUseTUI returns true if the progress display should be used based on
// the environment.
func ShouldUseTUI() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	// CI logs want plain lines, not cursor movement.
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}
