package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Task is one row in the progress display.
type Task struct {
	ID      TaskID
	Name    string
	Status  TaskStatus
	Message string
	Error   error
}

// defaultTasks returns the task list for a scan run.
func defaultTasks() []Task {
	return []Task{
		{ID: TaskAuth, Name: "Authenticating"},
		{ID: TaskScan, Name: "Scanning repositories"},
		{ID: TaskReport, Name: "Writing reports"},
	}
}

// Model is the Bubble Tea model for the progress display.
type Model struct {
	tasks          []Task
	spinner        spinner.Model
	events         <-chan Event
	username       string
	rateLimited    bool
	rateLimitReset time.Time
	done           bool
}

// NewModel creates a new progress model reading from events.
func NewModel(events <-chan Event) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		tasks:   defaultTasks(),
		spinner: s,
		events:  events,
	}
}

// RateLimitEvent reports that the GitHub API rate limit was hit.
type RateLimitEvent struct {
	Limited bool
	ResetAt time.Time
}

func (RateLimitEvent) isEvent() {}

// waitForEvent returns a command that blocks for the next pipeline event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return DoneEvent{}
		}
		return e
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TaskEvent:
		m.applyTask(msg)
		return m, waitForEvent(m.events)

	case RateLimitEvent:
		m.rateLimited = msg.Limited
		m.rateLimitReset = msg.ResetAt
		return m, waitForEvent(m.events)

	case DoneEvent:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyTask(e TaskEvent) {
	for i := range m.tasks {
		if m.tasks[i].ID != e.Task {
			continue
		}
		m.tasks[i].Status = e.Status
		if e.Message != "" {
			m.tasks[i].Message = e.Message
		}
		if e.Error != nil {
			m.tasks[i].Error = e.Error
		}
		if e.Task == TaskAuth && e.Status == StatusComplete && e.Message != "" {
			m.username = e.Message
		}
		break
	}
}

// View renders the model.
func (m Model) View() string {
	var s string

	for _, task := range m.tasks {
		if task.ID == TaskAuth && task.Status == StatusComplete && m.username != "" {
			s += fmt.Sprintf("  %s Authenticated as %s\n", iconComplete, userStyle.Render(m.username))
			continue
		}
		s += "  " + task.view(m.spinner.View()) + "\n"
	}

	if m.rateLimited {
		if wait := time.Until(m.rateLimitReset).Round(time.Second); wait > 0 {
			s += warnStyle.Render(fmt.Sprintf("\n  Rate limited - resets in %s\n", wait))
		}
	}

	return s
}

func (t Task) view(spinnerFrame string) string {
	icon := statusIcon(t.Status, spinnerFrame)

	name := taskNameStyle.Render(t.Name)
	if t.Status == StatusPending || t.Status == StatusSkipped {
		name = taskDimStyle.Render(t.Name)
	}

	line := fmt.Sprintf("%s %s", icon, name)
	if t.Status == StatusError && t.Error != nil {
		return line + " " + errorStyle.Render(t.Error.Error())
	}
	if t.Message != "" {
		line += " " + messageStyle.Render(t.Message)
	}
	return line
}
