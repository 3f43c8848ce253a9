package tui

import (
	"errors"
	"strings"
	"testing"
)

func TestTaskID(t *testing.T) {
	// Verify task IDs are distinct
	ids := []TaskID{TaskAuth, TaskScan, TaskReport}
	seen := make(map[TaskID]bool)

	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate task ID: %d", id)
		}
		seen[id] = true
	}
}

func TestTaskStatus(t *testing.T) {
	// Verify statuses are distinct
	statuses := []TaskStatus{StatusPending, StatusRunning, StatusComplete, StatusError, StatusSkipped}
	seen := make(map[TaskStatus]bool)

	for _, status := range statuses {
		if seen[status] {
			t.Errorf("duplicate status: %d", status)
		}
		seen[status] = true
	}
}

func TestSendEvent(t *testing.T) {
	ch := make(chan Event, 1)

	event := TaskEvent{Task: TaskAuth, Status: StatusComplete}
	SendEvent(ch, event)

	select {
	case received := <-ch:
		if te, ok := received.(TaskEvent); ok {
			if te.Task != TaskAuth {
				t.Errorf("expected task %d, got %d", TaskAuth, te.Task)
			}
		} else {
			t.Error("expected TaskEvent type")
		}
	default:
		t.Error("expected event in channel")
	}
}

func TestSendEventNilChannel(t *testing.T) {
	// Should not panic with nil channel
	SendEvent(nil, TaskEvent{})
}

func TestSendEventFullChannel(t *testing.T) {
	ch := make(chan Event) // unbuffered, nothing receiving

	// Must not block; the dropped event is superseded by later ones.
	SendEvent(ch, TaskEvent{Task: TaskScan, Status: StatusRunning})
}

func TestSendTaskEvent(t *testing.T) {
	ch := make(chan Event, 1)

	wantErr := errors.New("boom")
	SendTaskEvent(ch, TaskScan, StatusError,
		WithMessage("scanning"),
		WithError(wantErr),
	)

	select {
	case received := <-ch:
		te, ok := received.(TaskEvent)
		if !ok {
			t.Fatal("expected TaskEvent type")
		}
		if te.Task != TaskScan {
			t.Errorf("expected task %d, got %d", TaskScan, te.Task)
		}
		if te.Message != "scanning" {
			t.Errorf("expected message 'scanning', got %q", te.Message)
		}
		if !errors.Is(te.Error, wantErr) {
			t.Errorf("expected error %v, got %v", wantErr, te.Error)
		}
	default:
		t.Error("expected event in channel")
	}
}

func TestModelApplyTask(t *testing.T) {
	m := NewModel(nil)

	m.applyTask(TaskEvent{Task: TaskScan, Status: StatusRunning, Message: "5 repos scanned, 1 stale"})

	var scan *Task
	for i := range m.tasks {
		if m.tasks[i].ID == TaskScan {
			scan = &m.tasks[i]
		}
	}
	if scan == nil {
		t.Fatal("scan task missing from default task list")
	}
	if scan.Status != StatusRunning {
		t.Errorf("scan status = %d, want %d", scan.Status, StatusRunning)
	}
	if scan.Message != "5 repos scanned, 1 stale" {
		t.Errorf("scan message = %q", scan.Message)
	}
}

func TestModelRecordsUsername(t *testing.T) {
	m := NewModel(nil)
	m.applyTask(TaskEvent{Task: TaskAuth, Status: StatusComplete, Message: "octocat"})

	if m.username != "octocat" {
		t.Errorf("username = %q, want octocat", m.username)
	}
	if !strings.Contains(m.View(), "Authenticated as") {
		t.Errorf("view missing authenticated line:\n%s", m.View())
	}
}

func TestModelViewShowsTasks(t *testing.T) {
	m := NewModel(nil)
	view := m.View()

	for _, name := range []string{"Authenticating", "Scanning repositories", "Writing reports"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing task %q:\n%s", name, view)
		}
	}
}

func TestModelViewShowsError(t *testing.T) {
	m := NewModel(nil)
	m.applyTask(TaskEvent{Task: TaskScan, Status: StatusError, Error: errors.New("listing repositories: boom")})

	if !strings.Contains(m.View(), "listing repositories: boom") {
		t.Errorf("view missing error text:\n%s", m.View())
	}
}

func TestModelDoneQuits(t *testing.T) {
	m := NewModel(nil)
	updated, cmd := m.Update(DoneEvent{})

	if got := updated.(Model); !got.done {
		t.Error("model not marked done after DoneEvent")
	}
	if cmd == nil {
		t.Error("expected a quit command after DoneEvent")
	}
}
