package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

type fakeRuns struct {
	runs    []storage.Run
	events  map[string][]storage.EventRecord
	deleted []string
	err     error
}

func (f *fakeRuns) RecentRuns(limit int) ([]storage.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.runs, nil
}

func (f *fakeRuns) Events(runID string) ([]storage.EventRecord, error) {
	return f.events[runID], nil
}

func (f *fakeRuns) DeleteRun(runID string) error {
	f.deleted = append(f.deleted, runID)
	kept := f.runs[:0]
	for _, r := range f.runs {
		if r.ID != runID {
			kept = append(kept, r)
		}
	}
	f.runs = kept
	return nil
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{
		runs: []storage.Run{{
			ID:              "run-1",
			Source:          "local",
			GridSize:        5,
			SessionSeconds:  120,
			HitRewardPoints: 10,
			StartedAt:       time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
			EndedAt:         time.Date(2026, 10, 1, 12, 2, 0, 0, time.UTC),
			Completed:       true,
			EventCount:      3,
		}},
		events: map[string][]storage.EventRecord{
			"run-1": {
				{Seq: 0, Kind: journal.KindStart},
				{Seq: 1, Kind: journal.KindFire, Direction: "left", X: 4, Y: 2},
				{Seq: 2, Kind: journal.KindTick},
			},
		},
	}
}

func updateHistory(t *testing.T, m HistoryModel, msg tea.Msg) HistoryModel {
	t.Helper()
	next, _ := m.Update(msg)
	hm, ok := next.(HistoryModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return hm
}

func TestHistoryListsRuns(t *testing.T) {
	m := NewHistoryModel(newFakeRuns(), 80, 24)

	view := m.View()
	for _, want := range []string{"RECORDED RUNS", "run-1", "local", "completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryReplay(t *testing.T) {
	m := NewHistoryModel(newFakeRuns(), 80, 24)

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "Run run-1: score 10, 1:59 left" {
		t.Errorf("status = %q", m.status)
	}
}

func TestHistoryDelete(t *testing.T) {
	src := newFakeRuns()
	m := NewHistoryModel(src, 80, 24)

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if len(src.deleted) != 1 || src.deleted[0] != "run-1" {
		t.Fatalf("deleted = %v", src.deleted)
	}
	if len(m.runs) != 0 {
		t.Errorf("runs not reloaded: %v", m.runs)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty history message missing")
	}
}

func TestHistoryLoadError(t *testing.T) {
	m := NewHistoryModel(&fakeRuns{err: errors.New("locked")}, 80, 24)
	if !strings.Contains(m.status, "locked") {
		t.Errorf("status = %q", m.status)
	}
	// Nothing selected, nothing happens
	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "locked") {
		t.Errorf("status changed to %q", m.status)
	}
}

func TestRunStatus(t *testing.T) {
	now := time.Now()
	tests := []struct {
		run  storage.Run
		want string
	}{
		{storage.Run{Completed: true, EndedAt: now}, "completed"},
		{storage.Run{EndedAt: now}, "abandoned"},
		{storage.Run{}, "open"},
	}
	for _, tt := range tests {
		if got := RunStatus(tt.run); got != tt.want {
			t.Errorf("RunStatus(%+v) = %q, expected %q", tt.run, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID() = %q", got)
	}
}
