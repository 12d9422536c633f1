// Package tui provides the Bubble Tea front end for Smarterfiring.
// It maps keys to session intents, turns session timers into Bubble Tea
// commands and renders the board, the intro pager and the overlays.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg is delivered when a scheduled callback comes due.
type timerMsg struct {
	id uint64
}

type teaTimer struct {
	fn       func()
	interval time.Duration
	periodic bool
}

// teaScheduler implements game.Scheduler on top of Bubble Tea commands so
// that every callback runs inside Update, on the program's goroutine.
// Timers armed during an Update are collected and returned by drain.
type teaScheduler struct {
	nextID  uint64
	live    map[uint64]*teaTimer
	pending []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[uint64]*teaTimer)}
}

// Every implements game.Scheduler.
func (s *teaScheduler) Every(interval time.Duration, fn func()) func() {
	return s.add(interval, fn, true)
}

// After implements game.Scheduler.
func (s *teaScheduler) After(delay time.Duration, fn func()) func() {
	return s.add(delay, fn, false)
}

func (s *teaScheduler) add(d time.Duration, fn func(), periodic bool) func() {
	s.nextID++
	id := s.nextID
	s.live[id] = &teaTimer{fn: fn, interval: d, periodic: periodic}
	s.pending = append(s.pending, s.wait(id, d))
	return func() {
		delete(s.live, id)
	}
}

func (s *teaScheduler) wait(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	})
}

// fire runs the callback for id. Periodic timers re-arm first so a
// callback that cancels its own timer wins.
func (s *teaScheduler) fire(id uint64) {
	t, ok := s.live[id]
	if !ok {
		return
	}
	if t.periodic {
		s.pending = append(s.pending, s.wait(id, t.interval))
	} else {
		delete(s.live, id)
	}
	t.fn()
}

// drain returns the commands for timers armed since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// active returns how many timers are still armed.
func (s *teaScheduler) active() int {
	return len(s.live)
}
