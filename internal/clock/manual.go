// Package clock provides schedulers that deliver session timers on a
// single serial context.
package clock

import (
	"sort"
	"time"
)

// Manual is a scheduler driven by explicit calls to Advance. Callbacks run
// synchronously inside Advance, in due-time order, which makes it the
// scheduler of choice for tests and offline replay.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	seq      uint64
	due      time.Duration
	interval time.Duration // zero for one-shot timers
	fn       func()
	dead     bool
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Every implements game.Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return m.add(interval, interval, fn)
}

// After implements game.Scheduler.
func (m *Manual) After(delay time.Duration, fn func()) func() {
	return m.add(max(delay, 0), 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) func() {
	m.seq++
	t := &manualTimer{
		seq:      m.seq,
		due:      m.now + delay,
		interval: interval,
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return func() {
		t.dead = true
	}
}

// Advance moves virtual time forward by d, running every timer that
// comes due on the way. Timers scheduled by callbacks run too if they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.dead = true
		}
		t.fn()
	}
	m.now = target
	m.compact()
}

// nextDue returns the earliest live timer due at or before target.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.dead || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	m.timers = live
}

// Pending returns the due offsets, relative to now, of all live timers.
func (m *Manual) Pending() []time.Duration {
	var out []time.Duration
	for _, t := range m.timers {
		if !t.dead {
			out = append(out, t.due-m.now)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
