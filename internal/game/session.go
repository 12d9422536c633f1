// Package game implements the Smarterfiring session: a player on a small
// grid breathes fire at dragons that appear on the edges of the board.
//
// The session is a pure state machine. Timing comes from a Scheduler
// supplied by the host, which must deliver callbacks on the same serial
// context that calls the intents. State is observed through Snapshot and
// Subscribe; the package has no UI dependencies.
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/smarterfiring/internal/core"
)

// Session owns all mutable state of one play-through and is restarted in
// place by Start.
type Session struct {
	params    Params
	scheduler Scheduler
	spawner   Spawner
	newID     func() string

	position      Position
	facing        Direction
	enemies       []Enemy
	score         int
	timeRemaining int
	active        bool
	over          bool
	showingIntro  bool

	generation    uint64
	pendingSweeps int // removal tasks of this generation not yet run
	cancelTick    func()

	listeners    []listenerEntry
	nextListener int
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a Session.
type Option func(*Session)

// WithSpawner replaces the random spawn policy.
func WithSpawner(sp Spawner) Option {
	return func(s *Session) {
		s.spawner = sp
	}
}

// WithIDGenerator replaces the UUID source for dragon identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// New creates a session showing the intro. Nothing is scheduled until Start.
func New(params Params, scheduler Scheduler, opts ...Option) *Session {
	s := &Session{
		params:        params,
		scheduler:     scheduler,
		newID:         uuid.NewString,
		position:      params.Center(),
		facing:        DirRight,
		timeRemaining: params.DurationTicks(),
		showingIntro:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = NewRandomSpawner(time.Now().UnixNano())
	}
	return s
}

// Params returns the rules this session was created with.
func (s *Session) Params() Params {
	return s.params
}

// Start begins a fresh session from any state. The previous tick
// subscription is cancelled and a new one armed.
func (s *Session) Start() {
	s.stopTicking()

	s.generation++
	s.pendingSweeps = 0
	s.score = 0
	s.timeRemaining = s.params.DurationTicks()
	s.over = false
	s.active = true
	s.showingIntro = false
	s.position = s.params.Center()
	s.facing = DirRight
	s.enemies = nil

	gen := s.generation
	s.cancelTick = s.scheduler.Every(s.params.TickInterval, func() {
		if gen == s.generation {
			s.Tick()
		}
	})

	s.emit(Event{Kind: EventStarted})
}

// Tick advances the game clock by one second. The last second stays
// playable: the tick that finds the clock already at zero ends the
// session and stops ticking.
func (s *Session) Tick() {
	if !s.active {
		return
	}

	expired := s.timeRemaining == 0
	if !expired {
		s.timeRemaining--
	}
	s.emit(Event{Kind: EventTicked})

	if expired {
		s.finish()
	}
}

// finish moves the session to game over.
func (s *Session) finish() {
	s.active = false
	s.over = true
	s.stopTicking()
	s.emit(Event{Kind: EventEnded})
}

func (s *Session) stopTicking() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
}

// Move turns the player toward d and steps one cell that way. Facing
// changes even when the board edge blocks the step.
func (s *Session) Move(d Direction) {
	if !s.active || !d.Valid() {
		return
	}

	s.facing = d

	dx, dy := d.Delta()
	last := s.params.GridSize - 1
	next := Position{
		X: core.Clamp(s.position.X+dx, 0, last),
		Y: core.Clamp(s.position.Y+dy, 0, last),
	}
	if next != s.position {
		s.position = next
	}

	s.emit(Event{Kind: EventMoved, Direction: d})
}

// Fire spawns one dragon, then burns every dragon the hit rule matches
// for the current facing. Hit dragons are cleared after the removal delay.
func (s *Session) Fire() {
	if !s.active {
		return
	}

	pos, dir := s.spawner.Spawn(s.params.GridSize)
	last := s.params.GridSize - 1
	spawned := Enemy{
		ID:        s.newID(),
		Position:  Position{X: core.Clamp(pos.X, 0, last), Y: core.Clamp(pos.Y, 0, last)},
		Direction: dir,
	}
	s.enemies = append(s.enemies, spawned)

	var hits []string
	for i := range s.enemies {
		e := &s.enemies[i]
		// Already-burning dragons keep their flag and are not scored again
		if e.Hit || !IsHit(s.facing, s.position, *e) {
			continue
		}
		e.Hit = true
		s.score += s.params.HitReward
		hits = append(hits, e.ID)
	}

	// Not cancelled on restart; removalDue drops tasks of old generations
	s.pendingSweeps++
	gen := s.generation
	s.scheduler.After(s.params.RemovalDelay, func() {
		s.removalDue(gen)
	})

	s.emit(Event{Kind: EventFired, Spawned: &spawned, Hits: hits})
}

// removalDue runs the deferred task scheduled by Fire. A task armed by an
// earlier session is dropped so it cannot clear a newer hit early.
func (s *Session) removalDue(gen uint64) {
	if gen != s.generation {
		return
	}
	if s.pendingSweeps > 0 {
		s.pendingSweeps--
	}
	s.Sweep()
}

// Sweep removes every dragon flagged as hit and returns how many were
// removed. It only looks at current state.
func (s *Session) Sweep() int {
	var removed []string
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Hit {
			removed = append(removed, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	if len(removed) == 0 {
		return 0
	}
	s.enemies = kept

	s.emit(Event{Kind: EventSwept, Removed: removed})
	return len(removed)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	enemies := make([]Enemy, len(s.enemies))
	copy(enemies, s.enemies)

	return Snapshot{
		GridSize:      s.params.GridSize,
		Position:      s.position,
		Facing:        s.facing,
		Enemies:       enemies,
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		Active:        s.active,
		Over:          s.over,
		ShowingIntro:  s.showingIntro,
		Firing:        s.pendingSweeps > 0,
		Generation:    s.generation,
	}
}

// Subscribe registers fn for every subsequent event. The returned func
// removes the registration.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(ev Event) {
	if len(s.listeners) == 0 {
		return
	}
	ev.State = s.Snapshot()

	// Listeners may unsubscribe while being notified
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		l.fn(ev)
	}
}
