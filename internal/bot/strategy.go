// Package bot plays Smarterfiring on its own. Decide is a pure function
// of a snapshot, Run drives a session with it in real time.
package bot

import (
	"github.com/vovakirdan/smarterfiring/internal/core"
	"github.com/vovakirdan/smarterfiring/internal/game"
)

// IntentKind is what the bot wants to do next.
type IntentKind int

const (
	IntentWait IntentKind = iota
	IntentFire
	IntentMove
)

// Intent is one decision.
type Intent struct {
	Kind      IntentKind
	Direction game.Direction
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentFire:
		return "fire"
	case IntentMove:
		return "move " + i.Direction.String()
	default:
		return "wait"
	}
}

// Decide picks the next intent. It fires whenever some dragon can be
// hit, and otherwise walks toward a cell facing the nearest one. With
// an empty board it fires to summon a dragon.
func Decide(s game.Snapshot) Intent {
	if !s.Active {
		return Intent{Kind: IntentWait}
	}

	var target *game.Enemy
	best := 0
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if e.Hit {
			continue
		}
		if game.IsHit(s.Facing, s.Position, *e) {
			return Intent{Kind: IntentFire}
		}
		if d := distanceToLine(s.Position, *e); target == nil || d < best {
			target, best = e, d
		}
	}
	if target == nil {
		return Intent{Kind: IntentFire}
	}

	return Intent{Kind: IntentMove, Direction: approach(s.Position, *target)}
}

// distanceToLine is how many steps the player is away from the row or
// column the dragon travels along.
func distanceToLine(p game.Position, e game.Enemy) int {
	if vertical(e.Direction) {
		return core.Abs(p.X - e.Position.X)
	}
	return core.Abs(p.Y - e.Position.Y)
}

// approach returns the next move toward a firing cell for e.
func approach(p game.Position, e game.Enemy) game.Direction {
	want := e.Direction.Opposite()

	// Get onto the dragon's line first
	if vertical(e.Direction) {
		switch {
		case p.X < e.Position.X:
			return game.DirRight
		case p.X > e.Position.X:
			return game.DirLeft
		}
	} else {
		switch {
		case p.Y < e.Position.Y:
			return game.DirDown
		case p.Y > e.Position.Y:
			return game.DirUp
		}
	}

	// On the line: turning toward the dragon also steps toward it, so
	// back off first when that step would leave no gap.
	if gap(p, e, want) >= 2 {
		return want
	}
	return want.Opposite()
}

// gap counts cells from the player to the dragon along facing, negative
// when the dragon is behind.
func gap(p game.Position, e game.Enemy, facing game.Direction) int {
	dx, dy := facing.Delta()
	return (e.Position.X-p.X)*dx + (e.Position.Y-p.Y)*dy
}

func vertical(d game.Direction) bool {
	return d == game.DirUp || d == game.DirDown
}
