package game

import "time"

// Params are the fixed rules of a session.
type Params struct {
	GridSize        int           // Board is GridSize x GridSize cells
	SessionDuration time.Duration // Game clock; one tick consumes one second
	TickInterval    time.Duration // How often the host delivers a tick
	HitReward       int           // Points per dragon hit
	RemovalDelay    time.Duration // How long a hit dragon stays on the board
}

// DefaultParams returns the standard rules: a 5x5 board, two minutes,
// 10 points per hit and hit dragons cleared after 300ms.
func DefaultParams() Params {
	return Params{
		GridSize:        5,
		SessionDuration: 120 * time.Second,
		TickInterval:    time.Second,
		HitReward:       10,
		RemovalDelay:    300 * time.Millisecond,
	}
}

// DurationTicks returns how many ticks a session lasts.
func (p Params) DurationTicks() int {
	return int(p.SessionDuration / time.Second)
}

// Center returns the player's starting cell.
func (p Params) Center() Position {
	return Position{X: p.GridSize / 2, Y: p.GridSize / 2}
}

// InBounds reports whether pos lies on the board.
func (p Params) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < p.GridSize && pos.Y >= 0 && pos.Y < p.GridSize
}
