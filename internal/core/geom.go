// Package core provides the terminal-agnostic building blocks shared by
// the game and the platform layer: a colored cell buffer, colors, clamping
// and semantic input actions. It has no external dependencies so game
// logic stays pure and testable.
package core

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
