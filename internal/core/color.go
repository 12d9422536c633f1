package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Colors used by the board, HUD and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
