package game

// Position is a cell on the board. (0, 0) is the top-left corner.
type Position struct {
	X, Y int
}

// Direction is one of the four cardinal directions. It is used for
// player movement, the player's facing (and so the fire direction), and
// a dragon's direction of travel.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the valid directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Delta returns the unit step for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

// Arrow returns a single-rune arrow for d.
func (d Direction) Arrow() rune {
	switch d {
	case DirUp:
		return '▲'
	case DirDown:
		return '▼'
	case DirLeft:
		return '◀'
	case DirRight:
		return '▶'
	}
	return '·'
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return DirNone, false
}

// Enemy is a dragon on the board.
type Enemy struct {
	ID        string
	Position  Position
	Direction Direction // direction of travel, always pointing inward from the spawn edge
	Hit       bool
}
