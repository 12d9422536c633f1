package game

// Phase is the screen a host should show.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	GridSize      int
	Position      Position
	Facing        Direction
	Enemies       []Enemy
	Score         int
	TimeRemaining int
	Active        bool
	Over          bool
	ShowingIntro  bool
	Firing        bool   // a fire happened within the last removal window
	Generation    uint64 // incremented by every start
}

// Phase selects the visible screen: intro first, then game over, then play.
func (s Snapshot) Phase() Phase {
	switch {
	case s.ShowingIntro:
		return PhaseIntro
	case s.Over:
		return PhaseOver
	default:
		return PhasePlaying
	}
}

// EnemyAt returns the first dragon occupying pos, if any.
func (s Snapshot) EnemyAt(pos Position) (Enemy, bool) {
	for _, e := range s.Enemies {
		if e.Position == pos {
			return e, true
		}
	}
	return Enemy{}, false
}
