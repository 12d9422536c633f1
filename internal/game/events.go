package game

// EventKind identifies what changed in a session.
type EventKind int

const (
	EventStarted EventKind = iota
	EventMoved
	EventFired
	EventSwept
	EventTicked
	EventEnded
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventMoved:
		return "moved"
	case EventFired:
		return "fired"
	case EventSwept:
		return "swept"
	case EventTicked:
		return "ticked"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is published to listeners after every accepted intent.
type Event struct {
	Kind EventKind

	// Direction is the requested direction for EventMoved.
	Direction Direction

	// Spawned is the dragon created by EventFired.
	Spawned *Enemy

	// Hits lists dragons newly flagged by EventFired.
	Hits []string

	// Removed lists dragons cleared by EventSwept.
	Removed []string

	// State is the session state after the change.
	State Snapshot
}

// Listener receives session events on the session's serial context.
type Listener func(Event)
