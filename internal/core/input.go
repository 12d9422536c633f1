package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionDown           // S, Down arrow - move down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionFire           // Space, F - breathe fire
	ActionConfirm        // Enter, R - next intro page, start, restart, play again
	ActionShare          // C - copy the share message after game over
	ActionInfo           // I - toggle the info view
	ActionBack           // Esc - close overlays
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionShare:
		return "Share"
	case ActionInfo:
		return "Info"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
