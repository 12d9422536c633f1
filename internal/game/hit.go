package game

// IsHit reports whether firing from player while facing destroys e.
// A dragon is hit only when it shares the player's row or column, sits on
// the far side in the fired direction, and travels toward the player.
func IsHit(facing Direction, player Position, e Enemy) bool {
	switch facing {
	case DirUp:
		return e.Position.X == player.X && e.Position.Y < player.Y && e.Direction == DirDown
	case DirDown:
		return e.Position.X == player.X && e.Position.Y > player.Y && e.Direction == DirUp
	case DirLeft:
		return e.Position.Y == player.Y && e.Position.X < player.X && e.Direction == DirRight
	case DirRight:
		return e.Position.Y == player.Y && e.Position.X > player.X && e.Direction == DirLeft
	}
	return false
}
