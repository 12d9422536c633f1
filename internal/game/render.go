package game

import (
	"fmt"

	"github.com/vovakirdan/smarterfiring/internal/core"
)

// Board cell dimensions in terminal characters.
const (
	CellW = 5
	CellH = 3
)

// BoardSize returns the outer size of a rendered board, border included.
func BoardSize(gridSize int) (w, h int) {
	return gridSize*CellW + 2, gridSize*CellH + 2
}

// RenderBoard draws the board with its top-left border corner at (ox, oy).
func (s Snapshot) RenderBoard(dst *core.Screen, ox, oy int) {
	w, h := BoardSize(s.GridSize)
	dst.DrawBox(ox, oy, w, h, core.ColorBlue)

	// Grid dots mark cell centres
	for gy := 0; gy < s.GridSize; gy++ {
		for gx := 0; gx < s.GridSize; gx++ {
			cx, cy := s.cellCenter(ox, oy, Position{X: gx, Y: gy})
			dst.Set(cx, cy, '·', core.ColorGray)
		}
	}

	if s.Firing {
		s.renderFlame(dst, ox, oy)
	}

	for _, e := range s.Enemies {
		cx, cy := s.cellCenter(ox, oy, e.Position)
		if e.Hit {
			dst.Set(cx-1, cy, '*', core.ColorOrange)
			dst.Set(cx, cy, '✶', core.ColorOrange)
			dst.Set(cx+1, cy, '*', core.ColorOrange)
			continue
		}
		dst.Set(cx, cy, 'D', core.ColorRed)
		dst.Set(cx+1, cy, e.Direction.Arrow(), core.ColorRed)
	}

	px, py := s.cellCenter(ox, oy, s.Position)
	dst.Set(px, py, '@', core.ColorYellow)
	dx, dy := s.Facing.Delta()
	dst.Set(px+dx, py+dy, s.Facing.Arrow(), core.ColorYellow)
}

// renderFlame draws fire from the player to the board edge along the facing.
func (s Snapshot) renderFlame(dst *core.Screen, ox, oy int) {
	dx, dy := s.Facing.Delta()
	p := Position{X: s.Position.X + dx, Y: s.Position.Y + dy}
	for p.X >= 0 && p.X < s.GridSize && p.Y >= 0 && p.Y < s.GridSize {
		cx, cy := s.cellCenter(ox, oy, p)
		dst.Set(cx, cy, '~', core.ColorOrange)
		p.X += dx
		p.Y += dy
	}
}

func (s Snapshot) cellCenter(ox, oy int, p Position) (int, int) {
	return ox + 1 + p.X*CellW + CellW/2, oy + 1 + p.Y*CellH + CellH/2
}

// HUD returns the status line shown above the board.
func (s Snapshot) HUD() string {
	return fmt.Sprintf("Score: %d   Time: %s   Facing: %s", s.Score, FormatClock(s.TimeRemaining), s.Facing)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
