package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("dimensions = %dx%d, expected 40x12", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(3, 4, 'D', ColorRed)
	c := s.GetCell(3, 4)
	if c.Rune != 'D' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected D/red", c)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'X', ColorRed)
	s.Set(10, 0, 'X', ColorRed)
	s.Set(0, -1, 'X', ColorRed)
	s.Set(0, 10, 'X', ColorRed)

	if s.Get(-1, 0) != ' ' || s.Get(10, 10) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(7, 0, "Score", ColorYellow)

	if s.Row(0) != "       Sco" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(7, 0).Color != ColorYellow {
		t.Error("DrawText should apply color")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "fire", ColorDefault)

	if s.Row(0) != "   fire    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(0, 0, 6, 4, ColorBlue)

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}, "\n")
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}

	// Degenerate boxes draw nothing
	s.Clear()
	s.DrawBox(0, 0, 1, 1, ColorBlue)
	if s.Get(0, 0) != ' ' {
		t.Error("1x1 box should not be drawn")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X', ColorDefault)

	s.Resize(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("after resize dimensions = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear content")
	}
	if len(s.Row(2)) != 8 {
		t.Errorf("row length = %d, expected 8", len(s.Row(2)))
	}
}
