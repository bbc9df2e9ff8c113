package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(3, 4, 'A', ColorRed)

	cell := s.GetCell(3, 4)
	if cell.Rune != 'A' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected A/red", cell)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 100, 'X', ColorRed)
	if s.GetCell(-1, 0) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, '#', ColorGreen)
	s.Clear()

	if s.GetCell(1, 1) != blankCell {
		t.Errorf("after Clear expected blank cell, got %+v", s.GetCell(1, 1))
	}
}

func TestScreenDrawTextClipsAndCountsRunes(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(2, 0, "█ok!")

	if got := s.Row(0); got != "  █ok!" {
		t.Errorf("Row(0) = %q, expected %q", got, "  █ok!")
	}

	s.DrawText(4, 0, "long")
	if got := s.Row(0); got != "  █olo" {
		t.Errorf("clipped Row(0) = %q, expected %q", got, "  █olo")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))

	expected := strings.Join([]string{"┌───┐", "│   │", "└───┘"}, "\n")
	if s.String() != expected {
		t.Errorf("DrawBox output:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(0, 0, 'X')
	s.Resize(8, 2)

	if s.Width() != 8 || s.Height() != 2 {
		t.Errorf("size after Resize = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear content")
	}
	if len(s.Row(1)) != 8 {
		t.Errorf("row length = %d, expected 8", len(s.Row(1)))
	}
}
