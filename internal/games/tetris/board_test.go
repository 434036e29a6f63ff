package tetris

import (
	"strings"
	"testing"
)

func newTestBoard() *Board {
	return NewBoard(Size{Width: BoardWidth, Height: BoardHeight})
}

func fillRow(b *Board, y int) {
	for x := 0; x < b.Size().Width; x++ {
		b.SetCell(x, y, true)
	}
}

func TestBoardOutOfBoundsIsOccupied(t *testing.T) {
	b := newTestBoard()

	tests := []struct {
		name string
		x, y int
	}{
		{"right edge", BoardWidth, 0},
		{"floor", 0, BoardHeight},
		{"far corner", BoardWidth + 5, BoardHeight + 5},
		{"left of board", -1, 3},
		{"above board", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !b.Cell(tt.x, tt.y) {
				t.Errorf("Cell(%d,%d) = false, want true", tt.x, tt.y)
			}
		})
	}

	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if b.Cell(x, y) {
				t.Fatalf("empty board has occupied cell (%d,%d)", x, y)
			}
		}
	}
}

func TestBoardSetCellOutOfBoundsIsNoop(t *testing.T) {
	b := newTestBoard()
	b.SetCell(BoardWidth, 0, true)
	b.SetCell(0, BoardHeight, true)
	b.SetCell(-1, -1, true)

	if b.Count() != 0 {
		t.Errorf("Count() = %d after out-of-bounds writes, want 0", b.Count())
	}

	b.SetCell(3, 4, true)
	if !b.Cell(3, 4) || b.Count() != 1 {
		t.Errorf("SetCell(3,4) did not write exactly one cell")
	}
	b.SetCell(3, 4, false)
	if b.Cell(3, 4) {
		t.Errorf("SetCell(3,4,false) did not clear the cell")
	}
}

func TestClearFullLinesEmptyBoard(t *testing.T) {
	b := newTestBoard()
	before := b.String()

	if n := b.ClearFullLines(); n != 0 {
		t.Errorf("ClearFullLines() = %d, want 0", n)
	}
	if b.String() != before {
		t.Errorf("empty board changed after ClearFullLines")
	}
}

func TestClearFullLinesCompactsDownward(t *testing.T) {
	b := newTestBoard()
	fillRow(b, 2)
	fillRow(b, 5)

	// Markers above, between and below the full rows.
	b.SetCell(0, 0, true)
	b.SetCell(1, 1, true)
	b.SetCell(3, 3, true)
	b.SetCell(4, 4, true)
	b.SetCell(7, 10, true)

	if n := b.ClearFullLines(); n != 2 {
		t.Fatalf("ClearFullLines() = %d, want 2", n)
	}

	want := map[[2]int]bool{
		{0, 2}:  true, // above both cleared rows: falls by 2
		{1, 3}:  true,
		{3, 4}:  true, // between the cleared rows: falls by 1
		{4, 5}:  true,
		{7, 10}: true, // below every cleared row: unchanged
	}

	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if got := b.Cell(x, y); got != want[[2]int{x, y}] {
				t.Errorf("Cell(%d,%d) = %v, want %v", x, y, got, want[[2]int{x, y}])
			}
		}
	}

	for y := 0; y <= 1; y++ {
		for x := 0; x < BoardWidth; x++ {
			if b.Cell(x, y) {
				t.Errorf("row %d not empty after clearing two lines", y)
			}
		}
	}
}

func TestClearFullLinesTetris(t *testing.T) {
	b := newTestBoard()
	for y := BoardHeight - 4; y < BoardHeight; y++ {
		fillRow(b, y)
	}
	b.SetCell(5, BoardHeight-5, true)

	if n := b.ClearFullLines(); n != 4 {
		t.Fatalf("ClearFullLines() = %d, want 4", n)
	}
	if b.Count() != 1 || !b.Cell(5, BoardHeight-1) {
		t.Errorf("survivor did not fall to the floor:\n%s", b)
	}
}

func TestClearFullLinesMatchesSimultaneousRemoval(t *testing.T) {
	b := newTestBoard()
	for _, y := range []int{4, 8, 9, 19} {
		fillRow(b, y)
	}
	for y := 0; y < BoardHeight; y++ {
		if !b.isFull(y) {
			b.SetCell(y%BoardWidth, y, true)
		}
	}

	// Reference: drop full rows from the string form and pad the top.
	var kept []string
	for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
		if line != strings.Repeat("#", BoardWidth) {
			kept = append(kept, line)
		}
	}
	for len(kept) < BoardHeight {
		kept = append([]string{strings.Repeat(".", BoardWidth)}, kept...)
	}
	want := strings.Join(kept, "\n") + "\n"

	if n := b.ClearFullLines(); n != 4 {
		t.Fatalf("ClearFullLines() = %d, want 4", n)
	}
	if got := b.String(); got != want {
		t.Errorf("board after clear:\n%s\nwant:\n%s", got, want)
	}
}

func TestCanPlaceAndPlace(t *testing.T) {
	b := newTestBoard()
	o := FigureOf(KindO)

	if !b.CanPlace(o, Position{X: 0, Y: 0}) {
		t.Fatal("O should fit in the top-left corner")
	}
	if b.CanPlace(o, Position{X: BoardWidth - 1, Y: 0}) {
		t.Error("O should not fit across the right wall")
	}
	if b.CanPlace(o, Position{X: 0, Y: BoardHeight - 1}) {
		t.Error("O should not fit through the floor")
	}

	b.Place(o, Position{X: 4, Y: 10})
	if b.Count() != 4 {
		t.Fatalf("Count() = %d after placing O, want 4", b.Count())
	}
	if b.CanPlace(o, Position{X: 5, Y: 11}) {
		t.Error("O should collide with the locked O")
	}
	if !b.CanPlace(o, Position{X: 6, Y: 10}) {
		t.Error("O should fit beside the locked O")
	}
}

func TestBoardClone(t *testing.T) {
	b := newTestBoard()
	b.SetCell(2, 2, true)
	c := b.Clone()
	c.SetCell(3, 3, true)

	if b.Cell(3, 3) {
		t.Error("writing to the clone changed the original")
	}
	if !c.Cell(2, 2) {
		t.Error("clone lost an occupied cell")
	}
}
