// Package tetris implements the falling-block puzzle: a 10x20 well, seven
// tetromino shapes, rotation and collision rules, line clears and the
// NES-style level curve. The package is pure; the platform feeds it one
// ordered batch of actions per tick and reads back frames and status.
package tetris

import (
	"github.com/bits-and-blooms/bitset"
)

// Well dimensions.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Size is a width/height pair measured in cells.
type Size struct {
	Width  int
	Height int
}

// Area returns the number of cells covered by the size.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Position is the board coordinate of a shape's top-left bounding box corner.
type Position struct {
	X, Y int
}

// Shape is anything that can be stamped onto the board: a bounding size and
// a per-cell occupancy predicate in shape-local (row, col) coordinates.
type Shape interface {
	Size() Size
	Occupied(row, col int) bool
}

// Board is the grid of locked cells. Each row is a bitset of BoardWidth bits.
type Board struct {
	size Size
	rows []*bitset.BitSet
}

// NewBoard creates an empty board of the given size.
func NewBoard(size Size) *Board {
	b := &Board{
		size: size,
		rows: make([]*bitset.BitSet, size.Height),
	}
	for y := range b.rows {
		b.rows[y] = bitset.New(uint(size.Width))
	}
	return b
}

// Size returns the board dimensions.
func (b *Board) Size() Size {
	return b.size
}

// inBounds reports whether (x, y) addresses a real cell.
func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size.Width && y < b.size.Height
}

// Cell returns whether the cell at (x, y) is occupied.
// Anything outside the board counts as occupied, so walls and floor collide
// exactly like locked blocks do.
func (b *Board) Cell(x, y int) bool {
	if !b.inBounds(x, y) {
		return true
	}
	return b.rows[y].Test(uint(x))
}

// SetCell writes a single cell. Out-of-bounds writes are ignored.
func (b *Board) SetCell(x, y int, v bool) {
	if !b.inBounds(x, y) {
		return
	}
	b.rows[y].SetTo(uint(x), v)
}

// CanPlace reports whether every occupied cell of s, offset by pos, lands on
// an empty in-bounds cell.
func (b *Board) CanPlace(s Shape, pos Position) bool {
	size := s.Size()
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			if !s.Occupied(row, col) {
				continue
			}
			if b.Cell(pos.X+col, pos.Y+row) {
				return false
			}
		}
	}
	return true
}

// Place locks every occupied cell of s onto the board at pos.
// Callers check CanPlace first; cells falling outside the board are dropped.
func (b *Board) Place(s Shape, pos Position) {
	size := s.Size()
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			if s.Occupied(row, col) {
				b.SetCell(pos.X+col, pos.Y+row, true)
			}
		}
	}
}

// isFull reports whether every column of row y is occupied.
func (b *Board) isFull(y int) bool {
	return b.rows[y].Count() == uint(b.size.Width)
}

// FullLines returns the indices of all full rows, top to bottom.
func (b *Board) FullLines() []int {
	var full []int
	for y := range b.rows {
		if b.isFull(y) {
			full = append(full, y)
		}
	}
	return full
}

// ClearFullLines removes every full row at once and lets the rows above fall
// into the gaps. Returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	full := b.FullLines()
	if len(full) == 0 {
		return 0
	}

	// Two pointers walking up from the floor: survivors are copied down to
	// dst, full rows are skipped. Rows below dst have already been read.
	dst := b.size.Height - 1
	for src := b.size.Height - 1; src >= 0; src-- {
		if b.isFull(src) {
			continue
		}
		if dst != src {
			b.rows[src].Copy(b.rows[dst])
		}
		dst--
	}
	for y := dst; y >= 0; y-- {
		b.rows[y].ClearAll()
	}

	return len(full)
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := uint(0)
	for _, row := range b.rows {
		n += row.Count()
	}
	return int(n)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		size: b.size,
		rows: make([]*bitset.BitSet, len(b.rows)),
	}
	for y, row := range b.rows {
		c.rows[y] = row.Clone()
	}
	return c
}

// String renders the board as rows of '#' and '.', for tests and screenshots.
func (b *Board) String() string {
	buf := make([]byte, 0, (b.size.Width+1)*b.size.Height)
	for y := 0; y < b.size.Height; y++ {
		for x := 0; x < b.size.Width; x++ {
			if b.rows[y].Test(uint(x)) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
