package tetris

import (
	"github.com/bits-and-blooms/bitset"
)

// Rotated is a read-only view of a figure turned to some orientation.
// Cells are mapped back to the canonical mask on every lookup, nothing is copied.
type Rotated struct {
	fig *Figure
	dir Direction
}

// Rotate returns the catalog figure k viewed in orientation d.
func Rotate(k Kind, d Direction) Rotated {
	return RotateFigure(FigureOf(k), d)
}

// RotateFigure returns f viewed in orientation d.
func RotateFigure(f *Figure, d Direction) Rotated {
	return Rotated{fig: f, dir: d}
}

// Direction returns the orientation of the view.
func (r Rotated) Direction() Direction {
	return r.dir
}

// Size returns the bounding box of the rotated figure: East and West swap
// width and height.
func (r Rotated) Size() Size {
	s := r.fig.Size()
	if r.dir == East || r.dir == West {
		return Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// Occupied maps the rotated (row, col) back onto the canonical mask.
func (r Rotated) Occupied(row, col int) bool {
	w, h := r.fig.size.Width, r.fig.size.Height

	var origRow, origCol int
	switch r.dir {
	case East:
		origRow, origCol = h-1-col, row
	case North:
		origRow, origCol = h-1-row, w-1-col
	case West:
		origRow, origCol = col, w-1-row
	default:
		origRow, origCol = row, col
	}
	return r.fig.Occupied(origRow, origCol)
}

// Materialize copies the rotated occupancy into a standalone figure whose
// canonical orientation is this view.
func (r Rotated) Materialize() *Figure {
	size := r.Size()
	cells := bitset.New(uint(size.Area()))
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			if r.Occupied(row, col) {
				cells.Set(uint(row*size.Width + col))
			}
		}
	}
	return &Figure{
		Name:  r.fig.Name,
		Color: r.fig.Color,
		size:  size,
		cells: cells,
	}
}

// CanPlaceRotated reports whether figure k in orientation d fits at pos.
func CanPlaceRotated(b *Board, k Kind, d Direction, pos Position) bool {
	return b.CanPlace(Rotate(k, d), pos)
}

// PlaceRotated locks figure k in orientation d onto the board at pos.
func PlaceRotated(b *Board, k Kind, d Direction, pos Position) {
	b.Place(Rotate(k, d), pos)
}

// SpawnPosition is where a fresh piece of kind k enters a board of the given
// size: horizontally centred on the top row.
func SpawnPosition(k Kind, board Size) Position {
	w := FigureOf(k).Size().Width
	return Position{X: max((board.Width-w)/2, 0), Y: 0}
}
