package tetris

import (
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind indexes a figure in the catalog.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindT
	KindS
	KindZ
	KindO

	KindCount = 7
)

// Figure is an immutable tetromino in its canonical (South) orientation.
// Cells holds Size.Area() bits in row-major order.
type Figure struct {
	Name  string
	Color core.Color
	size  Size
	cells *bitset.BitSet
}

// Size returns the canonical bounding box.
func (f *Figure) Size() Size {
	return f.size
}

// Occupied reports whether the canonical cell (row, col) is filled.
// Coordinates outside the bounding box are empty.
func (f *Figure) Occupied(row, col int) bool {
	if row < 0 || col < 0 || row >= f.size.Height || col >= f.size.Width {
		return false
	}
	return f.cells.Test(uint(row*f.size.Width + col))
}

// Count returns the number of filled cells.
func (f *Figure) Count() int {
	return int(f.cells.Count())
}

// newFigure builds a figure from rows drawn with '#' (filled) and '.' (empty).
// The total number of cells must match the declared size.
func newFigure(name string, size Size, color core.Color, rows ...string) (Figure, error) {
	var mask []byte
	for _, r := range rows {
		mask = append(mask, r...)
	}
	if len(mask) != size.Area() {
		return Figure{}, fmt.Errorf("tetris: figure %s has %d cells, want %dx%d=%d",
			name, len(mask), size.Width, size.Height, size.Area())
	}

	cells := bitset.New(uint(size.Area()))
	for i, c := range mask {
		switch c {
		case '#':
			cells.Set(uint(i))
		case '.':
		default:
			return Figure{}, fmt.Errorf("tetris: figure %s has invalid cell %q", name, c)
		}
	}

	return Figure{Name: name, Color: color, size: size, cells: cells}, nil
}

// mustFigure is newFigure for static data; a malformed mask is a programming error.
func mustFigure(name string, size Size, color core.Color, rows ...string) Figure {
	f, err := newFigure(name, size, color, rows...)
	if err != nil {
		panic(err)
	}
	return f
}

// catalog is shared by every round and never written after init.
var catalog = [KindCount]Figure{
	KindI: mustFigure("I", Size{4, 1}, core.ColorCyan,
		"####"),
	KindJ: mustFigure("J", Size{3, 2}, core.ColorBlue,
		"#..",
		"###"),
	KindL: mustFigure("L", Size{3, 2}, core.ColorOrange,
		"..#",
		"###"),
	KindT: mustFigure("T", Size{3, 2}, core.ColorMagenta,
		"###",
		".#."),
	KindS: mustFigure("S", Size{3, 2}, core.ColorGreen,
		".##",
		"##."),
	KindZ: mustFigure("Z", Size{3, 2}, core.ColorRed,
		"##.",
		".##"),
	KindO: mustFigure("O", Size{2, 2}, core.ColorYellow,
		"##",
		"##"),
}

// FigureOf returns the catalog entry for k.
func FigureOf(k Kind) *Figure {
	return &catalog[k]
}

// String returns the figure name.
func (k Kind) String() string {
	if int(k) >= KindCount {
		return "?"
	}
	return catalog[k].Name
}

// RandomKind picks a catalog entry uniformly at random.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(KindCount))
}
