package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Frame layout: a stats column on the left and the bordered well on the right.
// Each board cell is two runes wide so blocks look square in a terminal.
const (
	statsWidth = 16
	cellWidth  = 2

	wellWidth  = BoardWidth*cellWidth + 2
	wellHeight = BoardHeight + 2

	FrameWidth  = statsWidth + wellWidth
	FrameHeight = wellHeight
)

const (
	blockRune   = '█'
	lockedColor = core.ColorWhite
)

// Frame renders the round as plain rows without colour.
func (g *Game) Frame() []string {
	scr := core.NewScreen(FrameWidth, FrameHeight)
	g.draw(scr, 0, 0)
	return scr.Rows()
}

// Render draws the round centred on dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	ox := max((dst.Width()-FrameWidth)/2, 0)
	oy := max((dst.Height()-FrameHeight)/2, 0)
	g.draw(dst, ox, oy)
}

func (g *Game) draw(dst *core.Screen, ox, oy int) {
	g.drawStats(dst, ox, oy)
	g.drawWell(dst, ox+statsWidth, oy)
}

func (g *Game) drawStats(dst *core.Screen, ox, oy int) {
	dst.DrawText(ox+1, oy+1, fmt.Sprintf("Level: %d", g.Level()))
	dst.DrawText(ox+1, oy+2, "Time:  "+clockText(g.Elapsed()))
	dst.DrawText(ox+1, oy+3, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(ox+1, oy+4, fmt.Sprintf("Lines: %d", g.Lines()))

	if !g.opts.ShowNext || g.status == StatusPaused {
		return
	}
	dst.DrawText(ox+1, oy+6, "Next:")
	preview := FigureOf(g.next)
	drawShape(dst, preview, ox+2, oy+8, preview.Color)
}

func (g *Game) drawWell(dst *core.Screen, ox, oy int) {
	dst.DrawBox(core.NewRect(ox, oy, wellWidth, wellHeight))

	// Inner origin of board cell (0, 0).
	ix, iy := ox+1, oy+1

	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if g.board.Cell(x, y) {
				drawBlock(dst, ix+x*cellWidth, iy+y, lockedColor)
			}
		}
	}

	switch g.status {
	case StatusPaused:
		banner(dst, ix, iy+BoardHeight/2, "PAUSED")
		return
	case StatusGameOver:
		banner(dst, ix, iy+BoardHeight/2, "GAME OVER")
		return
	}

	piece := Rotate(g.active, g.dir)
	drawShape(dst, piece, ix+g.pos.X*cellWidth, iy+g.pos.Y, FigureOf(g.active).Color)
}

// drawShape draws the occupied cells of s with its top-left corner at (x, y).
func drawShape(dst *core.Screen, s Shape, x, y int, c core.Color) {
	size := s.Size()
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			if s.Occupied(row, col) {
				drawBlock(dst, x+col*cellWidth, y+row, c)
			}
		}
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	for i := 0; i < cellWidth; i++ {
		dst.SetColored(x+i, y, blockRune, c)
	}
}

// banner blanks a full inner row of the well and centres text on it.
func banner(dst *core.Screen, x, y int, text string) {
	inner := BoardWidth * cellWidth
	dst.DrawHLine(x, y, inner, ' ')
	tx := x + (inner-len([]rune(text)))/2
	dst.DrawTextColored(tx, y, text, core.ColorBrightYellow)
}

// clockText formats d as mm:ss.
func clockText(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
