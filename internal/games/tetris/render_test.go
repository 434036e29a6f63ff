package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestFrameDimensions(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.Step(t0, none())

	rows := g.Frame()
	if len(rows) != FrameHeight {
		t.Fatalf("%d rows, want %d", len(rows), FrameHeight)
	}
	for i, r := range rows {
		if n := len([]rune(r)); n != FrameWidth {
			t.Errorf("row %d has %d runes, want %d", i, n, FrameWidth)
		}
	}
}

func TestFrameStats(t *testing.T) {
	g := newTestGame(Options{StartLevel: 3, ShowNext: true})
	g.Step(t0, none())
	g.Step(at(83*time.Second), none())

	frame := strings.Join(g.Frame(), "\n")
	for _, want := range []string{"Level: 3", "Time:  01:23", "Score: 0", "Lines: 0", "Next:"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q:\n%s", want, frame)
		}
	}
}

func TestFrameShowsPiece(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindO, South, Position{X: 0, Y: 0})
	g.Step(t0, none())

	rows := g.Frame()
	// Board cell (0,0) starts one column inside the well border.
	x := statsWidth + 1
	if got := []rune(rows[1])[x : x+4]; string(got) != "████" {
		t.Errorf("first well row = %q, want the O piece", string(got))
	}
}

func TestFramePausedHidesPieceAndPreview(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.Step(t0, core.FrameOf(core.ActionTogglePause))

	rows := g.Frame()
	frame := strings.Join(rows, "\n")
	if strings.Contains(frame, "Next:") {
		t.Error("preview shown while paused")
	}
	if strings.ContainsRune(frame, blockRune) {
		t.Error("blocks drawn while paused on an empty board")
	}
	if mid := rows[1+BoardHeight/2]; !strings.Contains(mid, "PAUSED") {
		t.Errorf("middle row %q has no PAUSED banner", mid)
	}
}

func TestFrameWithoutPreview(t *testing.T) {
	g := newTestGame(Options{ShowNext: false})
	g.Step(t0, none())

	if strings.Contains(strings.Join(g.Frame(), "\n"), "Next:") {
		t.Error("preview shown with ShowNext disabled")
	}
}

func TestFrameGameOver(t *testing.T) {
	g := newTestGame(DefaultOptions())
	for x := 3; x <= 6; x++ {
		g.board.SetCell(x, 0, true)
		g.board.SetCell(x, 1, true)
	}
	g.setActive(KindO, South, Position{X: 0, Y: 0})
	g.Step(t0, core.FrameOf(core.ActionDrop))

	if mid := g.Frame()[1+BoardHeight/2]; !strings.Contains(mid, "GAME OVER") {
		t.Errorf("middle row %q has no GAME OVER banner", mid)
	}
}

func TestRenderCentresFrame(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindO, South, Position{X: 4, Y: 0})
	g.Step(t0, none())

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	ox := (80 - FrameWidth) / 2
	oy := (24 - FrameHeight) / 2
	if got := scr.Get(ox+statsWidth, oy); got != '┌' {
		t.Errorf("well corner = %q, want '┌'", got)
	}

	_, _, pos := g.Active()
	cell := scr.GetCell(ox+statsWidth+1+pos.X*cellWidth, oy+1+pos.Y)
	if cell.Rune != blockRune || cell.Color != FigureOf(g.active).Color {
		t.Errorf("active cell = %+v, want a %v block", cell, FigureOf(g.active).Color)
	}
}
