package tetris

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

var t0 = time.Unix(1_700_000_000, 0)

func at(d time.Duration) time.Time {
	return t0.Add(d)
}

func newTestGame(opts Options) *Game {
	g := New(opts)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
	return g
}

// setActive puts a specific piece under test control.
func (g *Game) setActive(k Kind, d Direction, pos Position) {
	g.active, g.dir, g.pos = k, d, pos
}

func none() core.InputFrame {
	return core.NewInputFrame()
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(DefaultOptions())
	g2 := newTestGame(DefaultOptions())

	script := []core.Action{
		core.ActionMoveLeft, core.ActionRotateClockwise, core.ActionDrop,
		core.ActionMoveRight, core.ActionMoveRight, core.ActionDrop,
		core.ActionRotateCounterClockwise, core.ActionMoveDown, core.ActionDrop,
	}

	now := t0
	for i := 0; i < 300; i++ {
		now = now.Add(50 * time.Millisecond)
		in := none()
		if i%10 == 0 {
			in.Push(script[(i/10)%len(script)])
		}
		g1.Step(now, in)
		g2.Step(now, in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("snapshot mismatch:\n%+v\n%+v", s1, s2)
	}
	if s1.Occupied == 0 {
		t.Error("expected some locked cells after 300 ticks")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(Options{StartLevel: 7, ShowNext: true})

	if g.Status() != StatusFalling || !g.Running() {
		t.Errorf("status = %v, want Falling", g.Status())
	}
	if g.Level() != 7 {
		t.Errorf("Level() = %d, want 7", g.Level())
	}
	if g.Score() != 0 || g.Lines() != 0 {
		t.Errorf("score/lines = %d/%d, want 0/0", g.Score(), g.Lines())
	}
	k, d, pos := g.Active()
	if d != South || pos != SpawnPosition(k, g.board.Size()) {
		t.Errorf("active %v %v at %+v, want South at spawn", k, d, pos)
	}
	if g.Board().Count() != 0 {
		t.Error("board not empty after Reset")
	}

	g.Step(t0, core.FrameOf(core.ActionDrop))
	g.Reset(core.RuntimeConfig{Seed: 1})
	if g.Board().Count() != 0 || g.Elapsed() != 0 {
		t.Error("second Reset did not start a fresh round")
	}
}

func TestNewClampsStartLevel(t *testing.T) {
	if g := newTestGame(Options{StartLevel: 40}); g.Level() != MaxLevel {
		t.Errorf("Level() = %d, want %d", g.Level(), MaxLevel)
	}
	if g := newTestGame(Options{StartLevel: -3}); g.Level() != 0 {
		t.Errorf("Level() = %d, want 0", g.Level())
	}
}

func TestMoveLeftClampsAtWall(t *testing.T) {
	g := newTestGame(DefaultOptions())

	var in core.InputFrame
	for i := 0; i < 20; i++ {
		in.Push(core.ActionMoveLeft)
	}
	g.Step(t0, in)

	if _, _, pos := g.Active(); pos.X != 0 {
		t.Errorf("x = %d after 20 MoveLeft, want 0", pos.X)
	}

	// Again one action per tick, still at the wall.
	for i := 0; i < 20; i++ {
		g.Step(t0, core.FrameOf(core.ActionMoveLeft))
	}
	if _, _, pos := g.Active(); pos.X != 0 {
		t.Errorf("x = %d, want 0", pos.X)
	}
}

func TestMoveRightClampsAtWall(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindO, South, SpawnPosition(KindO, g.board.Size()))

	var in core.InputFrame
	for i := 0; i < 20; i++ {
		in.Push(core.ActionMoveRight)
	}
	g.Step(t0, in)

	if _, _, pos := g.Active(); pos.X != BoardWidth-2 {
		t.Errorf("x = %d, want %d", pos.X, BoardWidth-2)
	}
}

func TestActionsApplyInArrivalOrder(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindI, South, Position{X: 3, Y: 0})

	// Rotating first makes the piece one column wide, so it can then reach x=9.
	in := core.FrameOf(core.ActionRotateClockwise)
	for i := 0; i < 10; i++ {
		in.Push(core.ActionMoveRight)
	}
	g.Step(t0, in)

	if _, d, pos := g.Active(); d != East || pos.X != BoardWidth-1 {
		t.Errorf("got %v at x=%d, want East at x=%d", d, pos.X, BoardWidth-1)
	}
}

func TestGravity(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.Step(t0, none())
	_, _, start := g.Active()

	g.Step(at(800*time.Millisecond), none())
	if _, _, pos := g.Active(); pos.Y != start.Y {
		t.Errorf("piece fell at exactly the interval, y = %d", pos.Y)
	}

	g.Step(at(801*time.Millisecond), none())
	if _, _, pos := g.Active(); pos.Y != start.Y+1 {
		t.Errorf("y = %d after the interval, want %d", pos.Y, start.Y+1)
	}
}

func TestGravityFasterAtHigherLevel(t *testing.T) {
	g := newTestGame(Options{StartLevel: 19})
	g.Step(t0, none())
	g.Step(at(34*time.Millisecond), none())

	if _, _, pos := g.Active(); pos.Y != 1 {
		t.Errorf("y = %d at level 19 after 34ms, want 1", pos.Y)
	}
}

func TestMoveDownResetsGravity(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.Step(t0, none())

	g.Step(at(700*time.Millisecond), core.FrameOf(core.ActionMoveDown))
	if _, _, pos := g.Active(); pos.Y != 1 {
		t.Fatalf("y = %d after MoveDown, want 1", pos.Y)
	}

	g.Step(at(1400*time.Millisecond), none())
	if _, _, pos := g.Active(); pos.Y != 1 {
		t.Errorf("gravity fired %v after a soft drop, y = %d", 700*time.Millisecond, pos.Y)
	}
}

func TestMoveDownOnFloorLocks(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindO, South, Position{X: 4, Y: BoardHeight - 2})

	res := g.Step(t0, core.FrameOf(core.ActionMoveDown))
	if res.Locked != 1 {
		t.Errorf("Locked = %d, want 1", res.Locked)
	}
	b := g.Board()
	for _, c := range [][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if !b.Cell(c[0], c[1]) {
			t.Errorf("cell %v not locked", c)
		}
	}
	if _, d, pos := g.Active(); d != South || pos.Y != 0 {
		t.Errorf("next piece not spawned: %v at %+v", d, pos)
	}
}

func TestDropLocksAtBottom(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindT, South, Position{X: 3, Y: 0})
	next := g.Next()

	res := g.Step(t0, core.FrameOf(core.ActionDrop))
	if res.Locked != 1 {
		t.Fatalf("Locked = %d, want 1", res.Locked)
	}
	if k, _, _ := g.Active(); k != next {
		t.Errorf("active = %v, want the previous next %v", k, next)
	}
	b := g.Board()
	if b.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", b.Count())
	}
	// T points down: ### on row 18, .#. on row 19.
	for _, c := range [][2]int{{3, 18}, {4, 18}, {5, 18}, {4, 19}} {
		if !b.Cell(c[0], c[1]) {
			t.Errorf("cell %v not locked:\n%s", c, b)
		}
	}
	if g.Score() != 0 {
		t.Errorf("hard drop awarded %d points, want 0", g.Score())
	}
}

func TestRotationRejectedWithoutRoom(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.setActive(KindI, South, Position{X: 3, Y: BoardHeight - 1})

	g.Step(t0, core.FrameOf(core.ActionRotateClockwise))
	if _, d, _ := g.Active(); d != South {
		t.Errorf("I rotated to %v through the floor", d)
	}

	g.setActive(KindI, South, Position{X: 3, Y: 0})
	g.Step(t0, core.FrameOf(core.ActionRotateClockwise))
	if _, d, _ := g.Active(); d != East {
		t.Errorf("I did not rotate in open space, dir = %v", d)
	}
	g.Step(t0, core.FrameOf(core.ActionRotateCounterClockwise, core.ActionRotateCounterClockwise))
	if _, d, _ := g.Active(); d != West {
		t.Errorf("dir = %v, want West", d)
	}
}

// stageLines fills the bottom n rows except column 0 and lines up a vertical
// I over the gap so a hard drop clears exactly n lines.
func stageLines(g *Game, n int) {
	for y := BoardHeight - n; y < BoardHeight; y++ {
		for x := 1; x < BoardWidth; x++ {
			g.board.SetCell(x, y, true)
		}
	}
	g.setActive(KindI, East, Position{X: 0, Y: BoardHeight - 4})
}

func TestLineClearScoring(t *testing.T) {
	tests := []struct {
		lines, level, want int
	}{
		{1, 0, 40},
		{2, 0, 100},
		{3, 0, 300},
		{4, 0, 1200},
		{1, 3, 160},
		{4, 3, 4800},
		{2, 29, 3000},
	}

	for _, tt := range tests {
		g := newTestGame(Options{StartLevel: tt.level})
		stageLines(g, tt.lines)

		res := g.Step(t0, core.FrameOf(core.ActionDrop))
		if res.Cleared != tt.lines {
			t.Errorf("%d lines at level %d: Cleared = %d", tt.lines, tt.level, res.Cleared)
		}
		if g.Score() != tt.want {
			t.Errorf("%d lines at level %d: score = %d, want %d", tt.lines, tt.level, g.Score(), tt.want)
		}
		if g.Lines() != tt.lines {
			t.Errorf("%d lines at level %d: Lines() = %d", tt.lines, tt.level, g.Lines())
		}
		// Column 0 leftovers of the I remain above the cleared rows.
		if got := g.Board().Count(); got != 4-tt.lines {
			t.Errorf("%d lines: %d cells left, want %d", tt.lines, got, 4-tt.lines)
		}
	}
}

func TestScoreUsesLevelBeforeClear(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.linesHit = 9
	stageLines(g, 4)

	g.Step(t0, core.FrameOf(core.ActionDrop))
	if g.Score() != 1200 {
		t.Errorf("score = %d, want 1200 (level 0 table)", g.Score())
	}
	if g.Level() != 1 {
		t.Errorf("Level() = %d, want 1", g.Level())
	}
}

func TestLinesSaturate(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.linesHit = math.MaxUint16 - 1
	stageLines(g, 4)

	g.Step(t0, core.FrameOf(core.ActionDrop))
	if g.Lines() != math.MaxUint16 {
		t.Errorf("Lines() = %d, want %d", g.Lines(), math.MaxUint16)
	}
	if g.Level() != MaxLevel {
		t.Errorf("Level() = %d, want %d", g.Level(), MaxLevel)
	}
}

func TestPauseFreezesPieceAndClock(t *testing.T) {
	g := newTestGame(DefaultOptions())
	g.Step(t0, none())
	_, _, start := g.Active()

	res := g.Step(at(10*time.Millisecond), core.FrameOf(core.ActionTogglePause))
	if !res.State.Paused || g.Status() != StatusPaused {
		t.Fatal("TogglePause did not pause")
	}

	// Several gravity intervals pass while paused.
	for _, d := range []time.Duration{time.Second, 3 * time.Second, 5 * time.Second} {
		g.Step(at(d), core.FrameOf(core.ActionMoveLeft, core.ActionDrop))
	}
	if _, _, pos := g.Active(); pos != start {
		t.Errorf("piece moved while paused: %+v -> %+v", start, pos)
	}
	if g.Board().Count() != 0 {
		t.Error("board changed while paused")
	}
	if got := g.Elapsed(); got != 10*time.Millisecond {
		t.Errorf("Elapsed() = %v while paused, want 10ms", got)
	}

	g.Step(at(5*time.Second), core.FrameOf(core.ActionTogglePause))
	if g.Status() != StatusFalling {
		t.Fatalf("status = %v after unpause", g.Status())
	}
	if _, _, pos := g.Active(); pos != start {
		t.Errorf("piece fell the instant play resumed: %+v", pos)
	}

	g.Step(at(5*time.Second+900*time.Millisecond), none())
	if _, _, pos := g.Active(); pos.Y != start.Y+1 {
		t.Errorf("y = %d, want %d", pos.Y, start.Y+1)
	}
	if got := g.Elapsed(); got != 910*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 910ms", got)
	}
}

func TestPauseSkipsRestOfBatch(t *testing.T) {
	g := newTestGame(DefaultOptions())
	_, _, start := g.Active()

	g.Step(t0, core.FrameOf(core.ActionMoveLeft, core.ActionTogglePause))
	if _, _, pos := g.Active(); pos != start {
		t.Errorf("move applied in the batch that paused: %+v", pos)
	}
}

func TestExit(t *testing.T) {
	g := newTestGame(DefaultOptions())
	_, _, start := g.Active()

	res := g.Step(t0, core.FrameOf(core.ActionMoveLeft, core.ActionExit))
	if !res.State.Exited || g.Running() || g.Status() != StatusExited {
		t.Fatalf("Exit not honoured: %+v", res.State)
	}
	if _, _, pos := g.Active(); pos != start {
		t.Errorf("actions after Exit were applied: %+v", pos)
	}

	g.Step(at(5*time.Second), core.FrameOf(core.ActionDrop))
	if g.Board().Count() != 0 {
		t.Error("board mutated after Exit")
	}
}

func TestForcedGameOver(t *testing.T) {
	g := newTestGame(DefaultOptions())

	// Block the spawn area without completing a line.
	for y := 0; y <= 1; y++ {
		for x := 3; x <= 6; x++ {
			g.board.SetCell(x, y, true)
		}
	}
	g.setActive(KindO, South, Position{X: 0, Y: 0})

	res := g.Step(t0, core.FrameOf(core.ActionDrop))
	if !res.State.GameOver || g.Status() != StatusGameOver {
		t.Fatalf("status = %v, want GameOver", g.Status())
	}
	if g.Running() {
		t.Error("Running() = true after game over")
	}

	before := g.Snapshot()
	for i := 1; i <= 10; i++ {
		g.Step(at(time.Duration(i)*time.Second), core.FrameOf(
			core.ActionMoveLeft, core.ActionMoveDown, core.ActionDrop, core.ActionTogglePause))
	}
	after := g.Snapshot()
	if after.Board != before.Board || after.Score != before.Score {
		t.Error("board or score changed after game over")
	}
	if g.Elapsed() != 0 {
		t.Errorf("clock kept running after game over: %v", g.Elapsed())
	}
}

func TestGameState(t *testing.T) {
	g := newTestGame(Options{StartLevel: 4})
	stageLines(g, 2)
	g.Step(t0, core.FrameOf(core.ActionDrop))

	s := g.State()
	if s.Score != 500 || s.Level != 4 || s.Lines != 2 || s.GameOver || s.Paused || s.Exited {
		t.Errorf("State() = %+v", s)
	}
	if !s.Running() {
		t.Error("state reports a finished round")
	}
}
