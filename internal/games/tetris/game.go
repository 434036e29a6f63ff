package tetris

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Status is the controller state of a round.
type Status uint8

const (
	StatusFalling  Status = iota // piece descending, accepting input
	StatusPaused                 // timers frozen, only pause/exit honoured
	StatusGameOver               // a spawned piece did not fit
	StatusExited                 // the player left the round
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusFalling:
		return "Falling"
	case StatusPaused:
		return "Paused"
	case StatusGameOver:
		return "GameOver"
	case StatusExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// Options tune a round.
type Options struct {
	StartLevel int  // 0..MaxLevel
	ShowNext   bool // draw the next-piece preview
}

// DefaultOptions returns a level 0 round with the preview shown.
func DefaultOptions() Options {
	return Options{StartLevel: 0, ShowNext: true}
}

// Game owns the state of one round: the board, the falling piece and the
// counters derived from it. Every mutation happens inside Step.
type Game struct {
	opts Options
	rng  *rand.Rand
	tick uint64

	board  *Board
	active Kind
	next   Kind
	pos    Position
	dir    Direction

	linesHit uint16
	score    int
	status   Status

	// Timers use the tick time supplied by the caller, never the wall clock.
	started     bool
	now         time.Time
	lastGravity time.Time
	pausedAt    time.Time
	clock       Stopwatch

	// Per-tick event counters reported in StepResult.
	locked  int
	cleared int
}

// New creates a round with the given options. Call Reset before the first Step.
func New(opts Options) *Game {
	opts.StartLevel = core.Clamp(opts.StartLevel, 0, MaxLevel)
	return &Game{opts: opts}
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a fresh round. Timers start on the first Step.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed)) //#nosec G404 -- deterministic gameplay RNG
	g.tick = 0
	g.board = NewBoard(Size{Width: BoardWidth, Height: BoardHeight})
	g.linesHit = 0
	g.score = 0
	g.status = StatusFalling
	g.started = false
	g.now = time.Time{}
	g.lastGravity = time.Time{}
	g.pausedAt = time.Time{}
	g.clock.Reset()
	g.locked, g.cleared = 0, 0

	g.next = RandomKind(g.rng)
	g.promote()
}

// Step advances the round to now, applying the batch in arrival order.
// Exit and TogglePause are honoured before any movement; gravity runs after
// the whole batch.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	g.tick++
	g.locked, g.cleared = 0, 0
	if !g.started {
		g.started = true
		g.lastGravity = now
		g.clock.Start(now)
	}
	g.now = now

	if g.terminal() {
		return g.result()
	}

	if in.Has(core.ActionExit) {
		g.clock.Pause(now)
		g.status = StatusExited
		return g.result()
	}

	if in.Has(core.ActionTogglePause) {
		g.togglePause(now)
	}
	if g.status == StatusPaused {
		return g.result()
	}

	for _, a := range in.Actions() {
		if g.status != StatusFalling {
			break
		}
		g.apply(a, now)
	}

	if g.status == StatusFalling {
		g.gravity(now)
	}

	return g.result()
}

func (g *Game) togglePause(now time.Time) {
	switch g.status {
	case StatusFalling:
		g.status = StatusPaused
		g.pausedAt = now
		g.clock.Pause(now)
	case StatusPaused:
		g.status = StatusFalling
		g.lastGravity = g.lastGravity.Add(span(g.pausedAt, now))
		g.clock.Start(now)
	}
}

// apply handles one movement action. Illegal moves leave the state unchanged.
func (g *Game) apply(a core.Action, now time.Time) {
	switch a {
	case core.ActionMoveLeft:
		g.shift(-1, 0)
	case core.ActionMoveRight:
		g.shift(1, 0)
	case core.ActionMoveDown:
		if g.shift(0, 1) {
			g.lastGravity = now
		} else {
			g.lock(now)
		}
	case core.ActionDrop:
		for g.shift(0, 1) {
		}
		g.lock(now)
	case core.ActionRotateClockwise:
		g.rotate(g.dir.Clockwise())
	case core.ActionRotateCounterClockwise:
		g.rotate(g.dir.CounterClockwise())
	}
}

// shift moves the active piece by (dx, dy) if the target is legal.
// Coordinates saturate at the board edges.
func (g *Game) shift(dx, dy int) bool {
	size := g.board.Size()
	cand := Position{
		X: core.Clamp(g.pos.X+dx, 0, size.Width-1),
		Y: core.Clamp(g.pos.Y+dy, 0, size.Height-1),
	}
	if cand == g.pos {
		return false
	}
	if !CanPlaceRotated(g.board, g.active, g.dir, cand) {
		return false
	}
	g.pos = cand
	return true
}

func (g *Game) rotate(d Direction) {
	if CanPlaceRotated(g.board, g.active, d, g.pos) {
		g.dir = d
	}
}

func (g *Game) gravity(now time.Time) {
	if now.Sub(g.lastGravity) <= GravityInterval(g.Level()) {
		return
	}
	if g.shift(0, 1) {
		g.lastGravity = now
		return
	}
	g.lock(now)
}

// lock freezes the active piece, clears full lines, scores them and spawns
// the next piece.
func (g *Game) lock(now time.Time) {
	PlaceRotated(g.board, g.active, g.dir, g.pos)
	g.locked++

	if n := g.board.ClearFullLines(); n > 0 {
		g.score += LineScore(n, g.Level())
		g.addLines(n)
		g.cleared += n
	}

	g.spawn(now)
}

// addLines grows the line counter, saturating instead of wrapping.
func (g *Game) addLines(n int) {
	total := int(g.linesHit) + n
	if total > math.MaxUint16 {
		total = math.MaxUint16
	}
	g.linesHit = uint16(total) //#nosec G115 -- clamped above
}

// spawn promotes the next piece and ends the round if it does not fit.
func (g *Game) spawn(now time.Time) {
	g.promote()
	g.lastGravity = now
	if !CanPlaceRotated(g.board, g.active, g.dir, g.pos) {
		g.status = StatusGameOver
		g.clock.Pause(now)
	}
}

// promote makes the preview piece active and draws a new preview.
func (g *Game) promote() {
	g.active = g.next
	g.next = RandomKind(g.rng)
	g.dir = South
	g.pos = SpawnPosition(g.active, g.board.Size())
}

func (g *Game) terminal() bool {
	return g.status == StatusGameOver || g.status == StatusExited
}

// Level returns the current level.
func (g *Game) Level() int {
	return LevelFor(g.opts.StartLevel, int(g.linesHit))
}

// Score returns the points scored this round.
func (g *Game) Score() int {
	return g.score
}

// Lines returns the number of lines cleared this round.
func (g *Game) Lines() int {
	return int(g.linesHit)
}

// Elapsed returns the unpaused round time as of the last Step.
func (g *Game) Elapsed() time.Duration {
	return g.clock.Elapsed(g.now)
}

// Status returns the controller state.
func (g *Game) Status() Status {
	return g.status
}

// Paused reports whether the round is paused.
func (g *Game) Paused() bool {
	return g.status == StatusPaused
}

// Running reports whether the round still accepts moves.
func (g *Game) Running() bool {
	return !g.terminal()
}

// Board returns a copy of the locked cells.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// Active returns the falling piece, its orientation and position.
func (g *Game) Active() (Kind, Direction, Position) {
	return g.active, g.dir, g.pos
}

// Next returns the preview piece.
func (g *Game) Next() Kind {
	return g.next
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.Level(),
		Lines:    g.Lines(),
		GameOver: g.status == StatusGameOver,
		Paused:   g.status == StatusPaused,
		Exited:   g.status == StatusExited,
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{
		State:   g.State(),
		Locked:  g.locked,
		Cleared: g.cleared,
	}
}
