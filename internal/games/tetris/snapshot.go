package tetris

// Snapshot contains the round state that determines future play.
// Uses primitive types only for stable comparison in determinism tests.
type Snapshot struct {
	Tick     uint64
	Active   int
	Next     int
	X, Y     int
	Dir      int
	Score    int
	Lines    int
	Level    int
	Status   int
	Board    string
	Occupied int
}

// Snapshot returns the current round state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Active:   int(g.active),
		Next:     int(g.next),
		X:        g.pos.X,
		Y:        g.pos.Y,
		Dir:      int(g.dir),
		Score:    g.score,
		Lines:    g.Lines(),
		Level:    g.Level(),
		Status:   int(g.status),
		Board:    g.board.String(),
		Occupied: g.board.Count(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.Active, snap.Next, snap.X, snap.Y, snap.Dir,
		snap.Score, snap.Lines, snap.Level, snap.Status, snap.Occupied,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for i := 0; i < len(snap.Board); i++ {
		h = h*31 + uint64(snap.Board[i])
	}
	return h
}
