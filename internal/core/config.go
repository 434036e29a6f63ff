package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current difficulty level
	Lines    int  // Lines cleared this round
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the game is paused
	Exited   bool // Whether the player asked to leave
}

// Running reports whether the round still accepts input.
func (s GameState) Running() bool {
	return !s.GameOver && !s.Exited
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State   GameState
	Locked  int // Pieces locked during this tick
	Cleared int // Lines cleared during this tick
}
