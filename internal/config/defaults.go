package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		StartLevel: 0,
		ShowNext:   true,
		Keys: KeysConfig{
			Left:      []string{"left", "a", "h"},
			Right:     []string{"right", "d", "l"},
			Down:      []string{"down", "s", "j"},
			Drop:      []string{" "},
			RotateCW:  []string{"up", "x", "w", "k"},
			RotateCCW: []string{"z"},
			Pause:     []string{"p", "esc"},
			Exit:      []string{"q", "ctrl+c"},
			Restart:   []string{"r"},
		},
	}
}
