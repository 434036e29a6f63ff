// Package config provides YAML-based configuration loading and difficulty
// presets for the tetris round.
package config

import "fmt"

// TetrisConfig contains all configuration for a round.
type TetrisConfig struct {
	StartLevel int        `yaml:"start_level"` // 0..29
	ShowNext   bool       `yaml:"show_next"`
	Keys       KeysConfig `yaml:"keys"`
}

// KeysConfig maps each player action to bubbletea key strings
// ("left", "ctrl+c", "space", ...).
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Down      []string `yaml:"down"`
	Drop      []string `yaml:"drop"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Pause     []string `yaml:"pause"`
	Exit      []string `yaml:"exit"`
	Restart   []string `yaml:"restart"`
}

// MaxStartLevel is the highest level a round may start at.
const MaxStartLevel = 29

// Validate clamps out-of-range values and fills empty key lists from the
// defaults. It fails only when one key is bound to two actions.
func (c *TetrisConfig) Validate() error {
	c.StartLevel = min(max(c.StartLevel, 0), MaxStartLevel)

	def := DefaultTetrisConfig().Keys
	fill := func(dst *[]string, fallback []string) {
		if len(*dst) == 0 {
			*dst = append([]string(nil), fallback...)
		}
	}
	fill(&c.Keys.Left, def.Left)
	fill(&c.Keys.Right, def.Right)
	fill(&c.Keys.Down, def.Down)
	fill(&c.Keys.Drop, def.Drop)
	fill(&c.Keys.RotateCW, def.RotateCW)
	fill(&c.Keys.RotateCCW, def.RotateCCW)
	fill(&c.Keys.Pause, def.Pause)
	fill(&c.Keys.Exit, def.Exit)
	fill(&c.Keys.Restart, def.Restart)

	seen := make(map[string]string)
	for _, b := range c.Keys.bindings() {
		for _, k := range b.keys {
			if prev, ok := seen[k]; ok && prev != b.name {
				return fmt.Errorf("config: key %q bound to both %s and %s", k, prev, b.name)
			}
			seen[k] = b.name
		}
	}
	return nil
}

type binding struct {
	name string
	keys []string
}

func (k KeysConfig) bindings() []binding {
	return []binding{
		{"left", k.Left},
		{"right", k.Right},
		{"down", k.Down},
		{"drop", k.Drop},
		{"rotate_cw", k.RotateCW},
		{"rotate_ccw", k.RotateCCW},
		{"pause", k.Pause},
		{"exit", k.Exit},
		{"restart", k.Restart},
	}
}
