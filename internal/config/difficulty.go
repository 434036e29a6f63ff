package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. Empty selects fixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// StartLevelForPreset returns the start level a preset selects and whether
// the preset overrides the configured one.
func StartLevelForPreset(preset DifficultyPreset) (int, bool) {
	switch preset {
	case DifficultyEasy:
		return 0, true
	case DifficultyNormal:
		return 5, true
	case DifficultyHard:
		return 10, true
	default:
		return 0, false
	}
}

// IsFixedPreset returns true if the preset keeps the configured start level.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if level, ok := StartLevelForPreset(preset); ok {
		cfg.StartLevel = level
	}
}
