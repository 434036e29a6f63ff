package tetris

import "time"

// MaxLevel is the last level of the gravity curve.
const MaxLevel = 29

// LevelFor derives the level from the starting level and the cleared lines:
// one level every ten lines, capped at MaxLevel.
func LevelFor(startLevel, linesHit int) int {
	level := max(startLevel, 0) + max(linesHit, 0)/10
	return min(level, MaxLevel)
}

// GravityInterval returns how long a piece rests on a row before gravity
// pulls it one row down at the given level. Values follow the NES table.
func GravityInterval(level int) time.Duration {
	switch {
	case level <= 8:
		level = max(level, 0)
		// 800ms - 83.5ms per level, truncated to whole milliseconds.
		us := 800_000 - 83_500*level
		return time.Duration(us/1000) * time.Millisecond
	case level == 9:
		return 100 * time.Millisecond
	case level <= 12:
		return 83 * time.Millisecond
	case level <= 15:
		return 67 * time.Millisecond
	case level <= 18:
		return 50 * time.Millisecond
	case level <= 28:
		return 33 * time.Millisecond
	default:
		return 17 * time.Millisecond
	}
}

// lineScores is the base award per number of lines cleared by one lock.
var lineScores = [5]int{0, 40, 100, 300, 1200}

// LineScore returns the points for clearing n lines at the given level.
func LineScore(n, level int) int {
	if n < 1 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n] * (level + 1)
}
