package tetris

import "time"

// Stopwatch measures round time, excluding any span spent paused.
// The caller supplies the clock so ticks and tests share one time source.
type Stopwatch struct {
	acc     time.Duration
	mark    time.Time
	running bool
}

// Start begins (or resumes) timing at now. No-op while running.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.mark = now
	s.running = true
}

// Pause folds the running span into the total. No-op while stopped.
func (s *Stopwatch) Pause(now time.Time) {
	if !s.running {
		return
	}
	s.acc += span(s.mark, now)
	s.mark = time.Time{}
	s.running = false
}

// Elapsed returns the total timed duration as of now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.running {
		return s.acc + span(s.mark, now)
	}
	return s.acc
}

// Running reports whether the stopwatch is currently timing.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Reset zeroes the stopwatch and stops it.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// span is now-from, never negative.
func span(from, now time.Time) time.Duration {
	if d := now.Sub(from); d > 0 {
		return d
	}
	return 0
}
