// Package clock implements pause-aware countdown arithmetic.
//
// A Clock never reads the wall time itself; callers pass the current
// instant into every method. That keeps the arithmetic pure and leaves
// the timer loop as the single owner of the time source.
package clock

import "time"

// Clock tracks one countdown phase: its start instant, its total
// length, and the time spent paused so far.
type Clock struct {
	total            time.Duration
	start            time.Time
	accumulatedPause time.Duration
	pauseStart       time.Time
	paused           bool
}

// New starts a clock of the given length at now.
func New(total time.Duration, now time.Time) *Clock {
	return &Clock{total: total, start: now}
}

// Total returns the configured phase length.
func (c *Clock) Total() time.Duration {
	return c.total
}

// Paused reports whether the clock is currently paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Pause freezes the countdown at now. Pausing a paused clock is a no-op.
func (c *Clock) Pause(now time.Time) {
	if c.paused {
		return
	}

	c.paused = true
	c.pauseStart = now
}

// Resume restarts the countdown at now, folding the completed pause
// into the accumulated total. Resuming a running clock is a no-op.
func (c *Clock) Resume(now time.Time) {
	if !c.paused {
		return
	}

	c.accumulatedPause += now.Sub(c.pauseStart)
	c.paused = false
}

// Toggle pauses a running clock and resumes a paused one.
func (c *Clock) Toggle(now time.Time) {
	if c.paused {
		c.Resume(now)
		return
	}

	c.Pause(now)
}

// Elapsed returns the active time since start: wall time minus every
// completed pause, minus the in-progress pause if there is one.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(c.start) - c.accumulatedPause
	if c.paused {
		elapsed -= now.Sub(c.pauseStart)
	}

	if elapsed < 0 {
		return 0
	}

	return elapsed
}

// Remaining returns the time left, saturating at zero.
func (c *Clock) Remaining(now time.Time) time.Duration {
	remaining := c.total - c.Elapsed(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Done reports whether the countdown has fully elapsed.
func (c *Clock) Done(now time.Time) bool {
	return c.Remaining(now) == 0
}
