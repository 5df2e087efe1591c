// Package loop turns wall-clock frame timestamps into simulation deltas and
// drives frame callbacks at a fixed rate.
package loop

import "time"

// MaxFrameDelta caps a single frame's delta in seconds. A stalled tab or a
// suspended process resumes with at most this much simulated time.
const MaxFrameDelta = 0.033

// Clock converts successive frame timestamps into capped deltas.
// The zero value is ready to use.
type Clock struct {
	last    time.Time
	started bool
}

// Frame returns seconds elapsed since the previous call, capped at
// MaxFrameDelta. The first call returns 0, as does a clock that went backwards.
func (c *Clock) Frame(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

// Reset makes the next Frame call behave like the first one.
func (c *Clock) Reset() {
	c.started = false
	c.last = time.Time{}
}
