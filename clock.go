package arbor

import "time"

// Clock tracks the fixed simulation step and turns wall time elapsed since
// the last completed tick into an interpolation delta for rendering.
type Clock struct {
	step time.Duration
	last time.Time
	now  func() time.Time

	ticks uint64
}

// NewClock creates a clock for a simulation running at tps ticks per second.
// tps <= 0 selects 60.
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = 60
	}
	c := &Clock{step: time.Second / time.Duration(tps), now: time.Now}
	c.last = c.now()
	return c
}

// Step returns the duration of one simulation step.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Ticks returns the number of completed ticks.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Tick marks the completion of a simulation step.
func (c *Clock) Tick() {
	c.last = c.now()
	c.ticks++
}

// Delta returns the fraction of a step elapsed since the last tick,
// clamped to [0, 1].
func (c *Clock) Delta() float32 {
	d := float32(c.now().Sub(c.last)) / float32(c.step)
	return min(max(d, 0), 1)
}
