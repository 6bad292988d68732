// Package clock measures the time between animation frames.
package clock

import "time"

// Clock turns successive frame instants into non-negative deltas in seconds.
type Clock struct {
	now   func() time.Time
	last  time.Time
	ok    bool
	scale float64
}

// New returns a clock reading now. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, scale: 1}
}

// SetScale multiplies every delta by s, mapping wall seconds to simulated
// time. Non-positive values are ignored.
func (c *Clock) SetScale(s float64) {
	if s > 0 {
		c.scale = s
	}
}

// Scale is the current wall-to-simulated factor.
func (c *Clock) Scale() float64 { return c.scale }

// Tick returns the scaled seconds since the previous Tick. The first Tick
// after New or Reset returns 0, as does a clock that went backwards.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.ok {
		c.last = t
		c.ok = true
		return 0
	}
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		return 0
	}
	return d.Seconds() * c.scale
}

// Reset forgets the previous instant, e.g. after a pause.
func (c *Clock) Reset() {
	c.ok = false
}
