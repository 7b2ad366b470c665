package engine

// FrameClock turns platform timestamps (seconds) into elapsed time and a
// per-frame delta. The delta is 0 on the first tick and never negative.
type FrameClock struct {
	last    float64
	started bool
}

func (c *FrameClock) Tick(now float64) (elapsed, delta float64) {
	if !c.started {
		c.started = true
		c.last = now
		return now, 0
	}
	if now > c.last {
		delta = now - c.last
		c.last = now
	}
	return c.last, delta
}
