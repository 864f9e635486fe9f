package animation

// Clock accumulates animation time while running.
// Time never decreases and pausing does not reset it.
type Clock struct {
	time    float64
	running bool
}

// NewClock creates a clock at time zero.
func NewClock(running bool) *Clock {
	return &Clock{running: running}
}

// Advance adds dt seconds if the clock is running. Non-positive dt is ignored.
func (c *Clock) Advance(dt float64) {
	if !c.running || dt <= 0 {
		return
	}
	c.time += dt
}

// Toggle flips between running and paused and returns the new running state.
func (c *Clock) Toggle() bool {
	c.running = !c.running
	return c.running
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	return c.running
}

// Time returns the accumulated animation time in seconds.
func (c *Clock) Time() float64 {
	return c.time
}
