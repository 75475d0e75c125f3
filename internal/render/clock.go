package render

import (
	"sync"
	"time"
)

// Clock produces the elapsed-time parameter for the animated shader. Time is
// monotonic and accumulates only while unpaused, so pausing freezes the
// animation instead of jumping when resumed.
//
// Ticking is owned by a single render loop; Elapsed may be read from other
// goroutines (the frame.png endpoint).
type Clock struct {
	mu      sync.Mutex
	now     func() time.Time
	last    time.Time
	elapsed time.Duration
}

func NewClock() *Clock {
	c := &Clock{now: time.Now}
	c.last = c.now()
	return c
}

// Tick advances the clock by the wall time since the previous tick (unless
// paused) and returns the accumulated elapsed time in seconds.
func (c *Clock) Tick(paused bool) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	dt := now.Sub(c.last)
	c.last = now
	if !paused {
		c.elapsed += dt
	}
	return c.elapsed.Seconds()
}

// Elapsed returns the accumulated time without advancing the clock.
func (c *Clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed.Seconds()
}
