package render

import (
	"math"
	"testing"
	"time"
)

// fakeNow builds a controllable time source for clock tests.
func fakeNow(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

func TestClockAccumulates(t *testing.T) {
	now, advance := fakeNow(time.Unix(1000, 0))
	c := &Clock{now: now, last: now()}

	advance(500 * time.Millisecond)
	if got := c.Tick(false); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("elapsed = %v, want 0.5", got)
	}
	advance(250 * time.Millisecond)
	if got := c.Tick(false); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("elapsed = %v, want 0.75", got)
	}
}

func TestClockPauseFreezesTime(t *testing.T) {
	now, advance := fakeNow(time.Unix(0, 0))
	c := &Clock{now: now, last: now()}

	advance(time.Second)
	c.Tick(false)

	// Paused ticks consume wall time without advancing elapsed time.
	advance(10 * time.Second)
	if got := c.Tick(true); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("elapsed advanced while paused: %v", got)
	}

	// Resuming continues from where it froze, no jump.
	advance(time.Second)
	if got := c.Tick(false); math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("elapsed = %v after resume, want 2.0", got)
	}
}

func TestClockElapsedDoesNotAdvance(t *testing.T) {
	now, advance := fakeNow(time.Unix(0, 0))
	c := &Clock{now: now, last: now()}
	advance(3 * time.Second)
	c.Tick(false)
	if c.Elapsed() != c.Elapsed() {
		t.Fatal("Elapsed not stable")
	}
	if math.Abs(c.Elapsed()-3.0) > 1e-9 {
		t.Fatalf("elapsed = %v, want 3.0", c.Elapsed())
	}
}
