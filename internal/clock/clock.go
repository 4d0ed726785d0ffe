// Package clock provides the monotonic time source the simulator is driven by.
// Time is expressed as the duration since the clock started, so the simulation
// never sees wall-clock jumps.
package clock

import "time"

// Clock reports the current monotonic time.
type Clock interface {
	Now() time.Duration
}

// Monotonic is a Clock backed by the runtime's monotonic clock.
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a clock that starts at zero now.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns the elapsed time since the clock was created.
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.start)
}

// Manual is a Clock that only moves when told to. Used by tests and the
// headless trace driver.
type Manual struct {
	now time.Duration
}

// NewManual creates a manual clock at the given time.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
}

// Set moves the clock to an absolute time.
func (m *Manual) Set(t time.Duration) {
	m.now = t
}

// FrameInterval returns the duration of one tick at the given rate.
// Rates <= 0 fall back to 60 ticks per second.
func FrameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
