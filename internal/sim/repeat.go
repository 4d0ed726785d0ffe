package sim

import (
	"time"

	"github.com/vovakirdan/stripsim/internal/core"
)

// Repeater turns held increase/decrease keys into speed steps no more often
// than once per interval.
type Repeater struct {
	state    InputRepeatState
	interval time.Duration
	step     int
	fastStep int
}

// NewRepeater creates a repeater with the given minimum re-trigger interval and
// step sizes.
func NewRepeater(interval time.Duration, step, fastStep int) *Repeater {
	return &Repeater{
		interval: interval,
		step:     step,
		fastStep: fastStep,
	}
}

// State returns a copy of the repeat state.
func (r *Repeater) State() InputRepeatState {
	return r.state
}

// Press records a key-down edge. Returns true if the key is handled here.
func (r *Repeater) Press(k core.Key) bool {
	return r.set(k, true)
}

// Release records a key-up edge. Returns true if the key is handled here.
func (r *Repeater) Release(k core.Key) bool {
	return r.set(k, false)
}

func (r *Repeater) set(k core.Key, held bool) bool {
	switch k {
	case core.KeyUp:
		r.state.UpHeld = held
	case core.KeyDown:
		r.state.DownHeld = held
	case core.KeyFast:
		r.state.FastHeld = held
	default:
		return false
	}
	return true
}

// Apply returns the speed after this tick's adjustment, clamped to
// [minSpeed, maxSpeed]. Both directions are checked against the last adjustment
// time seen at the start of the tick, so holding both keys applies both steps.
func (r *Repeater) Apply(now time.Duration, speed, minSpeed, maxSpeed int) int {
	if !r.state.UpHeld && !r.state.DownHeld {
		return speed
	}
	if now-r.state.LastAdjust <= r.interval {
		return speed
	}

	delta := r.step
	if r.state.FastHeld {
		delta = r.fastStep
	}

	if r.state.UpHeld {
		speed = core.Min(speed+delta, maxSpeed)
		r.state.LastAdjust = now
	}
	if r.state.DownHeld {
		speed = core.Max(speed-delta, minSpeed)
		r.state.LastAdjust = now
	}
	return speed
}
