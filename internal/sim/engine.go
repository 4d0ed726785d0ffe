package sim

import (
	"math"

	"github.com/vovakirdan/stripsim/internal/core"
)

// Engine advances the strip animation.
type Engine struct {
	state       SimulationState
	stripHeight int
	bars        int
}

// NewEngine creates a stopped single-beam engine at the given speed.
func NewEngine(speed, stripHeight, bars int) *Engine {
	return &Engine{
		state:       SimulationState{Speed: speed, Beam: BeamSingle},
		stripHeight: stripHeight,
		bars:        bars,
	}
}

// State returns a copy of the animation state.
func (e *Engine) State() SimulationState {
	return e.state
}

// StripHeight returns the strip thickness in px.
func (e *Engine) StripHeight() int {
	return e.stripHeight
}

// SetSpeed replaces the strip speed. Callers clamp.
func (e *Engine) SetSpeed(speed int) {
	e.state.Speed = speed
}

// ToggleRunning starts or stops the strip. Starting resets the position to
// the top of the box. Returns the new running state.
func (e *Engine) ToggleRunning() bool {
	e.state.Running = !e.state.Running
	if e.state.Running {
		e.state.StripPosition = 0
	}
	return e.state.Running
}

// ToggleBeam switches between single and multibeam. Leaving multibeam reduces
// the accumulated phase into one cycle so the strip continues where the first
// bar was.
func (e *Engine) ToggleBeam(boxHeight int) BeamMode {
	if e.state.Beam == BeamMulti {
		e.state.Beam = BeamSingle
		e.state.StripPosition = core.PosMod(e.state.StripPosition, e.cycle(boxHeight))
	} else {
		e.state.Beam = BeamMulti
	}
	return e.state.Beam
}

// Advance moves the strip by one tick. Returns true if a single-beam strip
// wrapped back above the box.
func (e *Engine) Advance(boxHeight int) bool {
	if !e.state.Running {
		return false
	}
	e.state.StripPosition += float64(e.state.Speed)
	if e.state.Beam == BeamSingle && e.state.StripPosition > float64(boxHeight) {
		e.state.StripPosition = float64(-e.stripHeight)
		return true
	}
	return false
}

func (e *Engine) cycle(boxHeight int) float64 {
	return float64(boxHeight + e.stripHeight)
}

// Spans returns the visible strip rectangles inside box, clipped to it. Bars
// partially outside the box are cut, not hidden. Empty when stopped.
func (e *Engine) Spans(box core.Rect) []core.Rect {
	if !e.state.Running {
		return nil
	}
	if e.state.Beam == BeamSingle {
		return clipSpan(box, box.Y+int(math.Floor(e.state.StripPosition)), e.stripHeight, nil)
	}

	cycle := e.cycle(box.H)
	spacing := cycle / float64(e.bars)
	spans := make([]core.Rect, 0, e.bars)
	for i := 0; i < e.bars; i++ {
		wrapped := core.PosMod(e.state.StripPosition+float64(i)*spacing, cycle)
		top := box.Y + int(math.Floor(wrapped)) - e.stripHeight
		spans = clipSpan(box, top, e.stripHeight, spans)
	}
	return spans
}

func clipSpan(box core.Rect, top, height int, dst []core.Rect) []core.Rect {
	span := core.NewRect(box.X, top, box.W, height).Intersect(box)
	if span.Empty() {
		return dst
	}
	return append(dst, span)
}

// FadeToward moves an opacity one step toward 255 when visible or 0 when
// hidden, never overshooting.
func FadeToward(opacity int, visible bool, step int) int {
	if visible {
		return core.Min(opacity+step, 255)
	}
	return core.Max(opacity-step, 0)
}
