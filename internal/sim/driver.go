package sim

import (
	"context"
	"time"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/core"
)

// EventSource is polled once per tick for the events that arrived since the
// previous poll.
type EventSource interface {
	Poll() []core.Event
}

// Renderer draws a frame.
type Renderer interface {
	Render(Snapshot) error
}

// NoticeHandler receives the notices produced by a tick.
type NoticeHandler func([]Notice)

// Driver runs a Simulator at a fixed tick rate for frontends that do not own
// their own frame loop.
type Driver struct {
	sim      *Simulator
	clock    clock.Clock
	source   EventSource
	renderer Renderer
	interval time.Duration
	onNotice NoticeHandler
}

// NewDriver creates a driver ticking tickRate times per second.
func NewDriver(s *Simulator, c clock.Clock, src EventSource, r Renderer, tickRate int) *Driver {
	return &Driver{
		sim:      s,
		clock:    c,
		source:   src,
		renderer: r,
		interval: clock.FrameInterval(tickRate),
	}
}

// OnNotice registers a callback for tick notices.
func (d *Driver) OnNotice(h NoticeHandler) {
	d.onNotice = h
}

// Tick runs one tick: poll, step and render. Returns true when the simulator
// asked to quit; nothing is rendered in that case.
func (d *Driver) Tick() (bool, error) {
	var events []core.Event
	if d.source != nil {
		events = d.source.Poll()
	}
	res := d.sim.Step(d.clock.Now(), events)
	if d.onNotice != nil && len(res.Notices) > 0 {
		d.onNotice(res.Notices)
	}
	if res.Quit {
		return true, nil
	}
	if d.renderer == nil {
		return false, nil
	}
	return false, d.renderer.Render(res.Snapshot)
}

// Run ticks until quit, a render error or context cancellation.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			quit, err := d.Tick()
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}
