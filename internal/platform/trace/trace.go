// Package trace replays scripted input against a headless simulator and
// prints one status line per tick.
package trace

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/sim"
)

// Step is one scripted input. Exactly one of the action fields must be set.
// The tick is given either directly (At) or in milliseconds (AtMS), which
// selects the first tick whose clock time is at least AtMS.
type Step struct {
	At   *int `yaml:"at"`
	AtMS *int `yaml:"at_ms"`

	Press   string `yaml:"press"`   // Key name, see core.Key
	Release string `yaml:"release"` // Key name
	Click   string `yaml:"click"`   // Control name, see sim.Control
	Pointer []int  `yaml:"pointer"` // [x, y]
	Resize  []int  `yaml:"resize"`  // [w, h]
	Quit    bool   `yaml:"quit"`
}

// Script is a trace file.
type Script struct {
	Ticks int    `yaml:"ticks"` // Run length; the run ends earlier on quit
	Steps []Step `yaml:"steps"`
}

// scheduled is a step resolved to its tick.
type scheduled struct {
	tick int
	step Step
}

// ParseScript decodes and validates a script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("trace: %w", err)
	}
	if s.Ticks <= 0 {
		return Script{}, fmt.Errorf("trace: ticks must be > 0")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return Script{}, fmt.Errorf("trace: step %d: %w", i, err)
		}
	}
	return s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("trace: failed to read %s: %w", path, err)
	}
	return ParseScript(data)
}

func (st Step) validate() error {
	if (st.At == nil) == (st.AtMS == nil) {
		return fmt.Errorf("exactly one of at and at_ms is required")
	}
	if (st.At != nil && *st.At < 0) || (st.AtMS != nil && *st.AtMS < 0) {
		return fmt.Errorf("negative time")
	}

	actions := 0
	for _, set := range []bool{st.Press != "", st.Release != "", st.Click != "", st.Pointer != nil, st.Resize != nil, st.Quit} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("exactly one action is required, got %d", actions)
	}

	switch {
	case st.Press != "":
		_, err := core.ParseKey(st.Press)
		return err
	case st.Release != "":
		_, err := core.ParseKey(st.Release)
		return err
	case st.Click != "":
		_, err := parseControl(st.Click)
		return err
	case st.Pointer != nil && len(st.Pointer) != 2:
		return fmt.Errorf("pointer needs [x, y]")
	case st.Resize != nil && len(st.Resize) != 2:
		return fmt.Errorf("resize needs [w, h]")
	}
	return nil
}

func parseControl(name string) (sim.Control, error) {
	for _, c := range []sim.Control{sim.ControlToggle, sim.ControlCheckbox, sim.ControlContinue, sim.ControlIgnore} {
		if c.String() == name {
			return c, nil
		}
	}
	return sim.ControlNone, fmt.Errorf("unknown control %q", name)
}

// Source feeds scripted steps to a Driver, one tick per Poll. Clicks are
// resolved against the layout current at their tick.
type Source struct {
	steps  []scheduled
	next   int
	tick   int
	layout func() sim.Layout
}

// NewSource schedules a script at the given tick rate.
func NewSource(s Script, tickRate int, layout func() sim.Layout) *Source {
	if tickRate <= 0 {
		tickRate = 60
	}
	steps := make([]scheduled, 0, len(s.Steps))
	for _, st := range s.Steps {
		tick := 0
		if st.At != nil {
			tick = *st.At
		} else {
			tick = (*st.AtMS*tickRate + 999) / 1000
		}
		steps = append(steps, scheduled{tick: tick, step: st})
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].tick < steps[j].tick })
	return &Source{steps: steps, layout: layout}
}

// Poll returns the events scheduled for the current tick and moves on.
func (s *Source) Poll() []core.Event {
	var events []core.Event
	for s.next < len(s.steps) && s.steps[s.next].tick <= s.tick {
		events = append(events, s.event(s.steps[s.next].step))
		s.next++
	}
	s.tick++
	return events
}

func (s *Source) event(st Step) core.Event {
	switch {
	case st.Press != "":
		k, _ := core.ParseKey(st.Press)
		return core.KeyPress(k)
	case st.Release != "":
		k, _ := core.ParseKey(st.Release)
		return core.KeyRelease(k)
	case st.Click != "":
		c, _ := parseControl(st.Click)
		x, y := s.layout().CenterOf(c)
		return core.PointerAt(x, y)
	case st.Pointer != nil:
		return core.PointerAt(st.Pointer[0], st.Pointer[1])
	case st.Resize != nil:
		return core.ResizeTo(st.Resize[0], st.Resize[1])
	default:
		return core.Quit()
	}
}

// Printer renders snapshots as status lines.
type Printer struct {
	w    io.Writer
	tick int
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Render writes one line for the snapshot.
func (p *Printer) Render(snap sim.Snapshot) error {
	_, err := fmt.Fprintln(p.w, StatusLine(p.tick, snap))
	p.tick++
	return err
}

// StatusLine formats the state of one tick.
func StatusLine(tick int, snap sim.Snapshot) string {
	return fmt.Sprintf("tick=%d phase=%s speed=%d pos=%.0f running=%t beam=%s help=%d popup=%d ack=%t",
		tick,
		snap.Modal.Phase,
		snap.Sim.Speed,
		snap.Sim.StripPosition,
		snap.Sim.Running,
		snap.Sim.Beam,
		snap.Modal.HelpOpacity,
		snap.Modal.PopupOpacity,
		snap.Modal.Acknowledged,
	)
}

// Run replays a script against s and writes a status line per rendered tick
// to w. Tick i runs with clk set to i/tickRate seconds after its start time,
// so times do not drift. It returns the number of ticks run, including the
// tick that quit.
func Run(s *sim.Simulator, script Script, clk *clock.Manual, tickRate int, w io.Writer, onNotice sim.NoticeHandler) (int, error) {
	if tickRate <= 0 {
		tickRate = 60
	}
	src := NewSource(script, tickRate, s.Layout)
	d := sim.NewDriver(s, clk, src, NewPrinter(w), tickRate)
	if onNotice != nil {
		d.OnNotice(onNotice)
	}

	start := clk.Now()
	for i := 0; i < script.Ticks; i++ {
		clk.Set(start + tickTime(i, tickRate))
		quit, err := d.Tick()
		if err != nil {
			return i + 1, err
		}
		if quit {
			return i + 1, nil
		}
	}
	return script.Ticks, nil
}

// tickTime is the exact offset of a tick from the start of a run.
func tickTime(tick, tickRate int) time.Duration {
	return time.Duration(tick) * time.Second / time.Duration(tickRate)
}
