package sim

import (
	"strconv"
	"time"

	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
)

// Compositor is implemented by frontends that can freeze the current frame and
// draw the help overlay on top of it.
type Compositor interface {
	// CaptureBackground snapshots the last rendered frame.
	CaptureBackground()
	// ReleaseBackground drops the snapshot, if any.
	ReleaseBackground()
}

type noCompositor struct{}

func (noCompositor) CaptureBackground() {}
func (noCompositor) ReleaseBackground() {}

// Option configures a Simulator.
type Option func(*Simulator)

// WithCompositor sets the background capture collaborator.
func WithCompositor(c Compositor) Option {
	return func(s *Simulator) {
		if c != nil {
			s.compositor = c
		}
	}
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Sim         SimulationState
	Modal       ModalState
	Repeat      InputRepeatState
	Policy      SpeedPolicyState
	Layout      Layout
	Theme       core.Theme
	Spans       []core.Rect // Visible strip bars, clipped to Layout.Box
	StripHeight int
	RefreshRate int
	Recommended int
	Rates       []int // Rates shown in the recommended speeds table
	SpeedMin    int
	SpeedMax    int
	Remaining   int // Whole seconds left on the warning countdown
	CanContinue bool
	Stats       Stats
}

// StepResult is returned by Step.
type StepResult struct {
	// Quit is set when the user asked to exit. The frontend must stop without
	// rendering Snapshot.
	Quit     bool
	Notices  []Notice
	Snapshot Snapshot
}

// Simulator owns all simulation state and advances it one tick at a time.
// It is not safe for concurrent use.
type Simulator struct {
	settings    config.Settings
	refreshRate int
	rates       []int
	theme       core.Theme
	layout      Layout

	minSpeed, maxSpeed int

	engine *Engine
	modal  *Modal
	repeat *Repeater
	policy *Policy

	compositor Compositor
	stats      Stats
	notices    []Notice
	quit       bool
}

// New creates a simulator in the Warning phase. A refresh rate set in the
// settings overrides the one detected by the frontend; if neither is known
// the default rate is used.
func New(cfg config.Settings, rc core.RuntimeConfig, opts ...Option) *Simulator {
	rc = rc.Normalize()
	refresh := rc.RefreshRate
	if cfg.Display.RefreshRate > 0 {
		refresh = cfg.Display.RefreshRate
	}

	theme, ok := core.ParseTheme(cfg.Theme)
	if !ok {
		theme = core.ThemeDark
	}

	minSpeed := core.Clamp(cfg.Strip.MinSpeed, MinSpeed, MaxSpeed)
	maxSpeed := core.Clamp(cfg.Strip.MaxSpeed, minSpeed, MaxSpeed)
	speed := core.Clamp(cfg.Strip.InitialSpeed, minSpeed, maxSpeed)

	s := &Simulator{
		settings:    cfg,
		refreshRate: refresh,
		rates:       append([]int(nil), cfg.Recommended.Rates...),
		theme:       theme,
		layout:      NewLayout(cfg.Display, rc.ScreenW, rc.ScreenH),
		minSpeed:    minSpeed,
		maxSpeed:    maxSpeed,
		engine:      NewEngine(speed, cfg.Strip.Height, cfg.Strip.Bars),
		modal:       NewModal(cfg.AcknowledgeDelay()),
		repeat:      NewRepeater(cfg.AdjustInterval(), cfg.Input.Step, cfg.Input.FastStep),
		policy:      NewPolicy(cfg.Table().Lookup(refresh)),
		compositor:  noCompositor{},
		stats:       Stats{MaxSpeed: speed},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step consumes the events received since the last tick, in order, and then
// advances the simulation by one tick.
func (s *Simulator) Step(now time.Duration, events []core.Event) StepResult {
	s.notices = nil
	if s.quit {
		return StepResult{Quit: true, Snapshot: s.Snapshot(now)}
	}

	for _, ev := range events {
		s.handle(now, ev)
		if s.quit {
			s.compositor.ReleaseBackground()
			s.notify(NoticeQuit, "")
			return StepResult{Quit: true, Notices: s.notices, Snapshot: s.Snapshot(now)}
		}
	}

	s.adjustSpeed(now)
	s.applyPolicy()
	s.modal.Fade(s.settings.Overlay.FadeStep)
	if s.modal.State().Phase == PhaseNormal {
		s.engine.Advance(s.layout.Box.H)
	}

	s.stats.Ticks++
	return StepResult{Notices: s.notices, Snapshot: s.Snapshot(now)}
}

func (s *Simulator) handle(now time.Duration, ev core.Event) {
	switch ev.Kind {
	case core.EventQuit:
		s.quit = true
	case core.EventKeyDown:
		s.keyDown(ev.Key)
	case core.EventKeyUp:
		s.repeat.Release(ev.Key)
	case core.EventPointerDown:
		s.pointer(now, ev.X, ev.Y)
	case core.EventResize:
		s.resize(ev.W, ev.H)
	}
}

func (s *Simulator) keyDown(k core.Key) {
	ms := s.modal.State()
	switch k {
	case core.KeyEscape:
		s.quit = true
	case core.KeyHelp:
		visible, changed := s.modal.ToggleHelp()
		if !changed {
			return
		}
		if visible {
			s.compositor.CaptureBackground()
			s.notify(NoticeHelpOpened, "")
		} else {
			s.notify(NoticeHelpClosed, "")
		}
	case core.KeyTheme:
		if ms.Allows(ActionTheme) {
			s.theme = s.theme.Next()
			s.notify(NoticeThemeChanged, s.theme.String())
		}
	case core.KeyMultibeam:
		if ms.Allows(ActionBeam) {
			mode := s.engine.ToggleBeam(s.layout.Box.H)
			s.notify(NoticeBeamChanged, mode.String())
		}
	case core.KeyUp, core.KeyDown, core.KeyFast:
		if ms.Allows(ActionHoldKey) {
			s.repeat.Press(k)
		}
	}
}

// pointer routes a click. In the Warning phase and while the popup is up the
// click is consumed by the dialog even when it misses every control.
func (s *Simulator) pointer(now time.Duration, x, y int) {
	ms := s.modal.State()

	if ms.Phase == PhaseWarning {
		switch {
		case s.layout.Hit(ControlCheckbox, x, y):
			s.modal.ToggleAcknowledge(now)
			if s.modal.State().Acknowledged {
				s.notify(NoticeAcknowledged, "")
			} else {
				s.notify(NoticeUnacknowledged, "")
			}
		case s.layout.Hit(ControlContinue, x, y):
			if s.modal.Continue(now) {
				s.policy.Arm()
				s.stats.GatePassed = true
				s.notify(NoticeGatePassed, "")
			}
		}
		return
	}

	if ms.PopupVisible {
		if ms.Allows(ActionIgnore) && s.layout.Hit(ControlIgnore, x, y) {
			s.policy.Ignore()
			s.modal.SetPopup(false)
			s.stats.Ignores++
			s.notify(NoticePopupIgnored, "")
		}
		return
	}

	if ms.Allows(ActionToggleStrip) && s.layout.Hit(ControlToggle, x, y) {
		if s.engine.ToggleRunning() {
			s.notify(NoticeStripStarted, "")
		} else {
			s.notify(NoticeStripStopped, "")
		}
	}
}

func (s *Simulator) resize(w, h int) {
	if !s.modal.State().Allows(ActionResize) {
		return
	}
	s.layout = NewLayout(s.settings.Display, w, h)
	s.compositor.ReleaseBackground()
	s.notify(NoticeResized, strconv.Itoa(s.layout.Width)+"x"+strconv.Itoa(s.layout.Height))
}

func (s *Simulator) adjustSpeed(now time.Duration) {
	if !s.modal.State().Allows(ActionAdjust) {
		return
	}
	cur := s.engine.State().Speed
	next := s.repeat.Apply(now, cur, s.minSpeed, s.maxSpeed)
	if next == cur {
		return
	}
	s.engine.SetSpeed(next)
	s.stats.MaxSpeed = core.Max(s.stats.MaxSpeed, next)
	s.notify(NoticeSpeedChanged, strconv.Itoa(next))
}

func (s *Simulator) applyPolicy() {
	switch s.policy.Evaluate(s.engine.State().Speed, s.modal.State().PopupVisible) {
	case DecisionShow:
		s.modal.SetPopup(true)
		s.stats.ExceedEpisodes++
		s.notify(NoticePopupShown, strconv.Itoa(s.engine.State().Speed))
	case DecisionHide:
		s.modal.SetPopup(false)
		s.notify(NoticePopupCleared, "")
	}
}

func (s *Simulator) notify(kind NoticeKind, value string) {
	s.notices = append(s.notices, Notice{Kind: kind, Value: value})
}

// Snapshot returns the current state for rendering.
func (s *Simulator) Snapshot(now time.Duration) Snapshot {
	return Snapshot{
		Sim:         s.engine.State(),
		Modal:       s.modal.State(),
		Repeat:      s.repeat.State(),
		Policy:      s.policy.State(),
		Layout:      s.layout,
		Theme:       s.theme,
		Spans:       s.engine.Spans(s.layout.Box),
		StripHeight: s.engine.StripHeight(),
		RefreshRate: s.refreshRate,
		Recommended: s.policy.Recommended(),
		Rates:       s.rates,
		SpeedMin:    s.minSpeed,
		SpeedMax:    s.maxSpeed,
		Remaining:   s.modal.Remaining(now),
		CanContinue: s.modal.CanContinue(now),
		Stats:       s.stats,
	}
}

// Layout returns the current layout.
func (s *Simulator) Layout() Layout {
	return s.layout
}

// Stats returns the session statistics so far.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// RefreshRate returns the refresh rate the policy was built for.
func (s *Simulator) RefreshRate() int {
	return s.refreshRate
}
