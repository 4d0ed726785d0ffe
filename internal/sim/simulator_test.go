package sim

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
)

type fakeCompositor struct {
	captures int
	releases int
}

func (f *fakeCompositor) CaptureBackground() { f.captures++ }
func (f *fakeCompositor) ReleaseBackground() { f.releases++ }

func newTestSim(opts ...Option) *Simulator {
	rc := core.RuntimeConfig{ScreenW: 1200, ScreenH: 800, TickRate: 60, RefreshRate: 60}
	return New(config.Default(), rc, opts...)
}

func click(s *Simulator, c Control) core.Event {
	x, y := s.Layout().CenterOf(c)
	return core.PointerAt(x, y)
}

// passGate acknowledges the warning at t=0 and continues at t=15s.
func passGate(t *testing.T, s *Simulator) time.Duration {
	t.Helper()
	s.Step(0, []core.Event{click(s, ControlCheckbox)})
	now := 15 * time.Second
	res := s.Step(now, []core.Event{click(s, ControlContinue)})
	if res.Snapshot.Modal.Phase != PhaseNormal {
		t.Fatalf("gate not passed: %+v", res.Snapshot.Modal)
	}
	return now
}

func hasNotice(res StepResult, kind NoticeKind) bool {
	for _, n := range res.Notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}

func TestSimulatorInitialSnapshot(t *testing.T) {
	s := newTestSim()
	snap := s.Snapshot(0)

	if snap.Modal.Phase != PhaseWarning {
		t.Errorf("Phase = %v, want warning", snap.Modal.Phase)
	}
	want := SimulationState{Speed: 30, Beam: BeamSingle}
	if diff := cmp.Diff(want, snap.Sim); diff != "" {
		t.Errorf("initial sim state (-want +got):\n%s", diff)
	}
	if snap.RefreshRate != 60 || snap.Recommended != 60 {
		t.Errorf("refresh/recommended = %d/%d, want 60/60", snap.RefreshRate, snap.Recommended)
	}
	if snap.Layout.Box.H != 700 {
		t.Errorf("box height = %d, want 700", snap.Layout.Box.H)
	}
	if snap.Theme != core.ThemeDark {
		t.Errorf("Theme = %v, want dark", snap.Theme)
	}
}

func TestSimulatorRefreshRate(t *testing.T) {
	tests := []struct {
		name     string
		detected int
		override int
		want     int
		recomm   int
	}{
		{"detected", 144, 0, 144, 144},
		{"undetectable", 0, 0, 60, 60},
		{"override wins", 60, 240, 240, 240},
		{"unlisted rate", 100, 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Display.RefreshRate = tt.override
			s := New(cfg, core.RuntimeConfig{RefreshRate: tt.detected})
			snap := s.Snapshot(0)
			if snap.RefreshRate != tt.want || snap.Recommended != tt.recomm {
				t.Errorf("got %d/%d, want %d/%d", snap.RefreshRate, snap.Recommended, tt.want, tt.recomm)
			}
		})
	}
}

func TestSimulatorGateRequiresDelay(t *testing.T) {
	s := newTestSim()

	res := s.Step(0, []core.Event{click(s, ControlCheckbox)})
	if !hasNotice(res, NoticeAcknowledged) {
		t.Error("missing acknowledged notice")
	}
	if res.Snapshot.Remaining != 15 {
		t.Errorf("Remaining = %d, want 15", res.Snapshot.Remaining)
	}

	res = s.Step(14900*ms, []core.Event{click(s, ControlContinue)})
	if res.Snapshot.Modal.Phase != PhaseWarning {
		t.Fatal("continued before 15s")
	}

	// Uncheck at 14.9s and re-check: the countdown restarts.
	s.Step(14900*ms, []core.Event{click(s, ControlCheckbox)})
	s.Step(14950*ms, []core.Event{click(s, ControlCheckbox)})
	res = s.Step(29*time.Second, []core.Event{click(s, ControlContinue)})
	if res.Snapshot.Modal.Phase != PhaseWarning {
		t.Fatal("continued 14.05s after re-check")
	}
	if res.Snapshot.CanContinue {
		t.Error("CanContinue before delay")
	}

	res = s.Step(29950*ms, []core.Event{click(s, ControlContinue)})
	if res.Snapshot.Modal.Phase != PhaseNormal {
		t.Fatal("gate not passed 15s after re-check")
	}
	if !hasNotice(res, NoticeGatePassed) || !res.Snapshot.Policy.Armed {
		t.Error("gate pass did not arm the speed policy")
	}
}

func TestSimulatorWarningConsumesClicks(t *testing.T) {
	s := newTestSim()
	res := s.Step(0, []core.Event{click(s, ControlToggle)})
	if res.Snapshot.Sim.Running {
		t.Error("toggle worked during warning")
	}
}

func TestSimulatorWarningGatesKeys(t *testing.T) {
	fc := &fakeCompositor{}
	s := newTestSim(WithCompositor(fc))

	res := s.Step(time.Second, []core.Event{
		core.KeyPress(core.KeyHelp),
		core.KeyPress(core.KeyTheme),
		core.KeyPress(core.KeyMultibeam),
		core.KeyPress(core.KeyUp),
		core.ResizeTo(1600, 1000),
	})
	snap := res.Snapshot
	if snap.Modal.HelpVisible || fc.captures != 0 {
		t.Error("help opened during warning")
	}
	if snap.Theme != core.ThemeDark || snap.Sim.Beam != BeamSingle {
		t.Error("theme or beam changed during warning")
	}
	if snap.Repeat.UpHeld {
		t.Error("hold key accepted during warning")
	}
	if snap.Layout.Width != 1200 {
		t.Errorf("resize accepted during warning: width %d", snap.Layout.Width)
	}
	if len(res.Notices) != 0 {
		t.Errorf("unexpected notices: %v", res.Notices)
	}
}

func TestSimulatorStartAdvances(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)

	res := s.Step(now, []core.Event{click(s, ControlToggle)})
	if !hasNotice(res, NoticeStripStarted) {
		t.Error("missing strip started notice")
	}
	if got := res.Snapshot.Sim.StripPosition; got != 30 {
		t.Errorf("position after start tick = %v, want 30", got)
	}
	if len(res.Snapshot.Spans) != 1 {
		t.Errorf("spans = %v, want one", res.Snapshot.Spans)
	}

	res = s.Step(now, []core.Event{click(s, ControlToggle)})
	if res.Snapshot.Sim.Running || !hasNotice(res, NoticeStripStopped) {
		t.Error("second click did not stop the strip")
	}
	if got := res.Snapshot.Sim.StripPosition; got != 30 {
		t.Errorf("stopped strip moved to %v", got)
	}
}

func TestSimulatorHelpCapturesOnce(t *testing.T) {
	fc := &fakeCompositor{}
	s := newTestSim(WithCompositor(fc))
	now := passGate(t, s)

	res := s.Step(now, []core.Event{core.KeyPress(core.KeyHelp)})
	if !res.Snapshot.Modal.HelpVisible || !hasNotice(res, NoticeHelpOpened) {
		t.Fatal("help not opened")
	}
	if fc.captures != 1 {
		t.Fatalf("captures = %d, want 1", fc.captures)
	}

	res = s.Step(now, []core.Event{core.KeyPress(core.KeyHelp)})
	if res.Snapshot.Modal.HelpVisible || !hasNotice(res, NoticeHelpClosed) {
		t.Fatal("help not closed")
	}
	if fc.captures != 1 {
		t.Errorf("closing help captured the background")
	}

	s.Step(now, []core.Event{core.KeyPress(core.KeyHelp)})
	if fc.captures != 2 {
		t.Errorf("captures = %d, want 2", fc.captures)
	}
}

func TestSimulatorHelpBlocksToggleAndAdjust(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)

	s.Step(now, []core.Event{core.KeyPress(core.KeyHelp), core.KeyPress(core.KeyUp)})
	for i := 0; i < 5; i++ {
		now += 250 * ms
		res := s.Step(now, []core.Event{click(s, ControlToggle)})
		if res.Snapshot.Sim.Running {
			t.Fatal("toggle accepted while help visible")
		}
		if res.Snapshot.Sim.Speed != 30 {
			t.Fatalf("speed adjusted while help visible: %d", res.Snapshot.Sim.Speed)
		}
	}

	now += 250 * ms
	res := s.Step(now, []core.Event{core.KeyPress(core.KeyHelp)})
	if res.Snapshot.Sim.Speed != 31 {
		t.Errorf("speed after closing help = %d, want 31", res.Snapshot.Sim.Speed)
	}
}

func TestSimulatorThemeAndBeam(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)

	res := s.Step(now, []core.Event{core.KeyPress(core.KeyTheme), core.KeyPress(core.KeyMultibeam)})
	if res.Snapshot.Theme != core.ThemeLight {
		t.Errorf("Theme = %v, want light", res.Snapshot.Theme)
	}
	if res.Snapshot.Sim.Beam != BeamMulti {
		t.Errorf("Beam = %v, want multibeam", res.Snapshot.Sim.Beam)
	}
	want := []Notice{
		{Kind: NoticeThemeChanged, Value: "Light"},
		{Kind: NoticeBeamChanged, Value: "Multibeam"},
	}
	if diff := cmp.Diff(want, res.Notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
}

// raiseTo holds Fast+Up until the speed reaches target, one step every 250ms.
func raiseTo(t *testing.T, s *Simulator, now time.Duration, target int) (time.Duration, StepResult) {
	t.Helper()
	res := s.Step(now, []core.Event{core.KeyPress(core.KeyFast), core.KeyPress(core.KeyUp)})
	for i := 0; res.Snapshot.Sim.Speed < target; i++ {
		if i > 100 {
			t.Fatalf("speed stuck at %d", res.Snapshot.Sim.Speed)
		}
		now += 250 * ms
		res = s.Step(now, nil)
	}
	now += 250 * ms
	s.Step(now, []core.Event{core.KeyRelease(core.KeyUp), core.KeyRelease(core.KeyFast)})
	return now, res
}

func TestSimulatorSpeedPopupEpisodes(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)

	now, res := raiseTo(t, s, now, 65)
	if res.Snapshot.Sim.Speed != 65 {
		t.Fatalf("speed = %d, want 65", res.Snapshot.Sim.Speed)
	}
	if !res.Snapshot.Modal.PopupVisible || !hasNotice(res, NoticePopupShown) {
		t.Fatal("popup not shown at 65 px/frame on 60 Hz")
	}

	// Theme and beam shortcuts stay active under the popup.
	res = s.Step(now, []core.Event{core.KeyPress(core.KeyTheme)})
	if res.Snapshot.Theme != core.ThemeLight {
		t.Error("theme shortcut blocked by popup")
	}
	// Toggle and resize do not.
	res = s.Step(now, []core.Event{click(s, ControlToggle), core.ResizeTo(1600, 1000)})
	if res.Snapshot.Sim.Running || res.Snapshot.Layout.Width != 1200 {
		t.Error("toggle or resize accepted under the popup")
	}

	res = s.Step(now, []core.Event{click(s, ControlIgnore)})
	if res.Snapshot.Modal.PopupVisible || !hasNotice(res, NoticePopupIgnored) {
		t.Fatal("ignore did not hide the popup")
	}
	for i := 0; i < 30; i++ {
		now += 250 * ms
		res = s.Step(now, nil)
		if res.Snapshot.Modal.PopupVisible {
			t.Fatal("popup re-armed while speed stayed at 65")
		}
	}

	now += 250 * ms
	res = s.Step(now, []core.Event{core.KeyPress(core.KeyFast), core.KeyPress(core.KeyDown)})
	if res.Snapshot.Sim.Speed != 60 {
		t.Fatalf("speed = %d, want 60", res.Snapshot.Sim.Speed)
	}
	if res.Snapshot.Policy.Ignored {
		t.Error("ignore survived dropping to the recommended speed")
	}

	now += 250 * ms
	res = s.Step(now, []core.Event{core.KeyRelease(core.KeyDown), core.KeyPress(core.KeyUp)})
	if res.Snapshot.Sim.Speed != 65 || !res.Snapshot.Modal.PopupVisible {
		t.Fatalf("popup not re-armed after new exceed: speed %d visible %v",
			res.Snapshot.Sim.Speed, res.Snapshot.Modal.PopupVisible)
	}

	want := Stats{Ticks: res.Snapshot.Stats.Ticks, MaxSpeed: 65, ExceedEpisodes: 2, Ignores: 1, GatePassed: true}
	if diff := cmp.Diff(want, s.Stats()); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
}

func TestSimulatorPopupAutoClears(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)
	now, _ = raiseTo(t, s, now, 65)

	now += 250 * ms
	res := s.Step(now, []core.Event{core.KeyPress(core.KeyFast), core.KeyPress(core.KeyDown)})
	if res.Snapshot.Modal.PopupVisible || !hasNotice(res, NoticePopupCleared) {
		t.Error("popup not cleared when speed dropped to the recommended value")
	}
}

func TestSimulatorSpeedBounds(t *testing.T) {
	s := newTestSim()
	now := passGate(t, s)
	s.Step(now, []core.Event{click(s, ControlIgnore)})

	s.Step(now, []core.Event{core.KeyPress(core.KeyFast), core.KeyPress(core.KeyUp)})
	for i := 0; i < 100; i++ {
		now += 250 * ms
		res := s.Step(now, []core.Event{click(s, ControlIgnore)})
		if sp := res.Snapshot.Sim.Speed; sp < 1 || sp > 200 {
			t.Fatalf("speed %d out of range", sp)
		}
	}
	if got := s.Snapshot(now).Sim.Speed; got != 200 {
		t.Errorf("speed = %d, want 200", got)
	}

	s.Step(now, []core.Event{core.KeyRelease(core.KeyUp), core.KeyPress(core.KeyDown)})
	for i := 0; i < 100; i++ {
		now += 250 * ms
		if sp := s.Step(now, nil).Snapshot.Sim.Speed; sp < 1 || sp > 200 {
			t.Fatalf("speed %d out of range", sp)
		}
	}
	if got := s.Snapshot(now).Sim.Speed; got != 1 {
		t.Errorf("speed = %d, want 1", got)
	}
}

func TestSimulatorSpeedCeilingIgnoresSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Strip.MinSpeed = -5
	cfg.Strip.MaxSpeed = 500
	cfg.Strip.InitialSpeed = 450
	s := New(cfg, core.RuntimeConfig{ScreenW: 1200, ScreenH: 800, TickRate: 60, RefreshRate: 60})

	snap := s.Step(0, nil).Snapshot
	if snap.Sim.Speed != MaxSpeed {
		t.Errorf("initial speed = %d, want %d", snap.Sim.Speed, MaxSpeed)
	}
	if snap.SpeedMin != MinSpeed || snap.SpeedMax != MaxSpeed {
		t.Errorf("bounds = [%d, %d], want [%d, %d]", snap.SpeedMin, snap.SpeedMax, MinSpeed, MaxSpeed)
	}

	now := passGate(t, s)
	s.Step(now, []core.Event{core.KeyPress(core.KeyFast), core.KeyPress(core.KeyUp)})
	for i := 0; i < 20; i++ {
		now += 250 * ms
		if sp := s.Step(now, nil).Snapshot.Sim.Speed; sp > MaxSpeed {
			t.Fatalf("speed %d above %d", sp, MaxSpeed)
		}
	}
}

func TestSimulatorResize(t *testing.T) {
	fc := &fakeCompositor{}
	s := newTestSim(WithCompositor(fc))
	now := passGate(t, s)

	// Resize is accepted while help is open.
	s.Step(now, []core.Event{core.KeyPress(core.KeyHelp)})
	res := s.Step(now, []core.Event{core.ResizeTo(1600, 1000)})
	if res.Snapshot.Layout.Width != 1600 || res.Snapshot.Layout.Box.H != 900 {
		t.Errorf("layout after resize = %dx%d box h %d", res.Snapshot.Layout.Width, res.Snapshot.Layout.Height, res.Snapshot.Layout.Box.H)
	}
	if fc.releases != 1 {
		t.Errorf("releases = %d, want 1", fc.releases)
	}

	res = s.Step(now, []core.Event{core.ResizeTo(640, 480)})
	if res.Snapshot.Layout.Width != 1200 || res.Snapshot.Layout.Height != 800 {
		t.Errorf("resize below minimum gave %dx%d", res.Snapshot.Layout.Width, res.Snapshot.Layout.Height)
	}
}

func TestSimulatorQuit(t *testing.T) {
	tests := []struct {
		name  string
		event core.Event
	}{
		{"quit event", core.Quit()},
		{"escape", core.KeyPress(core.KeyEscape)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompositor{}
			s := newTestSim(WithCompositor(fc))

			res := s.Step(0, []core.Event{tt.event, click(s, ControlCheckbox)})
			if !res.Quit {
				t.Fatal("Quit not reported")
			}
			if res.Snapshot.Modal.Acknowledged {
				t.Error("events after quit were processed")
			}
			if fc.releases != 1 {
				t.Errorf("releases = %d, want 1", fc.releases)
			}
			if !hasNotice(res, NoticeQuit) {
				t.Error("missing quit notice")
			}
			if s.Stats().Ticks != 0 {
				t.Error("quit tick was counted")
			}

			if !s.Step(time.Second, nil).Quit {
				t.Error("simulator resumed after quit")
			}
		})
	}
}
