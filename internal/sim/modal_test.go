package sim

import (
	"testing"
	"time"
)

func TestModalStartsInWarning(t *testing.T) {
	m := NewModal(15 * time.Second)
	st := m.State()
	if st.Phase != PhaseWarning {
		t.Errorf("Phase = %v, want warning", st.Phase)
	}
	if st.Acknowledged || st.HelpVisible || st.PopupVisible {
		t.Errorf("unexpected initial flags: %+v", st)
	}
}

func TestModalGate(t *testing.T) {
	m := NewModal(15 * time.Second)

	if m.Continue(20 * time.Second) {
		t.Fatal("Continue succeeded without acknowledgement")
	}

	m.ToggleAcknowledge(time.Second)
	if got := m.State().AcknowledgedAt; got != time.Second {
		t.Errorf("AcknowledgedAt = %v, want 1s", got)
	}

	tests := []struct {
		now       time.Duration
		remaining int
		can       bool
	}{
		{time.Second, 15, false},
		{2 * time.Second, 14, false},
		{15500 * ms, 1, false},
		{15999 * ms, 1, false},
		{16 * time.Second, 0, true},
		{30 * time.Second, 0, true},
	}
	for _, tt := range tests {
		if got := m.Remaining(tt.now); got != tt.remaining {
			t.Errorf("Remaining(%v) = %d, want %d", tt.now, got, tt.remaining)
		}
		if got := m.CanContinue(tt.now); got != tt.can {
			t.Errorf("CanContinue(%v) = %v, want %v", tt.now, got, tt.can)
		}
	}

	if m.Continue(15999 * ms) {
		t.Fatal("Continue succeeded before the delay elapsed")
	}
	if !m.Continue(16 * time.Second) {
		t.Fatal("Continue failed after the delay")
	}
	if m.State().Phase != PhaseNormal {
		t.Errorf("Phase = %v, want normal", m.State().Phase)
	}

	// No way back.
	if m.ToggleAcknowledge(17 * time.Second) {
		t.Error("ToggleAcknowledge accepted in normal phase")
	}
	if m.Continue(17 * time.Second) {
		t.Error("Continue reported a second transition")
	}
}

func TestModalUncheckResetsCountdown(t *testing.T) {
	m := NewModal(15 * time.Second)

	m.ToggleAcknowledge(time.Second)
	m.ToggleAcknowledge(15900 * ms) // 14.9s elapsed
	st := m.State()
	if st.Acknowledged || st.AcknowledgedAt != 0 {
		t.Fatalf("uncheck did not clear the stamp: %+v", st)
	}
	if m.Remaining(15900*ms) != 0 || m.CanContinue(16*time.Second) {
		t.Fatal("countdown active while unacknowledged")
	}

	m.ToggleAcknowledge(16 * time.Second)
	if got := m.Elapsed(16 * time.Second); got != 0 {
		t.Errorf("Elapsed right after re-check = %v, want 0", got)
	}
	if m.Continue(30900 * ms) {
		t.Fatal("Continue succeeded 14.9s after re-check")
	}
	if !m.Continue(31 * time.Second) {
		t.Fatal("Continue failed 15s after re-check")
	}
}

func TestModalHelpOnlyInNormal(t *testing.T) {
	m := NewModal(0)
	if _, changed := m.ToggleHelp(); changed {
		t.Fatal("help toggled during warning")
	}

	m.ToggleAcknowledge(0)
	m.Continue(0)

	visible, changed := m.ToggleHelp()
	if !visible || !changed {
		t.Fatalf("ToggleHelp() = %v, %v; want true, true", visible, changed)
	}
	visible, changed = m.ToggleHelp()
	if visible || !changed {
		t.Fatalf("ToggleHelp() = %v, %v; want false, true", visible, changed)
	}
}

func TestModalFade(t *testing.T) {
	m := NewModal(0)
	m.ToggleAcknowledge(0)
	m.Continue(0)
	m.ToggleHelp()
	m.SetPopup(true)

	prevHelp, prevPopup := 0, 0
	for tick := 1; tick <= 17; tick++ {
		m.Fade(15)
		st := m.State()
		if st.HelpOpacity < prevHelp || st.PopupOpacity < prevPopup {
			t.Fatalf("tick %d: fade-in not monotonic", tick)
		}
		if st.HelpOpacity > 255 || st.PopupOpacity > 255 {
			t.Fatalf("tick %d: opacity overshoot %d/%d", tick, st.HelpOpacity, st.PopupOpacity)
		}
		prevHelp, prevPopup = st.HelpOpacity, st.PopupOpacity
	}
	if prevHelp != 255 || prevPopup != 255 {
		t.Fatalf("after 17 ticks opacity = %d/%d, want 255", prevHelp, prevPopup)
	}

	m.ToggleHelp()
	m.SetPopup(false)
	for tick := 1; tick <= 17; tick++ {
		m.Fade(15)
		st := m.State()
		if st.HelpOpacity > prevHelp || st.PopupOpacity > prevPopup {
			t.Fatalf("tick %d: fade-out not monotonic", tick)
		}
		if st.HelpOpacity < 0 || st.PopupOpacity < 0 {
			t.Fatalf("tick %d: opacity undershoot", tick)
		}
		prevHelp, prevPopup = st.HelpOpacity, st.PopupOpacity
	}
	if prevHelp != 0 || prevPopup != 0 {
		t.Fatalf("after 17 ticks opacity = %d/%d, want 0", prevHelp, prevPopup)
	}
}

func TestFadeTowardNeverOvershoots(t *testing.T) {
	tests := []struct {
		opacity int
		visible bool
		step    int
		want    int
	}{
		{0, true, 15, 15},
		{250, true, 15, 255},
		{255, true, 15, 255},
		{10, false, 15, 0},
		{0, false, 15, 0},
		{100, false, 40, 60},
	}
	for _, tt := range tests {
		if got := FadeToward(tt.opacity, tt.visible, tt.step); got != tt.want {
			t.Errorf("FadeToward(%d, %v, %d) = %d, want %d", tt.opacity, tt.visible, tt.step, got, tt.want)
		}
	}
}

func TestModalAllows(t *testing.T) {
	warning := ModalState{Phase: PhaseWarning}
	normal := ModalState{Phase: PhaseNormal}
	help := ModalState{Phase: PhaseNormal, HelpVisible: true}
	popup := ModalState{Phase: PhaseNormal, PopupVisible: true}
	both := ModalState{Phase: PhaseNormal, HelpVisible: true, PopupVisible: true}

	// Columns: warning, normal, help, popup, help+popup.
	tests := []struct {
		action Action
		want   [5]bool
	}{
		{ActionQuit, [5]bool{true, true, true, true, true}},
		{ActionAcknowledge, [5]bool{true, false, false, false, false}},
		{ActionContinue, [5]bool{true, false, false, false, false}},
		{ActionIgnore, [5]bool{false, false, false, true, true}},
		{ActionToggleStrip, [5]bool{false, true, false, false, false}},
		{ActionHelp, [5]bool{false, true, true, true, true}},
		{ActionTheme, [5]bool{false, true, true, true, true}},
		{ActionBeam, [5]bool{false, true, true, true, true}},
		{ActionHoldKey, [5]bool{false, true, true, true, true}},
		{ActionAdjust, [5]bool{false, true, false, true, false}},
		{ActionResize, [5]bool{false, true, true, false, false}},
	}
	if len(tests) != len(Actions) {
		t.Fatalf("table covers %d actions, want %d", len(tests), len(Actions))
	}

	states := [5]ModalState{warning, normal, help, popup, both}
	for _, tt := range tests {
		for i, st := range states {
			if got := st.Allows(tt.action); got != tt.want[i] {
				t.Errorf("action %d in state %+v: Allows = %v, want %v", tt.action, st, got, tt.want[i])
			}
		}
	}
}
