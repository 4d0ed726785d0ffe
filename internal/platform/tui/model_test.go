package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/content"
	"github.com/vovakirdan/stripsim/internal/sim"
)

func newTestModel(t *testing.T) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(0)
	m := NewModel(Options{
		Settings:      config.Default(),
		Cols:          120,
		Rows:          41,
		Clock:         clk,
		ScreenshotDir: t.TempDir(),
	})
	return m, clk
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, TickMsg(time.Time{}))
}

func passModelWarning(t *testing.T, m Model, clk *clock.Manual) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = tick(t, m)
	if !m.snap.Modal.Acknowledged {
		t.Fatal("space did not tick the checkbox")
	}
	clk.Advance(15 * time.Second)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)
	if m.snap.Modal.Phase != sim.PhaseNormal {
		t.Fatalf("phase = %v, want normal", m.snap.Modal.Phase)
	}
	return m
}

func TestModelScreenLeavesFooterRow(t *testing.T) {
	m, _ := newTestModel(t)
	if w, h := m.canvas.screen.Width(), m.canvas.screen.Height(); w != 120 || h != 40 {
		t.Errorf("screen = %dx%d, want 120x40", w, h)
	}
	if l := m.snap.Layout; l.Width != 1200 || l.Height != 800 {
		t.Errorf("layout = %dx%d, want 1200x800", l.Width, l.Height)
	}
}

func TestModelWarningGate(t *testing.T) {
	m, clk := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, content.WarningTitle) {
		t.Error("initial view does not show the warning")
	}

	m = passModelWarning(t, m, clk)
	if !m.snap.Stats.GatePassed {
		t.Error("stats do not record the gate")
	}
	if !strings.Contains(m.View(), content.AreaLabel) {
		t.Error("view after the gate does not show the test area")
	}
}

func TestModelContinueTooEarly(t *testing.T) {
	m, clk := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = tick(t, m)

	clk.Advance(14 * time.Second)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = tick(t, m)
	if m.snap.Modal.Phase != sim.PhaseWarning {
		t.Error("continue accepted before the countdown finished")
	}
}

func TestModelMouseToggle(t *testing.T) {
	m, clk := newTestModel(t)
	m = passModelWarning(t, m, clk)
	m.View() // Records control positions

	r, ok := m.hits.rects[sim.ControlToggle]
	if !ok {
		t.Fatal("toggle not drawn")
	}
	running := m.snap.Sim.Running
	m, _ = update(t, m, tea.MouseMsg{X: r.X, Y: r.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = tick(t, m)
	if m.snap.Sim.Running == running {
		t.Error("click on the toggle did not change the strip state")
	}

	// Releases and other buttons are ignored
	m, _ = update(t, m, tea.MouseMsg{X: r.X, Y: r.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: r.X, Y: r.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if n := m.queue.Len(); n != 0 {
		t.Errorf("queued %d events for ignored mouse input", n)
	}
}

func TestModelHoldReleasesAfterDelay(t *testing.T) {
	m, clk := newTestModel(t)
	m = passModelWarning(t, m, clk)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlUp})
	m, _ = tick(t, m)
	if !m.holds.held(core.KeyUp) || !m.holds.held(core.KeyFast) {
		t.Fatal("ctrl+up did not hold Up and Fast")
	}
	if !m.snap.Repeat.UpHeld || !m.snap.Repeat.FastHeld {
		t.Errorf("repeat state = %+v, want Up and Fast", m.snap.Repeat)
	}

	clk.Advance(200 * time.Millisecond)
	m, _ = tick(t, m)
	if m.holds.held(core.KeyUp) {
		t.Error("Up still held after the release delay")
	}
	if m.snap.Repeat.UpHeld || m.snap.Repeat.FastHeld {
		t.Errorf("repeat state = %+v after release", m.snap.Repeat)
	}
}

func TestModelEscapeQuits(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := tick(t, m)

	if !m.quitting {
		t.Fatal("model not quitting after escape")
	}
	if cmd == nil {
		t.Fatal("no command returned on quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit tick did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelResize(t *testing.T) {
	m, clk := newTestModel(t)
	m = passModelWarning(t, m, clk)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 51})
	m, _ = tick(t, m)

	if w, h := m.canvas.screen.Width(), m.canvas.screen.Height(); w != 160 || h != 50 {
		t.Errorf("screen = %dx%d, want 160x50", w, h)
	}
	if l := m.snap.Layout; l.Width != 1600 || l.Height != 1000 {
		t.Errorf("layout = %dx%d, want 1600x1000", l.Width, l.Height)
	}
}

func TestModelResizeDuringWarningAppliesAfterGate(t *testing.T) {
	m, clk := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 51})
	m, _ = tick(t, m)
	if l := m.snap.Layout; l.Width != 1200 || l.Height != 800 {
		t.Fatalf("layout during warning = %dx%d, want 1200x800", l.Width, l.Height)
	}

	m = passModelWarning(t, m, clk)
	m, _ = tick(t, m)
	if l := m.snap.Layout; l.Width != 1600 || l.Height != 1000 {
		t.Errorf("layout = %dx%d, want 1600x1000", l.Width, l.Height)
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), content.WarningTitle) {
		t.Error("screenshot does not contain the warning")
	}
}
