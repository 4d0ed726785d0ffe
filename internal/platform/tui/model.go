package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/sim"
	"github.com/vovakirdan/stripsim/internal/storage"
)

// Options configures a terminal session.
type Options struct {
	Settings    config.Settings
	TickRate    int
	RefreshRate int // Detected rate; the settings may override it
	Cols, Rows  int // Initial terminal size
	Store       *storage.Store
	Logger      *log.Logger
	Frontend    string // Recorded with the session, "tui" when empty
	User        string
	Clock       clock.Clock // Monotonic when nil

	// ScreenshotDir defaults to ~/.stripsim/screenshots.
	ScreenshotDir string
}

// canvas holds the last rendered frame and the frozen copy shown behind the
// help overlay. It is the simulator's Compositor.
type canvas struct {
	screen     *core.Screen
	background *core.Screen
	captured   bool
}

func newCanvas(cols, rows int) *canvas {
	return &canvas{
		screen:     core.NewScreen(cols, rows),
		background: core.NewScreen(cols, rows),
	}
}

// CaptureBackground freezes the last rendered frame.
func (c *canvas) CaptureBackground() {
	c.background.Resize(c.screen.Width(), c.screen.Height())
	c.background.CopyFrom(c.screen)
	c.captured = true
}

// ReleaseBackground drops the frozen frame.
func (c *canvas) ReleaseBackground() {
	c.captured = false
}

func (c *canvas) frozen() *core.Screen {
	if !c.captured {
		return nil
	}
	return c.background
}

func (c *canvas) resize(cols, rows int) {
	c.screen.Resize(cols, rows)
}

// Model is the Bubble Tea model for the simulator.
type Model struct {
	sim      *sim.Simulator
	clock    clock.Clock
	canvas   *canvas
	holds    *holdTracker
	sizes    *sim.SizeSync
	queue    *core.EventQueue
	keys     KeyMap
	help     help.Model
	recorder *session.Recorder
	logger   *log.Logger
	styler   *Styler
	hits     *hitMap
	snap     sim.Snapshot

	cellW, cellH  int
	tickRate      int
	screenshotDir string
	quitting      bool
}

// NewModel creates a model with a fresh simulator in the warning phase.
func NewModel(opts Options) Model {
	cfg := opts.Settings
	if opts.Clock == nil {
		opts.Clock = clock.NewMonotonic()
	}
	if opts.Frontend == "" {
		opts.Frontend = "tui"
	}
	if opts.Logger == nil {
		opts.Logger = session.NewLogger(nil, log.InfoLevel)
	}
	cols, rows := core.Max(opts.Cols, 1), core.Max(opts.Rows-1, 1)

	cv := newCanvas(cols, rows)
	rc := core.RuntimeConfig{
		ScreenW:     cols * cfg.TUI.CellWidth,
		ScreenH:     rows * cfg.TUI.CellHeight,
		TickRate:    opts.TickRate,
		RefreshRate: opts.RefreshRate,
	}.Normalize()
	s := sim.New(cfg, rc, sim.WithCompositor(cv))

	h := help.New()
	h.Width = cols

	m := Model{
		sim:           s,
		clock:         opts.Clock,
		canvas:        cv,
		holds:         newHoldTracker(cfg.ReleaseAfter()),
		sizes:         sim.NewSizeSync(rc.ScreenW, rc.ScreenH),
		queue:         &core.EventQueue{},
		keys:          DefaultKeyMap(),
		help:          h,
		recorder:      session.NewRecorder(opts.Store, opts.Logger, opts.Frontend, opts.User, s.RefreshRate()),
		logger:        opts.Logger,
		styler:        NewStyler(core.ThemeDark),
		hits:          newHitMap(),
		cellW:         cfg.TUI.CellWidth,
		cellH:         cfg.TUI.CellHeight,
		tickRate:      rc.TickRate,
		screenshotDir: opts.ScreenshotDir,
	}
	m.snap = s.Snapshot(m.clock.Now())
	m.styler.SetTheme(m.snap.Theme)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey turns a key press into simulator events for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	in := m.keys.translate(msg)
	now := m.clock.Now()
	for _, k := range in.release {
		if m.holds.release(k) {
			m.queue.Push(core.KeyRelease(k))
		}
	}
	for _, k := range in.hold {
		if m.holds.press(k, now) {
			m.queue.Push(core.KeyPress(k))
		}
	}
	if in.key != core.KeyNone {
		m.queue.Push(core.KeyPress(in.key))
	}
	if in.control != sim.ControlNone {
		x, y := m.sim.Layout().CenterOf(in.control)
		m.queue.Push(core.PointerAt(x, y))
	}
	return m, nil
}

// handleMouse routes left clicks. Clicks on a drawn control hit its centre;
// anything else maps to the logical pixel under the cell.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y >= m.canvas.screen.Height() {
		return m, nil
	}
	if c := m.hits.at(msg.X, msg.Y); c != sim.ControlNone {
		x, y := m.snap.Layout.CenterOf(c)
		m.queue.Push(core.PointerAt(x, y))
		return m, nil
	}
	g := newGrid(m.snap.Layout, m.canvas.screen.Width(), m.canvas.screen.Height())
	x, y := g.point(msg.X, msg.Y)
	m.queue.Push(core.PointerAt(x, y))
	return m, nil
}

// handleResize resizes the cell buffer and records the size for the next tick.
// The last row is kept for the key help footer.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	cols, rows := core.Max(msg.Width, 1), core.Max(msg.Height-1, 1)
	m.canvas.resize(cols, rows)
	m.help.Width = cols
	m.sizes.Observe(cols*m.cellW, rows*m.cellH)
	return m, nil
}

// handleTick releases expired holds and advances the simulator.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	for _, k := range m.holds.expire(now) {
		m.queue.Push(core.KeyRelease(k))
	}

	if ev, ok := m.sizes.Pending(); ok {
		m.queue.Push(ev)
	}

	res := m.sim.Step(now, m.queue.Drain())
	m.sizes.Confirm(res.Notices)
	m.recorder.Observe(res.Notices)
	m.snap = res.Snapshot
	m.styler.SetTheme(m.snap.Theme)

	if res.Quit {
		m.quitting = true
		m.recorder.Finish(m.sim.Stats())
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	dir := m.screenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".stripsim", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	drawFrame(m.canvas.screen, m.snap, m.canvas.frozen(), m.hits)
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("stripsim_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.canvas.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// Finish records the session if the program ended without a quit tick.
func (m Model) Finish() {
	m.recorder.Finish(m.sim.Stats())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawFrame(m.canvas.screen, m.snap, m.canvas.frozen(), m.hits)
	return m.styler.RenderScreen(m.canvas.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Finish()
	} else {
		model.Finish()
	}
	return err
}
