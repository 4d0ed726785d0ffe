// Package window runs the simulator in a desktop window using Ebitengine.
package window

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/assets"
	"github.com/vovakirdan/stripsim/internal/platform/content"
	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/sim"
	"github.com/vovakirdan/stripsim/internal/storage"
)

// Options configures the window frontend.
type Options struct {
	Settings    config.Settings
	TickRate    int
	RefreshRate int
	Store       *storage.Store
	Logger      *log.Logger
	User        string
	AssetDir    string // Searched first for fonts and the help figure
}

// keyBindings maps window keys to simulator keys. Either Ctrl key is Fast.
var keyBindings = []struct {
	keys []ebiten.Key
	key  core.Key
}{
	{[]ebiten.Key{ebiten.KeyArrowUp}, core.KeyUp},
	{[]ebiten.Key{ebiten.KeyArrowDown}, core.KeyDown},
	{[]ebiten.Key{ebiten.KeyControlLeft, ebiten.KeyControlRight}, core.KeyFast},
	{[]ebiten.Key{ebiten.KeyH}, core.KeyHelp},
	{[]ebiten.Key{ebiten.KeyT}, core.KeyTheme},
	{[]ebiten.Key{ebiten.KeyM}, core.KeyMultibeam},
	{[]ebiten.Key{ebiten.KeyEscape}, core.KeyEscape},
}

// Game implements ebiten.Game around one simulator.
type Game struct {
	sim      *sim.Simulator
	clock    clock.Clock
	queue    core.EventQueue
	recorder *session.Recorder
	renderer *renderer
	snap     sim.Snapshot
	held     map[core.Key]bool
	sizes    *sim.SizeSync

	canvas     *ebiten.Image // Last rendered frame
	background *ebiten.Image // Frozen frame behind the help overlay
	captured   bool
}

// NewGame creates the game. Fonts and the figure are resolved once.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = session.NewLogger(nil, log.InfoLevel)
	}
	cfg := opts.Settings
	resolver := assets.DefaultResolver(opts.AssetDir)

	g := &Game{
		clock: clock.NewMonotonic(),
		renderer: &renderer{
			faces:  loadFaces(resolver, logger),
			figure: loadFigure(resolver, logger),
		},
		held: make(map[core.Key]bool),
	}
	rc := core.RuntimeConfig{
		ScreenW:     cfg.Display.MinWidth,
		ScreenH:     cfg.Display.MinHeight,
		TickRate:    opts.TickRate,
		RefreshRate: opts.RefreshRate,
	}
	g.sim = sim.New(cfg, rc, sim.WithCompositor(g))
	g.sizes = sim.NewSizeSync(rc.ScreenW, rc.ScreenH)
	g.recorder = session.NewRecorder(opts.Store, logger, "window", opts.User, g.sim.RefreshRate())
	g.snap = g.sim.Snapshot(g.clock.Now())
	return g
}

// CaptureBackground freezes the last rendered frame.
func (g *Game) CaptureBackground() {
	if g.canvas == nil {
		return
	}
	b := g.canvas.Bounds()
	if g.background == nil || g.background.Bounds() != b {
		g.background = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.background.Clear()
	g.background.DrawImage(g.canvas, nil)
	g.captured = true
}

// ReleaseBackground drops the frozen frame.
func (g *Game) ReleaseBackground() {
	g.captured = false
}

// poll collects this frame's input as simulator events.
func (g *Game) poll() {
	if ebiten.IsWindowBeingClosed() {
		g.queue.Push(core.Quit())
	}

	for _, b := range keyBindings {
		down := false
		for _, k := range b.keys {
			down = down || ebiten.IsKeyPressed(k)
		}
		switch {
		case down && !g.held[b.key]:
			g.queue.Push(core.KeyPress(b.key))
		case !down && g.held[b.key]:
			g.queue.Push(core.KeyRelease(b.key))
		}
		g.held[b.key] = down
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.queue.Push(core.PointerAt(x, y))
	}

	if ev, ok := g.sizes.Pending(); ok {
		g.queue.Push(ev)
	}
}

// Update advances the simulator one tick.
func (g *Game) Update() error {
	g.poll()

	res := g.sim.Step(g.clock.Now(), g.queue.Drain())
	g.sizes.Confirm(res.Notices)
	g.recorder.Observe(res.Notices)
	g.snap = res.Snapshot
	if res.Quit {
		g.recorder.Finish(g.sim.Stats())
		return ebiten.Termination
	}
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.canvas == nil || g.canvas.Bounds() != b {
		g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}

	var background *ebiten.Image
	if g.captured {
		background = g.background
	}
	g.renderer.frame(g.canvas, g.snap, background)
	screen.DrawImage(g.canvas, nil)
}

// Layout records the window size; poll sends it until the simulator accepts it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sizes.Observe(outsideWidth, outsideHeight)
	l := g.snap.Layout
	return core.Max(outsideWidth, l.Width), core.Max(outsideHeight, l.Height)
}

// Run opens the window and blocks until the simulator quits.
func Run(opts Options) error {
	d := opts.Settings.Display
	ebiten.SetWindowTitle(content.WindowTitle)
	ebiten.SetWindowSize(d.MinWidth, d.MinHeight)
	ebiten.SetWindowSizeLimits(d.MinWidth, d.MinHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	g := NewGame(opts)
	err := ebiten.RunGame(g)
	g.recorder.Finish(g.sim.Stats())
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// ShowError reports a fatal error in a native dialog.
func ShowError(err error) {
	//nolint:errcheck // Nothing left to report to if the dialog fails
	zenity.Error(err.Error(), zenity.Title(content.WindowTitle), zenity.ErrorIcon)
}
