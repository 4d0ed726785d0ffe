package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/sim"
)

// KeyMap defines the key bindings of the terminal frontend.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	FastUp      key.Binding
	FastDown    key.Binding
	Help        key.Binding
	Theme       key.Binding
	Beam        key.Binding
	Acknowledge key.Binding
	Continue    key.Binding
	Ignore      key.Binding
	Toggle      key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.FastUp, k.Toggle, k.Beam, k.Theme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FastUp, k.FastDown},
		{k.Toggle, k.Beam, k.Theme, k.Help},
		{k.Acknowledge, k.Continue, k.Ignore},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "faster"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "slower"),
		),
		FastUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("C-↑/↓", "x5"),
		),
		FastDown: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("C-↓", "x5 slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "help"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t", "T"),
			key.WithHelp("t", "theme"),
		),
		Beam: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "multibeam"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "acknowledge"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Ignore: key.NewBinding(
			key.WithKeys("i", "I"),
			key.WithHelp("i", "ignore"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "start/stop"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// keyInput is what a terminal key press means to the simulator.
type keyInput struct {
	hold    []core.Key  // Keys to press (held until released)
	release []core.Key  // Keys to release immediately
	key     core.Key    // One-shot key press, KeyNone if none
	control sim.Control // Control to click, ControlNone if none
}

// translate maps a key message to simulator input.
func (k KeyMap) translate(msg tea.KeyMsg) keyInput {
	switch {
	case key.Matches(msg, k.Quit):
		return keyInput{key: core.KeyEscape}
	case key.Matches(msg, k.FastUp):
		return keyInput{hold: []core.Key{core.KeyFast, core.KeyUp}}
	case key.Matches(msg, k.FastDown):
		return keyInput{hold: []core.Key{core.KeyFast, core.KeyDown}}
	case key.Matches(msg, k.Up):
		return keyInput{hold: []core.Key{core.KeyUp}, release: []core.Key{core.KeyFast}}
	case key.Matches(msg, k.Down):
		return keyInput{hold: []core.Key{core.KeyDown}, release: []core.Key{core.KeyFast}}
	case key.Matches(msg, k.Help):
		return keyInput{key: core.KeyHelp}
	case key.Matches(msg, k.Theme):
		return keyInput{key: core.KeyTheme}
	case key.Matches(msg, k.Beam):
		return keyInput{key: core.KeyMultibeam}
	case key.Matches(msg, k.Acknowledge):
		return keyInput{control: sim.ControlCheckbox}
	case key.Matches(msg, k.Continue):
		return keyInput{control: sim.ControlContinue}
	case key.Matches(msg, k.Ignore):
		return keyInput{control: sim.ControlIgnore}
	case key.Matches(msg, k.Toggle):
		return keyInput{control: sim.ControlToggle}
	}
	return keyInput{}
}
