package sim

import "time"

// Action is a class of input the modal state machine gates.
type Action int

const (
	ActionQuit        Action = iota // Quit event or Escape
	ActionAcknowledge               // Warning checkbox
	ActionContinue                  // Warning continue button
	ActionIgnore                    // Popup ignore button
	ActionToggleStrip               // Start/Stop button
	ActionHelp                      // H key
	ActionTheme                     // T key
	ActionBeam                      // M key
	ActionHoldKey                   // Up/Down/Fast key-down edges
	ActionAdjust                    // Per-tick speed application
	ActionResize                    // Window resize request
)

// Actions lists every gated action, for exhaustive checks.
var Actions = []Action{
	ActionQuit, ActionAcknowledge, ActionContinue, ActionIgnore, ActionToggleStrip,
	ActionHelp, ActionTheme, ActionBeam, ActionHoldKey, ActionAdjust, ActionResize,
}

// Allows reports whether an action is accepted in this modal state.
func (s ModalState) Allows(a Action) bool {
	normal := s.Phase == PhaseNormal
	switch a {
	case ActionQuit:
		return true
	case ActionAcknowledge:
		return !normal
	case ActionContinue:
		return !normal && !s.PopupVisible
	case ActionIgnore:
		return normal && s.PopupVisible
	case ActionToggleStrip:
		return normal && !s.HelpVisible && !s.PopupVisible
	case ActionHelp, ActionTheme, ActionBeam, ActionHoldKey:
		return normal
	case ActionAdjust:
		return normal && !s.HelpVisible
	case ActionResize:
		return normal && !s.PopupVisible
	default:
		return false
	}
}

// Modal is the warning/help/popup state machine.
type Modal struct {
	state    ModalState
	ackDelay time.Duration
}

// NewModal creates a state machine in the Warning phase.
func NewModal(ackDelay time.Duration) *Modal {
	return &Modal{
		state:    ModalState{Phase: PhaseWarning},
		ackDelay: ackDelay,
	}
}

// State returns a copy of the modal state.
func (m *Modal) State() ModalState {
	return m.state
}

// ToggleAcknowledge flips the warning checkbox. Checking stamps the time and
// restarts the countdown; unchecking clears the stamp.
func (m *Modal) ToggleAcknowledge(now time.Duration) bool {
	if !m.state.Allows(ActionAcknowledge) {
		return false
	}
	m.state.Acknowledged = !m.state.Acknowledged
	if m.state.Acknowledged {
		m.state.AcknowledgedAt = now
	} else {
		m.state.AcknowledgedAt = 0
	}
	return true
}

// Elapsed returns how long the warning has been acknowledged.
func (m *Modal) Elapsed(now time.Duration) time.Duration {
	if !m.state.Acknowledged {
		return 0
	}
	return now - m.state.AcknowledgedAt
}

// CanContinue reports whether the continue control is active.
func (m *Modal) CanContinue(now time.Duration) bool {
	return m.state.Phase == PhaseWarning &&
		m.state.Acknowledged &&
		m.Elapsed(now) >= m.ackDelay
}

// Remaining returns the whole seconds left on the countdown, as displayed on
// the continue button. Zero once continuing is possible or when unacknowledged.
func (m *Modal) Remaining(now time.Duration) int {
	if !m.state.Acknowledged || m.CanContinue(now) {
		return 0
	}
	left := m.ackDelay - m.Elapsed(now)
	return int((left + time.Second - 1) / time.Second)
}

// Continue leaves the Warning phase if allowed. Returns true on transition.
func (m *Modal) Continue(now time.Duration) bool {
	if !m.state.Allows(ActionContinue) || !m.CanContinue(now) {
		return false
	}
	m.state.Phase = PhaseNormal
	return true
}

// ToggleHelp flips the help overlay. Returns the new visibility and whether
// the state changed.
func (m *Modal) ToggleHelp() (visible, changed bool) {
	if !m.state.Allows(ActionHelp) {
		return m.state.HelpVisible, false
	}
	m.state.HelpVisible = !m.state.HelpVisible
	return m.state.HelpVisible, true
}

// SetPopup shows or hides the speed popup. Returns true if visibility changed.
func (m *Modal) SetPopup(visible bool) bool {
	if m.state.PopupVisible == visible {
		return false
	}
	m.state.PopupVisible = visible
	return true
}

// Fade moves both overlay opacities one step toward their targets.
func (m *Modal) Fade(step int) {
	m.state.HelpOpacity = FadeToward(m.state.HelpOpacity, m.state.HelpVisible, step)
	m.state.PopupOpacity = FadeToward(m.state.PopupOpacity, m.state.PopupVisible, step)
}
