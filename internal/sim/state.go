// Package sim implements the light strip simulation: the per-tick animation,
// the modal warning/help/popup state machine, held-key speed adjustment and the
// refresh-rate speed policy. It has no rendering or platform dependencies.
package sim

import "time"

// BeamMode selects how many strips are drawn.
type BeamMode int

const (
	BeamSingle BeamMode = iota
	BeamMulti
)

// String returns the display name of the beam mode.
func (b BeamMode) String() string {
	if b == BeamMulti {
		return "Multibeam"
	}
	return "Single"
}

// Speed limits in px per tick. Configured bounds are narrowed to this range.
const (
	MinSpeed = 1
	MaxSpeed = 200
)

// SimulationState is the strip animation state.
type SimulationState struct {
	StripPosition float64 // Phase of the strip in px relative to the box top
	Speed         int     // px per tick
	Beam          BeamMode
	Running       bool
}

// Phase is the top-level modal phase.
type Phase int

const (
	PhaseWarning Phase = iota // Photosensitivity warning, initial
	PhaseNormal               // Simulator running, overlays allowed
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseNormal {
		return "normal"
	}
	return "warning"
}

// ModalState is the modal UI state. Help and popup are independent overlays
// that only exist in PhaseNormal.
type ModalState struct {
	Phase        Phase
	HelpVisible  bool
	HelpOpacity  int // 0..255
	PopupVisible bool
	PopupOpacity int // 0..255

	// Acknowledged mirrors the warning checkbox. AcknowledgedAt is only
	// meaningful while Acknowledged is true and is zero otherwise.
	Acknowledged   bool
	AcknowledgedAt time.Duration
}

// InputRepeatState tracks held adjustment keys.
type InputRepeatState struct {
	UpHeld     bool
	DownHeld   bool
	FastHeld   bool
	LastAdjust time.Duration
}

// SpeedPolicyState tracks the speed-exceeded popup policy.
type SpeedPolicyState struct {
	Armed   bool // Set once the warning gate is passed
	Ignored bool // Ignore pressed during the current exceed episode
}
