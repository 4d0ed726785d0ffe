package sim

// Decision is the popup change requested by the speed policy for one tick.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionShow
	DecisionHide
)

// Policy decides when the speed-exceeded popup appears. An ignore only holds
// for the current exceed episode: dropping back to the recommended speed
// re-enables the popup for the next one.
type Policy struct {
	state       SpeedPolicyState
	recommended int
}

// NewPolicy creates a disarmed policy for the given recommended maximum.
func NewPolicy(recommended int) *Policy {
	return &Policy{recommended: recommended}
}

// State returns a copy of the policy state.
func (p *Policy) State() SpeedPolicyState {
	return p.state
}

// Recommended returns the recommended maximum speed in px/frame.
func (p *Policy) Recommended() int {
	return p.recommended
}

// Arm enables evaluation. Called when the warning gate is passed.
func (p *Policy) Arm() {
	p.state.Armed = true
}

// Ignore suppresses the popup until the speed returns to the recommended range.
func (p *Policy) Ignore() {
	p.state.Ignored = true
}

// Evaluate compares the speed against the recommended maximum.
func (p *Policy) Evaluate(speed int, popupVisible bool) Decision {
	if !p.state.Armed {
		return DecisionNone
	}
	if speed <= p.recommended {
		p.state.Ignored = false
		if popupVisible {
			return DecisionHide
		}
		return DecisionNone
	}
	if !p.state.Ignored && !popupVisible {
		return DecisionShow
	}
	return DecisionNone
}
