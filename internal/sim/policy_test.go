package sim

import "testing"

func TestPolicyDisarmed(t *testing.T) {
	p := NewPolicy(60)
	if d := p.Evaluate(200, false); d != DecisionNone {
		t.Errorf("disarmed Evaluate() = %v, want none", d)
	}
}

func TestPolicyIgnoreEpisode(t *testing.T) {
	p := NewPolicy(60)
	p.Arm()

	steps := []struct {
		name   string
		speed  int
		popup  bool
		ignore bool
		want   Decision
	}{
		{"within limit", 60, false, false, DecisionNone},
		{"exceed shows", 65, false, false, DecisionShow},
		{"already visible", 65, true, false, DecisionNone},
		{"ignored stays hidden", 65, false, true, DecisionNone},
		{"still ignored", 70, false, false, DecisionNone},
		{"back to limit", 60, false, false, DecisionNone},
		{"exceed again shows", 65, false, false, DecisionShow},
		{"drop hides", 50, true, false, DecisionHide},
	}

	for _, s := range steps {
		if s.ignore {
			p.Ignore()
		}
		if got := p.Evaluate(s.speed, s.popup); got != s.want {
			t.Fatalf("%s: Evaluate(%d, %v) = %v, want %v", s.name, s.speed, s.popup, got, s.want)
		}
	}
	if !p.State().Armed {
		t.Error("ignore disarmed the policy")
	}
}
