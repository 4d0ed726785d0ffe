package sim

import "github.com/vovakirdan/stripsim/internal/core"

// SizeSync keeps a frontend's size in step with the simulator layout. Resize
// requests are dropped during the warning and while the popup is shown, so the
// latest size is re-sent every tick until a step reports NoticeResized.
type SizeSync struct {
	want    [2]int
	sent    [2]int
	applied [2]int
}

// NewSizeSync starts in sync at the size the simulator was created with.
func NewSizeSync(w, h int) *SizeSync {
	size := [2]int{w, h}
	return &SizeSync{want: size, sent: size, applied: size}
}

// Observe records the current frontend size.
func (s *SizeSync) Observe(w, h int) {
	s.want = [2]int{w, h}
}

// Pending returns the resize request for this tick, if the simulator has not
// yet accepted the current size.
func (s *SizeSync) Pending() (core.Event, bool) {
	if s.want == s.applied {
		return core.Event{}, false
	}
	s.sent = s.want
	return core.ResizeTo(s.want[0], s.want[1]), true
}

// Confirm marks the last sent size as applied when the step accepted it.
func (s *SizeSync) Confirm(notices []Notice) {
	for _, n := range notices {
		if n.Kind == NoticeResized {
			s.applied = s.sent
			return
		}
	}
}
