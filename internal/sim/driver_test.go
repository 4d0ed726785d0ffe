package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/core"
)

type scriptSource struct {
	batches [][]core.Event
	polls   int
}

func (s *scriptSource) Poll() []core.Event {
	defer func() { s.polls++ }()
	if s.polls >= len(s.batches) {
		return nil
	}
	return s.batches[s.polls]
}

type recordRenderer struct {
	frames []Snapshot
	err    error
}

func (r *recordRenderer) Render(snap Snapshot) error {
	r.frames = append(r.frames, snap)
	return r.err
}

func TestDriverTick(t *testing.T) {
	clk := clock.NewManual(0)
	src := &scriptSource{batches: [][]core.Event{
		{click(newTestSim(), ControlCheckbox)},
		nil,
		{core.Quit()},
	}}
	rr := &recordRenderer{}
	d := NewDriver(newTestSim(), clk, src, rr, 60)

	var notices []Notice
	d.OnNotice(func(n []Notice) { notices = append(notices, n...) })

	for i := 0; i < 2; i++ {
		quit, err := d.Tick()
		if quit || err != nil {
			t.Fatalf("tick %d: quit=%v err=%v", i, quit, err)
		}
		clk.Advance(time.Second)
	}

	quit, err := d.Tick()
	if !quit || err != nil {
		t.Fatalf("final tick: quit=%v err=%v", quit, err)
	}
	if len(rr.frames) != 2 {
		t.Errorf("rendered %d frames, want 2 (no render after quit)", len(rr.frames))
	}
	if got := rr.frames[1].Remaining; got != 14 {
		t.Errorf("Remaining on second frame = %d, want 14", got)
	}
	if len(notices) != 2 || notices[0].Kind != NoticeAcknowledged || notices[1].Kind != NoticeQuit {
		t.Errorf("notices = %v", notices)
	}
}

func TestDriverRenderError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDriver(newTestSim(), clock.NewManual(0), nil, &recordRenderer{err: boom}, 60)
	if _, err := d.Tick(); !errors.Is(err, boom) {
		t.Errorf("Tick() error = %v, want %v", err, boom)
	}
}

func TestDriverRunUntilQuit(t *testing.T) {
	src := &scriptSource{batches: [][]core.Event{nil, nil, {core.KeyPress(core.KeyEscape)}}}
	rr := &recordRenderer{}
	d := NewDriver(newTestSim(), clock.NewMonotonic(), src, rr, 240)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rr.frames) != 2 {
		t.Errorf("rendered %d frames, want 2", len(rr.frames))
	}
}

func TestDriverRunCancelled(t *testing.T) {
	d := NewDriver(newTestSim(), clock.NewMonotonic(), nil, nil, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
