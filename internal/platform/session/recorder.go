// Package session logs simulator notices and records finished sessions.
package session

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stripsim/internal/sim"
	"github.com/vovakirdan/stripsim/internal/storage"
)

// NewLogger creates the charm logger used by every frontend.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "stripsim",
	})
	logger.SetLevel(level)
	return logger
}

// Recorder logs the notices of one simulator session and saves its statistics
// when it ends. Store may be nil, in which case nothing is persisted.
type Recorder struct {
	store       *storage.Store
	logger      *log.Logger
	frontend    string
	user        string
	refreshRate int
	started     time.Time
	saved       bool
	now         func() time.Time
}

// NewRecorder starts recording a session.
func NewRecorder(store *storage.Store, logger *log.Logger, frontend, user string, refreshRate int) *Recorder {
	if logger == nil {
		logger = NewLogger(io.Discard, log.InfoLevel)
	}
	r := &Recorder{
		store:       store,
		logger:      logger.With("frontend", frontend),
		frontend:    frontend,
		user:        user,
		refreshRate: refreshRate,
		now:         time.Now,
	}
	r.started = r.now()
	if user != "" {
		r.logger = r.logger.With("user", user)
	}
	r.logger.Info("session started", "refresh", refreshRate)
	return r
}

// Observe logs the notices of one tick.
func (r *Recorder) Observe(notices []sim.Notice) {
	for _, n := range notices {
		switch n.Kind {
		case sim.NoticeSpeedChanged:
			r.logger.Debug(n.Kind.String(), "speed", n.Value)
		case sim.NoticePopupShown:
			r.logger.Warn(n.Kind.String(), "speed", n.Value)
		case sim.NoticePopupIgnored:
			r.logger.Warn(n.Kind.String())
		default:
			if n.Value != "" {
				r.logger.Info(n.Kind.String(), "value", n.Value)
			} else {
				r.logger.Info(n.Kind.String())
			}
		}
	}
}

// Finish saves the session once. Later calls do nothing.
func (r *Recorder) Finish(stats sim.Stats) {
	if r.saved {
		return
	}
	r.saved = true

	ended := r.now()
	r.logger.Info("session ended",
		"duration", ended.Sub(r.started).Round(time.Millisecond),
		"ticks", stats.Ticks,
		"max_speed", stats.MaxSpeed,
		"exceeded", stats.ExceedEpisodes,
	)
	if r.store == nil {
		return
	}

	id, err := r.store.SaveSession(storage.Session{
		Frontend:       r.frontend,
		User:           r.user,
		RefreshRate:    r.refreshRate,
		StartedAt:      r.started,
		EndedAt:        ended,
		MaxSpeed:       stats.MaxSpeed,
		ExceedEpisodes: stats.ExceedEpisodes,
		Ignores:        stats.Ignores,
		GatePassed:     stats.GatePassed,
		Ticks:          stats.Ticks,
	})
	if err != nil {
		r.logger.Warn("could not save session", "error", err)
		return
	}
	r.logger.Debug("session saved", "id", id)
}

// CurrentUser returns the login name for local sessions.
func CurrentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
