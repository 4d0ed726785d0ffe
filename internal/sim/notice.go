package sim

import "fmt"

// NoticeKind identifies something that happened during a tick.
type NoticeKind int

const (
	NoticeAcknowledged NoticeKind = iota
	NoticeUnacknowledged
	NoticeGatePassed
	NoticeHelpOpened
	NoticeHelpClosed
	NoticePopupShown
	NoticePopupIgnored
	NoticePopupCleared
	NoticeStripStarted
	NoticeStripStopped
	NoticeThemeChanged
	NoticeBeamChanged
	NoticeSpeedChanged
	NoticeResized
	NoticeQuit
)

var noticeNames = [...]string{
	NoticeAcknowledged:   "acknowledged",
	NoticeUnacknowledged: "unacknowledged",
	NoticeGatePassed:     "gate passed",
	NoticeHelpOpened:     "help opened",
	NoticeHelpClosed:     "help closed",
	NoticePopupShown:     "speed popup shown",
	NoticePopupIgnored:   "speed popup ignored",
	NoticePopupCleared:   "speed popup cleared",
	NoticeStripStarted:   "strip started",
	NoticeStripStopped:   "strip stopped",
	NoticeThemeChanged:   "theme changed",
	NoticeBeamChanged:    "beam mode changed",
	NoticeSpeedChanged:   "speed changed",
	NoticeResized:        "resized",
	NoticeQuit:           "quit",
}

// String returns a log-friendly name.
func (k NoticeKind) String() string {
	if int(k) < len(noticeNames) {
		return noticeNames[k]
	}
	return fmt.Sprintf("notice(%d)", int(k))
}

// Notice is emitted by Step for the platform to log or record.
type Notice struct {
	Kind  NoticeKind
	Value string // Optional detail, e.g. the new theme or speed
}

// Stats summarises a session.
type Stats struct {
	Ticks          int
	MaxSpeed       int
	ExceedEpisodes int // Times the speed popup was shown
	Ignores        int
	GatePassed     bool
}
