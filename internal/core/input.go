package core

import "fmt"

// Key is a platform-neutral key code. Frontends translate their native key
// events into these codes.
type Key int

const (
	KeyNone     Key = iota
	KeyUp           // Increase speed while held
	KeyDown         // Decrease speed while held
	KeyFast         // Fast modifier (Ctrl) for 5x speed steps
	KeyHelp         // H - toggle help overlay
	KeyTheme        // T - cycle theme
	KeyMultibeam    // M - toggle multibeam
	KeyEscape       // Esc - exit immediately
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyFast:
		return "Fast"
	case KeyHelp:
		return "Help"
	case KeyTheme:
		return "Theme"
	case KeyMultibeam:
		return "Multibeam"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// ParseKey is the inverse of Key.String, used by trace scripts.
func ParseKey(name string) (Key, error) {
	for k := KeyNone; k <= KeyEscape; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// EventKind identifies an input event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventResize
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventPointerDown:
		return "pointer"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is a single discrete input event. Only the fields relevant to Kind are
// set: Key for key events, X/Y for pointer events, W/H for resize requests.
type Event struct {
	Kind EventKind
	Key  Key
	X, Y int
	W, H int
}

// Quit creates a quit request.
func Quit() Event { return Event{Kind: EventQuit} }

// KeyPress creates a key-down edge.
func KeyPress(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyRelease creates a key-up edge.
func KeyRelease(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// PointerAt creates a pointer-down event at logical pixel (x, y).
func PointerAt(x, y int) Event { return Event{Kind: EventPointerDown, X: x, Y: y} }

// ResizeTo creates a resize request.
func ResizeTo(w, h int) Event { return Event{Kind: EventResize, W: w, H: h} }

// EventQueue collects events between ticks. The frame driver drains it once per
// tick, preserving arrival order.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns all pending events and empties the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
