package tui

import (
	"sort"
	"time"

	"github.com/vovakirdan/stripsim/internal/core"
)

// holdTracker synthesizes key releases. Terminals only report key presses
// (repeated while held), so a key counts as released once no repeat has
// arrived for the release delay.
type holdTracker struct {
	after time.Duration
	last  map[core.Key]time.Duration
}

func newHoldTracker(after time.Duration) *holdTracker {
	return &holdTracker{after: after, last: make(map[core.Key]time.Duration)}
}

// press records a press or repeat. Returns true for the first press, which
// is the only one forwarded as a key-down edge.
func (h *holdTracker) press(k core.Key, now time.Duration) bool {
	_, held := h.last[k]
	h.last[k] = now
	return !held
}

// held reports whether k is currently considered down.
func (h *holdTracker) held(k core.Key) bool {
	_, ok := h.last[k]
	return ok
}

// release forgets k immediately. Returns true if it was held.
func (h *holdTracker) release(k core.Key) bool {
	if _, ok := h.last[k]; !ok {
		return false
	}
	delete(h.last, k)
	return true
}

// expire releases every key whose last repeat is older than the delay.
func (h *holdTracker) expire(now time.Duration) []core.Key {
	var keys []core.Key
	for k, t := range h.last {
		if now-t > h.after {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		delete(h.last, k)
	}
	return keys
}
