package tracker

import (
	"sync"
	"time"
)

// Tracker keeps the last-seen console timestamp per instance. It is the only
// state the monitor carries; it starts empty and is lost on restart, which
// re-announces the most recent snapshot of each instance exactly once.
//
// The poll loop is the sole writer. The mutex exists because the optional
// status server reads the tracker from the HTTP goroutine.
type Tracker struct {
	mu       sync.RWMutex
	lastSeen map[string]time.Time
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		lastSeen: make(map[string]time.Time),
	}
}

// IsNovel reports whether the timestamp differs from the last one recorded
// for the instance. Exact equality is the only suppression rule: a timestamp
// that moved backward still counts as novel.
func (t *Tracker) IsNovel(instanceID string, ts time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen, ok := t.lastSeen[instanceID]
	return !ok || !seen.Equal(ts)
}

// Record overwrites the stored timestamp for the instance.
func (t *Tracker) Record(instanceID string, ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastSeen[instanceID] = ts
}

// Seen returns the stored timestamp for the instance, if any.
func (t *Tracker) Seen(instanceID string) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ts, ok := t.lastSeen[instanceID]
	return ts, ok
}

// Snapshot returns a copy of the tracked state for the status endpoint.
func (t *Tracker) Snapshot() map[string]time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]time.Time, len(t.lastSeen))
	for id, ts := range t.lastSeen {
		out[id] = ts
	}
	return out
}

// Len returns the number of tracked instances.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.lastSeen)
}
