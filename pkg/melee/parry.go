package melee

import "sync"

const (
	DefaultParriesPerWindow = 2
	DefaultParryWindowTicks = 60
)

type parryEntry struct {
	count   int
	resetAt uint64
}

// ParryTracker limits how many blows a defender can parry within a window of
// ticks. Safe for concurrent use.
type ParryTracker struct {
	mu      sync.Mutex
	limit   int
	window  uint64
	now     uint64
	entries map[uint64]*parryEntry
}

// NewParryTracker allows limit parries per window ticks. Non-positive values
// take the defaults.
func NewParryTracker(limit int, window uint64) *ParryTracker {
	if limit <= 0 {
		limit = DefaultParriesPerWindow
	}
	if window == 0 {
		window = DefaultParryWindowTicks
	}
	return &ParryTracker{limit: limit, window: window, entries: make(map[uint64]*parryEntry)}
}

// Advance moves the tracker's clock to tick and drops expired windows.
func (t *ParryTracker) Advance(tick uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = tick
	for id, e := range t.entries {
		if tick >= e.resetAt {
			delete(t.entries, id)
		}
	}
}

// CanParry reports whether id has a parry left in its current window.
func (t *ParryTracker) CanParry(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok || t.now >= e.resetAt {
		return true
	}
	return e.count < t.limit
}

// Register uses up one of id's parries. The first parry of a window opens it.
func (t *ParryTracker) Register(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok || t.now >= e.resetAt {
		t.entries[id] = &parryEntry{count: 1, resetAt: t.now + t.window}
		return
	}
	e.count++
}
