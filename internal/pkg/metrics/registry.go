package metrics

import (
	"sync"
	"time"
)

// Identity is the stable key for one sample: what is measured, on which
// device, and an optional sub dimension (relay index, particle size bucket,
// firmware version).
type Identity struct {
	Kind   Kind
	Device string
	Sub    string
}

// Value is the latest observation for an identity. It is stored and replaced
// as a unit; readers never see a half written entry.
type Value struct {
	Value      float64
	Name       string
	ObservedAt time.Time
}

// Registry holds the latest value per identity. Writes come from concurrent
// mqtt handler invocations, reads from concurrent scrapes; the map is the
// only synchronisation point between the two flows.
//
// Entries are never evicted. A device that stops publishing keeps its last
// value until the process restarts; prometheus applies its own staleness
// handling on scrape gaps.
type Registry struct {
	mu      sync.RWMutex
	entries map[Identity]Value
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Identity]Value),
	}
}

// Update inserts or overwrites the entry for id. Last write wins by
// completion order; messages for a single identity arrive in publish order
// so no timestamp ordering is enforced.
func (r *Registry) Update(id Identity, v Value) {
	r.mu.Lock()
	r.entries[id] = v
	r.mu.Unlock()
}

// Snapshot returns a point in time copy of all entries, safe to iterate
// while updates proceed. The lock is only held for the copy, never across a
// render.
func (r *Registry) Snapshot() map[Identity]Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[Identity]Value, len(r.entries))
	for id, v := range r.entries {
		snapshot[id] = v
	}
	return snapshot
}

// Len reports the number of tracked identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
