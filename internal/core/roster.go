package core

import "sync"

// Roster is the ordered set of channel members, keyed by ID.
// Only the session's listen loop writes to it; readers on other goroutines take the read lock.
type Roster struct {
	mu      sync.RWMutex
	members []Member
	index   map[int64]int
}

// NewRoster constructs an empty roster.
func NewRoster() *Roster {
	return &Roster{index: make(map[int64]int)}
}

// Add appends m in join order. If m.ID is already present the existing entry is
// overwritten in place and replaced is true, so the roster never holds two entries
// with the same ID.
func (r *Roster) Add(m Member) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, exists := r.index[m.ID]; exists {
		r.members[i] = m
		return true
	}
	r.index[m.ID] = len(r.members)
	r.members = append(r.members, m)
	return false
}

// Remove deletes the member with the given ID. Returns false if absent.
func (r *Roster) Remove(id int64) (Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return Member{}, false
	}
	m := r.members[i]
	r.members = append(r.members[:i], r.members[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.members); j++ {
		r.index[r.members[j].ID] = j
	}
	return m, true
}

// Get looks up a member by ID.
func (r *Roster) Get(id int64) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return Member{}, false
	}
	return r.members[i], true
}

// Len returns the number of members.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Snapshot returns a copy of the members in join order.
func (r *Roster) Snapshot() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Reset empties the roster.
func (r *Roster) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members = nil
	r.index = make(map[int64]int)
}
