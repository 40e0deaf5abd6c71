package duel

import "sync"

// Replay is an in-memory sequence of end-of-turn snapshots with a cursor
// for stepping through them.
type Replay struct {
	mu     sync.RWMutex
	states []Snapshot
	cursor int
}

// NewReplay creates an empty replay.
func NewReplay() *Replay {
	return &Replay{states: make([]Snapshot, 0, 32)}
}

// Record appends a snapshot.
func (r *Replay) Record(snapshot Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, snapshot)
}

// Start rewinds the cursor to the first snapshot.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

// Next returns the snapshot at the cursor and advances it.
func (r *Replay) Next() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor < len(r.states) {
		s := r.states[r.cursor]
		r.cursor++
		return s, true
	}
	return Snapshot{}, false
}

// Previous moves the cursor back one and returns that snapshot.
func (r *Replay) Previous() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor > 0 {
		r.cursor--
		return r.states[r.cursor], true
	}
	return Snapshot{}, false
}

// Skip moves the cursor by count, clamped to the recorded range, and
// returns the snapshot there.
func (r *Replay) Skip(count int) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.states) == 0 {
		return Snapshot{}, false
	}
	idx := r.cursor + count
	if idx >= len(r.states) {
		idx = len(r.states) - 1
	}
	if idx < 0 {
		idx = 0
	}
	r.cursor = idx
	return r.states[idx], true
}

// Cursor returns the current cursor position.
func (r *Replay) Cursor() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cursor
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// At returns the snapshot at index.
func (r *Replay) At(index int) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.states) {
		return r.states[index], true
	}
	return Snapshot{}, false
}
