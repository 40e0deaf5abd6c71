package rules

import "sync"

// SideStats is a running tally of what one side did during a duel.
type SideStats struct {
	CardsPlayed   int
	DamageDealt   int
	Healed        int
	InsertAttacks int
	Overheats     int
	TurnsSkipped  int
}

// StatsWatcher tallies duel events per side. Attach it to a bus before the
// duel starts; it is safe to read while the duel runs.
type StatsWatcher struct {
	mu    sync.RWMutex
	stats [2]SideStats
}

// NewStatsWatcher creates an empty watcher.
func NewStatsWatcher() *StatsWatcher {
	return &StatsWatcher{}
}

// Attach subscribes the watcher to bus and returns the subscription handle.
func (w *StatsWatcher) Attach(bus *EventBus) int {
	return bus.Subscribe(w.Watch)
}

// Watch records a single event.
func (w *StatsWatcher) Watch(event Event) {
	if !event.Side.Valid() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	s := &w.stats[event.Side]
	switch event.Type {
	case EventCardPlayed, EventCardSelected:
		s.CardsPlayed++
	case EventDamageDealt:
		s.DamageDealt += event.Amount
	case EventHealed:
		s.Healed += event.Amount
	case EventInsertAttack:
		s.InsertAttacks++
	case EventOverheat:
		s.Overheats++
	case EventTurnSkipped:
		s.TurnsSkipped++
	}
}

// Stats returns the tally for side.
func (w *StatsWatcher) Stats(side Side) SideStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats[side]
}

// Reset clears all tallies.
func (w *StatsWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats = [2]SideStats{}
}
