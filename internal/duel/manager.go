package duel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

// Manager owns a set of independent duels keyed by ID.
type Manager struct {
	duels  map[string]*Duel
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewManager creates a new duel manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		duels:  make(map[string]*Duel),
		logger: logger,
	}
}

// Create starts tracking a new duel with a fresh ID. The manager's logger is
// used unless opts override it.
func (m *Manager) Create(deckP1, deckP2 []Card, mode rules.Mode, opts ...Option) (*Duel, error) {
	id := uuid.NewString()
	base := []Option{WithID(id), WithLogger(m.logger)}

	d, err := New(deckP1, deckP2, mode, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create duel: %w", err)
	}

	m.mu.Lock()
	m.duels[id] = d
	m.mu.Unlock()

	m.logger.Info("duel registered",
		zap.String("duel_id", id),
		zap.Stringer("mode", mode),
	)
	return d, nil
}

// Get retrieves a duel by ID.
func (m *Manager) Get(id string) (*Duel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.duels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDuelNotFound, id)
	}
	return d, nil
}

// Remove closes the duel and stops tracking it.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	d, ok := m.duels[id]
	delete(m.duels, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrDuelNotFound, id)
	}
	d.Close()
	m.logger.Info("duel removed", zap.String("duel_id", id))
	return nil
}

// List returns the tracked duel IDs in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.duels))
	for id := range m.duels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveCount returns the number of tracked duels without a winner.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	duels := make([]*Duel, 0, len(m.duels))
	for _, d := range m.duels {
		duels = append(duels, d)
	}
	m.mu.RUnlock()

	count := 0
	for _, d := range duels {
		if _, over := d.Winner(); !over {
			count++
		}
	}
	return count
}

// CloseAll closes and forgets every duel.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	duels := m.duels
	m.duels = make(map[string]*Duel)
	m.mu.Unlock()

	for _, d := range duels {
		d.Close()
	}
	m.logger.Info("all duels closed", zap.Int("count", len(duels)))
}
