package duel

import (
	"testing"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func attack(name string, damage, heat int) Card {
	return Card{Name: name, Type: rules.CardAttack, Damage: Amount(damage), HeatChange: Amount(heat)}
}

func defense(name string, heat int) Card {
	return Card{Name: name, Type: rules.CardDefense, HeatChange: Amount(heat)}
}

func repeat(card Card, n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = card.clone()
	}
	return cards
}

// newTestDuel builds a duel driven by a manual scheduler.
func newTestDuel(t *testing.T, mode rules.Mode, deckP1, deckP2 []Card, opts ...Option) (*Duel, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	base := []Option{
		WithID("test-duel"),
		WithLogger(zaptest.NewLogger(t)),
		WithScheduler(sched),
	}
	d, err := New(deckP1, deckP2, mode, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, sched
}

// setHand replaces side's hand; tests use it to stage exact positions.
func setHand(d *Duel, side rules.Side, cards ...Card) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.player(side).hand = cloneCards(cards)
}

func setHeat(d *Duel, side rules.Side, heat int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.player(side).heat = heat
}

func setHP(d *Duel, side rules.Side, hp int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.player(side).hp = hp
}

func setSkipped(d *Duel, side rules.Side, skipped bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.player(side).skipped = skipped
}

func cardNames(cards []Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}
