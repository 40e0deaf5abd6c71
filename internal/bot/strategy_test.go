package bot

import (
	"testing"

	"github.com/magefree/heat-duel-go/internal/duel"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWithHand(side rules.Side, heat int, hand ...duel.Card) duel.Snapshot {
	var snap duel.Snapshot
	snap.Players[side] = duel.PlayerSnapshot{Side: side, HP: duel.StartingHP, Heat: heat, Hand: hand}
	return snap
}

func TestFirstAttack(t *testing.T) {
	s := FirstAttack{}

	_, ok := s.Choose(snapshotWithHand(rules.SideP1, 0), rules.SideP1)
	assert.False(t, ok)

	idx, ok := s.Choose(snapshotWithHand(rules.SideP2, 0, guard("A", 0), strike("B", 10, 10)), rules.SideP2)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = s.Choose(snapshotWithHand(rules.SideP1, 0, guard("A", 0), guard("B", 0)), rules.SideP1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestGreedyPrefersDamageWithoutOverheating(t *testing.T) {
	s := Greedy{}
	snap := snapshotWithHand(rules.SideP1, 40,
		strike("Small", 10, 10),     // heat 50 -> 2
		strike("Big", 100, 10),      // heat 50 -> 25
		strike("Reckless", 200, 70), // heat 110, overheats
	)

	idx, ok := s.Choose(snap, rules.SideP1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestGreedyCoolsDownWhenNoSafeAttack(t *testing.T) {
	s := Greedy{}
	snap := snapshotWithHand(rules.SideP1, 90,
		strike("Hot", 50, 30),
		guard("Vent", -35),
		guard("Chill", -10),
	)

	idx, ok := s.Choose(snap, rules.SideP1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = s.Choose(snapshotWithHand(rules.SideP1, 0), rules.SideP1)
	assert.False(t, ok)
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy(LevelGreedy)
	require.NoError(t, err)
	assert.IsType(t, Greedy{}, s)

	s, err = NewStrategy("")
	require.NoError(t, err)
	assert.IsType(t, FirstAttack{}, s)

	_, err = NewStrategy("oracle")
	assert.Error(t, err)
}
