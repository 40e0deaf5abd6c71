package duel

import (
	"testing"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsIndependent(t *testing.T) {
	d, _ := newTestDuel(t, rules.ModeSimultaneous, repeat(attack("Jab", 10, 10), 2), repeat(defense("Brace", 0), 2))
	require.NoError(t, d.StartTurn())
	require.NoError(t, d.PlayCardSimultaneous(rules.SideP1, 0))

	snap := d.Snapshot()
	require.NotNil(t, snap.Player(rules.SideP1).SelectedCard)

	*snap.Players[rules.SideP1].SelectedCard.Damage = 500
	snap.Players[rules.SideP2].Hand[0].Name = "Changed"
	snap.Log[0] = "rewritten"

	fresh := d.Snapshot()
	assert.Equal(t, 10, *fresh.Player(rules.SideP1).SelectedCard.Damage)
	assert.Equal(t, "Brace", fresh.Player(rules.SideP2).Hand[0].Name)
	assert.Equal(t, "Turn 1: p1's turn begins", fresh.Log[0])
	assert.False(t, fresh.Over())
}

func TestChecksumMatchesForIdenticalPlay(t *testing.T) {
	run := func() Snapshot {
		d, sched := newTestDuel(t, rules.ModeClassic, StarterDeck(), StarterDeck())
		require.NoError(t, d.StartTurn())
		require.NoError(t, d.PlayCard(rules.SideP1, 0))
		require.NoError(t, d.PlayCard(rules.SideP2, 0))
		sched.Tick()
		return d.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.Len(t, a.Checksum(), 64)

	b.Players[rules.SideP1].HP--
	assert.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestChecksumCoversWinner(t *testing.T) {
	d, _ := newTestDuel(t, rules.ModeClassic, nil, nil)
	snap := d.Snapshot()
	before := snap.Checksum()

	w := rules.SideP2
	snap.Winner = &w
	assert.NotEqual(t, before, snap.Checksum())
	assert.True(t, snap.Over())
}

func TestReplayRecordsEndOfTurn(t *testing.T) {
	replay := NewReplay()
	d, sched := newTestDuel(t, rules.ModeClassic, repeat(attack("Jab", 10, 10), 3), repeat(defense("Brace", 0), 3),
		WithReplay(replay),
	)

	require.NoError(t, d.StartTurn())
	require.NoError(t, d.PlayCard(rules.SideP1, 0))
	require.NoError(t, d.PlayCard(rules.SideP2, 0))
	require.Equal(t, 1, sched.Tick())
	require.NoError(t, d.PlayCard(rules.SideP2, 0))
	require.NoError(t, d.PlayCard(rules.SideP1, 0))

	require.Equal(t, 2, replay.Size())

	first, ok := replay.Next()
	require.True(t, ok)
	assert.Equal(t, 2, first.TurnNumber)
	assert.Equal(t, rules.SideP2, first.Turn)
	assert.Equal(t, rules.PhaseEnd, first.Phase)

	second, ok := replay.Next()
	require.True(t, ok)
	assert.Equal(t, 3, second.TurnNumber)

	_, ok = replay.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, replay.Cursor())

	prev, ok := replay.Previous()
	require.True(t, ok)
	assert.Equal(t, 3, prev.TurnNumber)
}

func TestReplayNavigation(t *testing.T) {
	r := NewReplay()
	_, ok := r.Skip(3)
	assert.False(t, ok)
	_, ok = r.Previous()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		r.Record(Snapshot{TurnNumber: i})
	}

	s, ok := r.Skip(10)
	require.True(t, ok)
	assert.Equal(t, 5, s.TurnNumber)
	assert.Equal(t, 4, r.Cursor())

	s, ok = r.Skip(-2)
	require.True(t, ok)
	assert.Equal(t, 3, s.TurnNumber)

	s, ok = r.Skip(-10)
	require.True(t, ok)
	assert.Equal(t, 1, s.TurnNumber)

	r.Start()
	assert.Equal(t, 0, r.Cursor())

	s, ok = r.At(2)
	require.True(t, ok)
	assert.Equal(t, 3, s.TurnNumber)
	_, ok = r.At(5)
	assert.False(t, ok)
}
