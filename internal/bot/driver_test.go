package bot

import (
	"context"
	"testing"
	"time"

	"github.com/magefree/heat-duel-go/internal/duel"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func strike(name string, damage, heat int) duel.Card {
	return duel.Card{Name: name, Type: rules.CardAttack, Damage: duel.Amount(damage), HeatChange: duel.Amount(heat)}
}

func guard(name string, heat int) duel.Card {
	return duel.Card{Name: name, Type: rules.CardDefense, HeatChange: duel.Amount(heat)}
}

// lethalDecks gives p1 a deck that lands 25 damage every other card and p2
// a deck that never hurts.
func lethalDecks() ([]duel.Card, []duel.Card) {
	var p1, p2 []duel.Card
	for i := 0; i < 7; i++ {
		if i%2 == 0 {
			p1 = append(p1, strike("Pulse", 100, 50))
		} else {
			p1 = append(p1, guard("Vent", -50))
		}
		p2 = append(p2, guard("Brace", 0))
	}
	return p1, p2
}

func TestDriverPlaysClassicDuelToTheEnd(t *testing.T) {
	p1, p2 := lethalDecks()
	d, err := duel.New(p1, p2, rules.ModeClassic, duel.WithScheduler(nil), duel.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer d.Close()

	result, err := NewDriver(d, WithSelfStart(), WithDriverLogger(zaptest.NewLogger(t))).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Finished)
	assert.Equal(t, rules.SideP1, result.Winner)
	assert.Equal(t, 7, result.Turns)
	assert.Equal(t, "Game over: p1 wins", d.Log()[len(d.Log())-1])
}

func TestDriverPlaysSimultaneousDuel(t *testing.T) {
	p1, p2 := lethalDecks()
	d, err := duel.New(p1, p2, rules.ModeSimultaneous, duel.WithScheduler(nil))
	require.NoError(t, err)
	defer d.Close()

	result, err := NewDriver(d, WithSelfStart()).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Finished)
	assert.Equal(t, rules.SideP1, result.Winner)
	assert.Equal(t, 7, result.Turns)
}

func TestDriverFollowsTimerScheduler(t *testing.T) {
	p1, p2 := lethalDecks()
	d, err := duel.New(p1, p2, rules.ModeClassic, duel.WithTurnDelay(time.Millisecond))
	require.NoError(t, err)
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := NewDriver(d).Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Finished)
	assert.Equal(t, rules.SideP1, result.Winner)
}

func TestDriverReportsNoMove(t *testing.T) {
	d, err := duel.New(nil, nil, rules.ModeClassic, duel.WithScheduler(nil))
	require.NoError(t, err)
	defer d.Close()

	result, err := NewDriver(d, WithSelfStart()).Run(context.Background())
	require.ErrorIs(t, err, ErrNoMove)
	assert.False(t, result.Finished)
	assert.Equal(t, rules.PhaseAction, d.Phase())
}

func TestDriverStopsAtTurnLimit(t *testing.T) {
	deck := make([]duel.Card, 10)
	for i := range deck {
		deck[i] = guard("Brace", 0)
	}
	d, err := duel.New(deck, deck, rules.ModeClassic, duel.WithScheduler(nil))
	require.NoError(t, err)
	defer d.Close()

	result, err := NewDriver(d, WithSelfStart(), WithMaxTurns(3)).Run(context.Background())
	require.ErrorIs(t, err, ErrTurnLimit)
	assert.Equal(t, 3, result.Turns)
}

func TestDriverHonoursContext(t *testing.T) {
	deck := []duel.Card{guard("Brace", 0), guard("Brace", 0)}
	sched := duel.NewManualScheduler()
	d, err := duel.New(deck, deck, rules.ModeClassic, duel.WithScheduler(sched))
	require.NoError(t, err)
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// The manual scheduler never ticks, so the driver idles after turn one.
	_, err = NewDriver(d).Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, rules.PhaseEnd, d.Phase())
	assert.Equal(t, 1, sched.Pending())
}

func TestDriverStopsWhenDuelCloses(t *testing.T) {
	deck := []duel.Card{guard("Brace", 0), guard("Brace", 0)}
	d, err := duel.New(deck, deck, rules.ModeClassic, duel.WithScheduler(duel.NewManualScheduler()))
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		d.Close()
	}()

	_, err = NewDriver(d).Run(context.Background())
	require.ErrorIs(t, err, duel.ErrDuelClosed)
}
