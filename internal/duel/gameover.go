package duel

import (
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

// evaluateGameOverLocked checks hit points after a turn ends. p1 is checked
// first, so when both sides are down p2 is the winner.
func (d *Duel) evaluateGameOverLocked() bool {
	if d.winner != nil {
		return true
	}

	var winner rules.Side
	switch {
	case d.player(rules.SideP1).hp <= 0:
		winner = rules.SideP2
	case d.player(rules.SideP2).hp <= 0:
		winner = rules.SideP1
	default:
		return false
	}

	d.winner = &winner
	d.cancelPendingLocked()
	d.logf("Game over: %s wins", winner)
	d.publish(rules.Event{Type: rules.EventGameOver, Side: winner})
	d.logger.Info("duel finished",
		zap.String("duel_id", d.id),
		zap.Stringer("winner", winner),
		zap.Int("turns", d.turns.TurnNumber()-1),
		zap.Int("hp_p1", d.player(rules.SideP1).hp),
		zap.Int("hp_p2", d.player(rules.SideP2).hp),
	)
	d.finish()
	return true
}
