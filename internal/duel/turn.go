package duel

import (
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

// StartTurn begins the active side's turn. A skipped side loses the whole
// turn: the flag is cleared and the turn passes without draws. Otherwise
// both sides draw one card, active side first, and the action phase opens.
//
// Calling StartTurn by hand while a next turn is scheduled replaces the
// scheduled start.
func (d *Duel) StartTurn() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkOpenLocked(); err != nil {
		return err
	}
	if phase := d.turns.Phase(); phase != rules.PhaseStart && phase != rules.PhaseEnd {
		return fmt.Errorf("%w: phase is %s", ErrTurnInProgress, phase)
	}
	d.cancelPendingLocked()
	return d.startTurnLocked()
}

func (d *Duel) startTurnLocked() error {
	if err := d.turns.BeginTurn(); err != nil {
		return fmt.Errorf("%w: %v", ErrTurnInProgress, err)
	}

	active := d.turns.ActiveSide()
	opponent := active.Opponent()
	p := d.player(active)

	if p.skipped {
		p.skipped = false
		d.logf("Turn %d: %s is overheated and skips the turn", d.turns.TurnNumber(), active)
		d.publish(rules.Event{Type: rules.EventTurnSkipped, Side: active})
		d.logger.Debug("turn skipped",
			zap.String("duel_id", d.id),
			zap.Stringer("side", active),
			zap.Int("turn", d.turns.TurnNumber()),
		)
		return d.endTurnLocked()
	}

	d.drawLocked(active)
	d.drawLocked(opponent)

	if err := d.turns.Advance(rules.PhaseAction); err != nil {
		return err
	}
	d.logf("Turn %d: %s's turn begins", d.turns.TurnNumber(), active)
	d.publish(rules.Event{Type: rules.EventTurnStarted, Side: active})
	d.logger.Debug("turn started",
		zap.String("duel_id", d.id),
		zap.Stringer("side", active),
		zap.Int("turn", d.turns.TurnNumber()),
	)
	if d.mode == rules.ModeSimultaneous {
		return d.maybeResolveSimultaneousLocked()
	}
	return nil
}

// drawLocked moves the front card of side's deck to the end of its hand.
// An empty deck draws nothing.
func (d *Duel) drawLocked(side rules.Side) {
	p := d.player(side)
	if len(p.deck) == 0 {
		return
	}
	card := p.deck[0]
	p.deck = p.deck[1:]
	p.hand = append(p.hand, card)
	d.publish(rules.Event{Type: rules.EventCardDrawn, Side: side, Card: card.Name})
}

// endTurnLocked passes the turn, checks for a winner and, while the game
// continues, schedules the next turn.
func (d *Duel) endTurnLocked() error {
	ending := d.turns.ActiveSide()
	d.logf("%s's turn ends", ending)

	if _, err := d.turns.EndTurn(); err != nil {
		return err
	}
	d.publish(rules.Event{Type: rules.EventTurnEnded, Side: ending})

	over := d.evaluateGameOverLocked()
	if d.replay != nil {
		d.replay.Record(d.snapshotLocked())
	}
	if over {
		return nil
	}
	d.scheduleNextTurnLocked()
	return nil
}

func (d *Duel) scheduleNextTurnLocked() {
	if d.scheduler == nil {
		return
	}
	d.cancelPendingLocked()
	d.generation++
	gen := d.generation
	d.cancelNext = d.scheduler.Schedule(d.turnDelay, func() {
		d.runScheduledTurn(gen)
	})
}

func (d *Duel) cancelPendingLocked() {
	if d.cancelNext != nil {
		d.cancelNext()
		d.cancelNext = nil
	}
	d.generation++
}

// runScheduledTurn is the continuation fired by the scheduler.
func (d *Duel) runScheduledTurn(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation || d.closed || d.winner != nil {
		return
	}
	d.cancelNext = nil
	if err := d.startTurnLocked(); err != nil {
		d.logger.Warn("scheduled turn failed to start",
			zap.String("duel_id", d.id),
			zap.Error(err),
		)
	}
}
