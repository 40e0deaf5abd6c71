package duel

import (
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

// PlayCard plays hand[index] for side in classic mode and applies it at
// once. The active side's play during the action phase opens the defense
// phase; the defender's play during the defense phase resolves the turn.
// Plays in any other slot still take effect but move no phase.
func (d *Duel) PlayCard(side rules.Side, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkOpenLocked(); err != nil {
		return err
	}
	if d.mode != rules.ModeClassic {
		return fmt.Errorf("%w: PlayCard requires classic mode, duel is %s", ErrInvalidMode, d.mode)
	}
	card, err := d.takeFromHandLocked(side, index)
	if err != nil {
		return err
	}

	d.logf("%s plays %s", side, card.Name)
	d.publish(rules.Event{Type: rules.EventCardPlayed, Side: side, Card: card.Name})
	d.applyCardEffectsLocked(side, card, false)

	active := d.turns.ActiveSide()
	switch phase := d.turns.Phase(); {
	case phase == rules.PhaseAction && side == active:
		return d.turns.Advance(rules.PhaseDefense)
	case phase == rules.PhaseDefense && side != active:
		return d.resolveTurnLocked()
	default:
		d.logger.Debug("card played outside its slot",
			zap.String("duel_id", d.id),
			zap.Stringer("side", side),
			zap.Stringer("phase", phase),
		)
		return nil
	}
}

// PlayCardSimultaneous stages hand[index] face down for side. Once both
// sides have staged a card, both are revealed and the turn resolves.
func (d *Duel) PlayCardSimultaneous(side rules.Side, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkOpenLocked(); err != nil {
		return err
	}
	if d.mode != rules.ModeSimultaneous {
		return fmt.Errorf("%w: PlayCardSimultaneous requires simultaneous mode, duel is %s", ErrInvalidMode, d.mode)
	}
	card, err := d.takeFromHandLocked(side, index)
	if err != nil {
		return err
	}

	p := d.player(side)
	if p.selectedCard != nil {
		d.logger.Debug("staged card replaced",
			zap.String("duel_id", d.id),
			zap.Stringer("side", side),
			zap.String("discarded", p.selectedCard.Name),
		)
	}
	p.selectedCard = &card
	d.logf("%s selects a card", side)
	d.publish(rules.Event{Type: rules.EventCardSelected, Side: side})

	return d.maybeResolveSimultaneousLocked()
}

// maybeResolveSimultaneousLocked resolves once both cards are staged. Cards
// staged outside the action phase wait for the next turn to open.
func (d *Duel) maybeResolveSimultaneousLocked() error {
	if d.player(rules.SideP1).selectedCard == nil || d.player(rules.SideP2).selectedCard == nil {
		return nil
	}
	if d.turns.Phase() != rules.PhaseAction {
		return nil
	}
	return d.resolveSimultaneousLocked()
}

// takeFromHandLocked validates index and removes that card from side's hand.
func (d *Duel) takeFromHandLocked(side rules.Side, index int) (Card, error) {
	if !side.Valid() {
		return Card{}, fmt.Errorf("%w: unknown side %s", ErrInvalidCard, side)
	}
	p := d.player(side)
	if index < 0 || index >= len(p.hand) {
		return Card{}, fmt.Errorf("%w: %s has no card at index %d (hand size %d)", ErrInvalidCard, side, index, len(p.hand))
	}
	card := p.hand[index]
	p.hand = append(p.hand[:index:index], p.hand[index+1:]...)
	return card, nil
}

// resolveTurnLocked finishes a classic turn once the defender has played.
func (d *Duel) resolveTurnLocked() error {
	active := d.turns.ActiveSide()
	if err := d.checkInsertTurnLocked(active, active.Opponent()); err != nil {
		return err
	}
	d.checkOverheatLocked(rules.SideP1)
	d.checkOverheatLocked(rules.SideP2)
	return d.endTurnLocked()
}

// resolveSimultaneousLocked reveals both staged cards, applies them p1
// first and grants an insert check only to an attack met by a defense.
func (d *Duel) resolveSimultaneousLocked() error {
	c1 := *d.player(rules.SideP1).selectedCard
	c2 := *d.player(rules.SideP2).selectedCard

	d.logf("Revealed: p1 plays %s, p2 plays %s", c1.Name, c2.Name)
	d.publish(rules.Event{
		Type: rules.EventCardsRevealed,
		Metadata: map[string]string{
			rules.SideP1.String(): c1.Name,
			rules.SideP2.String(): c2.Name,
		},
	})

	d.applyCardEffectsLocked(rules.SideP1, c1, false)
	d.applyCardEffectsLocked(rules.SideP2, c2, false)

	switch {
	case c1.IsAttack() && !c2.IsAttack():
		if err := d.checkInsertTurnLocked(rules.SideP1, rules.SideP2); err != nil {
			return err
		}
	case !c1.IsAttack() && c2.IsAttack():
		if err := d.checkInsertTurnLocked(rules.SideP2, rules.SideP1); err != nil {
			return err
		}
	}

	d.player(rules.SideP1).selectedCard = nil
	d.player(rules.SideP2).selectedCard = nil

	d.checkOverheatLocked(rules.SideP1)
	d.checkOverheatLocked(rules.SideP2)
	return d.endTurnLocked()
}
