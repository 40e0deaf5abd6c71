package duel

import (
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

// ComputeDamage returns floor(max(0, base * A/100 * (1 - D/100))) where A is
// the striker's heat and D the reference heat for the defense multiplier.
// The product is taken in integers so the floor is exact.
func ComputeDamage(base, attackHeat, referenceHeat int) int {
	raw := base * attackHeat * (100 - referenceHeat)
	if raw <= 0 {
		return 0
	}
	return raw / 10000
}

// applyCardEffectsLocked applies card for side in the fixed order heat
// change, damage, heal. A normal attack tempers itself with the striker's
// own heat; an insert attack is tempered by the opponent's heat instead.
func (d *Duel) applyCardEffectsLocked(side rules.Side, card Card, insertAttack bool) {
	self := d.player(side)
	opponentSide := side.Opponent()
	opponent := d.player(opponentSide)
	opponentHeat := opponent.heat

	if card.HeatChange != nil {
		before := self.heat
		self.heat += *card.HeatChange
		d.logf("%s heat %d -> %d", side, before, self.heat)
		d.publish(rules.Event{Type: rules.EventHeatChanged, Side: side, Card: card.Name, Amount: *card.HeatChange})
	}

	if card.Damage != nil && card.IsAttack() {
		reference := self.heat
		if insertAttack {
			reference = opponentHeat
		}
		damage := ComputeDamage(*card.Damage, self.heat, reference)
		opponent.hp -= damage
		d.logf("%s deals %d damage to %s (hp %d)", side, damage, opponentSide, opponent.hp)
		d.publish(rules.Event{Type: rules.EventDamageDealt, Side: side, Card: card.Name, Amount: damage})
		d.logger.Debug("damage dealt",
			zap.String("duel_id", d.id),
			zap.Stringer("side", side),
			zap.String("card", card.Name),
			zap.Int("base", *card.Damage),
			zap.Int("attack_heat", self.heat),
			zap.Int("reference_heat", reference),
			zap.Int("damage", damage),
			zap.Bool("insert", insertAttack),
		)
	}

	if card.Heal != nil {
		before := self.hp
		self.hp += *card.Heal
		if self.hp > StartingHP {
			self.hp = StartingHP
		}
		d.logf("%s heals %d (hp %d)", side, self.hp-before, self.hp)
		d.publish(rules.Event{Type: rules.EventHealed, Side: side, Card: card.Name, Amount: self.hp - before})
	}
}

// checkInsertTurnLocked grants defender a bonus strike with the first
// attack card in its hand when attacker's heat leads by more than
// InsertThreshold. The card stays in hand; with no attack card nothing
// happens.
func (d *Duel) checkInsertTurnLocked(attacker, defender rules.Side) error {
	heatDiff := d.player(attacker).heat - d.player(defender).heat
	if heatDiff <= InsertThreshold {
		return nil
	}

	card, ok := firstAttackCard(d.player(defender).hand)
	if !ok {
		return nil
	}

	if err := d.turns.Advance(rules.PhaseInsert); err != nil {
		return err
	}
	d.logf("%s gets an insert attack with %s", defender, card.Name)
	d.publish(rules.Event{Type: rules.EventInsertAttack, Side: defender, Card: card.Name, Amount: heatDiff})
	d.applyCardEffectsLocked(defender, card, true)
	return nil
}

func firstAttackCard(hand []Card) (Card, bool) {
	for _, card := range hand {
		if card.IsAttack() {
			return card, true
		}
	}
	return Card{}, false
}

// checkOverheatLocked resets a side whose heat went past the threshold and
// makes it skip its next turn.
func (d *Duel) checkOverheatLocked(side rules.Side) {
	p := d.player(side)
	if p.heat <= OverheatThreshold {
		return
	}
	d.logf("%s overheats (heat %d) and will skip the next turn", side, p.heat)
	d.publish(rules.Event{Type: rules.EventOverheat, Side: side, Amount: p.heat})
	d.logger.Debug("overheat",
		zap.String("duel_id", d.id),
		zap.Stringer("side", side),
		zap.Int("heat", p.heat),
	)
	p.skipped = true
	p.heat = 0
}
