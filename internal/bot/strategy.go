package bot

import (
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
)

// Strategy decides which card a seat plays.
type Strategy interface {
	// Choose returns the hand index to play for side, or false when the
	// hand offers nothing to play.
	Choose(snap duel.Snapshot, side rules.Side) (int, bool)
}

// Level names a built-in strategy.
type Level string

const (
	LevelFirstAttack Level = "first-attack"
	LevelGreedy      Level = "greedy"
)

// NewStrategy creates a built-in strategy by name.
func NewStrategy(level Level) (Strategy, error) {
	switch level {
	case LevelFirstAttack, "":
		return FirstAttack{}, nil
	case LevelGreedy:
		return Greedy{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}

// FirstAttack plays the first attack card in hand, or the first card when
// the hand holds no attack.
type FirstAttack struct{}

func (FirstAttack) Choose(snap duel.Snapshot, side rules.Side) (int, bool) {
	hand := snap.Player(side).Hand
	if len(hand) == 0 {
		return 0, false
	}
	for i, card := range hand {
		if card.IsAttack() {
			return i, true
		}
	}
	return 0, true
}

// Greedy plays the attack with the highest immediate damage that does not
// overheat its own side. Without such an attack it plays the card that
// leaves its heat lowest.
type Greedy struct{}

func (Greedy) Choose(snap duel.Snapshot, side rules.Side) (int, bool) {
	self := snap.Player(side)
	if len(self.Hand) == 0 {
		return 0, false
	}

	best, bestDamage := -1, -1
	for i, card := range self.Hand {
		if !card.IsAttack() || card.Damage == nil {
			continue
		}
		heat := heatAfter(self.Heat, card)
		if heat > duel.OverheatThreshold {
			continue
		}
		if dmg := duel.ComputeDamage(*card.Damage, heat, heat); dmg > bestDamage {
			best, bestDamage = i, dmg
		}
	}
	if best >= 0 {
		return best, true
	}

	coolest, coolestHeat := 0, heatAfter(self.Heat, self.Hand[0])
	for i, card := range self.Hand[1:] {
		if heat := heatAfter(self.Heat, card); heat < coolestHeat {
			coolest, coolestHeat = i+1, heat
		}
	}
	return coolest, true
}

func heatAfter(heat int, card duel.Card) int {
	if card.HeatChange == nil {
		return heat
	}
	return heat + *card.HeatChange
}
