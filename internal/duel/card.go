package duel

import (
	"fmt"
	"strings"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
)

// Card is an immutable card value. Damage, HeatChange and Heal are nil when
// the card does not carry that effect.
type Card struct {
	Name       string
	Type       rules.CardType
	Damage     *int
	HeatChange *int
	Heal       *int
}

// Amount returns a pointer to n for building optional card fields.
func Amount(n int) *int {
	return &n
}

// IsAttack reports whether the card is attack-typed.
func (c Card) IsAttack() bool {
	return c.Type == rules.CardAttack
}

// clone copies the optional fields so the card shares no memory with the
// caller's value.
func (c Card) clone() Card {
	out := c
	out.Damage = cloneAmount(c.Damage)
	out.HeatChange = cloneAmount(c.HeatChange)
	out.Heal = cloneAmount(c.Heal)
	return out
}

func cloneAmount(v *int) *int {
	if v == nil {
		return nil
	}
	return Amount(*v)
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

func (c Card) String() string {
	parts := []string{c.Type.String()}
	if c.Damage != nil {
		parts = append(parts, fmt.Sprintf("damage=%d", *c.Damage))
	}
	if c.HeatChange != nil {
		parts = append(parts, fmt.Sprintf("heat=%+d", *c.HeatChange))
	}
	if c.Heal != nil {
		parts = append(parts, fmt.Sprintf("heal=%d", *c.Heal))
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, " "))
}

// validate checks the card data contract: a name, non-negative damage and heal.
func (c Card) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: card name is required", ErrInvalidDeck)
	}
	if c.Type != rules.CardAttack && c.Type != rules.CardDefense {
		return fmt.Errorf("%w: card %q has unknown type %s", ErrInvalidDeck, c.Name, c.Type)
	}
	if c.Damage != nil && *c.Damage < 0 {
		return fmt.Errorf("%w: card %q has negative damage %d", ErrInvalidDeck, c.Name, *c.Damage)
	}
	if c.Heal != nil && *c.Heal < 0 {
		return fmt.Errorf("%w: card %q has negative heal %d", ErrInvalidDeck, c.Name, *c.Heal)
	}
	return nil
}
