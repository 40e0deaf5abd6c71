package duel

import (
	"testing"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/stretchr/testify/assert"
)

func TestComputeDamage(t *testing.T) {
	tests := []struct {
		name      string
		base      int
		attack    int
		reference int
		want      int
	}{
		{"opening strike", 25, 30, 30, 5},
		{"cold striker", 25, 0, 0, 0},
		{"half heat", 100, 50, 50, 25},
		{"full heat cancels", 100, 100, 100, 0},
		{"negative heat floors at zero", 40, -10, -10, 0},
		{"reference above hundred", 100, 60, 150, 0},
		{"insert against hot attacker", 100, 20, 80, 4},
		{"fraction floored", 10, 80, 80, 1},
		{"zero base", 0, 90, 10, 0},
		{"negative reference boosts", 100, 50, -20, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDamage(tc.base, tc.attack, tc.reference)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestFirstAttackCard(t *testing.T) {
	_, ok := firstAttackCard(nil)
	assert.False(t, ok)

	_, ok = firstAttackCard([]Card{defense("A", 0), defense("B", 0)})
	assert.False(t, ok)

	card, ok := firstAttackCard([]Card{defense("A", 0), attack("B", 1, 0), attack("C", 2, 0)})
	assert.True(t, ok)
	assert.Equal(t, "B", card.Name)
}

func TestCardString(t *testing.T) {
	c := Card{Name: "Backdraft", Type: rules.CardAttack, Damage: Amount(35), HeatChange: Amount(-10), Heal: Amount(5)}
	assert.Equal(t, "Backdraft(attack damage=35 heat=-10 heal=5)", c.String())
	assert.Equal(t, "Brace(defense)", Card{Name: "Brace", Type: rules.CardDefense}.String())
}
