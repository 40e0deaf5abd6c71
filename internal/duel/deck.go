package duel

import (
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"github.com/spf13/viper"
)

// CardDefinition is the external record format of a card in a deck file.
// Copies expands the entry in place; zero means one copy.
type CardDefinition struct {
	Name       string `mapstructure:"name" json:"name"`
	Type       string `mapstructure:"type" json:"type"`
	Damage     *int   `mapstructure:"damage" json:"damage,omitempty"`
	HeatChange *int   `mapstructure:"heatChange" json:"heatChange,omitempty"`
	Heal       *int   `mapstructure:"heal" json:"heal,omitempty"`
	Copies     int    `mapstructure:"copies" json:"copies,omitempty"`
}

// DeckDefinition is the top-level shape of a deck file.
type DeckDefinition struct {
	Name  string           `mapstructure:"name" json:"name"`
	Cards []CardDefinition `mapstructure:"cards" json:"cards"`
}

// LoadDeck reads a YAML or JSON deck file (format chosen by extension) and
// returns its cards in draw order.
func LoadDeck(path string) ([]Card, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}

	var def DeckDefinition
	if err := v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", path, err)
	}

	cards, err := BuildDeck(def.Cards)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return cards, nil
}

// BuildDeck converts definitions into cards, expanding copies and keeping
// the listed order.
func BuildDeck(defs []CardDefinition) ([]Card, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: deck has no cards", ErrInvalidDeck)
	}

	cards := make([]Card, 0, len(defs))
	for i, def := range defs {
		cardType, err := rules.ParseCardType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidDeck, i, err)
		}
		if def.Copies < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative copies %d", ErrInvalidDeck, i, def.Copies)
		}

		card := Card{
			Name:       def.Name,
			Type:       cardType,
			Damage:     cloneAmount(def.Damage),
			HeatChange: cloneAmount(def.HeatChange),
			Heal:       cloneAmount(def.Heal),
		}
		if err := card.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		copies := def.Copies
		if copies == 0 {
			copies = 1
		}
		for j := 0; j < copies; j++ {
			cards = append(cards, card.clone())
		}
	}
	return cards, nil
}

// StarterDeck returns the built-in deck used when no deck file is configured.
func StarterDeck() []Card {
	return []Card{
		{Name: "Ember Strike", Type: rules.CardAttack, Damage: Amount(25), HeatChange: Amount(30)},
		{Name: "Cooling Guard", Type: rules.CardDefense, HeatChange: Amount(-20)},
		{Name: "Flare", Type: rules.CardAttack, Damage: Amount(40), HeatChange: Amount(45)},
		{Name: "Mend", Type: rules.CardDefense, Heal: Amount(15)},
		{Name: "Searing Jab", Type: rules.CardAttack, Damage: Amount(15), HeatChange: Amount(20)},
		{Name: "Vent", Type: rules.CardDefense, HeatChange: Amount(-35)},
		{Name: "Overdrive", Type: rules.CardAttack, Damage: Amount(60), HeatChange: Amount(55)},
		{Name: "Second Wind", Type: rules.CardDefense, Heal: Amount(10), HeatChange: Amount(-10)},
		{Name: "Ember Strike", Type: rules.CardAttack, Damage: Amount(25), HeatChange: Amount(30)},
		{Name: "Cooling Guard", Type: rules.CardDefense, HeatChange: Amount(-20)},
		{Name: "Backdraft", Type: rules.CardAttack, Damage: Amount(35), HeatChange: Amount(10), Heal: Amount(5)},
		{Name: "Mend", Type: rules.CardDefense, Heal: Amount(15)},
	}
}
