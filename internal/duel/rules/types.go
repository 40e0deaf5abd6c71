package rules

import (
	"fmt"
	"strings"
)

// Side identifies one of the two seats at the table.
type Side int

const (
	SideP1 Side = iota
	SideP2
)

// Sides lists both seats in resolution order.
var Sides = [2]Side{SideP1, SideP2}

func (s Side) String() string {
	switch s {
	case SideP1:
		return "p1"
	case SideP2:
		return "p2"
	default:
		return fmt.Sprintf("SIDE_%d", int(s))
	}
}

// Opponent returns the other seat.
func (s Side) Opponent() Side {
	if s == SideP1 {
		return SideP2
	}
	return SideP1
}

// Valid reports whether s is one of the two seats.
func (s Side) Valid() bool {
	return s == SideP1 || s == SideP2
}

// ParseSide converts "p1"/"p2" into a Side.
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "p1":
		return SideP1, nil
	case "p2":
		return SideP2, nil
	default:
		return SideP1, fmt.Errorf("unknown side %q", value)
	}
}

// Mode selects how card plays are submitted and resolved. It is fixed for
// the lifetime of a duel.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSimultaneous
)

var modeNames = map[Mode]string{
	ModeClassic:      "classic",
	ModeSimultaneous: "simultaneous",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MODE_%d", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for mode, name := range modeNames {
		if name == normalized {
			return mode, nil
		}
	}
	return ModeClassic, fmt.Errorf("unknown mode %q", value)
}

// CardType distinguishes strikes from responses.
type CardType int

const (
	CardAttack CardType = iota
	CardDefense
)

func (t CardType) String() string {
	switch t {
	case CardAttack:
		return "attack"
	case CardDefense:
		return "defense"
	default:
		return fmt.Sprintf("CARD_TYPE_%d", int(t))
	}
}

// ParseCardType converts "attack"/"defense" into a CardType.
func ParseCardType(value string) (CardType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "attack":
		return CardAttack, nil
	case "defense":
		return CardDefense, nil
	default:
		return CardAttack, fmt.Errorf("unknown card type %q", value)
	}
}
