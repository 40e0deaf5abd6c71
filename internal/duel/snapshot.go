package duel

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
)

// PlayerSnapshot is a copy of one side's state.
type PlayerSnapshot struct {
	Side         rules.Side
	HP           int
	Heat         int
	Skipped      bool
	Hand         []Card
	Deck         []Card
	SelectedCard *Card
}

// Snapshot is a point-in-time copy of a duel. It shares no memory with the
// live duel.
type Snapshot struct {
	DuelID     string
	Mode       rules.Mode
	Phase      rules.Phase
	Turn       rules.Side
	TurnNumber int
	Players    [2]PlayerSnapshot
	Winner     *rules.Side
	Log        []string
}

// Player returns the snapshot of side.
func (s Snapshot) Player(side rules.Side) PlayerSnapshot {
	return s.Players[side]
}

// Over reports whether a winner had been decided.
func (s Snapshot) Over() bool {
	return s.Winner != nil
}

// Snapshot returns a copy of the current state.
func (d *Duel) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Duel) snapshotLocked() Snapshot {
	snap := Snapshot{
		DuelID:     d.id,
		Mode:       d.mode,
		Phase:      d.turns.Phase(),
		Turn:       d.turns.ActiveSide(),
		TurnNumber: d.turns.TurnNumber(),
		Log:        append([]string(nil), d.log...),
	}
	if d.winner != nil {
		w := *d.winner
		snap.Winner = &w
	}
	for _, side := range rules.Sides {
		p := d.player(side)
		ps := PlayerSnapshot{
			Side:    side,
			HP:      p.hp,
			Heat:    p.heat,
			Skipped: p.skipped,
			Hand:    cloneCards(p.hand),
			Deck:    cloneCards(p.deck),
		}
		if p.selectedCard != nil {
			c := p.selectedCard.clone()
			ps.SelectedCard = &c
		}
		snap.Players[side] = ps
	}
	return snap
}

// Checksum returns a SHA-256 over a canonical rendering of the snapshot.
// Two duels that went through the same plays have equal checksums.
func (s Snapshot) Checksum() string {
	sum := sha256.Sum256(s.canonical())
	return hex.EncodeToString(sum[:])
}

func (s Snapshot) canonical() []byte {
	var buf bytes.Buffer

	winner := "-"
	if s.Winner != nil {
		winner = s.Winner.String()
	}
	fmt.Fprintf(&buf, "DUEL:%s|%s|%s|%s|%d|%s\n", s.DuelID, s.Mode, s.Phase, s.Turn, s.TurnNumber, winner)

	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%d|%d|%t\n", p.Side, p.HP, p.Heat, p.Skipped)
		for _, c := range p.Hand {
			fmt.Fprintf(&buf, "  HAND:%s\n", c)
		}
		for _, c := range p.Deck {
			fmt.Fprintf(&buf, "  DECK:%s\n", c)
		}
		if p.SelectedCard != nil {
			fmt.Fprintf(&buf, "  SELECTED:%s\n", p.SelectedCard)
		}
	}
	for i, line := range s.Log {
		fmt.Fprintf(&buf, "LOG:%d|%s\n", i, line)
	}
	return buf.Bytes()
}
