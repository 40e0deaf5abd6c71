package rules

import (
	"errors"
	"fmt"
)

// Phase represents the stage of the current turn.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseAction
	PhaseDefense
	PhaseInsert
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseStart:   "start",
	PhaseAction:  "action",
	PhaseDefense: "defense",
	PhaseInsert:  "insert",
	PhaseEnd:     "end",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// ErrIllegalTransition is returned when a phase change is not part of the
// mode's turn structure.
var ErrIllegalTransition = errors.New("illegal phase transition")

// transitions enumerates every legal phase change per mode. The start phase
// may go straight to end when the active side's turn is skipped.
var transitions = map[Mode]map[Phase][]Phase{
	ModeClassic: {
		PhaseStart:   {PhaseAction, PhaseEnd},
		PhaseAction:  {PhaseDefense},
		PhaseDefense: {PhaseInsert, PhaseEnd},
		PhaseInsert:  {PhaseEnd},
		PhaseEnd:     {PhaseStart},
	},
	ModeSimultaneous: {
		PhaseStart:  {PhaseAction, PhaseEnd},
		PhaseAction: {PhaseInsert, PhaseEnd},
		PhaseInsert: {PhaseEnd},
		PhaseEnd:    {PhaseStart},
	},
}

// CanTransition reports whether from -> to is legal in mode.
func CanTransition(mode Mode, from, to Phase) bool {
	for _, next := range transitions[mode][from] {
		if next == to {
			return true
		}
	}
	return false
}

// TurnManager tracks the active side, the current phase and the turn number.
type TurnManager struct {
	mode       Mode
	active     Side
	phase      Phase
	turnNumber int
	begun      bool
}

// NewTurnManager creates a turn manager for mode with first as the active
// side of turn 1. The manager starts in the start phase.
func NewTurnManager(mode Mode, first Side) *TurnManager {
	return &TurnManager{
		mode:       mode,
		active:     first,
		phase:      PhaseStart,
		turnNumber: 1,
	}
}

// Mode returns the mode the manager enforces.
func (tm *TurnManager) Mode() Mode {
	return tm.mode
}

// ActiveSide returns the side that currently has the turn.
func (tm *TurnManager) ActiveSide() Side {
	return tm.active
}

// Phase returns the current phase.
func (tm *TurnManager) Phase() Phase {
	return tm.phase
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// BeginTurn moves into the start phase. It is legal before the first turn
// and after a turn has ended.
func (tm *TurnManager) BeginTurn() error {
	if tm.begun && tm.phase != PhaseEnd {
		return fmt.Errorf("%w: cannot begin turn %d during %s", ErrIllegalTransition, tm.turnNumber, tm.phase)
	}
	tm.begun = true
	tm.phase = PhaseStart
	return nil
}

// Advance moves to next if the mode allows it from the current phase.
func (tm *TurnManager) Advance(next Phase) error {
	if !CanTransition(tm.mode, tm.phase, next) {
		return fmt.Errorf("%w: %s -> %s in %s mode", ErrIllegalTransition, tm.phase, next, tm.mode)
	}
	tm.phase = next
	return nil
}

// EndTurn moves to the end phase, passes the turn to the other side and
// returns the new active side.
func (tm *TurnManager) EndTurn() (Side, error) {
	if err := tm.Advance(PhaseEnd); err != nil {
		return tm.active, err
	}
	tm.active = tm.active.Opponent()
	tm.turnNumber++
	return tm.active, nil
}
