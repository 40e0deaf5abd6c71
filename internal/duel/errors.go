package duel

import "errors"

var (
	// ErrInvalidMode is returned when a play method does not match the duel's mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidCard is returned when the hand has no card at the requested index.
	ErrInvalidCard = errors.New("invalid card")

	ErrGameOver       = errors.New("game over")
	ErrDuelClosed     = errors.New("duel closed")
	ErrDuelNotFound   = errors.New("duel not found")
	ErrInvalidDeck    = errors.New("invalid deck")
	ErrTurnInProgress = errors.New("turn in progress")
)
