package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/magefree/heat-duel-go/internal/duel"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

var (
	// ErrNoMove is returned when a seat has to act but holds no card.
	ErrNoMove = errors.New("no move available")
	// ErrTurnLimit is returned when the duel outlasts the driver's turn cap.
	ErrTurnLimit = errors.New("turn limit reached")
)

// DefaultMaxTurns caps a driven duel unless overridden.
const DefaultMaxTurns = 200

// Table is the part of a duel the driver needs.
type Table interface {
	Mode() rules.Mode
	Snapshot() duel.Snapshot
	StartTurn() error
	PlayCard(side rules.Side, index int) error
	PlayCardSimultaneous(side rules.Side, index int) error
	Events() *rules.EventBus
	Done() <-chan struct{}
}

// Result summarizes a driven duel.
type Result struct {
	Winner   rules.Side
	Finished bool
	Turns    int
}

// Driver plays both seats of a duel with a strategy per seat.
type Driver struct {
	table      Table
	strategies [2]Strategy
	maxTurns   int
	selfStart  bool
	logger     *zap.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithStrategy sets the strategy for side.
func WithStrategy(side rules.Side, s Strategy) DriverOption {
	return func(d *Driver) {
		if side.Valid() && s != nil {
			d.strategies[side] = s
		}
	}
}

// WithMaxTurns caps the number of turns the driver plays.
func WithMaxTurns(n int) DriverOption {
	return func(d *Driver) {
		if n > 0 {
			d.maxTurns = n
		}
	}
}

// WithSelfStart makes the driver start every turn itself instead of waiting
// for the duel's scheduler. Use it with duels built without a scheduler.
func WithSelfStart() DriverOption {
	return func(d *Driver) {
		d.selfStart = true
	}
}

// WithDriverLogger sets the structured logger.
func WithDriverLogger(logger *zap.Logger) DriverOption {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDriver creates a driver for table. Both seats default to FirstAttack.
func NewDriver(table Table, opts ...DriverOption) *Driver {
	d := &Driver{
		table:      table,
		strategies: [2]Strategy{FirstAttack{}, FirstAttack{}},
		maxTurns:   DefaultMaxTurns,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run plays the duel until it is won, the turn cap is hit, a seat cannot
// move, or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	wake := make(chan struct{}, 1)
	handle := d.table.Events().Subscribe(func(rules.Event) {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer d.table.Events().Unsubscribe(handle)

	closed := false
	for {
		snap := d.table.Snapshot()
		result := Result{Turns: snap.TurnNumber - 1}
		if snap.Winner != nil {
			result.Winner = *snap.Winner
			result.Finished = true
			return result, nil
		}
		if closed {
			return result, duel.ErrDuelClosed
		}
		if snap.TurnNumber > d.maxTurns {
			return result, fmt.Errorf("%w: %d turns", ErrTurnLimit, d.maxTurns)
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		acted, err := d.step(snap)
		if err != nil {
			return result, err
		}
		if acted {
			continue
		}

		select {
		case <-ctx.Done():
		case <-d.table.Done():
			closed = true
		case <-wake:
		}
	}
}

// step performs at most one action for the state in snap and reports
// whether it did anything.
func (d *Driver) step(snap duel.Snapshot) (bool, error) {
	switch snap.Phase {
	case rules.PhaseStart:
		return true, d.startTurn()
	case rules.PhaseEnd:
		if d.selfStart {
			return true, d.startTurn()
		}
		return false, nil
	}

	seat, ok := d.seatToAct(snap)
	if !ok {
		return false, nil
	}

	index, ok := d.strategies[seat].Choose(snap, seat)
	if !ok {
		d.logger.Warn("seat cannot move",
			zap.String("duel_id", snap.DuelID),
			zap.Stringer("side", seat),
			zap.Stringer("phase", snap.Phase),
		)
		return false, fmt.Errorf("%w: %s has an empty hand in %s phase", ErrNoMove, seat, snap.Phase)
	}

	d.logger.Debug("bot plays",
		zap.String("duel_id", snap.DuelID),
		zap.Stringer("side", seat),
		zap.String("card", snap.Player(seat).Hand[index].Name),
	)
	if snap.Mode == rules.ModeSimultaneous {
		return true, d.table.PlayCardSimultaneous(seat, index)
	}
	return true, d.table.PlayCard(seat, index)
}

func (d *Driver) startTurn() error {
	err := d.table.StartTurn()
	// The scheduler may have started the turn between snapshot and call.
	if errors.Is(err, duel.ErrTurnInProgress) {
		return nil
	}
	return err
}

// seatToAct returns the seat whose slot is open in snap.
func (d *Driver) seatToAct(snap duel.Snapshot) (rules.Side, bool) {
	if snap.Mode == rules.ModeSimultaneous {
		if snap.Phase != rules.PhaseAction {
			return rules.SideP1, false
		}
		for _, side := range rules.Sides {
			if snap.Player(side).SelectedCard == nil {
				return side, true
			}
		}
		return rules.SideP1, false
	}

	switch snap.Phase {
	case rules.PhaseAction:
		return snap.Turn, true
	case rules.PhaseDefense:
		return snap.Turn.Opponent(), true
	default:
		return rules.SideP1, false
	}
}
