package duel

import (
	"fmt"
	"sync"
	"time"

	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
)

const (
	// StartingHP is every side's hit points at creation and the heal cap.
	StartingHP = 100
	// OverheatThreshold is the heat above which a side overheats.
	OverheatThreshold = 100
	// InsertThreshold is the heat lead above which the defender gets an
	// insert attack.
	InsertThreshold = 50

	// DefaultTurnDelay is the pause before the next turn starts on its own.
	DefaultTurnDelay = time.Second
)

// playerState is the mutable per-side state.
type playerState struct {
	hp           int
	heat         int
	skipped      bool
	hand         []Card
	deck         []Card
	selectedCard *Card
}

// Duel is one two-player game. It owns all of its state; nothing is shared
// between duels. Every exported method serializes on the duel's mutex, so
// a scheduled next turn never overlaps a caller's play.
type Duel struct {
	id        string
	mode      rules.Mode
	logger    *zap.Logger
	events    *rules.EventBus
	scheduler Scheduler
	turnDelay time.Duration
	replay    *Replay

	mu      sync.Mutex
	players [2]*playerState
	turns   *rules.TurnManager
	log     []string
	winner  *rules.Side
	closed  bool

	// cancelNext cancels the pending next-turn continuation; generation
	// invalidates a continuation that fired after being replaced.
	cancelNext func()
	generation uint64

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Duel at construction.
type Option func(*Duel)

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Duel) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithScheduler sets the scheduler that starts the next turn. A nil
// scheduler disables automatic advancement; the caller then calls
// StartTurn after every turn.
func WithScheduler(s Scheduler) Option {
	return func(d *Duel) {
		d.scheduler = s
	}
}

// WithTurnDelay sets the delay between the end of a turn and the start of
// the next one.
func WithTurnDelay(delay time.Duration) Option {
	return func(d *Duel) {
		if delay >= 0 {
			d.turnDelay = delay
		}
	}
}

// WithID sets the duel identifier used in logs and events.
func WithID(id string) Option {
	return func(d *Duel) {
		d.id = id
	}
}

// WithEventBus publishes duel events on bus instead of a private bus.
func WithEventBus(bus *rules.EventBus) Option {
	return func(d *Duel) {
		if bus != nil {
			d.events = bus
		}
	}
}

// WithReplay records a snapshot into r at the end of every turn.
func WithReplay(r *Replay) Option {
	return func(d *Duel) {
		d.replay = r
	}
}

// New creates a duel with copies of the two decks. p1 has the first turn.
// Automatic turn advancement uses a TimerScheduler unless overridden.
func New(deckP1, deckP2 []Card, mode rules.Mode, opts ...Option) (*Duel, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	d := &Duel{
		mode:      mode,
		logger:    zap.NewNop(),
		events:    rules.NewEventBus(),
		scheduler: TimerScheduler{},
		turnDelay: DefaultTurnDelay,
		turns:     rules.NewTurnManager(mode, rules.SideP1),
		log:       make([]string, 0, 64),
		done:      make(chan struct{}),
	}
	d.players[rules.SideP1] = newPlayerState(deckP1)
	d.players[rules.SideP2] = newPlayerState(deckP2)

	for _, opt := range opts {
		opt(d)
	}

	d.logger.Info("duel created",
		zap.String("duel_id", d.id),
		zap.Stringer("mode", mode),
		zap.Int("deck_p1", len(deckP1)),
		zap.Int("deck_p2", len(deckP2)),
	)
	return d, nil
}

func newPlayerState(deck []Card) *playerState {
	return &playerState{
		hp:   StartingHP,
		deck: cloneCards(deck),
		hand: make([]Card, 0, 8),
	}
}

// ID returns the duel identifier (empty unless set).
func (d *Duel) ID() string {
	return d.id
}

// Mode returns the duel's fixed mode.
func (d *Duel) Mode() rules.Mode {
	return d.mode
}

// Events returns the bus the duel publishes on. Listeners run while the
// duel is locked and must not call back into it.
func (d *Duel) Events() *rules.EventBus {
	return d.events
}

// Phase returns the current phase.
func (d *Duel) Phase() rules.Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.turns.Phase()
}

// Turn returns the active side.
func (d *Duel) Turn() rules.Side {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.turns.ActiveSide()
}

// Winner returns the winning side once the game is over.
func (d *Duel) Winner() (rules.Side, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return rules.SideP1, false
	}
	return *d.winner, true
}

// Log returns a copy of the human-readable event trace.
func (d *Duel) Log() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.log...)
}

// Done is closed when the game is over or the duel is closed.
func (d *Duel) Done() <-chan struct{} {
	return d.done
}

// Close cancels any pending next-turn continuation and rejects further
// calls. A continuation that already fired becomes a no-op.
func (d *Duel) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cancelPendingLocked()
	d.finish()
	d.logger.Debug("duel closed", zap.String("duel_id", d.id))
}

func (d *Duel) finish() {
	d.doneOnce.Do(func() { close(d.done) })
}

// checkOpenLocked guards entry points against disposed or finished duels.
func (d *Duel) checkOpenLocked() error {
	if d.closed {
		return ErrDuelClosed
	}
	if d.winner != nil {
		return fmt.Errorf("%w: %s already won", ErrGameOver, *d.winner)
	}
	return nil
}

func (d *Duel) player(side rules.Side) *playerState {
	return d.players[side]
}

func (d *Duel) logf(format string, args ...any) {
	d.log = append(d.log, fmt.Sprintf(format, args...))
}

func (d *Duel) publish(event rules.Event) {
	event.DuelID = d.id
	event.Turn = d.turns.TurnNumber()
	event.Phase = d.turns.Phase()
	d.events.Publish(event)
}
