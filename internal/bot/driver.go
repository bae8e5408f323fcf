package bot

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/finest9/internal/game"
)

// Driver plays bot turns on an engine in real time. Each Step schedules at
// most one move; the move is applied once the decision's thinking time has
// passed on the clock, unless the game has moved on by then.
type Driver struct {
	engine *game.Engine
	policy *Policy
	clock  quartz.Clock
	logger *log.Logger

	onApplied func(Decision, error)

	mu      sync.Mutex
	timer   *quartz.Timer
	pending uint64 // generation of the scheduled move, 0 when idle
	gen     uint64
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithOnApplied registers fn to run after each scheduled move is applied or
// discarded. It runs on the clock's goroutine.
func WithOnApplied(fn func(Decision, error)) DriverOption {
	return func(d *Driver) { d.onApplied = fn }
}

// NewDriver creates a driver. Use quartz.NewReal() outside tests.
func NewDriver(engine *game.Engine, policy *Policy, clock quartz.Clock, logger *log.Logger, opts ...DriverOption) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Driver{
		engine: engine,
		policy: policy,
		clock:  clock,
		logger: logger.WithPrefix("driver"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Step starts the current player's turn if it belongs to a bot and nothing is
// scheduled yet. It reports whether a move was scheduled.
func (d *Driver) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != 0 {
		return false, nil
	}

	s := d.engine.State()
	current, ok := s.CurrentPlayer()
	if !ok || !current.IsBot {
		return false, nil
	}
	switch s.Phase {
	case game.PhaseRolling, game.PhaseFinalRound, game.PhaseMatching, game.PhaseBotThinking:
	default:
		return false, nil
	}

	decision, ref, err := d.policy.Prepare(d.engine)
	if err != nil {
		return false, err
	}
	if d.engine.State().Phase == game.PhaseMatching {
		if err := d.engine.SetBotThinking(); err != nil {
			return false, err
		}
	}

	d.gen++
	gen := d.gen
	d.pending = gen
	d.logger.Debug("Scheduling bot move", "player", current.Name, "move", decision.Move().String(), "delay", decision.ThinkingTime)

	d.timer = d.clock.AfterFunc(decision.ThinkingTime, func() {
		d.fire(ctx, gen, ref, decision)
	}, "bot", "move")
	return true, nil
}

func (d *Driver) fire(ctx context.Context, gen uint64, ref game.TurnRef, decision Decision) {
	d.mu.Lock()
	if d.pending != gen {
		d.mu.Unlock()
		return
	}
	d.pending = 0
	d.timer = nil
	d.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	err := d.engine.ApplyMove(ref, decision.Move())
	switch {
	case errors.Is(err, game.ErrStaleMove):
		d.logger.Debug("Bot move discarded", "turn", ref.Turn)
	case err != nil:
		d.logger.Error("Bot move failed", "error", err)
	}

	if d.onApplied != nil {
		d.onApplied(decision, err)
	}
}

// Cancel drops the scheduled move, if any.
func (d *Driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = 0
}

// Pending reports whether a move is scheduled.
func (d *Driver) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != 0
}
