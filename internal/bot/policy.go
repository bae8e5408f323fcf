// Package bot plays Finest 9 for computer-controlled seats.
//
// Policy decides a move from the current roll and the available matches.
// Driver paces those decisions for interactive play: it rolls, marks the bot
// as thinking, and applies the move after the decision's thinking time.
package bot

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/match"
	"github.com/lox/finest9/internal/player"
	"github.com/lox/finest9/internal/randutil"
	"github.com/lox/finest9/internal/scoring"
)

// Config tunes bot behaviour.
type Config struct {
	MinThinking time.Duration
	MaxThinking time.Duration
	// OptimalProbability is the chance of taking the best match rather than
	// a random one.
	OptimalProbability float64
}

// DefaultConfig returns the standard bot settings.
func DefaultConfig() Config {
	return Config{
		MinThinking:        500 * time.Millisecond,
		MaxThinking:        1500 * time.Millisecond,
		OptimalProbability: 0.8,
	}
}

// Action is what the bot chose to do.
type Action int

const (
	ActionDraw Action = iota
	ActionCapture
)

func (a Action) String() string {
	if a == ActionCapture {
		return "capture"
	}
	return "draw"
}

// Decision is a bot move plus how long to pretend to think about it.
type Decision struct {
	Action       Action
	Match        match.Match // only for ActionCapture
	ThinkingTime time.Duration
}

// Move converts the decision into an engine move.
func (d Decision) Move() game.Move {
	if d.Action == ActionCapture {
		return game.CaptureMove(d.Match)
	}
	return game.DrawMove()
}

// Policy picks moves. It is not safe for concurrent use because it shares
// its random source.
type Policy struct {
	cfg    Config
	rng    randutil.Source
	scorer *scoring.Engine
	logger *log.Logger
}

// NewPolicy creates a policy drawing randomness from rng.
func NewPolicy(cfg Config, rng randutil.Source, scorer *scoring.Engine, logger *log.Logger) *Policy {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Policy{
		cfg:    cfg,
		rng:    rng,
		scorer: scorer,
		logger: logger.WithPrefix("bot"),
	}
}

// DecideMove chooses between drawing and one of matches. The thinking time
// never influences the choice.
func (p *Policy) DecideMove(pl player.Player, roll dice.Roll, matches []match.Match) Decision {
	d := Decision{Action: ActionDraw, ThinkingTime: p.thinkingTime()}

	if len(matches) == 0 {
		p.logger.Debug("Bot decision", "player", pl.Name, "roll", roll.String(), "action", d.Action)
		return d
	}

	var reason string
	if p.rng.Float64() < p.cfg.OptimalProbability {
		d.Match = bestMatch(matches).Clone()
		reason = "best"
	} else {
		d.Match = matches[p.rng.IntN(len(matches))].Clone()
		reason = "random"
	}
	d.Action = ActionCapture

	p.logger.Debug("Bot decision",
		"player", pl.Name,
		"roll", roll.String(),
		"action", d.Action,
		"match", d.Match.String(),
		"choice", reason,
		"options", len(matches))
	return d
}

// thinkingTime is uniform in [MinThinking, MaxThinking).
func (p *Policy) thinkingTime() time.Duration {
	span := p.cfg.MaxThinking - p.cfg.MinThinking
	if span <= 0 {
		return p.cfg.MinThinking
	}
	return p.cfg.MinThinking + time.Duration(p.rng.Float64()*float64(span))
}

// bestMatch prefers the highest score, then the most cards, then the
// earliest candidate.
func bestMatch(matches []match.Match) match.Match {
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score || (m.Score == best.Score && len(m.Cards) > len(best.Cards)) {
			best = m
		}
	}
	return best
}

// EvaluatePosition scores a player's position as captured minus tableau
// value.
func (p *Policy) EvaluatePosition(pl player.Player) int {
	return p.scorer.PlayerScore(pl)
}

// Prepare rolls for the current player if needed and decides their move
// without applying it. The returned TurnRef identifies the turn the decision
// belongs to.
func (p *Policy) Prepare(e *game.Engine) (Decision, game.TurnRef, error) {
	if e.CanRollDice() {
		if _, err := e.RollDice(); err != nil {
			return Decision{}, game.TurnRef{}, err
		}
	}

	s := e.State()
	current, ok := s.CurrentPlayer()
	if !ok {
		return Decision{}, game.TurnRef{}, game.ErrGameNotActive
	}
	if s.LastDiceRoll == nil {
		return Decision{}, game.TurnRef{}, fmt.Errorf("%w: %s has not rolled", game.ErrWrongPhase, current.Name)
	}

	d := p.DecideMove(current, *s.LastDiceRoll, e.FindPossibleMatches())
	return d, s.Ref(), nil
}

// PlayTurn plays the current player's whole turn immediately.
func (p *Policy) PlayTurn(e *game.Engine) (Decision, error) {
	d, ref, err := p.Prepare(e)
	if err != nil {
		return Decision{}, err
	}
	return d, e.ApplyMove(ref, d.Move())
}
