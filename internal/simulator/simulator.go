// Package simulator plays batches of all-bot games and aggregates the
// results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/finest9/internal/bot"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/randutil"
	"github.com/lox/finest9/internal/scoring"
	"github.com/lox/finest9/internal/setup"
	"github.com/lox/finest9/internal/statistics"
)

// DefaultMaxTurns bounds a single game. Real games end well inside it.
const DefaultMaxTurns = 1000

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Players     int
	Seed        int64 // game i is seeded with Seed+i
	Workers     int   // 0 uses GOMAXPROCS
	MaxTurns    int
	TableauSize int
	Bot         bot.Config
	Logger      *log.Logger
	// GameLogger receives engine and bot diagnostics; nil discards them.
	GameLogger *log.Logger
}

// Simulator runs Finest 9 game simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.TableauSize <= 0 {
		config.TableauSize = game.DefaultTableauSize
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.GameLogger == nil {
		config.GameLogger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}
}

// Run plays the configured number of games on a bounded worker pool and
// returns validated statistics. Results are aggregated in game order so a
// seed always produces the same statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	start := time.Now()
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.PlayGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"games", stats.Games,
		"workers", s.config.Workers,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// PlayGame plays one all-bot game from seed to the end.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)
	scorer := scoring.New()

	engine := game.New(rng, s.config.GameLogger,
		game.WithTableauSize(s.config.TableauSize),
		game.WithGameIDs(func() string { return fmt.Sprintf("sim-%d", seed) }))
	policy := bot.NewPolicy(s.config.Bot, rng, scorer, s.config.GameLogger)

	players, err := setup.BotsOnly(s.config.Players)
	if err != nil {
		return statistics.GameResult{}, err
	}
	if err := engine.StartGame(players); err != nil {
		return statistics.GameResult{}, err
	}

	for turns := 0; !engine.IsGameOver(); turns++ {
		if turns >= s.config.MaxTurns {
			return statistics.GameResult{}, fmt.Errorf("no result after %d turns (seed: %d)", turns, seed)
		}
		if err := ctx.Err(); err != nil {
			return statistics.GameResult{}, err
		}
		if _, err := policy.PlayTurn(engine); err != nil {
			return statistics.GameResult{}, fmt.Errorf("turn %d (seed: %d): %w", turns+1, seed, err)
		}
	}

	state := engine.State()
	if err := game.VerifyConservation(state); err != nil {
		return statistics.GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	result := statistics.GameResult{
		Seed:       seed,
		Turns:      state.Turn,
		FinalRound: state.FinalRoundStarted,
		Scores:     make([]int, len(state.Players)),
		Winner:     -1,
	}
	for i, p := range state.Players {
		result.Scores[i] = p.Score
		if state.Winner != nil && p.ID == state.Winner.ID {
			result.Winner = i
		}
	}

	s.logger.Debug("Game finished", "seed", seed, "turns", result.Turns, "winner", result.Winner)
	return result, nil
}

// Run is a convenience wrapper around New(config).Run(ctx).
func Run(ctx context.Context, config Config) (*statistics.Statistics, error) {
	return New(config).Run(ctx)
}
