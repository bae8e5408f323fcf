package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/finest9/internal/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(games, players int) Config {
	return Config{
		Games:   games,
		Players: players,
		Seed:    12345,
		Workers: 4,
		Bot:     bot.DefaultConfig(),
		Logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	sim := New(Config{Games: 10, Players: 3})
	assert.Equal(t, DefaultMaxTurns, sim.config.MaxTurns)
	assert.Equal(t, 9, sim.config.TableauSize)
	assert.Positive(t, sim.config.Workers)
	assert.NotNil(t, sim.config.Logger)
}

func TestRun(t *testing.T) {
	t.Parallel()

	stats, err := Run(context.Background(), testConfig(40, 3))
	require.NoError(t, err)

	assert.Equal(t, 40, stats.Games)
	assert.Equal(t, 120, stats.Scores)
	assert.Equal(t, 40, stats.FinalRounds, "every game ends through the final round")
	require.Len(t, stats.Seats, 3)

	wins := 0
	for _, seat := range stats.Seats {
		assert.Equal(t, 40, seat.Games)
		wins += seat.Wins
	}
	assert.Equal(t, 40, wins)
	assert.Greater(t, stats.AverageTurns(), 3.0)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := testConfig(12, 4)
	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 1
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Seats, b.Seats)
	assert.Equal(t, a.SumTurns, b.SumTurns)
}

func TestPlayGame(t *testing.T) {
	t.Parallel()
	sim := New(testConfig(1, 2))

	result, err := sim.PlayGame(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Seed)
	assert.Len(t, result.Scores, 2)
	assert.True(t, result.FinalRound)
	require.GreaterOrEqual(t, result.Winner, 0)
	for _, score := range result.Scores {
		assert.LessOrEqual(t, score, result.Scores[result.Winner])
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), testConfig(0, 3))
	assert.ErrorContains(t, err, "games must be positive")

	_, err = Run(context.Background(), testConfig(2, 1))
	assert.ErrorContains(t, err, "invalid roster")

	cfg := testConfig(2, 3)
	cfg.MaxTurns = 2
	_, err = Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "no result after 2 turns")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, testConfig(5, 3))
	assert.ErrorIs(t, err, context.Canceled)
}
