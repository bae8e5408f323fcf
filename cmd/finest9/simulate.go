package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lox/finest9/internal/config"
	"github.com/lox/finest9/internal/setup"
	"github.com/lox/finest9/internal/simulator"
	"github.com/lox/finest9/internal/statistics"
)

type SimulateCmd struct {
	Config  string `short:"c" help:"Configuration file for bot and table settings" default:"finest9.hcl" type:"path"`
	Games   int    `short:"g" help:"Number of games to play" default:"1000"`
	Players int    `short:"p" help:"Bots per game (2-5)" default:"4"`
	Seed    int64  `help:"Base random seed (0 uses the current time)"`
	Workers int    `short:"w" help:"Parallel workers (0 uses all CPUs)"`
	Verbose bool   `help:"Log engine and bot decisions to stderr"`
}

func (s *SimulateCmd) Run(cli *CLI) error {
	if s.Players < setup.MinBots+1 || s.Players > setup.MaxBots+1 {
		return fmt.Errorf("players must be between %d and %d", setup.MinBots+1, setup.MaxBots+1)
	}

	cfg, err := config.Load(s.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := cli.newLogger(cfg.Log.Level, cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := s.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	simConfig := simulator.Config{
		Games:       s.Games,
		Players:     s.Players,
		Seed:        seed,
		Workers:     s.Workers,
		TableauSize: cfg.Game.TableauSize,
		Bot:         cfg.BotConfig(),
		Logger:      logger,
	}
	if s.Verbose {
		simConfig.GameLogger = logger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Starting simulation: %d games, %d bots (seed: %d)\n", s.Games, s.Players, seed)

	start := time.Now()
	stats, err := simulator.Run(ctx, simConfig)
	if err != nil {
		return err
	}
	printResults(stats, time.Since(start))
	return nil
}

func printResults(stats *statistics.Statistics, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS ===\n")
	fmt.Printf("Games: %d in %s (%.1f games/sec)\n", stats.Games, duration.Round(time.Millisecond), float64(stats.Games)/duration.Seconds())
	fmt.Printf("Score: %.2f ± %.2f (median %.1f)\n", stats.Mean(), stats.StdDev(), stats.Median())
	fmt.Printf("95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Printf("Winning score: %.2f average\n", stats.AverageWinningScore())
	fmt.Printf("Turns: %.1f average, %d max\n", stats.AverageTurns(), stats.MaxTurns)
	fmt.Printf("Final rounds: %d, ties: %d\n", stats.FinalRounds, stats.Ties)

	fmt.Printf("\n=== SEATS ===\n")
	for i := range stats.Seats {
		fmt.Printf("Seat %d: %5.1f%% wins, %.2f mean score\n", i+1, stats.WinRate(i)*100, stats.SeatMean(i))
	}
}
