package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/finest9/internal/bot"
	"github.com/lox/finest9/internal/config"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/player"
	"github.com/lox/finest9/internal/randutil"
	"github.com/lox/finest9/internal/scoring"
	"github.com/lox/finest9/internal/setup"
	"github.com/lox/finest9/internal/tui"
)

type PlayCmd struct {
	Config      string   `short:"c" help:"Configuration file" default:"finest9.hcl" type:"path"`
	Mode        string   `short:"m" help:"Table mode" enum:"friends,bots,watch" default:"bots"`
	Name        string   `help:"Your name when playing against bots" default:"You"`
	Names       []string `help:"Player names for friends mode"`
	Bots        int      `short:"b" help:"Number of bots (1-4, or 2-5 in watch mode)" default:"3"`
	Seed        int64    `help:"Random seed (0 seeds from the clock)"`
	TableauSize int      `name:"tableau-size" help:"Cards dealt to each player"`
	NoColor     bool     `name:"no-color" help:"Disable colors"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(p.Config)
	if err != nil {
		return err
	}
	if p.Seed != 0 {
		cfg.Game.Seed = p.Seed
	}
	if p.TableauSize != 0 {
		cfg.Game.TableauSize = p.TableauSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The TUI owns the terminal, so logs only go to a file.
	logger, closeLog, err := cli.newLogger(cfg.Log.Level, cfg.Log.File, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if p.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	roster, err := p.roster(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		_, seed = randutil.NewFromTime()
	}
	logger.Info("Starting session", "seed", seed, "players", len(roster), "mode", p.Mode)

	engine := game.New(randutil.New(seed), logger, game.WithTableauSize(cfg.Game.TableauSize))

	var driver *bot.Driver
	if hasBots(roster) {
		policy := bot.NewPolicy(cfg.BotConfig(), randutil.New(seed+1), scoring.New(), logger)
		driver = bot.NewDriver(engine, policy, quartz.NewReal(), logger)
	}

	if err := engine.StartGame(roster); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := tui.New(ctx, engine, driver, logger)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if final := engine.State(); final.IsGameOver() && final.Winner != nil {
		fmt.Printf("%s won with %d points\n", final.Winner.Name, final.Winner.Score)
	}
	return nil
}

// roster prefers players named in the config file over the mode flags.
func (p *PlayCmd) roster(cfg *config.Config) ([]player.Player, error) {
	if players := cfg.Roster(); players != nil {
		return players, nil
	}

	switch p.Mode {
	case "friends":
		return setup.Friends(p.Names)
	case "watch":
		return setup.BotsOnly(p.Bots)
	default:
		return setup.VersusBots(p.Name, p.Bots)
	}
}

func hasBots(players []player.Player) bool {
	for _, pl := range players {
		if pl.IsBot {
			return true
		}
	}
	return false
}
