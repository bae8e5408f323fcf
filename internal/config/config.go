// Package config loads finest9 settings from an HCL file.
//
// Every block is optional:
//
//	game {
//	  seed         = 42
//	  tableau_size = 9
//	}
//
//	player "Alice" {}
//	player "Alpha" { bot = true }
//
//	bot {
//	  thinking_min_ms     = 500
//	  thinking_max_ms     = 1500
//	  optimal_probability = 0.8
//	}
//
//	log {
//	  level = "info"
//	  file  = "finest9.log"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/bot"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/player"
)

const (
	MinPlayers = 2
	MaxPlayers = 5
)

// Config is the complete configuration with defaults applied.
type Config struct {
	Game    GameSettings
	Players []PlayerConfig
	Bot     BotSettings
	Log     LogSettings
}

// GameSettings contains game-level configuration
type GameSettings struct {
	Seed        int64 `hcl:"seed,optional"` // 0 seeds from the clock
	TableauSize int   `hcl:"tableau_size,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name string `hcl:"name,label"`
	Bot  bool   `hcl:"bot,optional"`
}

// BotSettings tunes the computer players
type BotSettings struct {
	ThinkingMinMs      int
	ThinkingMaxMs      int
	OptimalProbability *float64
}

// botBlock is the HCL form of BotSettings. Unset attributes decode to nil so
// an explicit 0 is kept.
type botBlock struct {
	ThinkingMinMs      *int     `hcl:"thinking_min_ms,optional"`
	ThinkingMaxMs      *int     `hcl:"thinking_max_ms,optional"`
	OptimalProbability *float64 `hcl:"optimal_probability,optional"`
}

// LogSettings controls diagnostics output
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// file mirrors the HCL layout; absent blocks decode to nil.
type file struct {
	Game    *GameSettings  `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
	Bot     *botBlock      `hcl:"bot,block"`
	Log     *LogSettings   `hcl:"log,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	def := bot.DefaultConfig()
	p := def.OptimalProbability
	return &Config{
		Game: GameSettings{TableauSize: game.DefaultTableauSize},
		Bot: BotSettings{
			ThinkingMinMs:      int(def.MinThinking / time.Millisecond),
			ThinkingMaxMs:      int(def.MaxThinking / time.Millisecond),
			OptimalProbability: &p,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// Parse decodes configuration from src. filename is only used in messages.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Game != nil {
		cfg.Game.Seed = raw.Game.Seed
		if raw.Game.TableauSize != 0 {
			cfg.Game.TableauSize = raw.Game.TableauSize
		}
	}
	cfg.Players = raw.Players
	if raw.Bot != nil {
		if raw.Bot.ThinkingMinMs != nil {
			cfg.Bot.ThinkingMinMs = *raw.Bot.ThinkingMinMs
		}
		if raw.Bot.ThinkingMaxMs != nil {
			cfg.Bot.ThinkingMaxMs = *raw.Bot.ThinkingMaxMs
		}
		if raw.Bot.OptimalProbability != nil {
			cfg.Bot.OptimalProbability = raw.Bot.OptimalProbability
		}
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.Log.Level = raw.Log.Level
		}
		cfg.Log.File = raw.Log.File
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.TableauSize < 1 {
		return fmt.Errorf("tableau size must be positive, got %d", c.Game.TableauSize)
	}

	if n := len(c.Players); n > 0 {
		if n < MinPlayers || n > MaxPlayers {
			return fmt.Errorf("need %d-%d players, got %d", MinPlayers, MaxPlayers, n)
		}
		if need := n * c.Game.TableauSize; need > cards.DeckSize {
			return fmt.Errorf("%d players with %d cards each need %d cards, deck has %d", n, c.Game.TableauSize, need, cards.DeckSize)
		}
		seen := map[string]bool{}
		for _, p := range c.Players {
			if p.Name == "" {
				return fmt.Errorf("player name must not be empty")
			}
			if seen[p.Name] {
				return fmt.Errorf("player %s: configured twice", p.Name)
			}
			seen[p.Name] = true
		}
	}

	if c.Bot.ThinkingMinMs < 0 {
		return fmt.Errorf("bot thinking_min_ms must not be negative")
	}
	if c.Bot.ThinkingMinMs > c.Bot.ThinkingMaxMs {
		return fmt.Errorf("bot thinking_min_ms (%d) must not exceed thinking_max_ms (%d)", c.Bot.ThinkingMinMs, c.Bot.ThinkingMaxMs)
	}
	if p := c.probability(); p < 0 || p > 1 {
		return fmt.Errorf("bot optimal_probability must be between 0 and 1, got %g", p)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func (c *Config) probability() float64 {
	if c.Bot.OptimalProbability == nil {
		return bot.DefaultConfig().OptimalProbability
	}
	return *c.Bot.OptimalProbability
}

// BotConfig converts the bot block into policy settings.
func (c *Config) BotConfig() bot.Config {
	return bot.Config{
		MinThinking:        time.Duration(c.Bot.ThinkingMinMs) * time.Millisecond,
		MaxThinking:        time.Duration(c.Bot.ThinkingMaxMs) * time.Millisecond,
		OptimalProbability: c.probability(),
	}
}

// Roster returns the configured players in seat order, or nil when the file
// names none.
func (c *Config) Roster() []player.Player {
	if len(c.Players) == 0 {
		return nil
	}

	var humans, bots int
	players := make([]player.Player, len(c.Players))
	for i, p := range c.Players {
		if p.Bot {
			bots++
			players[i] = player.New(fmt.Sprintf("bot-%d", bots), p.Name, true)
		} else {
			humans++
			players[i] = player.New(fmt.Sprintf("player-%d", humans), p.Name, false)
		}
	}
	return players
}
