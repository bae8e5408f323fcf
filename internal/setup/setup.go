// Package setup builds player rosters for the supported table modes.
package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/finest9/internal/player"
)

const (
	MinFriends = 2
	MaxFriends = 4
	MinBots    = 1
	MaxBots    = 4
)

var botNames = []string{"Alpha", "Beta", "Gamma", "Delta"}

// ErrInvalidRoster is returned when a roster does not fit the chosen mode.
var ErrInvalidRoster = errors.New("invalid roster")

// Friends seats 2 to 4 human players in the order given. Names are trimmed
// and must not be empty.
func Friends(names []string) ([]player.Player, error) {
	if len(names) < MinFriends || len(names) > MaxFriends {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidRoster, MinFriends, MaxFriends, len(names))
	}

	players := make([]player.Player, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: player %d has no name", ErrInvalidRoster, i+1)
		}
		players[i] = player.New(fmt.Sprintf("player-%d", i+1), name, false)
	}
	return players, nil
}

// VersusBots seats one human followed by n bots.
func VersusBots(human string, n int) ([]player.Player, error) {
	human = strings.TrimSpace(human)
	if human == "" {
		return nil, fmt.Errorf("%w: player has no name", ErrInvalidRoster)
	}

	bots, err := Bots(n)
	if err != nil {
		return nil, err
	}
	return append([]player.Player{player.New("player-1", human, false)}, bots...), nil
}

// Bots returns n computer players named Alpha, Beta, Gamma and Delta.
func Bots(n int) ([]player.Player, error) {
	if n < MinBots || n > MaxBots {
		return nil, fmt.Errorf("%w: need %d-%d bots, got %d", ErrInvalidRoster, MinBots, MaxBots, n)
	}

	bots := make([]player.Player, n)
	for i := range bots {
		bots[i] = player.New(fmt.Sprintf("bot-%d", i+1), BotName(i), true)
	}
	return bots, nil
}

// BotName returns the display name of the i'th bot, counting from zero.
func BotName(i int) string {
	if i >= 0 && i < len(botNames) {
		return botNames[i]
	}
	return fmt.Sprintf("Bot %d", i+1)
}

// BotsOnly seats n bots with no human, for watching or simulating.
func BotsOnly(n int) ([]player.Player, error) {
	if n < 2 || n > MaxBots+1 {
		return nil, fmt.Errorf("%w: need 2-%d bots, got %d", ErrInvalidRoster, MaxBots+1, n)
	}
	bots := make([]player.Player, n)
	for i := range bots {
		bots[i] = player.New(fmt.Sprintf("bot-%d", i+1), BotName(i), true)
	}
	return bots, nil
}
