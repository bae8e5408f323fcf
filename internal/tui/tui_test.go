package tui

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/finest9/internal/bot"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/player"
	"github.com/lox/finest9/internal/randutil"
	"github.com/lox/finest9/internal/scoring"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func press(m *Model, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// drain feeds queued engine events to the model.
func drain(m *Model) {
	for {
		select {
		case ev := <-m.events:
			m.Update(eventMsg{event: ev})
		default:
			return
		}
	}
}

func humans() []player.Player {
	return []player.Player{
		player.New("player-1", "Alice", false),
		player.New("player-2", "Bob", false),
	}
}

func TestHumanTurn(t *testing.T) {
	t.Parallel()
	e := game.New(randutil.NewScripted(), quietLogger())
	m := New(context.Background(), e, nil, quietLogger())
	defer m.Close()

	require.NoError(t, e.StartGame(humans()))
	drain(m)
	assert.Equal(t, game.PhaseRolling, m.State().Phase)

	// drawing before rolling is ignored
	press(m, "d")
	assert.Equal(t, 0, e.State().Turn)

	press(m, "r")
	drain(m)
	require.Equal(t, game.PhaseMatching, m.State().Phase)
	require.NotEmpty(t, m.matches, "snake eyes on this deal offers captures")

	press(m, "down")
	press(m, "up")
	assert.Equal(t, 0, m.selected)

	press(m, "enter")
	drain(m)

	s := e.State()
	assert.NotEmpty(t, s.Players[0].Captured)
	assert.Equal(t, 1, s.CurrentPlayerIndex)
	assert.Equal(t, s, m.State())

	// Bob rolls and draws
	press(m, "r")
	press(m, "d")
	drain(m)
	s = e.State()
	assert.Len(t, s.Players[1].Tableau, 10)
	assert.Equal(t, 0, s.CurrentPlayerIndex)

	entries := strings.Join(m.Log(), "\n")
	assert.Contains(t, entries, "New game: Alice, Bob")
	assert.Contains(t, entries, "Alice rolled 1+1=2")
	assert.Contains(t, entries, "Alice captured")
	assert.Contains(t, entries, "Bob drew a card")
}

func TestBotTurnsRunOnTheClock(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e := game.New(randutil.New(3), quietLogger())
	clock := quartz.NewMock(t)
	policy := bot.NewPolicy(bot.DefaultConfig(), randutil.New(4), scoring.New(), quietLogger())
	driver := bot.NewDriver(e, policy, clock, quietLogger())

	m := New(ctx, e, driver, quietLogger())
	defer m.Close()

	require.NoError(t, e.StartGame([]player.Player{
		player.New("player-1", "Alice", false),
		player.New("bot-1", "Alpha", true),
	}))
	drain(m)

	press(m, "r")
	press(m, "d")
	drain(m)

	require.True(t, driver.Pending(), "the bot's turn is scheduled")
	assert.Equal(t, game.PhaseBotThinking, m.State().Phase)

	// keys do nothing while the bot plays
	press(m, "r")
	press(m, "d")
	assert.Equal(t, 1, e.State().Turn)

	_, w := clock.AdvanceNext()
	w.MustWait(ctx)
	drain(m)

	s := m.State()
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.False(t, driver.Pending())
}

func TestWatchBotsAndRematch(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e := game.New(randutil.New(5), quietLogger())
	clock := quartz.NewMock(t)
	policy := bot.NewPolicy(bot.DefaultConfig(), randutil.New(6), scoring.New(), quietLogger())
	driver := bot.NewDriver(e, policy, clock, quietLogger())

	m := New(ctx, e, driver, quietLogger())
	defer m.Close()

	require.NoError(t, e.StartGame([]player.Player{
		player.New("bot-1", "Alpha", true),
		player.New("bot-2", "Beta", true),
	}))
	m.Init()
	drain(m)

	for turns := 0; !m.State().IsGameOver(); turns++ {
		require.Less(t, turns, 500)
		require.True(t, driver.Pending())
		_, w := clock.AdvanceNext()
		w.MustWait(ctx)
		drain(m)
	}

	entries := m.Log()
	assert.Contains(t, strings.Join(entries, "\n"), "Game over:")
	assert.Equal(t, "Press n for a new game or q to quit", entries[len(entries)-1])
	assert.Equal(t, "Game over", game.Instruction(m.State()))

	first := m.State().GameID
	press(m, "n")
	drain(m)
	assert.NotEqual(t, first, m.State().GameID)
	assert.Equal(t, 0, m.State().Turn)
	assert.True(t, driver.Pending(), "the new game starts playing")
}

func TestView(t *testing.T) {
	t.Parallel()
	e := game.New(randutil.New(7), quietLogger())
	m := New(context.Background(), e, nil, quietLogger())
	defer m.Close()

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "No game in progress")

	require.NoError(t, e.StartGame(humans()))
	drain(m)

	view := m.View()
	assert.Contains(t, view, "Finest 9")
	assert.Contains(t, view, "Roll the dice to start your turn")
	assert.Contains(t, view, "Alice's tableau")
	assert.Contains(t, view, "Deck: 34")
	assert.Contains(t, view, "Bob")
}

func TestQuit(t *testing.T) {
	t.Parallel()
	e := game.New(randutil.New(8), quietLogger())
	m := New(context.Background(), e, nil, quietLogger())

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	// detached from the engine
	require.NoError(t, e.StartGame(humans()))
	assert.Empty(t, m.events)
}
