// Package tui is the interactive Bubble Tea front end for a local game.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/finest9/internal/bot"
	"github.com/lox/finest9/internal/game"
	"github.com/lox/finest9/internal/match"
)

const eventBuffer = 1024

// eventMsg carries an engine event into the Bubble Tea loop.
type eventMsg struct {
	event game.Event
}

// Model is the Bubble Tea model for a game in progress. The engine is the
// source of truth; the model keeps the latest snapshot for rendering.
type Model struct {
	ctx    context.Context
	engine *game.Engine
	driver *bot.Driver
	logger *log.Logger

	events      chan game.Event
	unsubscribe func()

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	state    game.State
	matches  []match.Match
	selected int
	gameLog  []string
	status   string // last rejected action

	width       int
	height      int
	initialized bool
	quitting    bool
}

// New creates a model for engine. driver plays the bot seats and may be nil
// when every seat is human.
func New(ctx context.Context, engine *game.Engine, driver *bot.Driver, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		ctx:         ctx,
		engine:      engine,
		driver:      driver,
		logger:      logger.WithPrefix("tui"),
		events:      make(chan game.Event, eventBuffer),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		gameLog:     []string{},
	}

	m.unsubscribe = engine.Events().Subscribe(game.SubscriberFunc(func(ev game.Event) {
		select {
		case m.events <- ev:
		default:
			m.logger.Warn("Dropping UI event, queue full", "event", ev.EventType())
		}
	}))

	m.refresh()
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEvents(), m.stepBot())
}

// listenForEvents returns a command that waits for the next engine event
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-m.events:
			return eventMsg{event: ev}
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

// Close detaches the model from the engine and stops any pending bot move.
func (m *Model) Close() {
	if m.driver != nil {
		m.driver.Cancel()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case eventMsg:
		if entry := game.Describe(msg.event); entry != "" {
			m.AddLogEntry(entry)
		}
		if msg.event.EventType() == game.EventTypeGameOver {
			m.addStandings(msg.event.(game.GameOverEvent))
		}
		m.refresh()
		cmds = append(cmds, m.listenForEvents(), m.stepBot())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.LogUp):
		m.logViewport.HalfPageUp()

	case key.Matches(msg, m.keys.LogDown):
		m.logViewport.HalfPageDown()

	case key.Matches(msg, m.keys.Rematch):
		if !m.state.IsGameOver() {
			return nil
		}
		m.report(m.engine.Rematch())

	case !m.humansTurn():
		// everything below is a move

	case key.Matches(msg, m.keys.Roll):
		if !m.state.CanRollDice() {
			return nil
		}
		_, err := m.engine.RollDice()
		m.report(err)

	case key.Matches(msg, m.keys.Draw):
		if m.state.Phase != game.PhaseMatching {
			return nil
		}
		m.report(m.engine.ProcessDrawCard())

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.matches)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Capture):
		if m.state.Phase != game.PhaseMatching || len(m.matches) == 0 {
			return nil
		}
		m.report(m.engine.ProcessMatch(m.matches[m.selected]))
	}

	m.refresh()
	return nil
}

// report shows err in the status line, or clears it.
func (m *Model) report(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, game.ErrInvalidMatch):
		m.status = "That match is not allowed"
	default:
		m.status = err.Error()
	}
	if err != nil {
		m.logger.Debug("Action rejected", "error", err)
	}
}

// refresh pulls a fresh snapshot and the current player's options.
func (m *Model) refresh() {
	m.state = m.engine.State()

	m.matches = nil
	if m.humansTurn() && m.state.Phase == game.PhaseMatching {
		m.matches = m.engine.FindPossibleMatches()
	}
	if m.selected >= len(m.matches) {
		m.selected = 0
	}
}

// stepBot lets the driver start a bot turn if one is due.
func (m *Model) stepBot() tea.Cmd {
	if m.driver == nil {
		return nil
	}
	if _, err := m.driver.Step(m.ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Error("Bot turn failed", "error", err)
		m.status = err.Error()
	}
	return nil
}

func (m *Model) humansTurn() bool {
	p, ok := m.state.CurrentPlayer()
	return ok && !p.IsBot
}

func (m *Model) addStandings(ev game.GameOverEvent) {
	for _, r := range ev.Rankings {
		m.AddLogEntry(strings.Repeat(" ", 2) + standing(r.Rank, r.Player.Name, r.Score))
	}
	m.AddLogEntry("Press n for a new game or q to quit")
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the game log entries.
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// State returns the snapshot the model last rendered from.
func (m *Model) State() game.State {
	return m.state
}
