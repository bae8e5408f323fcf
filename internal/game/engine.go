package game

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/match"
	"github.com/lox/finest9/internal/player"
	"github.com/lox/finest9/internal/randutil"
	"github.com/lox/finest9/internal/scoring"
)

// DefaultTableauSize is the number of cards dealt to each player.
const DefaultTableauSize = 9

// Engine owns the game state and serializes every transition.
type Engine struct {
	mu    sync.Mutex
	state State

	decks   *cards.DeckManager
	roller  *dice.Roller
	matcher *match.Engine
	scorer  *scoring.Engine
	bus     EventBus
	logger  *log.Logger

	tableauSize int
	newGameID   func() string
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithTableauSize overrides the number of cards dealt to each player.
func WithTableauSize(n int) Option {
	return func(e *Engine) { e.tableauSize = n }
}

// WithGameIDs replaces the game ID generator.
func WithGameIDs(fn func() string) Option {
	return func(e *Engine) { e.newGameID = fn }
}

// WithEventBus publishes events on bus instead of a private one.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// NewEngine creates an engine from its collaborators.
func NewEngine(decks *cards.DeckManager, roller *dice.Roller, matcher *match.Engine, scorer *scoring.Engine, logger *log.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		state:       initialState(),
		decks:       decks,
		roller:      roller,
		matcher:     matcher,
		scorer:      scorer,
		logger:      logger.WithPrefix("game"),
		tableauSize: DefaultTableauSize,
		newGameID:   newGameID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = NewEventBus()
	}
	return e
}

// New wires a complete engine whose shuffles and rolls all draw from rng.
func New(rng randutil.Source, logger *log.Logger, opts ...Option) *Engine {
	scorer := scoring.New()
	return NewEngine(
		cards.NewDeckManager(rng, logger),
		dice.NewRoller(rng, logger),
		match.NewEngine(scorer),
		scorer,
		logger,
		opts...,
	)
}

func newGameID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Events returns the bus the engine publishes on.
func (e *Engine) Events() EventBus {
	return e.bus
}

// State returns a deep copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// update runs fn under the lock and publishes whatever events it produced
// once the lock is released.
func (e *Engine) update(fn func() ([]Event, error)) error {
	e.mu.Lock()
	events, err := fn()
	e.mu.Unlock()

	for _, ev := range events {
		e.bus.Publish(ev)
	}
	return err
}

// StartGame shuffles a fresh deck and deals a tableau to each player in order.
func (e *Engine) StartGame(players []player.Player) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}
	if need := len(players) * e.tableauSize; need > cards.DeckSize {
		return fmt.Errorf("%d players need %d cards, deck has %d", len(players), need, cards.DeckSize)
	}

	return e.update(func() ([]Event, error) {
		deck := e.decks.Shuffle(cards.NewDeck())

		seated := make([]player.Player, len(players))
		for i, p := range players {
			var tableau []cards.Card
			tableau, deck = e.decks.Deal(deck, e.tableauSize)
			seated[i] = p.Reset().WithTableau(tableau)
		}

		e.state = State{
			GameID:  e.newGameID(),
			Players: seated,
			Deck:    deck,
			// a full table can leave nothing to draw
			DeckEmpty: len(deck) == 0,
			Phase:     PhaseRolling,
		}

		e.logger.Info("Starting game", "gameID", e.state.GameID, "players", len(seated), "deck", len(deck))
		return []Event{GameStartedEvent{newBase(e.state)}}, nil
	})
}

// Rematch starts a new game with the current roster.
func (e *Engine) Rematch() error {
	e.mu.Lock()
	players := slices.Clone(e.state.Players)
	e.mu.Unlock()

	return e.StartGame(players)
}

// RollDice rolls for the current player, discarding nines, and moves to the
// matching phase. A player rolls once per turn.
func (e *Engine) RollDice() (dice.Roll, error) {
	var roll dice.Roll
	err := e.update(func() ([]Event, error) {
		if !e.state.Phase.active() {
			return nil, ErrGameNotActive
		}
		if !e.state.CanRollDice() {
			return nil, fmt.Errorf("%w: cannot roll in %s", ErrWrongPhase, e.state.Phase)
		}

		roll = e.roller.RollUntilNotNine()
		e.state.LastDiceRoll = &roll
		e.state.Phase = PhaseMatching

		current, _ := e.state.CurrentPlayer()
		e.logger.Debug("Dice rolled", "player", current.Name, "roll", roll.String())
		return []Event{DiceRolledEvent{base: newBase(e.state), Player: current, Roll: roll}}, nil
	})
	return roll, err
}

// FindPossibleMatches lists the captures open to the current player. It is
// empty until the dice have been rolled.
func (e *Engine) FindPossibleMatches() []match.Match {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.state.CurrentPlayer()
	if !ok || e.state.LastDiceRoll == nil {
		return nil
	}
	return e.matcher.FindPossibleMatches(current.Tableau, *e.state.LastDiceRoll)
}

// ProcessMatch captures m for the current player and ends their turn. The
// state is unchanged when an error is returned.
func (e *Engine) ProcessMatch(m match.Match) error {
	return e.update(func() ([]Event, error) {
		return e.processMatch(m)
	})
}

func (e *Engine) processMatch(m match.Match) ([]Event, error) {
	if e.state.LastDiceRoll == nil {
		return nil, ErrNoActiveDiceRoll
	}
	if !e.state.Phase.active() {
		return nil, ErrGameNotActive
	}
	if !e.matcher.ValidateMatch(m, *e.state.LastDiceRoll) {
		return nil, fmt.Errorf("%w: %s on %s", ErrInvalidMatch, m.Type, e.state.LastDiceRoll)
	}

	idx := e.state.CurrentPlayerIndex
	current := e.state.Players[idx]

	ids := m.CardIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidMatch)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: card %s listed twice", ErrInvalidMatch, id)
		}
		if !current.HasCard(id) {
			return nil, fmt.Errorf("%w: card %s is not in %s's tableau", ErrInvalidMatch, id, current.Name)
		}
		seen[id] = true
	}

	var taken []cards.Card
	tableau := slices.DeleteFunc(slices.Clone(current.Tableau), func(c cards.Card) bool {
		if seen[c.ID()] {
			taken = append(taken, c)
			return true
		}
		return false
	})

	updated := current.WithTableau(tableau).WithCaptured(append(slices.Clone(current.Captured), taken...))
	updated.Score = e.scorer.PlayerScore(updated)
	e.state.Players[idx] = updated
	e.state.Turn++

	e.logger.Debug("Match captured", "player", updated.Name, "match", m.String(), "score", updated.Score)

	events := []Event{MatchCapturedEvent{base: newBase(e.state), Player: updated.Clone(), Match: m.Clone()}}
	return append(events, e.advanceTurn()...), nil
}

// ProcessDrawCard draws one card into the current player's tableau and ends
// their turn. With an empty deck the turn simply passes.
func (e *Engine) ProcessDrawCard() error {
	return e.update(e.processDrawCard)
}

func (e *Engine) processDrawCard() ([]Event, error) {
	if !e.state.Phase.active() {
		return nil, ErrGameNotActive
	}

	idx := e.state.CurrentPlayerIndex
	current := e.state.Players[idx]
	var events []Event

	if len(e.state.Deck) == 0 {
		e.state.Turn++
		e.logger.Debug("Deck empty, passing", "player", current.Name)
		events = append(events, CardDrawnEvent{base: newBase(e.state), Player: current.Clone()})
		if !e.state.FinalRoundStarted {
			// only reachable when the deal used every card
			events = append(events, e.startFinalRound()...)
		}
		return append(events, e.advanceTurn()...), nil
	}

	dealt, deck := e.decks.Deal(e.state.Deck, 1)
	updated := current.WithTableau(append(slices.Clone(current.Tableau), dealt...))
	updated.Score = e.scorer.PlayerScore(updated)
	e.state.Players[idx] = updated
	e.state.Deck = deck
	e.state.DeckEmpty = len(deck) == 0
	e.state.Turn++

	card := dealt[0]
	e.logger.Debug("Card drawn", "player", updated.Name, "card", card.String(), "deck", len(deck))
	events = append(events, CardDrawnEvent{base: newBase(e.state), Player: updated.Clone(), Card: &card})

	if e.state.DeckEmpty && !e.state.FinalRoundStarted {
		events = append(events, e.startFinalRound()...)
	}
	return append(events, e.advanceTurn()...), nil
}

// ApplyMove commits move only while the engine is still at ref. A move for a
// finished turn or a different game returns ErrStaleMove.
func (e *Engine) ApplyMove(ref TurnRef, move Move) error {
	return e.update(func() ([]Event, error) {
		if e.state.Ref() != ref || !e.state.Phase.active() {
			e.logger.Debug("Discarding stale move", "move", move.String(), "turn", ref.Turn, "current", e.state.Turn)
			return nil, ErrStaleMove
		}
		if move.Kind == MoveCapture {
			return e.processMatch(move.Match)
		}
		return e.processDrawCard()
	})
}

// advanceTurn passes play to the next player, or ends the game when the
// final round is complete.
func (e *Engine) advanceTurn() []Event {
	from := e.state.CurrentPlayerIndex
	if !e.nextPlayer() {
		return e.endGame()
	}
	return e.beginTurn(from)
}

// beginTurn clears the previous roll so the new current player starts by
// rolling.
func (e *Engine) beginTurn(from int) []Event {
	e.state.LastDiceRoll = nil
	if e.state.FinalRoundStarted {
		e.state.Phase = PhaseFinalRound
	} else {
		e.state.Phase = PhaseRolling
	}
	return []Event{TurnAdvancedEvent{base: newBase(e.state), From: from, To: e.state.CurrentPlayerIndex}}
}

// NextPlayer skips to the next seat, discarding any roll and pending move for
// the current turn. It reports false, without changing anything, when the game
// is not running or when that seat belongs to the player who started the
// final round: the round is over and the next move ends the game.
func (e *Engine) NextPlayer() bool {
	var moved bool
	_ = e.update(func() ([]Event, error) {
		if !e.state.Phase.active() {
			return nil, nil
		}
		from := e.state.CurrentPlayerIndex
		if moved = e.nextPlayer(); !moved {
			return nil, nil
		}
		e.state.Turn++
		return e.beginTurn(from), nil
	})
	return moved
}

func (e *Engine) nextPlayer() bool {
	n := len(e.state.Players)
	if n == 0 {
		return false
	}

	next := (e.state.CurrentPlayerIndex + 1) % n
	if e.state.FinalRoundStarted && e.state.FinalRoundPlayerIndex != nil && next == *e.state.FinalRoundPlayerIndex {
		return false
	}
	e.state.CurrentPlayerIndex = next
	return true
}

// StartFinalRound gives every player one more turn, counted from the current
// player. It does nothing once the final round is running.
func (e *Engine) StartFinalRound() {
	_ = e.update(func() ([]Event, error) {
		if e.state.FinalRoundStarted || !e.state.Phase.active() {
			return nil, nil
		}
		return e.startFinalRound(), nil
	})
}

func (e *Engine) startFinalRound() []Event {
	idx := e.state.CurrentPlayerIndex
	e.state.FinalRoundStarted = true
	e.state.FinalRoundPlayerIndex = &idx
	e.state.Phase = PhaseFinalRound

	current, _ := e.state.CurrentPlayer()
	e.logger.Info("Final round started", "player", current.Name)
	return []Event{FinalRoundStartedEvent{base: newBase(e.state), TriggeredBy: current.Clone()}}
}

// EndGame scores every player, records the winner and moves to game over.
func (e *Engine) EndGame() {
	_ = e.update(func() ([]Event, error) {
		if e.state.Phase == PhaseGameOver {
			return nil, nil
		}
		return e.endGame(), nil
	})
}

func (e *Engine) endGame() []Event {
	for i, p := range e.state.Players {
		e.state.Players[i] = p.WithScore(e.scorer.PlayerScore(p))
	}

	e.state.Winner = nil
	if w, ok := e.scorer.DetermineWinner(e.state.Players); ok {
		e.state.Winner = &w
	}
	e.state.LastDiceRoll = nil
	e.state.Phase = PhaseGameOver

	ev := GameOverEvent{
		base:     newBase(e.state),
		Rankings: e.scorer.PlayersByRank(e.state.Players),
	}
	if e.state.Winner != nil {
		w := e.state.Winner.Clone()
		ev.Winner = &w
		e.logger.Info("Game over", "gameID", e.state.GameID, "winner", w.Name, "score", w.Score, "turns", e.state.Turn)
	} else {
		e.logger.Info("Game over", "gameID", e.state.GameID, "winner", "none")
	}
	return []Event{ev}
}

// ResetGame returns the engine to the empty setup state.
func (e *Engine) ResetGame() {
	_ = e.update(func() ([]Event, error) {
		e.state = initialState()
		e.logger.Debug("Game reset")
		return []Event{GameResetEvent{newBase(e.state)}}, nil
	})
}

// SetBotThinking marks the current bot as deciding. Only valid after a roll.
func (e *Engine) SetBotThinking() error {
	return e.update(func() ([]Event, error) {
		if e.state.Phase != PhaseMatching {
			return nil, fmt.Errorf("%w: cannot think in %s", ErrWrongPhase, e.state.Phase)
		}
		e.state.Phase = PhaseBotThinking
		return []Event{PhaseChangedEvent{base: newBase(e.state), From: PhaseMatching, To: PhaseBotThinking}}, nil
	})
}

func (e *Engine) CanRollDice() bool {
	return e.State().CanRollDice()
}

func (e *Engine) IsGameOver() bool {
	return e.State().IsGameOver()
}

func (e *Engine) IsFinalRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.FinalRoundStarted
}

// DeckCount returns the number of cards left to draw.
func (e *Engine) DeckCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.state.Deck)
}

func (e *Engine) CurrentPlayer() (player.Player, bool) {
	s := e.State()
	return s.CurrentPlayer()
}

// TurnRef identifies the turn currently in progress.
func (e *Engine) TurnRef() TurnRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Ref()
}

// FinalScores maps player ID to score.
func (e *Engine) FinalScores() map[string]int {
	s := e.State()
	return e.scorer.FinalScores(s.Players)
}

// PlayerRankings returns the standings, best first.
func (e *Engine) PlayerRankings() []scoring.Ranking {
	s := e.State()
	return e.scorer.PlayersByRank(s.Players)
}

// setState replaces the state wholesale. Tests use it to build positions.
func (e *Engine) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s.Clone()
}
