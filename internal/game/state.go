package game

import (
	"slices"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/player"
)

// State is a snapshot of a game. Snapshots returned by the engine are deep
// copies and never change after they are handed out.
type State struct {
	GameID             string
	Players            []player.Player
	CurrentPlayerIndex int
	Deck               []cards.Card // index 0 is the top card
	DeckEmpty          bool
	FinalRoundStarted  bool
	// FinalRoundPlayerIndex is the player who drew the last card.
	FinalRoundPlayerIndex *int
	LastDiceRoll          *dice.Roll
	Phase                 Phase
	Winner                *player.Player
	// Turn counts completed moves in this game.
	Turn int
}

// TurnRef identifies one turn of one game. A move scheduled for later is
// only applied while the engine is still at the same TurnRef.
type TurnRef struct {
	GameID string
	Turn   int
}

func initialState() State {
	return State{
		Players: []player.Player{},
		Deck:    []cards.Card{},
		Phase:   PhaseSetup,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Players = make([]player.Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.Clone()
	}
	out.Deck = slices.Clone(s.Deck)
	if s.FinalRoundPlayerIndex != nil {
		idx := *s.FinalRoundPlayerIndex
		out.FinalRoundPlayerIndex = &idx
	}
	if s.LastDiceRoll != nil {
		roll := *s.LastDiceRoll
		out.LastDiceRoll = &roll
	}
	if s.Winner != nil {
		w := s.Winner.Clone()
		out.Winner = &w
	}
	return out
}

// CurrentPlayer returns the player whose turn it is. ok is false before a
// game has started.
func (s State) CurrentPlayer() (p player.Player, ok bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return player.Player{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

// Ref returns the TurnRef of the snapshot.
func (s State) Ref() TurnRef {
	return TurnRef{GameID: s.GameID, Turn: s.Turn}
}

func (s State) CanRollDice() bool {
	return s.Phase == PhaseRolling || s.Phase == PhaseFinalRound
}

func (s State) IsGameOver() bool {
	return s.Phase == PhaseGameOver
}
