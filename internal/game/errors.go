package game

import "errors"

var (
	// ErrNoActiveDiceRoll means a capture was attempted before rolling.
	ErrNoActiveDiceRoll = errors.New("no dice roll available")
	// ErrInvalidMatch means the match is not legal for the current roll or
	// tableau. The state is left unchanged.
	ErrInvalidMatch = errors.New("invalid match for current dice roll")
	// ErrNoPlayers is returned when starting a game without players.
	ErrNoPlayers = errors.New("game needs at least one player")
	// ErrGameNotActive is returned for turn actions outside a running game.
	ErrGameNotActive = errors.New("no game in progress")
	// ErrWrongPhase is returned when an action does not fit the current phase.
	ErrWrongPhase = errors.New("action not allowed in current phase")
	// ErrStaleMove means a delayed move was for a turn that is already over.
	ErrStaleMove = errors.New("move is for a turn that has already ended")
)
