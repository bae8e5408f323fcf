package game

// Phase is the state of the turn state machine.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseRolling  Phase = "rolling"
	PhaseMatching Phase = "matching"
	// PhaseBotThinking is a sub-state of a bot's Matching phase used only to
	// gate UI feedback.
	PhaseBotThinking Phase = "bot-thinking"
	PhaseFinalRound  Phase = "final-round"
	PhaseGameOver    Phase = "game-over"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// active reports whether turns can be played in this phase.
func (p Phase) active() bool {
	return p != PhaseSetup && p != PhaseGameOver
}
