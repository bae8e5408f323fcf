package game

// Instruction returns the prompt to show for the current phase.
func Instruction(s State) string {
	current, ok := s.CurrentPlayer()

	switch s.Phase {
	case PhaseSetup:
		return "Set up players to begin"
	case PhaseRolling:
		if ok && current.IsBot {
			return "Bot is playing..."
		}
		return "Roll the dice to start your turn"
	case PhaseMatching:
		if ok && current.IsBot {
			return "Bot is playing..."
		}
		return "Select a match or draw a card"
	case PhaseBotThinking:
		return "Bot is thinking..."
	case PhaseFinalRound:
		if ok && current.IsBot {
			return "Bot is playing..."
		}
		return "Final round! Roll the dice"
	case PhaseGameOver:
		return "Game over"
	default:
		return ""
	}
}
