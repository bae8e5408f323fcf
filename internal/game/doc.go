// Package game implements the Finest 9 turn state machine.
//
// The main type is Engine, which owns the authoritative State: the players'
// tableaus and captured piles, the draw deck, the current roll and the phase.
// Every mutation goes through an Engine method; readers get deep-copied
// snapshots from State and may subscribe to an EventBus for change
// notifications.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.New(rng, logger)
//	_ = e.StartGame([]player.Player{
//	    player.New("player-1", "Alice", false),
//	    player.New("bot-1", "Alpha", true),
//	})
//	roll, _ := e.RollDice()
//	if matches := e.FindPossibleMatches(); len(matches) > 0 {
//	    _ = e.ProcessMatch(matches[0])
//	} else {
//	    _ = e.ProcessDrawCard()
//	}
//
// # Turn Cycle
//
// Rolling -> Matching -> (capture or draw) -> Rolling for the next player.
// When a draw empties the deck the final round starts: every player, starting
// with the one after whoever drew the last card, gets one more turn, and the
// game ends when play would return to that player.
//
// # Deterministic Testing
//
// All randomness (shuffle, dice) comes from the randutil.Source passed to New,
// so a fixed seed replays the same game.
package game
