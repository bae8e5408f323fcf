package game

import (
	"fmt"

	"github.com/lox/finest9/cards"
)

// VerifyConservation checks that every card of the deck is in exactly one
// place: the draw pile, a tableau or a captured pile.
func VerifyConservation(s State) error {
	if s.Phase == PhaseSetup {
		return nil
	}

	where := make(map[string]string, cards.DeckSize)
	place := func(loc string, cs []cards.Card) error {
		for _, c := range cs {
			if prev, ok := where[c.ID()]; ok {
				return fmt.Errorf("card %s is in %s and %s", c, prev, loc)
			}
			where[c.ID()] = loc
		}
		return nil
	}

	if err := place("deck", s.Deck); err != nil {
		return err
	}
	for _, p := range s.Players {
		if err := place(p.Name+"'s tableau", p.Tableau); err != nil {
			return err
		}
		if err := place(p.Name+"'s captured pile", p.Captured); err != nil {
			return err
		}
	}

	if len(where) != cards.DeckSize {
		return fmt.Errorf("found %d cards, want %d", len(where), cards.DeckSize)
	}
	if s.DeckEmpty != (len(s.Deck) == 0) {
		return fmt.Errorf("deck empty flag is %t with %d cards left", s.DeckEmpty, len(s.Deck))
	}
	return nil
}
