package main

import (
	"fmt"
)

const rulesText = `Finest 9

Every player is dealt 9 cards face up. Nines are wild.

On your turn roll two dice. A total of 9 is rolled again. Then capture one
match from your tableau, or draw a card from the deck.

  Pair / Set   2 or more cards whose point value equals the roll
  Sequence     3 consecutive ranks (Q-K-A counts, K-A-2 does not) with at
               least one card matching the roll
  Snake eyes   a roll of 2 lets you capture any pair or set
  Boxcars      a roll of 12 lets you capture any sequence

A wild nine fills in for any card of a pair, set or sequence.

Point values: 2-9 face value, 10/J/Q/K 10, Ace 11.
Score: captured cards minus the cards still in your tableau.

When the deck runs out the final round starts. Everyone else gets one more
turn, then the highest score wins. Ties go to the earlier seat.
`

type RulesCmd struct{}

func (r *RulesCmd) Run() error {
	fmt.Print(rulesText)
	return nil
}
