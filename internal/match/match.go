// Package match finds and validates the captures available to a tableau for
// a given dice roll.
//
// A normal roll offers at most one pair/set (cards whose point value equals
// the dice total, topped up with wild nines when needed) plus every three-card
// sequence that contains a card of that value or a wild. Snake eyes (2) makes
// every pair/set capturable and boxcars (12) every sequence.
package match

import (
	"fmt"
	"slices"

	"github.com/lox/finest9/cards"
)

// Type identifies the kind of capture.
type Type int

const (
	Pair      Type = iota // 2 cards of the same value
	Set                   // 3+ cards of the same value
	Sequence              // 3 consecutive ranks
	SnakeEyes             // any pair/set on a roll of 2
	Boxcars               // any sequence on a roll of 12
)

// String returns the string representation of the match type
func (t Type) String() string {
	switch t {
	case Pair:
		return "pair"
	case Set:
		return "set"
	case Sequence:
		return "sequence"
	case SnakeEyes:
		return "snake-eyes"
	case Boxcars:
		return "boxcars"
	default:
		return "unknown"
	}
}

// Match is a candidate capture. Cards are the tableau cards themselves; the
// engine removes them from the tableau by ID.
type Match struct {
	Type  Type
	Cards []cards.Card
	Score int
	Valid bool // legal for the roll it was found with
}

// CardIDs returns the IDs of the cards in the match.
func (m Match) CardIDs() []string {
	return cards.IDs(m.Cards)
}

// Clone returns a copy of m that shares no memory with it.
func (m Match) Clone() Match {
	m.Cards = slices.Clone(m.Cards)
	return m
}

func (m Match) String() string {
	return fmt.Sprintf("%s: %s (%d pts)", m.Type, cards.FormatCards(m.Cards), m.Score)
}
