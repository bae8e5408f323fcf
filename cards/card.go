// Package cards holds the playing-card model and deck handling for Finest 9.
//
// A card has two numeric readings. PointValue is used for dice matching and
// scoring (J/Q/K count 10, an Ace 11). AdjacencyValue orders cards inside a
// sequence (J=11, Q=12, K=13, A=14), which makes the Ace high only. Any 9 is
// wild.
package cards

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit name used in card IDs
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The numeric value doubles as the adjacency
// value used for sequences.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from low to high.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Nine {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// PointValue is the value used for dice matching and scoring.
func (r Rank) PointValue() int {
	switch {
	case r >= Two && r <= Ten:
		return int(r)
	case r == Jack, r == Queen, r == King:
		return 10
	case r == Ace:
		return 11
	}
	return 0
}

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// New returns the card of the given rank and suit.
func New(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// ID returns the unique identifier of the card, e.g. "hearts-A".
func (c Card) ID() string {
	return c.Suit.String() + "-" + c.Rank.String()
}

// String returns rank and suit symbol, e.g. "Q♥".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// PointValue returns the matching/scoring value of the card.
func (c Card) PointValue() int {
	return c.Rank.PointValue()
}

// AdjacencyValue returns the position of the card in a sequence (2..14).
func (c Card) AdjacencyValue() int {
	return int(c.Rank)
}

// IsWild reports whether the card is a wild nine.
func (c Card) IsWild() bool {
	return c.Rank == Nine
}

// IDs returns the IDs of the given cards in order.
func IDs(cs []Card) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID()
	}
	return ids
}

// FormatCards joins the short form of each card with spaces.
func FormatCards(cs []Card) string {
	out := ""
	for i, c := range cs {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
