package cards

import (
	"fmt"
	"strings"
)

// ParseCards parses a string of card notation into a slice of cards.
// Format: "QhKhAh" where each card is [Rank][Suit]
// Ranks: A, K, Q, J, T (or 10), 9, 8, 7, 6, 5, 4, 3, 2
// Suits: h (hearts), d (diamonds), c (clubs), s (spades)
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "") // Remove any spaces

	var out []Card
	for i := 0; i < len(s); {
		var rank Rank
		if strings.HasPrefix(s[i:], "10") {
			rank = Ten
			i += 2
		} else {
			r, err := parseRank(s[i])
			if err != nil {
				return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
			}
			rank = r
			i++
		}

		if i >= len(s) {
			return nil, fmt.Errorf("incomplete card at position %d", i)
		}
		suit, err := parseSuit(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i], i, err)
		}
		i++

		out = append(out, New(rank, suit))
	}

	return out, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cs, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cs
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank")
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit")
	}
}
