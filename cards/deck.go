package cards

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/finest9/internal/randutil"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns the 52 cards of a standard deck in suit-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, New(rank, suit))
		}
	}
	return deck
}

// DeckManager shuffles and deals decks. Decks are plain slices where index 0
// is the top card; the manager never mutates a slice it is given.
type DeckManager struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewDeckManager creates a deck manager drawing randomness from rng.
func NewDeckManager(rng randutil.Source, logger *log.Logger) *DeckManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DeckManager{
		rng:    rng,
		logger: logger.WithPrefix("deck"),
	}
}

// Shuffle returns a uniformly random permutation of deck using Fisher-Yates.
func (m *DeckManager) Shuffle(deck []Card) []Card {
	shuffled := slices.Clone(deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := m.rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal splits deck into the top n cards and the rest. Asking for more cards
// than the deck holds deals the whole deck and logs a warning.
func (m *DeckManager) Deal(deck []Card, n int) (dealt, remaining []Card) {
	if n > len(deck) {
		m.logger.Warn("Cannot deal requested cards, dealing what is left",
			"requested", n, "available", len(deck))
		n = len(deck)
	}
	if n < 0 {
		n = 0
	}
	return slices.Clone(deck[:n]), slices.Clone(deck[n:])
}

// Remaining returns the number of cards left in deck.
func (m *DeckManager) Remaining(deck []Card) int {
	return len(deck)
}
