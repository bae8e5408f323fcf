package match

import (
	"slices"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/scoring"
)

// sequenceLength is the number of cards in a sequence.
const sequenceLength = 3

// Engine detects and validates matches.
type Engine struct {
	scorer *scoring.Engine
}

// NewEngine creates a match engine that scores captures with scorer.
func NewEngine(scorer *scoring.Engine) *Engine {
	return &Engine{scorer: scorer}
}

// FindPossibleMatches lists every capture available to tableau for roll:
// special-roll matches first, then the normal pair/set, then the normal
// sequences.
func (e *Engine) FindPossibleMatches(tableau []cards.Card, roll dice.Roll) []Match {
	var matches []Match

	if roll.IsSnakeEyes() {
		for _, m := range e.FindAllPairs(tableau) {
			m.Type = SnakeEyes
			m.Valid = true
			matches = append(matches, m)
		}
	}

	if roll.IsBoxcars() {
		for _, m := range e.FindAllSequences(tableau) {
			m.Type = Boxcars
			m.Valid = true
			matches = append(matches, m)
		}
	}

	if m, ok := e.DetectPairs(tableau, roll.Total()); ok {
		matches = append(matches, m)
	}

	return append(matches, e.DetectSequences(tableau, roll.Total())...)
}

// DetectPairs returns the single pair or set matching target. A natural
// group of two or more is preferred over spending wilds; a lone natural card
// takes every wild with it; failing that, two or more wilds match on their own.
func (e *Engine) DetectPairs(tableau []cards.Card, target int) (Match, bool) {
	wilds, naturals := splitWilds(tableau)

	var matching []cards.Card
	for _, c := range naturals {
		if c.PointValue() == target {
			matching = append(matching, c)
		}
	}

	switch {
	case len(matching) >= 2:
		return e.newMatch(groupType(len(matching)), matching, true), true
	case len(matching) == 1 && len(wilds) >= 1:
		return e.newMatch(Pair, append(matching, wilds...), true), true
	case len(matching) == 0 && len(wilds) >= 2:
		return e.newMatch(groupType(len(wilds)), wilds, true), true
	}
	return Match{}, false
}

// DetectSequences keeps the sequences that contain a wild or a card whose
// point value equals diceValue, marked valid.
func (e *Engine) DetectSequences(tableau []cards.Card, diceValue int) []Match {
	var valid []Match
	for _, m := range e.FindAllSequences(tableau) {
		if slices.ContainsFunc(m.Cards, func(c cards.Card) bool {
			return c.IsWild() || c.PointValue() == diceValue
		}) {
			m.Valid = true
			valid = append(valid, m)
		}
	}
	return valid
}

// FindAllSequences lists every three-card sequence in tableau regardless of
// the dice. Adjacency runs 2..14 without wrapping, so Q-K-A is a sequence and
// K-A-2 is not. Each distinct triple of card instances is reported once.
// Results are unvalidated.
func (e *Engine) FindAllSequences(tableau []cards.Card) []Match {
	if len(tableau) < sequenceLength {
		return nil
	}

	wilds, naturals := splitWilds(tableau)
	slices.SortStableFunc(naturals, func(a, b cards.Card) int {
		return a.AdjacencyValue() - b.AdjacencyValue()
	})

	var sequences []Match

	// Natural sequences
	for i := 0; i < len(naturals)-2; i++ {
		for j := i + 1; j < len(naturals)-1; j++ {
			for k := j + 1; k < len(naturals); k++ {
				v1, v2, v3 := naturals[i].AdjacencyValue(), naturals[j].AdjacencyValue(), naturals[k].AdjacencyValue()
				if v2 == v1+1 && v3 == v2+1 {
					sequences = append(sequences, e.newSequence(naturals[i], naturals[j], naturals[k]))
				}
			}
		}
	}

	// One wild closes a gap or extends either end of two naturals.
	if len(wilds) >= 1 {
		for i := 0; i < len(naturals)-1; i++ {
			for j := i + 1; j < len(naturals); j++ {
				diff := naturals[j].AdjacencyValue() - naturals[i].AdjacencyValue()
				if diff == 1 || diff == 2 {
					sequences = append(sequences, e.newSequence(naturals[i], naturals[j], wilds[0]))
				}
			}
		}
	}

	// Two wilds complete any single natural.
	if len(wilds) >= 2 {
		for _, c := range naturals {
			sequences = append(sequences, e.newSequence(c, wilds[0], wilds[1]))
		}
	}

	if len(wilds) >= 3 {
		sequences = append(sequences, e.newSequence(wilds[0], wilds[1], wilds[2]))
	}

	return sequences
}

// FindAllPairs groups tableau by rank and returns every group of two or more
// as a pair or set, in the order each rank first appears. Nines group with
// each other like any other rank.
func (e *Engine) FindAllPairs(tableau []cards.Card) []Match {
	var order []cards.Rank
	byRank := make(map[cards.Rank][]cards.Card)
	for _, c := range tableau {
		if _, seen := byRank[c.Rank]; !seen {
			order = append(order, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	var pairs []Match
	for _, r := range order {
		if group := byRank[r]; len(group) >= 2 {
			pairs = append(pairs, e.newMatch(groupType(len(group)), group, true))
		}
	}
	return pairs
}

// ValidateMatch reports whether m may be captured on roll. Special-roll
// matches are always legal; anything else relies on the Valid flag set when
// it was found.
func (e *Engine) ValidateMatch(m Match, roll dice.Roll) bool {
	if m.Type == SnakeEyes || m.Type == Boxcars {
		return true
	}
	return m.Valid
}

func (e *Engine) newMatch(t Type, cs []cards.Card, valid bool) Match {
	cs = slices.Clone(cs)
	return Match{
		Type:  t,
		Cards: cs,
		Score: e.scorer.CardsValue(cs),
		Valid: valid,
	}
}

func (e *Engine) newSequence(a, b, c cards.Card) Match {
	return e.newMatch(Sequence, []cards.Card{a, b, c}, false)
}

func groupType(n int) Type {
	if n == 2 {
		return Pair
	}
	return Set
}

// splitWilds partitions cs into wild nines and everything else, keeping order.
func splitWilds(cs []cards.Card) (wilds, naturals []cards.Card) {
	for _, c := range cs {
		if c.IsWild() {
			wilds = append(wilds, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return wilds, naturals
}
