package match

import (
	"testing"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(scoring.New())
}

func hand(s string) []cards.Card {
	return cards.MustParseCards(s)
}

func TestDetectPairs(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	tests := []struct {
		name    string
		tableau string
		target  int
		want    string // cards in the match, "" for none
		typ     Type
		score   int
	}{
		{"natural pair", "7h7d3h", 7, "7h7d", Pair, 14},
		{"natural pair ignores wild", "7h9s7d3h", 7, "7h7d", Pair, 14},
		{"face cards form a set by value", "KhKdQcAs", 10, "KhKdQc", Set, 30},
		{"single natural takes every wild", "7h9c9d", 7, "7h9c9d", Pair, 25},
		{"wilds alone", "9c9d2h", 5, "9c9d", Pair, 18},
		{"three wilds alone form a set", "9c9d9h", 4, "9c9d9h", Set, 27},
		{"lone natural without wild", "7h3h", 7, "", 0, 0},
		{"single wild is not enough", "9c3h", 5, "", 0, 0},
		{"ace matches eleven", "AhAs2c", 11, "AhAs", Pair, 22},
		{"nothing for twelve", "KhKdQc", 12, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := e.DetectPairs(hand(tt.tableau), tt.target)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, hand(tt.want), m.Cards)
			assert.Equal(t, tt.typ, m.Type)
			assert.Equal(t, tt.score, m.Score)
			assert.True(t, m.Valid)
		})
	}
}

func TestFindAllSequencesNatural(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	seqs := e.FindAllSequences(hand("AhKhQh"))
	require.Len(t, seqs, 1)
	assert.Equal(t, hand("QhKhAh"), seqs[0].Cards, "sorted by adjacency")
	assert.Equal(t, 31, seqs[0].Score)
	assert.Equal(t, Sequence, seqs[0].Type)
	assert.False(t, seqs[0].Valid, "raw candidates are unvalidated")
}

func TestFindAllSequencesNoWrap(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	assert.Empty(t, e.FindAllSequences(hand("KhAh2h")))
	assert.Empty(t, e.FindAllSequences(hand("Ah2h3h")), "ace is high only")
}

func TestFindAllSequencesDuplicateRanks(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	seqs := e.FindAllSequences(hand("QhQsKhAh"))
	require.Len(t, seqs, 2)
	assert.Equal(t, []string{"hearts-Q", "hearts-K", "hearts-A"}, seqs[0].CardIDs())
	assert.Equal(t, []string{"spades-Q", "hearts-K", "hearts-A"}, seqs[1].CardIDs())
}

func TestFindAllSequencesTooFewCards(t *testing.T) {
	t.Parallel()
	assert.Empty(t, newTestEngine().FindAllSequences(hand("9h9d")))
}

func TestFindAllSequencesWithWilds(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	tests := []struct {
		name    string
		tableau string
		want    [][]string
	}{
		{
			name:    "wild fills a gap",
			tableau: "5h7d9c",
			want:    [][]string{{"hearts-5", "diamonds-7", "clubs-9"}},
		},
		{
			name:    "wild extends an end regardless of tableau order",
			tableau: "KhQd9c",
			want:    [][]string{{"diamonds-Q", "hearts-K", "clubs-9"}},
		},
		{
			name:    "gap too wide",
			tableau: "5h8d9c",
			want:    nil,
		},
		{
			name:    "two wilds complete a single card",
			tableau: "4h9c9d",
			want:    [][]string{{"hearts-4", "clubs-9", "diamonds-9"}},
		},
		{
			name:    "three wilds",
			tableau: "9h9d9c",
			want:    [][]string{{"hearts-9", "diamonds-9", "clubs-9"}},
		},
		{
			name:    "natural and wild candidates both listed",
			tableau: "2h3h4h9s",
			want: [][]string{
				{"hearts-2", "hearts-3", "hearts-4"},
				{"hearts-2", "hearts-3", "spades-9"},
				{"hearts-2", "hearts-4", "spades-9"},
				{"hearts-3", "hearts-4", "spades-9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs := e.FindAllSequences(hand(tt.tableau))
			var got [][]string
			for _, s := range seqs {
				got = append(got, s.CardIDs())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectSequences(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	assert.Empty(t, e.DetectSequences(hand("2h3d4c"), 7))

	seqs := e.DetectSequences(hand("2h3d4c"), 3)
	require.Len(t, seqs, 1)
	assert.True(t, seqs[0].Valid)

	// A wild always satisfies the dice.
	seqs = e.DetectSequences(hand("5h7d9c"), 11)
	require.Len(t, seqs, 1)
	assert.True(t, seqs[0].Valid)

	// Q and K both count ten.
	seqs = e.DetectSequences(hand("QhKhAh"), 10)
	require.Len(t, seqs, 1)
	assert.Equal(t, 31, seqs[0].Score)
}

func TestFindAllPairs(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	pairs := e.FindAllPairs(hand("5hKc5dKsKh2c9h9d"))
	require.Len(t, pairs, 3)

	assert.Equal(t, hand("5h5d"), pairs[0].Cards)
	assert.Equal(t, Pair, pairs[0].Type)
	assert.Equal(t, hand("KcKsKh"), pairs[1].Cards)
	assert.Equal(t, Set, pairs[1].Type)
	assert.Equal(t, hand("9h9d"), pairs[2].Cards)

	// Pairs by rank, not by value: J and Q do not pair.
	assert.Empty(t, e.FindAllPairs(hand("JhQh")))
}

func TestFindPossibleMatchesNormalRoll(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	matches := e.FindPossibleMatches(hand("7h7d3h5c6s"), dice.MustRoll(3, 4))
	require.Len(t, matches, 3)

	assert.Equal(t, Pair, matches[0].Type)
	assert.Equal(t, 14, matches[0].Score)
	assert.Equal(t, Sequence, matches[1].Type)
	assert.Equal(t, Sequence, matches[2].Type)
	for _, m := range matches {
		assert.True(t, m.Valid)
	}
}

func TestFindPossibleMatchesSnakeEyes(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	matches := e.FindPossibleMatches(hand("5h5dKcKsKh2c"), dice.MustRoll(1, 1))
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, SnakeEyes, m.Type)
		assert.True(t, m.Valid)
	}
	assert.Equal(t, 30, matches[1].Score)
}

func TestFindPossibleMatchesBoxcars(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	matches := e.FindPossibleMatches(hand("3h4d5cJh"), dice.MustRoll(6, 6))
	require.Len(t, matches, 1)
	assert.Equal(t, Boxcars, matches[0].Type)
	assert.True(t, matches[0].Valid)
	assert.Equal(t, hand("3h4d5c"), matches[0].Cards)
}

func TestFindPossibleMatchesBoxcarsWithWilds(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	// Boxcars sequences, then the wild pair (no card is worth 12), then the
	// normal sequences that a wild makes valid.
	matches := e.FindPossibleMatches(hand("3h9c9d"), dice.MustRoll(6, 6))
	require.Len(t, matches, 3)
	assert.Equal(t, Boxcars, matches[0].Type)
	assert.Equal(t, Pair, matches[1].Type)
	assert.Equal(t, hand("9c9d"), matches[1].Cards)
	assert.Equal(t, Sequence, matches[2].Type)
}

func TestFindPossibleMatchesNone(t *testing.T) {
	t.Parallel()
	assert.Empty(t, newTestEngine().FindPossibleMatches(hand("2h5dKc"), dice.MustRoll(3, 4)))
	assert.Empty(t, newTestEngine().FindPossibleMatches(nil, dice.MustRoll(1, 1)))
}

func TestValidateMatch(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	roll := dice.MustRoll(3, 4)

	assert.True(t, e.ValidateMatch(Match{Type: SnakeEyes}, roll))
	assert.True(t, e.ValidateMatch(Match{Type: Boxcars}, roll))
	assert.True(t, e.ValidateMatch(Match{Type: Pair, Valid: true}, roll))
	assert.False(t, e.ValidateMatch(Match{Type: Pair}, roll))
	assert.False(t, e.ValidateMatch(Match{Type: Sequence}, roll))
}

func TestMatchString(t *testing.T) {
	t.Parallel()
	m, ok := newTestEngine().DetectPairs(hand("7h7d"), 7)
	require.True(t, ok)
	assert.Equal(t, "pair: 7♥ 7♦ (14 pts)", m.String())
}
