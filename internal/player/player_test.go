package player

import (
	"testing"

	"github.com/lox/finest9/cards"
	"github.com/stretchr/testify/assert"
)

func TestWithTableauCopies(t *testing.T) {
	t.Parallel()
	hand := cards.MustParseCards("7h7d3h")
	p := New("player-1", "Alice", false).WithTableau(hand)

	hand[0] = cards.New(cards.Ace, cards.Spades)
	assert.Equal(t, cards.New(cards.Seven, cards.Hearts), p.Tableau[0])
}

func TestWithDoesNotShareBackingArrays(t *testing.T) {
	t.Parallel()
	p := New("player-1", "Alice", false).
		WithTableau(cards.MustParseCards("2h3h")).
		WithCaptured(cards.MustParseCards("4h"))
	q := p.WithScore(5)

	q.Tableau[0] = cards.New(cards.King, cards.Clubs)
	q.Captured[0] = cards.New(cards.King, cards.Clubs)

	assert.Equal(t, 0, p.Score)
	assert.Equal(t, 5, q.Score)
	assert.Equal(t, "2♥", p.Tableau[0].String())
	assert.Equal(t, "4♥", p.Captured[0].String())
}

func TestResetKeepsIdentity(t *testing.T) {
	t.Parallel()
	p := New("bot-1", "Alpha", true).
		WithTableau(cards.MustParseCards("2h")).
		WithScore(-2)
	r := p.Reset()

	assert.Equal(t, "bot-1", r.ID)
	assert.Equal(t, "Alpha", r.Name)
	assert.True(t, r.IsBot)
	assert.Empty(t, r.Tableau)
	assert.Zero(t, r.Score)
}

func TestHasCard(t *testing.T) {
	t.Parallel()
	p := New("p", "P", false).WithTableau(cards.MustParseCards("QhKh"))
	assert.True(t, p.HasCard("hearts-Q"))
	assert.False(t, p.HasCard("spades-Q"))
}
