// Package scoring converts cards and players into points, winners and
// rankings.
package scoring

import (
	"sort"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/player"
)

// Engine computes scores. It is stateless and safe for concurrent use.
type Engine struct{}

// New returns a scoring engine.
func New() *Engine {
	return &Engine{}
}

// Ranking is one row of the final standings.
type Ranking struct {
	Player player.Player
	Score  int
	Rank   int // 1 = first place
}

// CardsValue sums the point values of cs.
func (e *Engine) CardsValue(cs []cards.Card) int {
	total := 0
	for _, c := range cs {
		total += c.PointValue()
	}
	return total
}

// PlayerScore is captured points minus the points still in the tableau.
func (e *Engine) PlayerScore(p player.Player) int {
	return e.CardsValue(p.Captured) - e.CardsValue(p.Tableau)
}

// FinalScores maps each player ID to its score.
func (e *Engine) FinalScores(players []player.Player) map[string]int {
	scores := make(map[string]int, len(players))
	for _, p := range players {
		scores[p.ID] = e.PlayerScore(p)
	}
	return scores
}

// DetermineWinner returns the highest scoring player. Ties go to the player
// listed first. ok is false only for an empty slice.
func (e *Engine) DetermineWinner(players []player.Player) (winner player.Player, ok bool) {
	if len(players) == 0 {
		return player.Player{}, false
	}

	winner = players[0]
	best := e.PlayerScore(winner)
	for _, p := range players[1:] {
		if s := e.PlayerScore(p); s > best {
			best = s
			winner = p
		}
	}
	return winner, true
}

// PlayersByRank sorts players by descending score and assigns competition
// ranks (1, 1, 3, ...).
func (e *Engine) PlayersByRank(players []player.Player) []Ranking {
	rankings := make([]Ranking, len(players))
	for i, p := range players {
		rankings[i] = Ranking{Player: p, Score: e.PlayerScore(p)}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})

	rank := 1
	for i := range rankings {
		if i > 0 && rankings[i].Score < rankings[i-1].Score {
			rank = i + 1
		}
		rankings[i].Rank = rank
	}
	return rankings
}
