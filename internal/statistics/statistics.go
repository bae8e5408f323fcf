package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed       int64 // RNG seed for this game (for replay)
	Turns      int   // moves played
	FinalRound bool  // ended through the final round
	Scores     []int // final score per seat
	Winner     int   // winning seat, -1 if none
}

// SeatStats tracks statistics for a specific seat
type SeatStats struct {
	Games     int
	Wins      int
	SumScore  float64
	SumScore2 float64
}

// Statistics aggregates simulation results. Score statistics cover every
// seat of every game.
type Statistics struct {
	Games     int
	Scores    int     // number of score samples
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	WinningScores []float64
	Ties          int // games where another seat matched the winner's score
	SumTurns      int
	MaxTurns      int
	FinalRounds   int

	Seats []SeatStats
}

// Mean returns the arithmetic mean score
func (s *Statistics) Mean() float64 {
	if s.Scores == 0 {
		return 0
	}
	return s.SumScore / float64(s.Scores)
}

// Variance returns the sample variance of all scores
func (s *Statistics) Variance() float64 {
	if s.Scores < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Scores)*mean*mean) / float64(s.Scores-1)
}

// StdDev returns the sample standard deviation of all scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Scores == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Scores))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// AverageTurns returns the mean game length in moves
func (s *Statistics) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumTurns) / float64(s.Games)
}

// AverageWinningScore returns the mean score of the winners
func (s *Statistics) AverageWinningScore() float64 {
	if len(s.WinningScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.WinningScores {
		sum += v
	}
	return sum / float64(len(s.WinningScores))
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.SumTurns += result.Turns
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}
	if result.FinalRound {
		s.FinalRounds++
	}

	for len(s.Seats) < len(result.Scores) {
		s.Seats = append(s.Seats, SeatStats{})
	}

	for seat, score := range result.Scores {
		v := float64(score)
		s.Scores++
		s.SumScore += v
		s.SumScore2 += v * v
		s.Values = append(s.Values, v)

		s.Seats[seat].Games++
		s.Seats[seat].SumScore += v
		s.Seats[seat].SumScore2 += v * v
	}

	if w := result.Winner; w >= 0 && w < len(result.Scores) {
		s.Seats[w].Wins++
		s.WinningScores = append(s.WinningScores, float64(result.Scores[w]))
		for seat, score := range result.Scores {
			if seat != w && score == result.Scores[w] {
				s.Ties++
				break
			}
		}
	}
}

// Merge folds other into s. Simulation workers keep their own Statistics
// and merge at the end.
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Scores += other.Scores
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	s.WinningScores = append(s.WinningScores, other.WinningScores...)
	s.Ties += other.Ties
	s.SumTurns += other.SumTurns
	s.FinalRounds += other.FinalRounds
	if other.MaxTurns > s.MaxTurns {
		s.MaxTurns = other.MaxTurns
	}

	for len(s.Seats) < len(other.Seats) {
		s.Seats = append(s.Seats, SeatStats{})
	}
	for i, seat := range other.Seats {
		s.Seats[i].Games += seat.Games
		s.Seats[i].Wins += seat.Wins
		s.Seats[i].SumScore += seat.SumScore
		s.Seats[i].SumScore2 += seat.SumScore2
	}
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean score for a seat, counting from zero
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Seats[seat].Games == 0 {
		return 0
	}
	return s.Seats[seat].SumScore / float64(s.Seats[seat].Games)
}

// WinRate returns the fraction of games a seat won
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Seats[seat].Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Seats[seat].Games)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Scores {
		return fmt.Errorf("values array length (%d) does not match score count (%d)", len(s.Values), s.Scores)
	}

	wins, seatScores := 0, 0
	for _, seat := range s.Seats {
		wins += seat.Wins
		seatScores += seat.Games
	}
	if wins > s.Games {
		return fmt.Errorf("total wins (%d) exceeds total games (%d)", wins, s.Games)
	}
	if wins != len(s.WinningScores) {
		return fmt.Errorf("seat wins (%d) do not match winning scores (%d)", wins, len(s.WinningScores))
	}
	if seatScores != s.Scores {
		return fmt.Errorf("seat score total (%d) does not match score count (%d)", seatScores, s.Scores)
	}

	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.SumScore) > 1e-6 {
		return fmt.Errorf("score sum mismatch: values=%.6f, running=%.6f", sum, s.SumScore)
	}

	if s.FinalRounds > s.Games {
		return fmt.Errorf("final rounds (%d) exceed games (%d)", s.FinalRounds, s.Games)
	}
	return nil
}
