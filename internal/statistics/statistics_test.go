package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.AverageTurns() != 0 {
		t.Errorf("Expected average turns of 0 for empty stats, got %f", stats.AverageTurns())
	}
	if stats.WinRate(0) != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate(0))
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_SingleGame(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Seed: 1, Turns: 30, FinalRound: true, Scores: []int{12, -4}, Winner: 0})

	if stats.Games != 1 {
		t.Errorf("Expected 1 game, got %d", stats.Games)
	}
	if stats.Scores != 2 {
		t.Errorf("Expected 2 score samples, got %d", stats.Scores)
	}
	if stats.Mean() != 4 {
		t.Errorf("Expected mean of 4, got %f", stats.Mean())
	}
	if stats.WinRate(0) != 1 || stats.WinRate(1) != 0 {
		t.Errorf("Expected seat 0 to win every game, got %f/%f", stats.WinRate(0), stats.WinRate(1))
	}
	if stats.AverageWinningScore() != 12 {
		t.Errorf("Expected winning score of 12, got %f", stats.AverageWinningScore())
	}
	if stats.FinalRounds != 1 {
		t.Errorf("Expected 1 final round, got %d", stats.FinalRounds)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{}
	results := []GameResult{
		{Turns: 20, FinalRound: true, Scores: []int{10, 2, -3}, Winner: 0},
		{Turns: 40, FinalRound: true, Scores: []int{-5, 8, 8}, Winner: 1},
		{Turns: 30, FinalRound: true, Scores: []int{0, 1, 6}, Winner: 2},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.AverageTurns() != 30 {
		t.Errorf("Expected 30 average turns, got %f", stats.AverageTurns())
	}
	if stats.MaxTurns != 40 {
		t.Errorf("Expected max turns 40, got %d", stats.MaxTurns)
	}
	if stats.Ties != 1 {
		t.Errorf("Expected 1 tie, got %d", stats.Ties)
	}

	// scores: 10 2 -3 -5 8 8 0 1 6 -> sum 27, mean 3
	if stats.Mean() != 3 {
		t.Errorf("Expected mean 3, got %f", stats.Mean())
	}
	if stats.Median() != 2 {
		t.Errorf("Expected median 2, got %f", stats.Median())
	}

	// sum of squared deviations: 49+1+36+64+25+25+9+4+9 = 222
	expectedVariance := 222.0 / 8
	if math.Abs(stats.Variance()-expectedVariance) > 1e-9 {
		t.Errorf("Expected variance %f, got %f", expectedVariance, stats.Variance())
	}
	if math.Abs(stats.SeatMean(1)-11.0/3) > 1e-9 {
		t.Errorf("Expected seat 1 mean %f, got %f", 11.0/3, stats.SeatMean(1))
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	r1 := GameResult{Turns: 10, Scores: []int{3, -1}, Winner: 0}
	r2 := GameResult{Turns: 14, FinalRound: true, Scores: []int{-2, 5, 1}, Winner: 1}

	a.Add(r1)
	b.Add(r2)
	a.Merge(b)
	all.Add(r1)
	all.Add(r2)

	if a.Games != all.Games || a.Scores != all.Scores || a.SumScore != all.SumScore {
		t.Errorf("Merged totals differ: %+v vs %+v", a, all)
	}
	if len(a.Seats) != 3 {
		t.Fatalf("Expected 3 seats, got %d", len(a.Seats))
	}
	for i := range a.Seats {
		if a.Seats[i] != all.Seats[i] {
			t.Errorf("Seat %d differs: %+v vs %+v", i, a.Seats[i], all.Seats[i])
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_NoWinner(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Turns: 3, Scores: []int{}, Winner: -1})

	if len(stats.WinningScores) != 0 {
		t.Errorf("Expected no winning scores, got %v", stats.WinningScores)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Scores: []int{0, 10, 20, 30, 40}, Winner: 4})

	if stats.Percentile(0) != 0 {
		t.Errorf("Expected p0 of 0, got %f", stats.Percentile(0))
	}
	if stats.Percentile(0.5) != 20 {
		t.Errorf("Expected p50 of 20, got %f", stats.Percentile(0.5))
	}
	if stats.Percentile(0.875) != 35 {
		t.Errorf("Expected p87.5 of 35, got %f", stats.Percentile(0.875))
	}
	if stats.Percentile(1) != 40 {
		t.Errorf("Expected p100 of 40, got %f", stats.Percentile(1))
	}
}

func TestStatistics_ValidateDetectsCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Scores: []int{1, 2}, Winner: 1})
	stats.SumScore += 5

	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to catch the score sum mismatch")
	}
}
