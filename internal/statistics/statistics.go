package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Players   int   // Number of players in the game
	Turns     int   // Turns resolved before the game ended
	Decisions int   // Decision points across all players
	Knocks    int   // Turns on which a player could not play
	Winner    int   // First player out, 0 if the game stalled
	Seed      int64 // RNG seed for this game (for replay)
}

// Statistics tracks aggregate simulation statistics over many games.
// The headline number is turns per game; decision points, knocks and
// win counts ride along.
type Statistics struct {
	Games     int
	SumTurns  float64
	SumTurns2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all turn counts for median/percentile calculation

	Decisions int // Decision points across all games
	Knocks    int // Knocks across all games

	// Win analytics. A win is being first out; games where nobody
	// goes out are tracked separately.
	Wins    map[int]int
	Stalled int

	MinTurns int // Shortest game observed
	MaxTurns int // Longest game observed
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.Wins == nil {
		s.Wins = make(map[int]int)
	}

	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	s.Decisions += result.Decisions
	s.Knocks += result.Knocks

	if result.Winner > 0 {
		s.Wins[result.Winner]++
	} else {
		s.Stalled++
	}

	if s.Games == 1 || result.Turns < s.MinTurns {
		s.MinTurns = result.Turns
	}
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}
}

// Mean returns the arithmetic mean of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Median returns the median turns per game
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

// Percentile returns the turn count at the given percentile (0.0 to 1.0)
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

// DecisionMean returns the mean decision points per game
func (s *Statistics) DecisionMean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Decisions) / float64(s.Games)
}

// KnockMean returns the mean knocks per game
func (s *Statistics) KnockMean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Knocks) / float64(s.Games)
}

// WinRate returns the fraction of games in which player was first out
func (s *Statistics) WinRate(player int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[player]) / float64(s.Games)
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	totalWins := s.Stalled
	for _, wins := range s.Wins {
		totalWins += wins
	}
	if totalWins != s.Games {
		return fmt.Errorf("win ledger mismatch: %d wins plus stalls for %d games",
			totalWins, s.Games)
	}

	if s.MinTurns > s.MaxTurns {
		return fmt.Errorf("turn range inverted: min=%d max=%d", s.MinTurns, s.MaxTurns)
	}

	return nil
}
