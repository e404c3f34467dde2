// Package simulator runs batches of Sevens games and aggregates the
// results into statistics. Batches can run sequentially or across a
// worker pool; either way each game derives its RNG from the batch seed
// plus the game index, so a batch is reproducible regardless of worker
// count.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sevens/internal/game"
	"github.com/lox/sevens/internal/randutil"
	"github.com/lox/sevens/internal/statistics"
)

// Config holds simulation parameters.
type Config struct {
	Games   int   // number of games to run
	Players int   // players per game
	Seed    int64 // base seed; game i runs with Seed+i
	Workers int   // worker goroutines; <=1 runs sequentially

	Logger  *log.Logger
	Monitor GameMonitor
}

// Simulator runs batches of games with the same table configuration.
type Simulator struct {
	config  Config
	logger  *log.Logger
	monitor GameMonitor
}

// New creates a simulator from the given config.
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	monitor := config.Monitor
	if monitor == nil {
		monitor = NullGameMonitor{}
	}

	return &Simulator{
		config:  config,
		logger:  logger.WithPrefix("simulator"),
		monitor: monitor,
	}
}

// Run executes the configured batch of games and returns aggregate
// statistics. The context cancels any games not yet started.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("simulator: games must be positive, got %d", s.config.Games)
	}

	s.logger.Info("starting simulation",
		"games", s.config.Games,
		"players", s.config.Players,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	s.monitor.OnBatchStart(s.config.Games, s.config.Players)

	stats := &statistics.Statistics{}

	var err error
	if s.config.Workers <= 1 {
		err = s.runSequential(ctx, stats)
	} else {
		err = s.runParallel(ctx, stats)
	}
	if err != nil {
		return nil, err
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.monitor.OnBatchComplete(stats)

	s.logger.Info("simulation complete",
		"games", stats.Games,
		"meanTurns", stats.Mean())

	return stats, nil
}

func (s *Simulator) runSequential(ctx context.Context, stats *statistics.Statistics) error {
	for i := 0; i < s.config.Games; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := s.runGame(s.config.Seed + int64(i))
		if err != nil {
			return err
		}

		stats.Add(result)
		s.monitor.OnGameComplete(i+1, result)
	}
	return nil
}

func (s *Simulator) runParallel(ctx context.Context, stats *statistics.Statistics) error {
	workers := s.config.Workers
	if maxWorkers := runtime.NumCPU(); workers > maxWorkers {
		workers = maxWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan statistics.GameResult, workers)

	// Distribute games across workers, spreading the remainder over
	// the first few.
	perWorker := s.config.Games / workers
	remainder := s.config.Games % workers

	start := 0
	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		if count == 0 {
			continue
		}

		first := start
		start += count

		g.Go(func() error {
			for i := first; i < first+count; i++ {
				result, err := s.runGame(s.config.Seed + int64(i))
				if err != nil {
					return err
				}

				select {
				case results <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	completed := 0
	for result := range results {
		completed++
		stats.Add(result)
		s.monitor.OnGameComplete(completed, result)
	}

	return g.Wait()
}

// runGame plays a single game to completion with its own seeded RNG.
func (s *Simulator) runGame(seed int64) (statistics.GameResult, error) {
	rng := randutil.New(seed)

	loop, err := game.NewLoop(s.config.Players, rng, s.logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	result, err := loop.Run()
	if err != nil {
		return statistics.GameResult{}, fmt.Errorf("game %s: %w", loop.GameID(), err)
	}

	decisions := 0
	for _, count := range result.Decisions {
		decisions += count
	}

	return statistics.GameResult{
		Players:   result.Players,
		Turns:     result.Turns,
		Decisions: decisions,
		Knocks:    result.Knocks,
		Winner:    result.Winner,
		Seed:      seed,
	}, nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(stats *statistics.Statistics, players int) {
	mean := stats.Mean()
	median := stats.Median()
	stdDev := stats.StdDev()
	low, high := stats.ConfidenceInterval95()
	p05 := stats.Percentile(0.05)
	p95 := stats.Percentile(0.95)

	fmt.Printf("\n=== FINAL RESULTS (%d players) ===\n", players)
	fmt.Printf("Games played: %d\n", stats.Games)

	fmt.Printf("\n=== GAME LENGTH ===\n")
	fmt.Printf("Mean: %.2f turns/game\n", mean)
	fmt.Printf("Median: %.1f turns\n", median)
	fmt.Printf("Std Dev: %.2f turns\n", stdDev)
	fmt.Printf("95%% CI: [%.2f, %.2f] turns/game\n", low, high)
	fmt.Printf("Range: %d - %d turns (P5=%.0f, P95=%.0f)\n", stats.MinTurns, stats.MaxTurns, p05, p95)

	fmt.Printf("\n=== TURN BREAKDOWN ===\n")
	fmt.Printf("Decision points: %.2f/game\n", stats.DecisionMean())
	fmt.Printf("Knocks: %.2f/game\n", stats.KnockMean())

	fmt.Printf("\n=== WIN RATES ===\n")
	for player := 1; player <= players; player++ {
		fmt.Printf("Player %d: %d games (%.1f%%)\n",
			player, stats.Wins[player], stats.WinRate(player)*100)
	}
	if stats.Stalled > 0 {
		fmt.Printf("No winner: %d games\n", stats.Stalled)
	}
}
