package simulator

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/sevens/internal/game"
	"github.com/lox/sevens/internal/statistics"
)

func TestNew(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   100,
		Players: 4,
		Seed:    12345,
		Logger:  logger,
	}

	simulator := New(config)
	if simulator == nil {
		t.Fatal("New() returned nil")
	}
	if simulator.config.Games != 100 {
		t.Errorf("Expected 100 games, got %d", simulator.config.Games)
	}
	if simulator.config.Players != 4 {
		t.Errorf("Expected 4 players, got %d", simulator.config.Players)
	}
	if simulator.config.Seed != 12345 {
		t.Errorf("Expected seed 12345, got %d", simulator.config.Seed)
	}
}

func TestSimulator_Run_Sequential(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   5,
		Players: 4,
		Seed:    12345,
		Logger:  logger,
	}

	simulator := New(config)
	stats, err := simulator.Run(context.Background())

	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats == nil {
		t.Fatal("Expected statistics, got nil")
	}
	if stats.Games != 5 {
		t.Errorf("Expected 5 games, got %d", stats.Games)
	}

	// A full deal always plays out all 52 cards, so no game can be
	// shorter than 52 turns and every game produces a winner.
	if stats.MinTurns < 52 {
		t.Errorf("Expected at least 52 turns per game, got min %d", stats.MinTurns)
	}
	if stats.Stalled != 0 {
		t.Errorf("Expected no stalled games with a full deal, got %d", stats.Stalled)
	}

	if validationErr := stats.Validate(); validationErr != nil {
		t.Errorf("Statistics should be valid after successful Run(), got: %v", validationErr)
	}
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   10,
		Players: 3,
		Seed:    777,
		Logger:  logger,
	}

	stats1, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	stats2, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}

	if stats1.Mean() != stats2.Mean() {
		t.Errorf("Expected identical mean, got %f vs %f", stats1.Mean(), stats2.Mean())
	}
	if stats1.MinTurns != stats2.MinTurns || stats1.MaxTurns != stats2.MaxTurns {
		t.Errorf("Expected identical turn range, got [%d,%d] vs [%d,%d]",
			stats1.MinTurns, stats1.MaxTurns, stats2.MinTurns, stats2.MaxTurns)
	}
	for player := 1; player <= config.Players; player++ {
		if stats1.Wins[player] != stats2.Wins[player] {
			t.Errorf("Expected identical wins for player %d, got %d vs %d",
				player, stats1.Wins[player], stats2.Wins[player])
		}
	}
}

func TestSimulator_Run_WorkersMatchSequential(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	sequential := Config{
		Games:   12,
		Players: 4,
		Seed:    42,
		Logger:  logger,
	}
	parallel := sequential
	parallel.Workers = 4

	seqStats, err := New(sequential).Run(context.Background())
	if err != nil {
		t.Fatalf("sequential Run() failed: %v", err)
	}
	parStats, err := New(parallel).Run(context.Background())
	if err != nil {
		t.Fatalf("parallel Run() failed: %v", err)
	}

	// Game i always runs with seed Seed+i, so the batch aggregate is
	// independent of worker count. Only the order of Values differs.
	if seqStats.Games != parStats.Games {
		t.Errorf("Expected same game count, got %d vs %d", seqStats.Games, parStats.Games)
	}
	if seqStats.Mean() != parStats.Mean() {
		t.Errorf("Expected same mean, got %f vs %f", seqStats.Mean(), parStats.Mean())
	}
	if seqStats.Decisions != parStats.Decisions {
		t.Errorf("Expected same decision total, got %d vs %d", seqStats.Decisions, parStats.Decisions)
	}
	if seqStats.Knocks != parStats.Knocks {
		t.Errorf("Expected same knock total, got %d vs %d", seqStats.Knocks, parStats.Knocks)
	}
	for player := 1; player <= sequential.Players; player++ {
		if seqStats.Wins[player] != parStats.Wins[player] {
			t.Errorf("Expected same wins for player %d, got %d vs %d",
				player, seqStats.Wins[player], parStats.Wins[player])
		}
	}

	seqValues := append([]float64(nil), seqStats.Values...)
	parValues := append([]float64(nil), parStats.Values...)
	sort.Float64s(seqValues)
	sort.Float64s(parValues)
	for i := range seqValues {
		if seqValues[i] != parValues[i] {
			t.Fatalf("Expected same turn counts after sorting, got %v vs %v", seqValues, parValues)
		}
	}
}

func TestSimulator_Run_MoreWorkersThanGames(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   3,
		Players: 2,
		Seed:    9,
		Workers: 16,
		Logger:  logger,
	}

	stats, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Games != 3 {
		t.Errorf("Expected 3 games, got %d", stats.Games)
	}
}

func TestSimulator_Run_InvalidGames(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   0,
		Players: 4,
		Logger:  logger,
	}

	_, err := New(config).Run(context.Background())
	if err == nil {
		t.Error("Expected error for zero games, got nil")
	}
}

func TestSimulator_Run_InvalidPlayers(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   1,
		Players: 0,
		Logger:  logger,
	}

	_, err := New(config).Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for zero players, got nil")
	}
	if !errors.Is(err, game.ErrPlayerCount) {
		t.Errorf("Expected player count error, got: %v", err)
	}
}

func TestSimulator_Run_ContextCancelled(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   100,
		Players: 4,
		Logger:  logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(config).Run(ctx)
	if err == nil {
		t.Fatal("Expected error from cancelled context, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

type countingMonitor struct {
	batchStarts    int
	batchGames     int
	batchPlayers   int
	gamesCompleted int
	batchCompletes int
	finalStats     *statistics.Statistics
}

func (m *countingMonitor) OnBatchStart(games, players int) {
	m.batchStarts++
	m.batchGames = games
	m.batchPlayers = players
}

func (m *countingMonitor) OnGameComplete(completed int, result statistics.GameResult) {
	m.gamesCompleted++
}

func (m *countingMonitor) OnBatchComplete(stats *statistics.Statistics) {
	m.batchCompletes++
	m.finalStats = stats
}

func TestSimulator_Run_MonitorNotifications(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	monitor := &countingMonitor{}
	config := Config{
		Games:   4,
		Players: 3,
		Seed:    5,
		Logger:  logger,
		Monitor: monitor,
	}

	stats, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if monitor.batchStarts != 1 {
		t.Errorf("Expected 1 batch start, got %d", monitor.batchStarts)
	}
	if monitor.batchGames != 4 || monitor.batchPlayers != 3 {
		t.Errorf("Expected batch start with 4 games and 3 players, got %d and %d",
			monitor.batchGames, monitor.batchPlayers)
	}
	if monitor.gamesCompleted != 4 {
		t.Errorf("Expected 4 game completions, got %d", monitor.gamesCompleted)
	}
	if monitor.batchCompletes != 1 {
		t.Errorf("Expected 1 batch completion, got %d", monitor.batchCompletes)
	}
	if monitor.finalStats != stats {
		t.Error("Expected monitor to receive the returned statistics")
	}
}

func TestNewMultiGameMonitor(t *testing.T) {
	if _, ok := NewMultiGameMonitor().(NullGameMonitor); !ok {
		t.Error("Expected NullGameMonitor for empty monitor list")
	}
	if _, ok := NewMultiGameMonitor(nil, nil).(NullGameMonitor); !ok {
		t.Error("Expected NullGameMonitor when all monitors are nil")
	}

	single := &countingMonitor{}
	if got := NewMultiGameMonitor(single, nil); got != GameMonitor(single) {
		t.Error("Expected single monitor to be returned unwrapped")
	}

	a := &countingMonitor{}
	b := &countingMonitor{}
	multi := NewMultiGameMonitor(a, b)
	multi.OnBatchStart(2, 4)
	multi.OnGameComplete(1, statistics.GameResult{})
	multi.OnBatchComplete(&statistics.Statistics{})

	for i, monitor := range []*countingMonitor{a, b} {
		if monitor.batchStarts != 1 || monitor.gamesCompleted != 1 || monitor.batchCompletes != 1 {
			t.Errorf("Monitor %d missed notifications: %+v", i, monitor)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   3,
		Players: 4,
		Seed:    12345,
		Logger:  logger,
	}

	stats, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// PrintSummary should not panic and should work with valid stats
	PrintSummary(stats, config.Players)
}

func BenchmarkSimulator_Run_SmallSim(b *testing.B) {
	logger := log.NewWithOptions(nil, log.Options{Level: log.WarnLevel})
	config := Config{
		Games:   10,
		Players: 4,
		Logger:  logger,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		simulator := New(config)
		simulator.config.Seed = int64(i) // Vary seed
		_, err := simulator.Run(context.Background())
		if err != nil {
			b.Fatalf("Run() failed: %v", err)
		}
	}
}
