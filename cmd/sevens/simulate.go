package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/sevens/internal/config"
	"github.com/lox/sevens/internal/simulator"
)

type SimulateCmd struct {
	Config  string `help:"Config file (HCL format)" default:"sevens.hcl"`
	Games   *int   `short:"g" help:"Number of games to simulate"`
	Players *int   `short:"p" help:"Number of players"`
	Seed    *int64 `short:"s" help:"Random seed (0 for random)"`
	Workers *int   `short:"w" help:"Parallel workers (1 runs sequentially)"`
	Quiet   bool   `short:"q" help:"Suppress progress output"`
	Verbose bool   `help:"Enable debug logging"`
}

func (s *SimulateCmd) Run() error {
	cfg, err := config.LoadConfig(s.Config)
	if err != nil {
		return err
	}

	settings := cfg.Simulation
	if s.Games != nil {
		settings.Games = *s.Games
	}
	if s.Players != nil {
		settings.Players = *s.Players
	}
	if s.Seed != nil {
		settings.Seed = *s.Seed
	}
	if s.Workers != nil {
		settings.Workers = *s.Workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := setupLogger(s.Verbose)
	ctx := signalContext(logger)

	var monitor simulator.GameMonitor
	if !s.Quiet {
		monitor = NewProgressMonitor(os.Stdout)
	}

	sim := simulator.New(simulator.Config{
		Games:   settings.Games,
		Players: settings.Players,
		Seed:    seed,
		Workers: settings.Workers,
		Logger:  logger,
		Monitor: monitor,
	})

	startTime := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(startTime)

	simulator.PrintSummary(stats, settings.Players)
	fmt.Printf("\n%d games in %v (seed %d)\n", stats.Games, duration.Truncate(time.Millisecond), seed)
	return nil
}
