package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/sevens/internal/config"
	"github.com/lox/sevens/internal/deck"
	"github.com/lox/sevens/internal/explorer"
)

type ExploreCmd struct {
	Hands       []string `arg:"" optional:"" help:"Explicit hands like '7s8s', one per player (default: deal from seed)"`
	Config      string   `help:"Config file (HCL format)" default:"sevens.hcl"`
	Players     *int     `short:"p" help:"Number of players"`
	Seed        *int64   `short:"s" help:"Random seed (0 for random)"`
	MaxBranches *int     `short:"m" help:"Stop after this many branches (0 for unlimited)"`
	Verbose     bool     `help:"Enable debug logging"`
}

func (e *ExploreCmd) Run() error {
	cfg, err := config.LoadConfig(e.Config)
	if err != nil {
		return err
	}

	settings := cfg.Exploration
	if e.Players != nil {
		settings.Players = *e.Players
	}
	if e.Seed != nil {
		settings.Seed = *e.Seed
	}
	if e.MaxBranches != nil {
		settings.MaxBranches = *e.MaxBranches
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	hands, err := parseHands(e.Hands)
	if err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := setupLogger(e.Verbose)
	ctx := signalContext(logger)

	exp := explorer.New(explorer.Config{
		Players:     settings.Players,
		Seed:        seed,
		Hands:       hands,
		MaxBranches: settings.MaxBranches,
		Logger:      logger,
	})

	startTime := time.Now()
	report, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(startTime)

	players := settings.Players
	if hands != nil {
		players = len(hands)
	}
	printReport(report, players)

	fmt.Printf("\n%d branches in %v", report.Branches, duration.Truncate(time.Microsecond))
	if hands == nil {
		fmt.Printf(" (seed %d)", seed)
	}
	fmt.Printf("\n")
	return nil
}

// parseHands converts hand arguments like "7s8s" into cards. A nil
// result means no hands were given and the deal comes from the seed.
func parseHands(args []string) ([][]deck.Card, error) {
	if len(args) == 0 {
		return nil, nil
	}

	hands := make([][]deck.Card, len(args))
	for i, arg := range args {
		hand, err := deck.ParseCards(arg)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = hand
	}
	return hands, nil
}

// printReport prints branch totals and the victory split across players.
func printReport(report *explorer.Report, players int) {
	fmt.Printf("%s\n", headerStyle.Render("exploration"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Branches\t%d\n", report.Branches)
	fmt.Fprintf(w, "Stalled\t%d\n", report.Stalled)
	fmt.Fprintf(w, "Deepest\t%d turns\n", report.MaxDepth)
	w.Flush()
	if report.Truncated {
		fmt.Printf("(stopped at the branch limit; totals are partial)\n")
	}

	fmt.Printf("\n%s\n", headerStyle.Render("victories"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for player := 1; player <= players; player++ {
		wins := report.Victories[player]
		pct := 0.0
		if report.Branches > 0 {
			pct = float64(wins) / float64(report.Branches) * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			playerStyle.Render(fmt.Sprintf("Player %d", player)),
			countStyle.Render(fmt.Sprintf("%d", wins)),
			percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
	}
	w.Flush()
}
