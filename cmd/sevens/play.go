package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/sevens/internal/config"
	"github.com/lox/sevens/internal/game"
	"github.com/lox/sevens/internal/playback"
)

type PlayCmd struct {
	Config      string `help:"Config file (HCL format)" default:"sevens.hcl"`
	Players     *int   `short:"p" help:"Number of players"`
	Seed        *int64 `short:"s" help:"Random seed (0 for random)"`
	Delay       *int   `short:"d" help:"Milliseconds to pause between turns"`
	Color       *bool  `help:"Colorize card suits"`
	ShowOptions bool   `short:"o" help:"List the candidate cards at decision points"`
	Verbose     bool   `help:"Enable debug logging"`
}

func (p *PlayCmd) Run() error {
	cfg, err := config.LoadConfig(p.Config)
	if err != nil {
		return err
	}

	settings := cfg.Playback
	if p.Players != nil {
		settings.Players = *p.Players
	}
	if p.Seed != nil {
		settings.Seed = *p.Seed
	}
	if p.Delay != nil {
		settings.DelayMS = *p.Delay
	}
	if p.Color != nil {
		settings.Color = *p.Color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := setupLogger(p.Verbose)
	ctx := signalContext(logger)

	pb := playback.New(playback.Config{
		Players:     settings.Players,
		Seed:        seed,
		Delay:       time.Duration(settings.DelayMS) * time.Millisecond,
		Color:       settings.Color,
		ShowOptions: p.ShowOptions,
		Clock:       quartz.NewReal(),
		Logger:      logger,
	})

	result, err := pb.Run(ctx)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// printResult prints the end-of-game summary: how often each player had
// a real choice, and the finish ranking.
func printResult(result *game.Result) {
	fmt.Printf("\n%s\n", headerStyle.Render("decisions"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for player := 1; player <= result.Players; player++ {
		fmt.Fprintf(w, "%s\t%s\n",
			playerStyle.Render(fmt.Sprintf("Player %d", player)),
			countStyle.Render(fmt.Sprintf("%d", result.Decisions[player])))
	}
	w.Flush()

	fmt.Printf("\n%s\n", headerStyle.Render("ranking"))
	for i, player := range result.FinishOrder {
		fmt.Printf("%d. Player %d\n", i+1, player)
	}
}
