// Package playback replays a single game turn by turn, printing each
// event as it happens. A quartz clock paces the turns so replays can
// be watched live, and tests can drive the pacing with a mock clock.
package playback

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/sevens/internal/deck"
	"github.com/lox/sevens/internal/game"
	"github.com/lox/sevens/internal/randutil"
)

// Config holds playback parameters.
type Config struct {
	Players int
	Seed    int64

	// Hands replays the given deal instead of shuffling with Seed.
	Hands [][]deck.Card

	// Delay is the pause between turns. Zero replays at full speed.
	Delay time.Duration

	Color       bool // colorize card suits
	ShowOptions bool // list the options at each decision point

	Out    io.Writer    // defaults to os.Stdout
	Clock  quartz.Clock // defaults to the real clock
	Logger *log.Logger
}

// Playback replays one game with paced, formatted output.
type Playback struct {
	config Config
	clock  quartz.Clock
	out    io.Writer
	logger *log.Logger
}

// New creates a playback from the given config.
func New(config Config) *Playback {
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Playback{
		config: config,
		clock:  clock,
		out:    out,
		logger: logger.WithPrefix("playback"),
	}
}

// Run plays the game to completion, printing each event to the
// configured writer. The context cancels between turns.
func (p *Playback) Run(ctx context.Context) (*game.Result, error) {
	rng := randutil.New(p.config.Seed)

	var loop *game.Loop
	var err error
	if p.config.Hands != nil {
		loop, err = game.NewLoopWithHands(p.config.Hands, rng, p.logger)
	} else {
		loop, err = game.NewLoop(p.config.Players, rng, p.logger)
	}
	if err != nil {
		return nil, err
	}

	printer := newPrinter(p.out, game.FormattingOptions{
		Color:       p.config.Color,
		ShowOptions: p.config.ShowOptions,
	})
	bus := loop.GetEventBus()
	bus.Subscribe(printer)
	defer bus.Unsubscribe(printer)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		more, err := loop.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		p.pause()
	}

	return loop.Result(), nil
}

// pause blocks for the configured delay on the injected clock.
func (p *Playback) pause() {
	if p.config.Delay <= 0 {
		return
	}

	fired := make(chan struct{})
	timer := p.clock.AfterFunc(p.config.Delay, func() {
		close(fired)
	})
	defer timer.Stop()
	<-fired
}

// printer writes formatted game events to a writer.
type printer struct {
	out       io.Writer
	formatter *game.EventFormatter
}

func newPrinter(out io.Writer, options game.FormattingOptions) *printer {
	return &printer{
		out:       out,
		formatter: game.NewEventFormatter(options),
	}
}

// OnEvent implements game.EventSubscriber.
func (p *printer) OnEvent(event game.GameEvent) {
	var line string
	switch e := event.(type) {
	case game.GameStartEvent:
		line = p.formatter.FormatGameStart(e)
	case game.KnockEvent:
		line = p.formatter.FormatKnock(e)
	case game.CardPlayedEvent:
		line = p.formatter.FormatCardPlayed(e)
	case game.DecisionPointEvent:
		line = p.formatter.FormatDecisionPoint(e)
	case game.PlayerFinishedEvent:
		line = p.formatter.FormatPlayerFinished(e)
	case game.GameEndEvent:
		line = p.formatter.FormatGameEnd(e)
	}

	if line != "" {
		fmt.Fprintln(p.out, line)
	}
}
