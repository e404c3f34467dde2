// Package explorer enumerates the game tree of a Sevens deal. Where
// the simulator samples random playthroughs, the explorer follows
// every option at each decision point, so for small hands it can
// answer which players are able to go out first at all.
//
// A branch ends when the player to act has an empty hand (a victory
// for that player) or when a full round passes with nobody able to
// play (a stalled branch). Exploration is depth-first; the last option
// at each decision point is descended first.
package explorer

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/sevens/internal/deck"
	"github.com/lox/sevens/internal/game"
	"github.com/lox/sevens/internal/randutil"
)

// Config holds exploration parameters.
type Config struct {
	Players int   // players to deal to when Hands is nil
	Seed    int64 // seed for the deal when Hands is nil

	// Hands explores the given deal instead of shuffling with Seed.
	Hands [][]deck.Card

	// MaxBranches stops the search after this many terminal branches.
	// Values <= 0 mean unlimited, which is only sensible for small
	// hands: a full four-player deal has an astronomical tree.
	MaxBranches int

	Logger *log.Logger
}

// Report summarizes an exploration.
type Report struct {
	Branches  int         // terminal branches reached
	Victories map[int]int // player id to branches that player won
	Stalled   int         // branches that ended with nobody able to play
	MaxDepth  int         // longest turn sequence observed
	Truncated bool        // true when MaxBranches stopped the search
}

// Validate checks internal consistency of the report.
func (r *Report) Validate() error {
	wins := 0
	for _, count := range r.Victories {
		wins += count
	}
	if wins+r.Stalled != r.Branches {
		return fmt.Errorf("explorer: branch ledger mismatch: %d victories + %d stalled != %d branches",
			wins, r.Stalled, r.Branches)
	}
	if r.MaxDepth < 0 {
		return fmt.Errorf("explorer: negative max depth %d", r.MaxDepth)
	}
	return nil
}

// Explorer walks every line of play for a deal.
type Explorer struct {
	config Config
	logger *log.Logger
}

// New creates an explorer from the given config.
func New(config Config) *Explorer {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Explorer{config: config, logger: logger.WithPrefix("explorer")}
}

// node is one state on the depth-first stack. Its manager and hands
// are owned exclusively by the node; forks clone both.
type node struct {
	manager *game.Manager
	hands   [][]deck.Card
	current int // index of the player to act
	passes  int // consecutive turns without a play
	depth   int
}

// Run explores the tree and returns the aggregate report. The context
// cancels any branches not yet descended.
func (e *Explorer) Run(ctx context.Context) (*Report, error) {
	hands, err := e.startingHands()
	if err != nil {
		return nil, err
	}

	e.logger.Info("starting exploration",
		"players", len(hands),
		"maxBranches", e.config.MaxBranches)

	report := &Report{Victories: make(map[int]int)}
	stack := []node{{manager: game.NewManager(), hands: hands}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if e.config.MaxBranches > 0 && report.Branches >= e.config.MaxBranches {
			report.Truncated = true
			break
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := e.descend(n, &stack, report); err != nil {
			return nil, err
		}
	}

	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("report validation failed: %w", err)
	}

	e.logger.Info("exploration complete",
		"branches", report.Branches,
		"stalled", report.Stalled,
		"maxDepth", report.MaxDepth,
		"truncated", report.Truncated)

	return report, nil
}

// outcome classifies the turn of the player to act. A branch keeps
// descending through noUseful and oneUseful turns, terminates on
// victory or stalled, and forks on manyUseful.
type outcome int

const (
	victory outcome = iota
	stalled
	noUseful
	oneUseful
	manyUseful
)

// assess classifies the current turn and returns the cards the player
// could legally play.
func (n *node) assess() (outcome, []deck.Card) {
	if len(n.hands[n.current]) == 0 {
		return victory, nil
	}

	// A full round with no play means nobody can ever play again.
	if n.passes >= len(n.hands) {
		return stalled, nil
	}
	playable := n.manager.PlayableCards()
	if playable == nil {
		return stalled, nil
	}

	useful := usefulCards(playable, n.hands[n.current])
	switch len(useful) {
	case 0:
		return noUseful, nil
	case 1:
		return oneUseful, useful
	default:
		return manyUseful, useful
	}
}

// descend advances a node turn by turn until the branch terminates or
// forks. Forked children are pushed for the outer loop to pop.
func (e *Explorer) descend(n node, stack *[]node, report *Report) error {
	for {
		if n.depth > report.MaxDepth {
			report.MaxDepth = n.depth
		}

		result, useful := n.assess()
		switch result {
		case victory:
			report.Branches++
			report.Victories[n.current+1]++
			return nil
		case stalled:
			report.Branches++
			report.Stalled++
			return nil
		case noUseful:
			n.passes++
			n.current = (n.current + 1) % len(n.hands)
			n.depth++
		case oneUseful:
			if err := n.play(useful[0]); err != nil {
				return err
			}
		case manyUseful:
			for _, card := range useful {
				child, err := n.fork(card)
				if err != nil {
					return err
				}
				*stack = append(*stack, child)
			}
			return nil
		}
	}
}

// play applies card for the player to act and advances the turn.
func (n *node) play(card deck.Card) error {
	if err := n.manager.Play(card); err != nil {
		return fmt.Errorf("player %d: %w", n.current+1, err)
	}

	hand := n.hands[n.current]
	for i, held := range hand {
		if held == card {
			n.hands[n.current] = append(hand[:i], hand[i+1:]...)
			break
		}
	}

	n.passes = 0
	n.current = (n.current + 1) % len(n.hands)
	n.depth++
	return nil
}

// fork clones the node and plays card on the clone.
func (n node) fork(card deck.Card) (node, error) {
	child := node{
		manager: n.manager.Clone(),
		hands:   copyHands(n.hands),
		current: n.current,
		depth:   n.depth,
	}
	if err := child.play(card); err != nil {
		return node{}, err
	}
	return child, nil
}

// startingHands resolves the deal to explore, copying configured
// hands so the caller's slices stay untouched.
func (e *Explorer) startingHands() ([][]deck.Card, error) {
	if e.config.Hands != nil {
		if len(e.config.Hands) < 1 || len(e.config.Hands) > deck.Size {
			return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, len(e.config.Hands))
		}
		for i, hand := range e.config.Hands {
			for _, card := range hand {
				if err := card.Validate(); err != nil {
					return nil, fmt.Errorf("hand %d: %w", i+1, err)
				}
			}
		}
		return copyHands(e.config.Hands), nil
	}

	if e.config.Players < 1 || e.config.Players > deck.Size {
		return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, e.config.Players)
	}
	return deal(e.config.Players, randutil.New(e.config.Seed)), nil
}

// deal shuffles a fresh deck and distributes it round-robin.
func deal(players int, rng *rand.Rand) [][]deck.Card {
	d := deck.NewShuffled(rng)
	hands := make([][]deck.Card, players)
	for i := 0; ; i = (i + 1) % players {
		card, ok := d.Deal()
		if !ok {
			return hands
		}
		hands[i] = append(hands[i], card)
	}
}

func copyHands(hands [][]deck.Card) [][]deck.Card {
	copied := make([][]deck.Card, len(hands))
	for i, hand := range hands {
		copied[i] = append([]deck.Card(nil), hand...)
	}
	return copied
}

// usefulCards filters the legal set down to the cards hand holds,
// preserving the legal set's order.
func usefulCards(playable, hand []deck.Card) []deck.Card {
	var useful []deck.Card
	for _, card := range playable {
		for _, held := range hand {
			if card == held {
				useful = append(useful, card)
				break
			}
		}
	}
	return useful
}
