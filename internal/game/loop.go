package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/sevens/internal/deck"
	"github.com/lox/sevens/internal/gameid"
)

// Loop drives a single game from the deal to the stalled end state.
// Each Step resolves one player's turn in fixed round-robin order; the
// game is over once no playable card remains in any suit.
type Loop struct {
	players  int
	hands    [][]deck.Card
	manager  *Manager
	rng      *rand.Rand
	logger   *log.Logger
	eventBus EventBus
	gameID   string

	current   int
	turns     int
	knocks    int
	sincePlay int
	decisions map[int]int
	finishes  map[int]int
	winner    int
	started   bool
	done      bool
}

// Result captures the outcome of a completed game. Players are
// numbered from 1.
type Result struct {
	GameID  string
	Players int
	Turns   int

	// Knocks counts the turns on which a player held cards but could
	// not play any of them.
	Knocks int

	// Decisions counts the turns on which each player held more than
	// one playable card and had to choose.
	Decisions map[int]int

	// Finishes counts the turns on which each player's hand was found
	// empty. A player who goes out early accumulates a higher count
	// while the remaining players keep playing.
	Finishes map[int]int

	// FinishOrder ranks players by ascending finish count, ties broken
	// by ascending player number.
	FinishOrder []int

	// Winner is the first player observed with an empty hand, or 0
	// when the game stalled with every player still holding cards.
	Winner int
}

// NewLoop deals a freshly shuffled deck round-robin to players hands
// and returns a loop ready to run. The rng drives the shuffle, the
// game ID and every tie-breaking choice, so a seed reproduces the
// whole game.
func NewLoop(players int, rng *rand.Rand, logger *log.Logger) (*Loop, error) {
	if players < 1 || players > deck.Size {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, players)
	}

	id := gameid.Generate(rng)

	hands := make([][]deck.Card, players)
	d := deck.NewShuffled(rng)
	for i := 0; ; i = (i + 1) % players {
		card, ok := d.Deal()
		if !ok {
			break
		}
		hands[i] = append(hands[i], card)
	}

	return newLoop(id, hands, rng, logger), nil
}

// NewLoopWithHands returns a loop over caller-supplied hands instead
// of a fresh deal. Intended for tests and scripted scenarios; the
// hands are copied, and every card must be valid.
func NewLoopWithHands(hands [][]deck.Card, rng *rand.Rand, logger *log.Logger) (*Loop, error) {
	if len(hands) < 1 || len(hands) > deck.Size {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(hands))
	}

	copied := make([][]deck.Card, len(hands))
	for i, hand := range hands {
		copied[i] = make([]deck.Card, len(hand))
		copy(copied[i], hand)
		for _, card := range hand {
			if err := card.Validate(); err != nil {
				return nil, fmt.Errorf("hand %d: %w", i+1, err)
			}
		}
	}

	return newLoop(gameid.Generate(rng), copied, rng, logger), nil
}

func newLoop(id string, hands [][]deck.Card, rng *rand.Rand, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("game", id)

	players := len(hands)
	decisions := make(map[int]int, players)
	finishes := make(map[int]int, players)
	for p := 1; p <= players; p++ {
		decisions[p] = 0
		finishes[p] = 0
	}

	return &Loop{
		players:   players,
		hands:     hands,
		manager:   NewManager(),
		rng:       rng,
		logger:    logger,
		eventBus:  NewEventBus(),
		gameID:    id,
		decisions: decisions,
		finishes:  finishes,
	}
}

// GetEventBus returns the event bus for subscribing to game events
func (l *Loop) GetEventBus() EventBus {
	return l.eventBus
}

// GameID returns the unique identifier assigned to this game
func (l *Loop) GameID() string {
	return l.gameID
}

// Players returns the number of players in the game
func (l *Loop) Players() int {
	return l.players
}

// Turns returns the number of turns resolved so far
func (l *Loop) Turns() int {
	return l.turns
}

// Done reports whether the game has reached its end state
func (l *Loop) Done() bool {
	return l.done
}

// Step resolves one player's turn. It returns false once the game is
// over, after publishing the game end event. The returned error is nil
// under normal play; it reports a rejected move, which can only happen
// if the loop's own bookkeeping is broken.
//
// The game ends when no playable card remains in any suit. When hands
// were supplied directly they need not cover the deck, so a playable
// card may be held by nobody; the loop also ends once a full round
// passes without a card being played. With a full deal that round
// never occurs, because every playable card sits in somebody's hand.
func (l *Loop) Step() (bool, error) {
	if l.done {
		return false, nil
	}
	if !l.started {
		l.started = true
		l.logger.Debug("game starting", "players", l.players)
		l.eventBus.Publish(NewGameStartEvent(l.gameID, l.players))
	}

	playable := l.manager.PlayableCards()
	if playable == nil || l.sincePlay >= l.players {
		l.done = true
		l.logger.Debug("game over", "turns", l.turns, "winner", l.winner)
		l.eventBus.Publish(NewGameEndEvent(l.gameID, l.turns, l.winner))
		return false, nil
	}

	player := l.current + 1
	hand := l.hands[l.current]
	if len(hand) == 0 {
		l.sincePlay++
		l.finishes[player]++
		if l.winner == 0 {
			l.winner = player
		}
		l.eventBus.Publish(NewPlayerFinishedEvent(player, l.finishes[player], l.turns))
	} else {
		useful := usefulCards(playable, hand)
		switch len(useful) {
		case 0:
			l.knocks++
			l.sincePlay++
			l.eventBus.Publish(NewKnockEvent(player, l.turns))
		case 1:
			if err := l.playCard(player, useful[0]); err != nil {
				return false, err
			}
			l.sincePlay = 0
			l.eventBus.Publish(NewCardPlayedEvent(player, useful[0], true, l.turns))
		default:
			l.decisions[player]++
			l.eventBus.Publish(NewDecisionPointEvent(player, useful, l.turns))
			card := useful[l.rng.IntN(len(useful))]
			if err := l.playCard(player, card); err != nil {
				return false, err
			}
			l.sincePlay = 0
			l.eventBus.Publish(NewCardPlayedEvent(player, card, false, l.turns))
		}
	}

	l.turns++
	l.current = (l.current + 1) % l.players
	return true, nil
}

// Run steps the loop until the game is over and returns the result.
func (l *Loop) Run() (*Result, error) {
	for {
		more, err := l.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return l.Result(), nil
}

// Result returns a snapshot of the game's statistics. It is complete
// once Step has returned false.
func (l *Loop) Result() *Result {
	decisions := make(map[int]int, l.players)
	finishes := make(map[int]int, l.players)
	for p := 1; p <= l.players; p++ {
		decisions[p] = l.decisions[p]
		finishes[p] = l.finishes[p]
	}

	return &Result{
		GameID:      l.gameID,
		Players:     l.players,
		Turns:       l.turns,
		Knocks:      l.knocks,
		Decisions:   decisions,
		Finishes:    finishes,
		FinishOrder: l.finishOrder(),
		Winner:      l.winner,
	}
}

// finishOrder ranks player numbers by ascending finish count. The sort
// is stable over ascending player numbers, so ties keep number order.
func (l *Loop) finishOrder() []int {
	order := make([]int, 0, l.players)
	for p := 1; p <= l.players; p++ {
		order = append(order, p)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return l.finishes[order[i]] < l.finishes[order[j]]
	})
	return order
}

// playCard applies card to the runs and removes it from the player's
// hand. player is 1-based.
func (l *Loop) playCard(player int, card deck.Card) error {
	if err := l.manager.Play(card); err != nil {
		return fmt.Errorf("player %d: %w", player, err)
	}

	hand := l.hands[player-1]
	for i := range hand {
		if hand[i] == card {
			l.hands[player-1] = append(hand[:i], hand[i+1:]...)
			break
		}
	}
	return nil
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
