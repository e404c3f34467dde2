package game

import (
	"errors"
	"fmt"

	"github.com/lox/sevens/internal/deck"
)

var (
	// ErrInvalidCard is returned when Play is given a card that fails
	// validation, such as a zero-valued or hand-rolled literal.
	ErrInvalidCard = errors.New("game: play requires a valid card")

	// ErrIllegalMove is returned when Play is given a card outside the
	// current legal set.
	ErrIllegalMove = errors.New("game: card is not currently playable")

	// ErrPlayerCount is returned when a game is set up with a player
	// count the deck cannot serve.
	ErrPlayerCount = errors.New("game: player count must be between 1 and 52")
)

// openingCard is the only legal move while every run is unopened. The
// game opens on the seven of spades specifically, not any seven.
var openingCard = deck.Card{Suit: deck.Spades, Rank: deck.Seven}

// Manager owns the four per-suit runs and adjudicates moves. Manager
// values copy cleanly, which the explorer relies on when it forks game
// states.
type Manager struct {
	runs [deck.NumSuits]RunState
}

// NewManager returns a manager with all four runs unopened.
func NewManager() *Manager {
	return &Manager{}
}

// PlayableCards returns every card that may legally be played, in a
// fixed suit-major order with upward extensions before downward ones.
// It returns nil when no legal move remains, which callers treat as
// the end of the game rather than an error.
//
// While all four runs are unopened the only legal card is the seven of
// spades; the other sevens become playable once the game has opened.
func (m *Manager) PlayableCards() []deck.Card {
	if m.initial() {
		return []deck.Card{openingCard}
	}

	var cards []deck.Card
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		cards = m.runs[suit].appendPlayable(cards, suit)
	}
	return cards
}

// Play applies card to its suit's run. Legality is derived fresh from
// the current runs on every call; nothing is mutated when the move is
// rejected.
func (m *Manager) Play(card deck.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	if !m.isPlayable(card) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, card)
	}
	m.runs[card.Suit].apply(card.Rank)
	return nil
}

// Run returns the run state for suit.
func (m *Manager) Run(suit deck.Suit) RunState {
	return m.runs[suit]
}

// Clone returns an independent copy of the manager.
func (m *Manager) Clone() *Manager {
	clone := *m
	return &clone
}

func (m *Manager) initial() bool {
	for _, run := range m.runs {
		if run.Opened() {
			return false
		}
	}
	return true
}

func (m *Manager) isPlayable(card deck.Card) bool {
	for _, c := range m.PlayableCards() {
		if c == card {
			return true
		}
	}
	return false
}
