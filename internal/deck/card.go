package deck

import (
	"errors"
	"fmt"
)

// Validation and comparison errors surfaced by card construction.
var (
	// ErrInvalidRank is returned when a rank falls outside 1-13.
	ErrInvalidRank = errors.New("deck: rank out of range 1-13")

	// ErrInvalidSuit is returned when a suit is not one of the four
	// recognized suits.
	ErrInvalidSuit = errors.New("deck: unrecognized suit")

	// ErrInvalidComparison is returned when a card is compared against a
	// value that is not a Card. Foreign values are never silently unequal.
	ErrInvalidComparison = errors.New("deck: comparison only defined between cards")
)

// Suit represents a card suit. Spades is the canonical suit: its seven is
// the only legal opening move of a game.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs

	NumSuits = 4
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether the suit is one of the four recognized suits.
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Rank represents a card rank. Aces are low: ranks run 1 (Ace) through
// 13 (King), with Seven opening each suit's run.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// Valid reports whether the rank is inside 1-13.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card. Cards are immutable values; two cards are
// interchangeable whenever rank and suit both match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card, validating rank and suit. Construction is the
// only validation point for well-behaved callers; literals that bypass it
// are caught by Validate.
func NewCard(suit Suit, rank Rank) (Card, error) {
	c := Card{Suit: suit, Rank: rank}
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

// Validate re-checks a card value. Struct literals can carry out-of-range
// fields past NewCard, so state-mutating entry points call this before
// trusting a card.
func (c Card) Validate() error {
	if !c.Rank.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRank, int(c.Rank))
	}
	if !c.Suit.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSuit, int(c.Suit))
	}
	return nil
}

// EqualAny reports whether v is a Card equal to c. Comparison against a
// non-Card value returns ErrInvalidComparison rather than false.
func (c Card) EqualAny(v any) (bool, error) {
	o, ok := v.(Card)
	if !ok {
		return false, ErrInvalidComparison
	}
	return c == o, nil
}

// String returns the string representation of a card (e.g., "7♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}
