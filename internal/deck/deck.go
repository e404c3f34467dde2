package deck

import rand "math/rand/v2"

// Size is the number of cards in a full deck.
const Size = NumSuits * 13

// Deck represents the 52-card set, each (rank, suit) combination appearing
// exactly once. A deck is consumed by dealing and never reused.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck in suit-major order. The rng drives
// Shuffle and is always injected so games are reproducible from a seed.
func New(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			deck.cards = append(deck.cards, Card{Suit: suit, Rank: rank})
		}
	}

	return deck
}

// NewShuffled creates a full deck and shuffles it in one step.
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
