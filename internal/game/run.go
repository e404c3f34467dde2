package game

import "github.com/lox/sevens/internal/deck"

// RunState tracks the contiguous run of ranks played in a single suit.
// A run is either unopened (no card of the suit played yet) or holds
// both bounds, with down <= 7 <= up at all times.
type RunState struct {
	opened bool
	down   deck.Rank
	up     deck.Rank
}

// Opened reports whether any card of the suit has been played.
func (r RunState) Opened() bool {
	return r.opened
}

// Bounds returns the lowest and highest ranks played in the suit.
// ok is false while the run is unopened.
func (r RunState) Bounds() (down, up deck.Rank, ok bool) {
	if !r.opened {
		return 0, 0, false
	}
	return r.down, r.up, true
}

// Saturated reports whether every rank of the suit has been played.
func (r RunState) Saturated() bool {
	return r.opened && r.down == deck.Ace && r.up == deck.King
}

// appendPlayable appends the cards currently playable in this suit:
// the suit's own seven while unopened, otherwise the next rank above
// the run before the next rank below it.
func (r RunState) appendPlayable(cards []deck.Card, suit deck.Suit) []deck.Card {
	if !r.opened {
		return append(cards, deck.Card{Suit: suit, Rank: deck.Seven})
	}
	if r.up < deck.King {
		cards = append(cards, deck.Card{Suit: suit, Rank: r.up + 1})
	}
	if r.down > deck.Ace {
		cards = append(cards, deck.Card{Suit: suit, Rank: r.down - 1})
	}
	return cards
}

// apply extends the run with rank. Callers must have already verified
// the move is legal.
func (r *RunState) apply(rank deck.Rank) {
	switch {
	case rank == deck.Seven:
		r.opened = true
		r.down = deck.Seven
		r.up = deck.Seven
	case rank > deck.Seven:
		r.up = rank
	default:
		r.down = rank
	}
}
