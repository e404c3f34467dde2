package deck

import (
	"testing"

	"github.com/lox/sevens/internal/randutil"
)

func TestNewDeckComplete(t *testing.T) {
	d := New(randutil.New(42))

	if d.CardsRemaining() != 52 {
		t.Fatalf("CardsRemaining() = %d, want 52", d.CardsRemaining())
	}

	seen := make(map[Card]int)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		if err := card.Validate(); err != nil {
			t.Errorf("dealt invalid card %v: %v", card, err)
		}
		seen[card]++
	}

	if len(seen) != 52 {
		t.Fatalf("dealt %d distinct cards, want 52", len(seen))
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			if n := seen[Card{Suit: suit, Rank: rank}]; n != 1 {
				t.Errorf("card %v dealt %d times, want 1", Card{Suit: suit, Rank: rank}, n)
			}
		}
	}
}

func TestNewShuffledComplete(t *testing.T) {
	d := NewShuffled(randutil.New(7))

	seen := make(map[Card]bool)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Errorf("shuffled deck dealt %d distinct cards, want 52", len(seen))
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a := NewShuffled(randutil.New(99))
	b := NewShuffled(randutil.New(99))

	for i := 0; i < 52; i++ {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatalf("card %d differs between identically seeded decks: %v vs %v", i, ca, cb)
		}
	}
}

func TestShuffleVariesBySeed(t *testing.T) {
	a := NewShuffled(randutil.New(1))
	b := NewShuffled(randutil.New(2))

	same := true
	for i := 0; i < 52; i++ {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical deck order")
	}
}

func TestDealExhausted(t *testing.T) {
	d := New(randutil.New(1))

	for i := 0; i < 52; i++ {
		if _, ok := d.Deal(); !ok {
			t.Fatalf("Deal() failed at card %d", i)
		}
	}
	if !d.IsEmpty() {
		t.Error("IsEmpty() = false after dealing 52 cards")
	}
	if card, ok := d.Deal(); ok {
		t.Errorf("Deal() on empty deck returned %v, true", card)
	}
}
