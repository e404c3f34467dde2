package game

import (
	"errors"
	"testing"

	"github.com/lox/sevens/internal/deck"
)

// playAll plays a sequence of cards in notation order, failing the test
// on the first rejection
func playAll(t *testing.T, m *Manager, notation string) {
	t.Helper()
	for _, card := range deck.MustParseCards(notation) {
		if err := m.Play(card); err != nil {
			t.Fatalf("Play(%s) failed: %v", card, err)
		}
	}
}

func TestOpeningLegality(t *testing.T) {
	m := NewManager()

	playable := m.PlayableCards()
	if len(playable) != 1 {
		t.Fatalf("initial PlayableCards() = %v, want exactly one card", playable)
	}
	want := deck.Card{Suit: deck.Spades, Rank: deck.Seven}
	if playable[0] != want {
		t.Errorf("initial PlayableCards() = %v, want %v", playable[0], want)
	}

	// The other sevens do not open the game
	for _, notation := range []string{"7h", "7d", "7c"} {
		card := deck.MustParseCards(notation)[0]
		if err := m.Play(card); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Play(%s) on fresh manager: error = %v, want ErrIllegalMove", card, err)
		}
	}
}

func TestRunNarrowing(t *testing.T) {
	m := NewManager()
	playAll(t, m, "7s")

	got := m.PlayableCards()
	want := deck.MustParseCards("8s6s7h7d7c")
	if len(got) != len(want) {
		t.Fatalf("PlayableCards() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PlayableCards()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSevenThenSix(t *testing.T) {
	m := NewManager()

	if err := m.Play(deck.MustParseCards("7s")[0]); err != nil {
		t.Fatalf("Play(7s) failed: %v", err)
	}
	if err := m.Play(deck.MustParseCards("7s")[0]); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("replaying 7s: error = %v, want ErrIllegalMove", err)
	}
	if err := m.Play(deck.MustParseCards("6s")[0]); err != nil {
		t.Fatalf("Play(6s) failed: %v", err)
	}

	down, up, ok := m.Run(deck.Spades).Bounds()
	if !ok {
		t.Fatal("spades run should be opened")
	}
	if down != deck.Six || up != deck.Seven {
		t.Errorf("spades bounds = (%v, %v), want (6, 7)", down, up)
	}
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	m := NewManager()
	playAll(t, m, "7s8s7h")

	var before [deck.NumSuits]RunState
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		before[suit] = m.Run(suit)
	}
	beforePlayable := m.PlayableCards()

	for _, notation := range []string{"7s", "Ts", "2h", "Ad", "Kc"} {
		card := deck.MustParseCards(notation)[0]
		if err := m.Play(card); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("Play(%s): error = %v, want ErrIllegalMove", card, err)
		}
	}

	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		if m.Run(suit) != before[suit] {
			t.Errorf("suit %v run changed after rejected plays", suit)
		}
	}
	afterPlayable := m.PlayableCards()
	if len(afterPlayable) != len(beforePlayable) {
		t.Fatalf("legal set changed after rejected plays: %v vs %v", beforePlayable, afterPlayable)
	}
	for i := range beforePlayable {
		if afterPlayable[i] != beforePlayable[i] {
			t.Errorf("legal set changed after rejected plays: %v vs %v", beforePlayable, afterPlayable)
		}
	}
}

func TestPlayInvalidCard(t *testing.T) {
	m := NewManager()

	if err := m.Play(deck.Card{Suit: deck.Spades, Rank: 99}); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("Play(rank 99): error = %v, want ErrInvalidCard", err)
	}
	if err := m.Play(deck.Card{Suit: 9, Rank: deck.Seven}); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("Play(suit 9): error = %v, want ErrInvalidCard", err)
	}
	if err := m.Play(deck.Card{}); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("Play(zero card): error = %v, want ErrInvalidCard", err)
	}

	// Still the untouched initial state
	playable := m.PlayableCards()
	if len(playable) != 1 || playable[0] != (deck.Card{Suit: deck.Spades, Rank: deck.Seven}) {
		t.Errorf("state changed after invalid plays: PlayableCards() = %v", playable)
	}
}

func TestSuitSaturation(t *testing.T) {
	m := NewManager()
	playAll(t, m, "7s8s9sTsJsQsKs6s5s4s3s2sAs")

	if !m.Run(deck.Spades).Saturated() {
		t.Fatal("spades should be saturated after all 13 ranks")
	}

	playable := m.PlayableCards()
	want := deck.MustParseCards("7h7d7c")
	if len(playable) != len(want) {
		t.Fatalf("PlayableCards() = %v, want %v", playable, want)
	}
	for _, card := range playable {
		if card.Suit == deck.Spades {
			t.Errorf("saturated suit still offers %v", card)
		}
	}
}

func TestAllSuitsSaturate(t *testing.T) {
	m := NewManager()
	playAll(t, m, "7s8s9sTsJsQsKs6s5s4s3s2sAs")
	playAll(t, m, "7h8h9hThJhQhKh6h5h4h3h2hAh")
	playAll(t, m, "7d8d9dTdJdQdKd6d5d4d3d2dAd")
	playAll(t, m, "7c8c9cTcJcQcKc6c5c4c3c2cAc")

	if playable := m.PlayableCards(); playable != nil {
		t.Errorf("PlayableCards() after all 52 plays = %v, want nil", playable)
	}

	// Terminal is inferred from the empty legal set, so anything else
	// is rejected rather than panicking
	if err := m.Play(deck.MustParseCards("7s")[0]); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Play on saturated board: error = %v, want ErrIllegalMove", err)
	}
}

func TestRunStateBounds(t *testing.T) {
	m := NewManager()

	if _, _, ok := m.Run(deck.Hearts).Bounds(); ok {
		t.Error("unopened run should report no bounds")
	}

	playAll(t, m, "7s7h8h9h6h")

	down, up, ok := m.Run(deck.Hearts).Bounds()
	if !ok {
		t.Fatal("hearts run should be opened")
	}
	if down != deck.Six || up != deck.Nine {
		t.Errorf("hearts bounds = (%v, %v), want (6, 9)", down, up)
	}
	if m.Run(deck.Hearts).Saturated() {
		t.Error("hearts should not be saturated")
	}
	if m.Run(deck.Diamonds).Opened() {
		t.Error("diamonds should still be unopened")
	}
}

func TestCloneIndependent(t *testing.T) {
	m := NewManager()
	playAll(t, m, "7s")

	clone := m.Clone()
	playAll(t, clone, "8s9s")

	if _, up, _ := m.Run(deck.Spades).Bounds(); up != deck.Seven {
		t.Errorf("original mutated through clone: spades up = %v, want 7", up)
	}
	if _, up, _ := clone.Run(deck.Spades).Bounds(); up != deck.Nine {
		t.Errorf("clone spades up = %v, want 9", up)
	}
}
