// Package game implements the rules engine and turn loop for Sevens.
//
// The main types are Manager, which owns the four per-suit runs and
// adjudicates moves, and Loop, which deals hands and resolves turns
// until no playable card remains anywhere.
//
// # Basic Usage
//
// Deal and run a complete game:
//
//	loop, err := game.NewLoop(4, randutil.New(42), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := loop.Run()
//
// Or drive the manager directly:
//
//	m := game.NewManager()
//	for cards := m.PlayableCards(); cards != nil; cards = m.PlayableCards() {
//	    // pick a card...
//	    m.Play(cards[0])
//	}
//
// # Deterministic Testing
//
// The loop constructors take a *rand.Rand, and a single seed fixes
// the shuffle, the game ID and all tie-breaking choices:
//
//	rng := randutil.New(42)
//	loop, err := game.NewLoop(4, rng, nil)
//
// Scripted scenarios can skip the deal entirely:
//
//	hands := [][]deck.Card{deck.MustParseCards("7s6s8s")}
//	loop, err := game.NewLoopWithHands(hands, rng, nil)
//
// # Architecture
//
// Loop delegates responsibilities to specialized components:
//   - Manager: Recomputes the legal set each turn and applies moves
//   - RunState: Tracks one suit's contiguous run of played ranks
//   - deck.Deck: Provides shuffled cards from an injected RNG
//   - EventBus: Publishes knocks, plays and finishes to subscribers
//
// The only legal opening move is the seven of spades; after that each
// suit opens independently on its own seven and extends one rank at a
// time in both directions. A game always terminates because every play
// shrinks some suit's remaining window of playable ranks.
package game
