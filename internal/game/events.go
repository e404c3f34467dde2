package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/sevens/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
// These represent events that occur within the game logic
const (
	EventTypeGameStart      EventType = "game_start"
	EventTypeGameEnd        EventType = "game_end"
	EventTypeKnock          EventType = "knock"
	EventTypeCardPlayed     EventType = "card_played"
	EventTypeDecisionPoint  EventType = "decision_point"
	EventTypePlayerFinished EventType = "player_finished"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published when a game begins, after dealing
type GameStartEvent struct {
	GameID    string
	Players   int
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(gameID string, players int) GameStartEvent {
	return GameStartEvent{
		GameID:    gameID,
		Players:   players,
		timestamp: time.Now(),
	}
}

// KnockEvent is published when a player holds cards but none of them
// are currently playable
type KnockEvent struct {
	Player    int
	Turn      int
	timestamp time.Time
}

func (e KnockEvent) EventType() EventType { return EventTypeKnock }
func (e KnockEvent) Timestamp() time.Time { return e.timestamp }

// NewKnockEvent creates a new knock event
func NewKnockEvent(player, turn int) KnockEvent {
	return KnockEvent{
		Player:    player,
		Turn:      turn,
		timestamp: time.Now(),
	}
}

// CardPlayedEvent is published when a player plays a card. Forced is
// true when the card was the player's only legal option.
type CardPlayedEvent struct {
	Player    int
	Card      deck.Card
	Forced    bool
	Turn      int
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// NewCardPlayedEvent creates a new card played event
func NewCardPlayedEvent(player int, card deck.Card, forced bool, turn int) CardPlayedEvent {
	return CardPlayedEvent{
		Player:    player,
		Card:      card,
		Forced:    forced,
		Turn:      turn,
		timestamp: time.Now(),
	}
}

// DecisionPointEvent is published when a player holds more than one
// playable card and must choose between them
type DecisionPointEvent struct {
	Player    int
	Options   []deck.Card
	Turn      int
	timestamp time.Time
}

func (e DecisionPointEvent) EventType() EventType { return EventTypeDecisionPoint }
func (e DecisionPointEvent) Timestamp() time.Time { return e.timestamp }

// NewDecisionPointEvent creates a new decision point event
func NewDecisionPointEvent(player int, options []deck.Card, turn int) DecisionPointEvent {
	opts := make([]deck.Card, len(options))
	copy(opts, options)
	return DecisionPointEvent{
		Player:    player,
		Options:   opts,
		Turn:      turn,
		timestamp: time.Now(),
	}
}

// PlayerFinishedEvent is published each time a player's turn comes
// around with an empty hand. Count is the number of times that has
// happened to this player, so Count == 1 marks the turn they went out.
type PlayerFinishedEvent struct {
	Player    int
	Count     int
	Turn      int
	timestamp time.Time
}

func (e PlayerFinishedEvent) EventType() EventType { return EventTypePlayerFinished }
func (e PlayerFinishedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerFinishedEvent creates a new player finished event
func NewPlayerFinishedEvent(player, count, turn int) PlayerFinishedEvent {
	return PlayerFinishedEvent{
		Player:    player,
		Count:     count,
		Turn:      turn,
		timestamp: time.Now(),
	}
}

// GameEndEvent is published when no playable card remains anywhere
type GameEndEvent struct {
	GameID    string
	Turns     int
	Winner    int // first player to empty their hand, 0 if none
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(gameID string, turns, winner int) GameEndEvent {
	return GameEndEvent{
		GameID:    gameID,
		Turns:     turns,
		Winner:    winner,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Color       bool // Render suits in red/black ANSI colors
	ShowOptions bool // Include the candidate cards at decision points
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// FormatGameStart formats a game start event into a human-readable string
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	return fmt.Sprintf("Game %s: %d players", event.GameID, event.Players)
}

// FormatKnock formats a knock event into a human-readable string
func (ef *EventFormatter) FormatKnock(event KnockEvent) string {
	return fmt.Sprintf("Player %d knocks", event.Player)
}

// FormatCardPlayed formats a card played event into a human-readable string
func (ef *EventFormatter) FormatCardPlayed(event CardPlayedEvent) string {
	if event.Forced {
		return fmt.Sprintf("Player %d plays %s", event.Player, ef.formatCard(event.Card))
	}
	return fmt.Sprintf("Player %d decides to play %s", event.Player, ef.formatCard(event.Card))
}

// FormatDecisionPoint formats a decision point event into a human-readable string
func (ef *EventFormatter) FormatDecisionPoint(event DecisionPointEvent) string {
	text := fmt.Sprintf("Decision point reached for player %d", event.Player)
	if ef.opts.ShowOptions && len(event.Options) > 0 {
		text += " " + ef.formatCards(event.Options)
	}
	return text
}

// FormatPlayerFinished formats a player finished event. Only the first
// observation for each player produces output; the repeat observations
// on later rounds format to the empty string.
func (ef *EventFormatter) FormatPlayerFinished(event PlayerFinishedEvent) string {
	if event.Count != 1 {
		return ""
	}
	return fmt.Sprintf("Player %d has gone out", event.Player)
}

// FormatGameEnd formats a game end event into a human-readable string
func (ef *EventFormatter) FormatGameEnd(event GameEndEvent) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("=== Game %s Complete ===\n", event.GameID))
	result.WriteString(fmt.Sprintf("Turns: %d\n", event.Turns))
	if event.Winner > 0 {
		result.WriteString(fmt.Sprintf("First out: Player %d\n", event.Winner))
	} else {
		result.WriteString("First out: nobody\n")
	}
	return result.String()
}

// formatCards formats a slice of cards with appropriate styling
func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, ef.formatCard(card))
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

// formatCard formats a single card, with color styling when enabled
func (ef *EventFormatter) formatCard(card deck.Card) string {
	if !ef.opts.Color {
		return card.String()
	}
	if card.IsRed() {
		return fmt.Sprintf("\033[31m%s\033[0m", card.String())
	}
	return fmt.Sprintf("\033[30m%s\033[0m", card.String())
}
