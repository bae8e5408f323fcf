package game

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lox/finest9/cards"
	"github.com/lox/finest9/internal/dice"
	"github.com/lox/finest9/internal/match"
	"github.com/lox/finest9/internal/player"
	"github.com/lox/finest9/internal/scoring"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStarted       EventType = "game_started"
	EventTypeDiceRolled        EventType = "dice_rolled"
	EventTypeMatchCaptured     EventType = "match_captured"
	EventTypeCardDrawn         EventType = "card_drawn"
	EventTypeFinalRoundStarted EventType = "final_round_started"
	EventTypeTurnAdvanced      EventType = "turn_advanced"
	EventTypePhaseChanged      EventType = "phase_changed"
	EventTypeGameOver          EventType = "game_over"
	EventTypeGameReset         EventType = "game_reset"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is published after every state change. Snapshot is the state as it
// was immediately after the change.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
	Snapshot() State
}

type base struct {
	state     State
	timestamp time.Time
}

func newBase(s State) base {
	return base{state: s.Clone(), timestamp: time.Now()}
}

func (b base) Timestamp() time.Time { return b.timestamp }
func (b base) Snapshot() State      { return b.state.Clone() }

// GameStartedEvent is published when cards have been dealt.
type GameStartedEvent struct {
	base
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }

// DiceRolledEvent is published when the current player rolls.
type DiceRolledEvent struct {
	base
	Player player.Player
	Roll   dice.Roll
}

func (e DiceRolledEvent) EventType() EventType { return EventTypeDiceRolled }

// MatchCapturedEvent is published when a player captures cards.
type MatchCapturedEvent struct {
	base
	Player player.Player
	Match  match.Match
}

func (e MatchCapturedEvent) EventType() EventType { return EventTypeMatchCaptured }

// CardDrawnEvent is published when a player draws or passes. Card is nil
// when the deck was already empty.
type CardDrawnEvent struct {
	base
	Player player.Player
	Card   *cards.Card
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }

// FinalRoundStartedEvent is published when the last card leaves the deck.
type FinalRoundStartedEvent struct {
	base
	TriggeredBy player.Player
}

func (e FinalRoundStartedEvent) EventType() EventType { return EventTypeFinalRoundStarted }

// TurnAdvancedEvent is published when play passes to the next player.
type TurnAdvancedEvent struct {
	base
	From, To int
}

func (e TurnAdvancedEvent) EventType() EventType { return EventTypeTurnAdvanced }

// PhaseChangedEvent is published for phase changes that are not covered by
// a more specific event.
type PhaseChangedEvent struct {
	base
	From, To Phase
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }

// GameOverEvent is published once when the game ends.
type GameOverEvent struct {
	base
	Winner   *player.Player
	Rankings []scoring.Ranking
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }

// GameResetEvent is published when the engine returns to setup.
type GameResetEvent struct {
	base
}

func (e GameResetEvent) EventType() EventType { return EventTypeGameReset }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event Event)
}

// SimpleEventBus is an in-memory, synchronous event bus. Subscribers are
// called in subscription order on the publishing goroutine and must not call
// back into the engine's mutating methods.
type SimpleEventBus struct {
	mu          sync.Mutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	id  int
	sub EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber and returns a function that removes it.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.nextID++
	id := bus.nextID
	bus.subscribers = append(bus.subscribers, subscription{id: id, sub: subscriber})

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		bus.subscribers = slices.DeleteFunc(bus.subscribers, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.Lock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.Unlock()

	for _, s := range subs {
		s.sub.OnEvent(event)
	}
}

// Describe formats an event as a one-line log entry. Events that carry no
// interesting text return "".
func Describe(event Event) string {
	switch e := event.(type) {
	case GameStartedEvent:
		s := e.Snapshot()
		names := make([]string, len(s.Players))
		for i, p := range s.Players {
			names[i] = p.Name
		}
		return fmt.Sprintf("New game: %s (%d cards in deck)", strings.Join(names, ", "), len(s.Deck))
	case DiceRolledEvent:
		return fmt.Sprintf("%s rolled %s", e.Player.Name, e.Roll)
	case MatchCapturedEvent:
		return fmt.Sprintf("%s captured %s", e.Player.Name, e.Match)
	case CardDrawnEvent:
		if e.Card == nil {
			return fmt.Sprintf("%s passed (deck empty)", e.Player.Name)
		}
		return fmt.Sprintf("%s drew a card", e.Player.Name)
	case FinalRoundStartedEvent:
		return fmt.Sprintf("Deck empty! Final round started by %s", e.TriggeredBy.Name)
	case GameOverEvent:
		if e.Winner == nil {
			return "Game over"
		}
		return fmt.Sprintf("Game over: %s wins with %d points", e.Winner.Name, e.Winner.Score)
	case GameResetEvent:
		return "Game reset"
	default:
		return ""
	}
}
