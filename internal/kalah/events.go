package kalah

import (
	"time"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart EventType = "game_start"
	EventTypeTurn      EventType = "turn"
	EventTypeGameEnd   EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once, before the first turn
type GameStartEvent struct {
	GameID    string
	First     string
	Second    string
	Rules     Rules
	Board     Snapshot
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// TurnEvent is published after every turn
type TurnEvent struct {
	GameID    string
	Move      Move
	Next      Seat
	NextName  string
	Board     Snapshot
	timestamp time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.timestamp }

// GameEndEvent is published when the game has been finalized
type GameEndEvent struct {
	GameID    string
	Result    GameResult
	Winner    string // empty for a draw
	Board     Snapshot
	Moves     int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
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

// Unsubscribe removes a subscriber from receiving events. Func subscribers
// are not comparable and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
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
