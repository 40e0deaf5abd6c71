package rules

import (
	"sort"
	"sync"
)

// EventType indicates the category of a duel event.
type EventType string

const (
	// Turn events
	EventTurnStarted EventType = "TURN_STARTED"
	EventTurnSkipped EventType = "TURN_SKIPPED"
	EventTurnEnded   EventType = "TURN_ENDED"
	EventGameOver    EventType = "GAME_OVER"

	// Card events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventCardPlayed    EventType = "CARD_PLAYED"
	EventCardSelected  EventType = "CARD_SELECTED"
	EventCardsRevealed EventType = "CARDS_REVEALED"

	// Effect events
	EventHeatChanged  EventType = "HEAT_CHANGED"
	EventDamageDealt  EventType = "DAMAGE_DEALT"
	EventHealed       EventType = "HEALED"
	EventInsertAttack EventType = "INSERT_ATTACK"
	EventOverheat     EventType = "OVERHEAT"
)

// Event is a single occurrence inside a duel. Side is the acting side;
// Card is the card name when one is involved; Amount carries the damage,
// heal or heat delta.
type Event struct {
	Type     EventType
	DuelID   string
	Turn     int
	Side     Side
	Card     string
	Amount   int
	Phase    Phase
	Metadata map[string]string
}

// Listener receives events published on a bus.
type Listener func(Event)

// TypedListener is a listener registered for a single event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus delivers events to listeners synchronously, in publish order.
type EventBus struct {
	mu             sync.RWMutex
	nextHandle     int
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by handle, typed or not.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners. Catch-all
// listeners run first in subscription order, then typed listeners.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	handles := make([]int, 0, len(bus.listeners))
	for handle := range bus.listeners {
		handles = append(handles, handle)
	}
	sort.Ints(handles)
	listeners := make([]Listener, 0, len(handles))
	for _, handle := range handles {
		listeners = append(listeners, bus.listeners[handle])
	}
	typed := append([]TypedListener(nil), bus.typedListeners[event.Type]...)
	bus.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
	for _, listener := range typed {
		listener.Callback(event)
	}
}
