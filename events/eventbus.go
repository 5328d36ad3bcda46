package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Tmalone1250/mtk-sale/logx"
)

type SubscriberID string

type Subscriber struct {
	ID      SubscriberID
	Channel chan LedgerEvent
}

// EventBus fans ledger events out to subscribers and keeps the append-only
// history that downstream observers (dashboards, indexers) read back.
type EventBus struct {
	subscribers map[SubscriberID]*Subscriber
	history     []LedgerEvent
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[SubscriberID]*Subscriber),
	}
}

func (eb *EventBus) generateUUIDID() SubscriberID {
	id := uuid.Must(uuid.NewV7())
	return SubscriberID(id.String())
}

func (eb *EventBus) Subscribe() (SubscriberID, chan LedgerEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := eb.generateUUIDID()

	ch := make(chan LedgerEvent, 50) // Buffer for events
	subscriber := &Subscriber{
		ID:      id,
		Channel: ch,
	}

	eb.subscribers[id] = subscriber

	logx.Info("EVENTBUS", fmt.Sprintf("Client subscribed to ledger events | subscriber_id=%s | total_subscribers=%d", id, len(eb.subscribers)))

	return id, ch
}

// Unsubscribe removes a subscription by ID
func (eb *EventBus) Unsubscribe(id SubscriberID) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subscriber, exists := eb.subscribers[id]
	if !exists {
		logx.Warn("EVENTBUS", fmt.Sprintf("Attempted to unsubscribe non-existent subscriber | subscriber_id=%s", id))
		return false
	}

	delete(eb.subscribers, id)
	close(subscriber.Channel)

	logx.Info("EVENTBUS", fmt.Sprintf("Client unsubscribed from events | subscriber_id=%s | remaining_subscribers=%d", id, len(eb.subscribers)))
	return true
}

// Publish appends an event to the history and notifies all subscribers.
// A subscriber whose channel is full is skipped, never blocked on.
func (eb *EventBus) Publish(event LedgerEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.history = append(eb.history, event)

	for id, subscriber := range eb.subscribers {
		select {
		case subscriber.Channel <- event:
			// Event sent successfully
		default:
			logx.Warn("EVENTBUS", fmt.Sprintf("Subscriber channel full | subscriber_id=%s | event_type=%s", id, event.Type()))
		}
	}
}

// History returns a snapshot of every event published so far, in order.
func (eb *EventBus) History() []LedgerEvent {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	out := make([]LedgerEvent, len(eb.history))
	copy(out, eb.history)
	return out
}

// HistorySince returns events published at or after index from.
func (eb *EventBus) HistorySince(from int) []LedgerEvent {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if from < 0 || from > len(eb.history) {
		return nil
	}
	out := make([]LedgerEvent, len(eb.history)-from)
	copy(out, eb.history[from:])
	return out
}

// GetTotalSubscriptions returns the total number of active subscriptions
func (eb *EventBus) GetTotalSubscriptions() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.subscribers)
}

// HasSubscriber checks if a subscriber with the given ID exists
func (eb *EventBus) HasSubscriber(id SubscriberID) bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	_, exists := eb.subscribers[id]
	return exists
}
