package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe registers handler for eventType; the returned func removes it.
	Subscribe(eventType EventType, handler EventHandler) (unsubscribe func())
	// SubscribeAll registers handler for every event type.
	SubscribeAll(handler EventHandler) (unsubscribe func())
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[EventType][]subscription
	wildcard  []subscription
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]subscription),
	}
}

// Publish synchronously invokes handlers for the given event, wildcard handlers first so
// they observe events in publication order. Handler errors do not stop delivery to the
// remaining handlers; the first one is returned.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subs := append([]subscription{}, d.wildcard...)
	subs = append(subs, d.listeners[event.Type]...)
	d.mu.RUnlock()

	var firstErr error
	for _, sub := range subs {
		if err := sub.handler(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners[eventType] = append(d.listeners[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.listeners[eventType] = removeSubscription(d.listeners[eventType], id)
		})
	}
}

// SubscribeAll registers a handler receiving every event.
func (d *inMemoryDispatcher) SubscribeAll(handler EventHandler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.wildcard = append(d.wildcard, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.wildcard = removeSubscription(d.wildcard, id)
		})
	}
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
