// Package feed fans out engine events (trade prints, top-of-book
// updates) to in-process subscribers such as the websocket handler.
package feed

import "sync"

// Subscription is one subscriber's buffered event channel.
type Subscription[T any] struct {
	ch chan T
}

// C returns the receive side of the subscription.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Hub broadcasts values to every subscriber. Sends are non-blocking: a
// subscriber whose buffer is full misses the event rather than
// stalling the publisher.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs map[*Subscription[T]]struct{}
}

// NewHub creates a hub with no subscribers.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscriber with the given channel buffer.
func (h *Hub[T]) Subscribe(buffer int) *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub[T]) Unsubscribe(sub *Subscription[T]) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	close(sub.ch)
}

// Broadcast delivers value to every subscriber that has buffer space.
func (h *Hub[T]) Broadcast(value T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- value:
		default:
		}
	}
}
