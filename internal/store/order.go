package store

import (
	"sync"

	"github.com/dasabz/simex/internal/domain"
)

// OrderIndex is the live-order index: client order id → the order
// object currently considered "the live order" for amend and cancel
// lookups. Only new-origin orders are indexed. Upsert overwrites an
// existing entry, which is what lets a price-changing amend re-enter
// under the original client order id without duplicating the entry.
type OrderIndex struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewOrderIndex creates an empty OrderIndex.
func NewOrderIndex() *OrderIndex {
	return &OrderIndex{
		orders: make(map[string]*domain.Order),
	}
}

// Upsert registers an order under its client order id, replacing any
// previous entry for that id.
func (s *OrderIndex) Upsert(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ClientOrderID] = o
}

// Get returns the live order for a client order id.
func (s *OrderIndex) Get(clientOrderID string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[clientOrderID]
	return o, ok
}

// Remove drops the entry for a client order id. Removing an unknown id
// is a no-op.
func (s *OrderIndex) Remove(clientOrderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, clientOrderID)
}

// Len returns the number of live entries.
func (s *OrderIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}
