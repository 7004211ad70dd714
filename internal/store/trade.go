package store

import (
	"sync"

	"github.com/dasabz/simex/internal/domain"
)

// TradeLog records executions per client order id, oldest first.
// Entries are append-only: an order's history survives the order being
// filled or cancelled off the book.
type TradeLog struct {
	mu     sync.RWMutex
	trades map[string][]*domain.Trade
}

// NewTradeLog creates an empty TradeLog.
func NewTradeLog() *TradeLog {
	return &TradeLog{
		trades: make(map[string][]*domain.Trade),
	}
}

// Append records a trade under the aggressing order's client order id.
func (s *TradeLog) Append(clientOrderID string, t *domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[clientOrderID] = append(s.trades[clientOrderID], t)
}

// List returns the trades recorded for a client order id in execution
// order. The returned slice is a copy; it is nil when the id has no
// trades.
func (s *TradeLog) List(clientOrderID string) []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := s.trades[clientOrderID]
	if trades == nil {
		return nil
	}
	out := make([]*domain.Trade, len(trades))
	copy(out, trades)
	return out
}
