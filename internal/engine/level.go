package engine

import "github.com/dasabz/simex/internal/domain"

// PriceLevel is the FIFO queue of orders resting at one exact price on
// one side of the book. Insertion order is time priority: the oldest
// order is at the front, new orders are appended at the back. Level
// lookup uses exact float64 equality, never a tolerance; two logically
// equal prices with different floating representations are distinct
// levels.
type PriceLevel struct {
	Price  float64
	Orders []*domain.Order
}

// bidLevelLess orders the bid side best-first: higher price first.
func bidLevelLess(a, b *PriceLevel) bool {
	return a.Price > b.Price
}

// askLevelLess orders the ask side best-first: lower price first.
func askLevelLess(a, b *PriceLevel) bool {
	return a.Price < b.Price
}

// Append adds an order at the back of the queue, behind all resting
// quantity at this price.
func (l *PriceLevel) Append(o *domain.Order) {
	l.Orders = append(l.Orders, o)
}

// Empty reports whether the level has no resting orders. An empty
// level must never remain in the book; callers prune it in the same
// mutation that emptied it.
func (l *PriceLevel) Empty() bool {
	return len(l.Orders) == 0
}

// TotalQuantity sums the remaining quantity of every order at this
// level.
func (l *PriceLevel) TotalQuantity() int64 {
	var total int64
	for _, o := range l.Orders {
		total += o.Quantity
	}
	return total
}

// Quantities returns the per-order quantities in time-priority order.
func (l *PriceLevel) Quantities() []int64 {
	out := make([]int64, len(l.Orders))
	for i, o := range l.Orders {
		out[i] = o.Quantity
	}
	return out
}

// removeAt deletes the order at index i, preserving the order of the
// remaining queue.
func (l *PriceLevel) removeAt(i int) {
	l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
}

// LevelView is one price level exposed for presentation: the price and
// the per-order quantities in time-priority order.
type LevelView struct {
	Price      float64 `json:"price"`
	Quantities []int64 `json:"quantities"`
}
