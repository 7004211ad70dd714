package engine

import (
	"github.com/dasabz/simex/internal/domain"
)

// Amend helpers. A client order can be spread over several slices at
// one level: amend-ups append incremental slices behind the already
// resting quantity so queue priority is preserved, amend-downs shrink
// the youngest slice and drop the rest, and any price change forfeits
// priority by removing every slice before re-entry. All callers must
// hold b.mu.

// amendDown walks the level newest to oldest. The first (youngest)
// slice for the client order id is resized to newQty and marked
// amended; any older duplicate slices left over from prior amend-ups
// are removed outright, so exactly one slice survives per client id.
func (b *OrderBook) amendDown(level *PriceLevel, clientOrderID string, newQty int64) {
	found := false
	for i := len(level.Orders) - 1; i >= 0; i-- {
		o := level.Orders[i]
		if o.ClientOrderID != clientOrderID {
			continue
		}
		if !found {
			o.Quantity = newQty
			o.Status = domain.OrderStatusAmended
			found = true
			continue
		}
		level.removeAt(i)
	}
}

// amendUp appends a fresh slice at the back of the level carrying the
// original client order id, sized to the quantity increment over the
// first existing slice for that id (or the full new quantity when no
// slice is found). Already-resting quantity keeps its queue position;
// only the increment waits behind it.
func (b *OrderBook) amendUp(level *PriceLevel, symbol string, side domain.Side, clientOrderID string, newQty int64) {
	sliceQty := newQty
	for _, o := range level.Orders {
		if o.ClientOrderID == clientOrderID {
			sliceQty = newQty - o.Quantity
			break
		}
	}
	level.Append(domain.NewOrder(symbol, side, sliceQty, level.Price, clientOrderID))
}

// removeSlices locates the level currently holding slices for the
// client order id on the given side, removes them, and prunes the
// level if that left it empty. Used by the price-changing amend path
// before the order re-enters at its new price.
func (b *OrderBook) removeSlices(side domain.Side, clientOrderID string) {
	same, _ := b.sideTrees(side)

	var price float64
	found := false
	same.Ascend(func(level *PriceLevel) bool {
		for _, o := range level.Orders {
			if o.ClientOrderID == clientOrderID {
				price = level.Price
				found = true
			}
		}
		return true
	})
	if !found {
		return
	}
	level, ok := b.levelAt(same, price)
	if !ok {
		return
	}
	removeMatching(level, clientOrderID)
	if level.Empty() {
		same.Delete(level)
	}
}

// removeAllSlices removes every slice for the client order id from
// every level on the given side, pruning any level left empty. Used by
// cancel.
func (b *OrderBook) removeAllSlices(side domain.Side, clientOrderID string) {
	same, _ := b.sideTrees(side)

	levels := make([]*PriceLevel, 0, same.Len())
	same.Ascend(func(level *PriceLevel) bool {
		levels = append(levels, level)
		return true
	})
	for _, level := range levels {
		removeMatching(level, clientOrderID)
		if level.Empty() {
			same.Delete(level)
		}
	}
}

func removeMatching(level *PriceLevel, clientOrderID string) {
	kept := level.Orders[:0]
	for _, o := range level.Orders {
		if o.ClientOrderID != clientOrderID {
			kept = append(kept, o)
		}
	}
	level.Orders = kept
}
