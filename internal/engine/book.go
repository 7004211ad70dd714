package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/store"
)

// OrderBook holds the two sides of one symbol's book as price-ordered
// level trees, plus the derived top-of-book view. Bid levels are
// ordered best-first descending, ask levels best-first ascending, so
// Min() of either tree is that side's best level.
//
// The book itself is not goroutine-safe: the engine serializes every
// operation on a symbol by holding mu for the operation's full
// duration.
type OrderBook struct {
	symbol string
	mu     sync.Mutex
	bids   *btree.BTreeG[*PriceLevel]
	asks   *btree.BTreeG[*PriceLevel]
	top    domain.TopOfBook

	seq    *TradeSequencer
	trades *store.TradeLog
	logger *slog.Logger
}

// NewOrderBook creates an empty book for the given symbol. The trade
// sequencer and trade log are shared across books.
func NewOrderBook(symbol string, seq *TradeSequencer, trades *store.TradeLog, logger *slog.Logger) *OrderBook {
	const degree = 32
	return &OrderBook{
		symbol: symbol,
		bids:   btree.NewG(degree, bidLevelLess),
		asks:   btree.NewG(degree, askLevelLess),
		top:    domain.EmptyTopOfBook(symbol),
		seq:    seq,
		trades: trades,
		logger: logger,
	}
}

// sideTrees returns (same side, opposite side) level trees for an
// order on the given side.
func (b *OrderBook) sideTrees(side domain.Side) (same, opposite *btree.BTreeG[*PriceLevel]) {
	if side == domain.SideBuy {
		return b.bids, b.asks
	}
	return b.asks, b.bids
}

// levelAt looks up the level with exactly the given price.
func (b *OrderBook) levelAt(tree *btree.BTreeG[*PriceLevel], price float64) (*PriceLevel, bool) {
	return tree.Get(&PriceLevel{Price: price})
}

// Enter attempts to cross the order against the opposite side, then
// rests any remaining quantity on the order's own side, and finally
// recomputes the top of book. It returns the trades generated, oldest
// first. The caller must hold b.mu.
func (b *OrderBook) Enter(order *domain.Order) []*domain.Trade {
	same, opposite := b.sideTrees(order.Side)

	var trades []*domain.Trade
	hasLeaves := true

	// An empty opposite side is never crossable; the order rests
	// unconditionally.
	if best, ok := opposite.Min(); ok && !lessAggressive(order.Side, order.Price, best.Price) {
		trades, hasLeaves = b.match(order, opposite)
	}
	if hasLeaves {
		b.rest(order, same)
	}
	b.updateTopOfBook(order.Side)
	return trades
}

// lessAggressive reports whether an order at price is purely passive
// against the opposite side's best price, meaning matching can be
// skipped entirely.
func lessAggressive(side domain.Side, price, bestOppositePrice float64) bool {
	return (side == domain.SideBuy && price < bestOppositePrice) ||
		(side == domain.SideSell && price > bestOppositePrice)
}

// match sweeps opposite-side levels best to worst, consuming resting
// orders in time order. It stops as soon as the incoming order is
// exhausted or the front resting order no longer crosses; levels
// beyond that point are strictly worse and cannot cross either. The
// second return value reports whether the order retains quantity to
// rest.
func (b *OrderBook) match(order *domain.Order, opposite *btree.BTreeG[*PriceLevel]) ([]*domain.Trade, bool) {
	var trades []*domain.Trade
	for {
		level, ok := opposite.Min()
		if !ok {
			return trades, true
		}
		for !level.Empty() {
			resting := level.Orders[0]
			if !resting.MoreAggressiveThan(order) {
				// Time priority inside a level never reorders by
				// price, so the sweep ends here.
				return trades, true
			}

			var tradeQty int64
			switch {
			case order.Quantity > resting.Quantity:
				tradeQty = resting.Quantity
				resting.Reduce(tradeQty)
				resting.Status = domain.OrderStatusFilled
				order.Reduce(tradeQty)
				order.Status = domain.OrderStatusPartiallyFilled
				level.removeAt(0)
			case order.Quantity < resting.Quantity:
				tradeQty = order.Quantity
				order.Reduce(tradeQty)
				order.Status = domain.OrderStatusFilled
				resting.Reduce(tradeQty)
				resting.Status = domain.OrderStatusPartiallyFilled
			default:
				tradeQty = order.Quantity
				order.Reduce(tradeQty)
				order.Status = domain.OrderStatusFilled
				resting.Reduce(tradeQty)
				resting.Status = domain.OrderStatusFilled
				level.removeAt(0)
			}

			trades = append(trades, b.recordTrade(order, resting, tradeQty))

			if order.FullyFilled() {
				if level.Empty() {
					opposite.Delete(level)
				}
				return trades, false
			}
		}
		// Level fully consumed; prune it and move to the next one.
		opposite.Delete(level)
	}
}

// recordTrade emits exactly one trade per match: the trade price is
// the resting order's price and the trade is recorded under the
// aggressing order's client order id.
func (b *OrderBook) recordTrade(order, resting *domain.Order, qty int64) *domain.Trade {
	trade := &domain.Trade{
		ID:         b.seq.Next(),
		Quantity:   qty,
		Price:      resting.Price,
		Order:      order,
		ExecutedAt: time.Now(),
	}
	b.trades.Append(order.ClientOrderID, trade)
	b.logger.Info("trade",
		slog.Int64("trade_id", trade.ID),
		slog.String("symbol", b.symbol),
		slog.String("client_order_id", order.ClientOrderID),
		slog.Int64("quantity", trade.Quantity),
		slog.Float64("price", trade.Price),
	)
	return trade
}

// rest appends the order at the back of its price level, creating the
// level if absent.
func (b *OrderBook) rest(order *domain.Order, same *btree.BTreeG[*PriceLevel]) {
	if level, ok := b.levelAt(same, order.Price); ok {
		level.Append(order)
		return
	}
	same.ReplaceOrInsert(&PriceLevel{
		Price:  order.Price,
		Orders: []*domain.Order{order},
	})
}

// updateTopOfBook recomputes the derived best-bid/best-offer view
// after a mutation triggered by an order on the given side. Absent
// sides report the -1 sentinels.
func (b *OrderBook) updateTopOfBook(side domain.Side) {
	same, opposite := b.sideTrees(side)

	samePrice, sameQty := bestOf(same)
	oppPrice, oppQty := bestOf(opposite)

	if side == domain.SideBuy {
		b.top = domain.TopOfBook{
			Symbol:      b.symbol,
			BidPrice:    samePrice,
			AskPrice:    oppPrice,
			BidQuantity: sameQty,
			AskQuantity: oppQty,
		}
	} else {
		b.top = domain.TopOfBook{
			Symbol:      b.symbol,
			BidPrice:    oppPrice,
			AskPrice:    samePrice,
			BidQuantity: oppQty,
			AskQuantity: sameQty,
		}
	}
}

// bestOf returns the best level's price and aggregated quantity, or
// the absent sentinels when the side is empty.
func bestOf(tree *btree.BTreeG[*PriceLevel]) (float64, int64) {
	level, ok := tree.Min()
	if !ok || level.Empty() {
		return domain.AbsentPrice, domain.AbsentQuantity
	}
	return level.Price, level.TotalQuantity()
}

// TopOfBook returns the current derived view. The caller must hold
// b.mu.
func (b *OrderBook) TopOfBook() domain.TopOfBook {
	return b.top
}

// ApplySnapshot discards the book's current contents and rebuilds both
// sides solely from the snapshot's synthetic levels, one placeholder
// resting order per level with an empty client id. The top of book is
// set from the best of each side. The caller must hold b.mu.
func (b *OrderBook) ApplySnapshot(snap domain.MarketSnapshot) {
	const degree = 32
	b.bids = btree.NewG(degree, bidLevelLess)
	b.asks = btree.NewG(degree, askLevelLess)

	for i := domain.SnapshotBestBidIndex; i >= 0; i-- {
		b.bids.ReplaceOrInsert(&PriceLevel{
			Price: snap.Prices[i],
			Orders: []*domain.Order{
				domain.NewOrder(snap.Symbol, domain.SideBuy, snap.Quantities[i], snap.Prices[i], ""),
			},
		})
	}
	for i := domain.SnapshotBestAskIndex; i < domain.SnapshotDepth; i++ {
		b.asks.ReplaceOrInsert(&PriceLevel{
			Price: snap.Prices[i],
			Orders: []*domain.Order{
				domain.NewOrder(snap.Symbol, domain.SideSell, snap.Quantities[i], snap.Prices[i], ""),
			},
		})
	}

	b.top = domain.TopOfBook{
		Symbol:      snap.Symbol,
		BidPrice:    snap.Prices[domain.SnapshotBestBidIndex],
		AskPrice:    snap.Prices[domain.SnapshotBestAskIndex],
		BidQuantity: snap.Quantities[domain.SnapshotBestBidIndex],
		AskQuantity: snap.Quantities[domain.SnapshotBestAskIndex],
	}
}

// CollectOwn gathers every resting order with a non-empty client order
// id, per side, in book traversal order (price priority, then time
// priority within a level). Synthetic market-depth placeholders are
// skipped. The caller must hold b.mu.
func (b *OrderBook) CollectOwn() (bids, asks []*domain.Order) {
	b.bids.Ascend(func(level *PriceLevel) bool {
		for _, o := range level.Orders {
			if !o.Synthetic() {
				bids = append(bids, o)
			}
		}
		return true
	})
	b.asks.Ascend(func(level *PriceLevel) bool {
		for _, o := range level.Orders {
			if !o.Synthetic() {
				asks = append(asks, o)
			}
		}
		return true
	})
	return bids, asks
}

// BidLevels returns the bid side best-first (price descending). The
// caller must hold b.mu.
func (b *OrderBook) BidLevels() []LevelView {
	return levelViews(b.bids)
}

// AskLevels returns the ask side best-first (price ascending). The
// caller must hold b.mu.
func (b *OrderBook) AskLevels() []LevelView {
	return levelViews(b.asks)
}

func levelViews(tree *btree.BTreeG[*PriceLevel]) []LevelView {
	views := make([]LevelView, 0, tree.Len())
	tree.Ascend(func(level *PriceLevel) bool {
		views = append(views, LevelView{
			Price:      level.Price,
			Quantities: level.Quantities(),
		})
		return true
	})
	return views
}
