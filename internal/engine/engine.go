package engine

import (
	"log/slog"
	"sync"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/store"
)

// Engine is the matching engine orchestrator. It owns one book per
// symbol, the live-order index used to validate amends and cancels,
// the trade log, and the process-wide trade id sequence. Every public
// operation runs to completion under the target symbol's book lock;
// no two operations on the same symbol's book ever interleave.
type Engine struct {
	mu    sync.RWMutex
	books map[string]*OrderBook

	orders *store.OrderIndex
	trades *store.TradeLog
	seq    *TradeSequencer
	logger *slog.Logger
}

// New creates an engine with no books. Books are created implicitly
// the first time a symbol is seen.
func New(logger *slog.Logger) *Engine {
	return &Engine{
		books:  make(map[string]*OrderBook),
		orders: store.NewOrderIndex(),
		trades: store.NewTradeLog(),
		seq:    NewTradeSequencer(FirstTradeID),
		logger: logger,
	}
}

// bookFor returns the existing book for a symbol.
func (e *Engine) bookFor(symbol string) (*OrderBook, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	book, ok := e.books[symbol]
	return book, ok
}

// getOrCreateBook returns the book for a symbol, creating it if
// absent.
func (e *Engine) getOrCreateBook(symbol string) *OrderBook {
	e.mu.RLock()
	book, ok := e.books[symbol]
	e.mu.RUnlock()
	if ok {
		return book
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Double-check after acquiring the write lock.
	if book, ok = e.books[symbol]; ok {
		return book
	}
	book = NewOrderBook(symbol, e.seq, e.trades, e.logger)
	e.books[symbol] = book
	return book
}

// EnterNew validates and submits a new order: zero quantity or zero
// price is rejected with the book untouched; otherwise the order is
// indexed by client order id, promoted to status new, and entered into
// its symbol's book, where it may match immediately and rest any
// remainder. Returns the trades generated.
func (e *Engine) EnterNew(order *domain.Order) (domain.OrderStatus, []*domain.Trade) {
	e.logger.Info("entering order",
		slog.String("symbol", order.Symbol),
		slog.String("side", string(order.Side)),
		slog.Int64("quantity", order.Quantity),
		slog.Float64("price", order.Price),
		slog.String("client_order_id", order.ClientOrderID),
	)
	if order.Quantity == 0 || order.Price == 0 {
		return domain.OrderStatusRejected, nil
	}
	book := e.getOrCreateBook(order.Symbol)
	book.mu.Lock()
	defer book.mu.Unlock()
	return domain.OrderStatusNew, e.enterLocked(book, order)
}

// enterLocked indexes and enters an order into a book whose lock the
// caller already holds. The index write is an upsert, so a
// price-changing amend re-entering under the original client order id
// overwrites rather than duplicates the entry.
func (e *Engine) enterLocked(book *OrderBook, order *domain.Order) []*domain.Trade {
	e.orders.Upsert(order)
	order.Status = domain.OrderStatusNew
	return book.Enter(order)
}

// EnterAmend applies an amend request. Rejected when the original
// client order id is unknown, the original order is already filled, or
// both the new quantity and new price are non-positive. With the price
// unchanged, a quantity decrease amends the youngest slice in place
// and a quantity increase queues an incremental slice; an amend that
// changes nothing is rejected. Any price change removes every existing
// slice and re-enters the order at the new price under the original
// client order id, where it may match immediately.
func (e *Engine) EnterAmend(req domain.AmendRequest) (domain.OrderStatus, []*domain.Trade) {
	e.logger.Info("amending order",
		slog.String("side", string(req.Side)),
		slog.Int64("quantity", req.Quantity),
		slog.Float64("price", req.Price),
		slog.String("orig_client_order_id", req.OrigClientOrderID),
		slog.String("new_client_order_id", req.NewClientOrderID),
	)
	orig, ok := e.orders.Get(req.OrigClientOrderID)
	if !ok || orig.Status == domain.OrderStatusFilled || (req.Quantity <= 0 && req.Price <= 0) {
		return domain.OrderStatusRejected, nil
	}

	book := e.getOrCreateBook(orig.Symbol)
	book.mu.Lock()
	defer book.mu.Unlock()

	if orig.Price == req.Price {
		same, _ := book.sideTrees(req.Side)
		level, hasLevelAtPrice := book.levelAt(same, req.Price)
		switch {
		case req.Quantity < orig.Quantity && hasLevelAtPrice:
			book.amendDown(level, req.OrigClientOrderID, req.Quantity)
		case req.Quantity > orig.Quantity:
			if hasLevelAtPrice {
				book.amendUp(level, orig.Symbol, req.Side, req.OrigClientOrderID, req.Quantity)
			}
		default:
			// Identical price and quantity is a no-op amendment.
			return domain.OrderStatusRejected, nil
		}
		book.updateTopOfBook(req.Side)
		return domain.OrderStatusAmended, nil
	}

	// Price change forfeits queue priority: remove the existing slices
	// and re-enter at the new price under the original client order
	// id.
	book.removeSlices(req.Side, req.OrigClientOrderID)
	book.updateTopOfBook(req.Side)
	var trades []*domain.Trade
	if req.Quantity != 0 && req.Price != 0 {
		replacement := domain.NewOrder(orig.Symbol, req.Side, req.Quantity, req.Price, req.OrigClientOrderID)
		trades = e.enterLocked(book, replacement)
	}
	return domain.OrderStatusAmended, trades
}

// EnterCancel removes every slice belonging to the original client
// order id from its side of the book and drops the id from the
// live-order index. Rejected when the id is unknown; otherwise the
// cancel always succeeds and the book's state is left with no trace of
// the order beyond its trade history.
func (e *Engine) EnterCancel(req domain.CancelRequest) domain.OrderStatus {
	e.logger.Info("cancelling order",
		slog.String("side", string(req.Side)),
		slog.Int64("quantity", req.Quantity),
		slog.Float64("price", req.Price),
		slog.String("orig_client_order_id", req.OrigClientOrderID),
		slog.String("new_client_order_id", req.NewClientOrderID),
	)
	orig, ok := e.orders.Get(req.OrigClientOrderID)
	if !ok {
		return domain.OrderStatusRejected
	}
	e.orders.Remove(orig.ClientOrderID)

	book := e.getOrCreateBook(orig.Symbol)
	book.mu.Lock()
	defer book.mu.Unlock()

	book.removeAllSlices(req.Side, req.OrigClientOrderID)
	book.updateTopOfBook(req.Side)
	return domain.OrderStatusCancelled
}

// ApplySnapshot replaces a symbol's market-derived levels with the
// snapshot's contents: the engine's own live orders are collected from
// the current book (bids then asks, price-then-time order preserved),
// the book is rebuilt solely from the snapshot, and the own orders are
// re-entered through the ordinary entry path where they may match
// against the fresh market levels or rest again. Returns any trades
// that re-entry generated.
func (e *Engine) ApplySnapshot(snap domain.MarketSnapshot) ([]*domain.Trade, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	e.logger.Info("applying market snapshot", slog.String("symbol", snap.Symbol))

	book := e.getOrCreateBook(snap.Symbol)
	book.mu.Lock()
	defer book.mu.Unlock()

	bids, asks := book.CollectOwn()
	book.ApplySnapshot(snap)

	var trades []*domain.Trade
	for _, o := range bids {
		trades = append(trades, book.Enter(o)...)
	}
	for _, o := range asks {
		trades = append(trades, book.Enter(o)...)
	}
	return trades, nil
}

// TopOfBook returns the derived best-bid/best-offer view for a
// symbol.
func (e *Engine) TopOfBook(symbol string) (domain.TopOfBook, error) {
	book, ok := e.bookFor(symbol)
	if !ok {
		return domain.TopOfBook{}, domain.ErrSymbolNotFound
	}
	book.mu.Lock()
	defer book.mu.Unlock()
	return book.TopOfBook(), nil
}

// Trades returns the trade history recorded under a client order id,
// oldest first, or nil when the id has no trades.
func (e *Engine) Trades(clientOrderID string) []*domain.Trade {
	return e.trades.List(clientOrderID)
}

// TradesFor returns the trade history for an order.
func (e *Engine) TradesFor(order *domain.Order) []*domain.Trade {
	return e.trades.List(order.ClientOrderID)
}

// LiveOrder returns the order currently indexed under a client order
// id.
func (e *Engine) LiveOrder(clientOrderID string) (*domain.Order, bool) {
	return e.orders.Get(clientOrderID)
}

// BookLevels returns both sides of a symbol's book best-first: bids by
// descending price, asks by ascending price.
func (e *Engine) BookLevels(symbol string) (bids, asks []LevelView, err error) {
	book, ok := e.bookFor(symbol)
	if !ok {
		return nil, nil, domain.ErrSymbolNotFound
	}
	book.mu.Lock()
	defer book.mu.Unlock()
	return book.BidLevels(), book.AskLevels(), nil
}
