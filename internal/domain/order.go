package domain

// Side indicates whether an order buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether the side is one of the two known values.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStatus represents the lifecycle state of an order slice.
// Filled, cancelled, and rejected are terminal for a given slice.
type OrderStatus string

const (
	OrderStatusNone            OrderStatus = "none"
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusAmended         OrderStatus = "amended"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusRejected        OrderStatus = "rejected"
)

// Order is a limit order entering or resting on the book. Quantity is
// the remaining open quantity; a resting order's quantity is always
// positive, and an order reduced to zero is removed from its level in
// the same mutation. The same order object is referenced by its price
// level, the live-order index, and the trade log, so every mutation
// goes through one canonical record.
type Order struct {
	Symbol        string
	Side          Side
	ClientOrderID string
	Status        OrderStatus
	Quantity      int64
	Price         float64
}

// NewOrder creates an order with initial status none. The matching
// engine promotes it to new on entry.
func NewOrder(symbol string, side Side, quantity int64, price float64, clientOrderID string) *Order {
	return &Order{
		Symbol:        symbol,
		Side:          side,
		ClientOrderID: clientOrderID,
		Status:        OrderStatusNone,
		Quantity:      quantity,
		Price:         price,
	}
}

// MoreAggressiveThan reports whether this order's price would cross the
// counter order's price: a buy crosses at or above, a sell at or below.
func (o *Order) MoreAggressiveThan(counter *Order) bool {
	return (o.Side == SideBuy && o.Price >= counter.Price) ||
		(o.Side == SideSell && o.Price <= counter.Price)
}

// FullyFilled reports whether the order has no remaining quantity.
func (o *Order) FullyFilled() bool {
	return o.Quantity <= 0
}

// Reduce subtracts qty from the remaining quantity.
func (o *Order) Reduce(qty int64) {
	o.Quantity -= qty
}

// Synthetic reports whether the order is a market-depth placeholder
// seeded from a snapshot rather than a client order. Synthetic orders
// carry an empty client order id.
func (o *Order) Synthetic() bool {
	return o.ClientOrderID == ""
}

// AmendRequest asks to replace the resting order identified by
// OrigClientOrderID with a new price and quantity, tagged with
// NewClientOrderID. Whether queue priority survives depends on what
// changed: a quantity-only amend at an unchanged price preserves it,
// any price change forfeits it.
type AmendRequest struct {
	Side              Side
	Quantity          int64
	Price             float64
	OrigClientOrderID string
	NewClientOrderID  string
}

// CancelRequest asks to remove every slice of the resting order
// identified by OrigClientOrderID. Quantity and price are carried for
// audit logging only.
type CancelRequest struct {
	Side              Side
	Quantity          int64
	Price             float64
	OrigClientOrderID string
	NewClientOrderID  string
}
