package domain

import "time"

// Trade records a single match. The price is always the resting
// (passive) order's price, and the trade is attributed to the
// aggressing order's client order id only.
type Trade struct {
	ID         int64
	Quantity   int64
	Price      float64
	Order      *Order // the aggressing order
	ExecutedAt time.Time
}
