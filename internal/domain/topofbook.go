package domain

// AbsentPrice and AbsentQuantity are the sentinel values reported for
// a side of the book with no resting orders.
const (
	AbsentPrice    float64 = -1
	AbsentQuantity int64   = -1
)

// TopOfBook is the derived best-bid/best-offer view of one symbol's
// book. Quantities are the sum over every order at the best level.
type TopOfBook struct {
	Symbol      string
	BidPrice    float64
	AskPrice    float64
	BidQuantity int64
	AskQuantity int64
}

// EmptyTopOfBook returns the view of a book with no resting orders on
// either side.
func EmptyTopOfBook(symbol string) TopOfBook {
	return TopOfBook{
		Symbol:      symbol,
		BidPrice:    AbsentPrice,
		AskPrice:    AbsentPrice,
		BidQuantity: AbsentQuantity,
		AskQuantity: AbsentQuantity,
	}
}

// Equal compares two views by price fields only; the aggregated
// quantities are informational.
func (t TopOfBook) Equal(other TopOfBook) bool {
	return t.BidPrice == other.BidPrice && t.AskPrice == other.AskPrice
}

// HasBid reports whether the bid side is present.
func (t TopOfBook) HasBid() bool {
	return t.BidPrice != AbsentPrice
}

// HasAsk reports whether the ask side is present.
func (t TopOfBook) HasAsk() bool {
	return t.AskPrice != AbsentPrice
}
