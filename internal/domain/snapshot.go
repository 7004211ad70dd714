package domain

import "fmt"

// SnapshotDepth is the number of (price, quantity) pairs a market-data
// snapshot carries: five bid levels followed by five ask levels.
const SnapshotDepth = 10

// Snapshot level layout: bids occupy indices 0..4 with the best bid at
// index 4, asks occupy indices 5..9 with the best ask at index 5.
const (
	SnapshotBestBidIndex = 4
	SnapshotBestAskIndex = 5
)

// MarketSnapshot is an already-parsed level-2 view of the rest of the
// visible market for one symbol. It never includes this engine's own
// orders; the resynchronizer re-seats those after the book is rebuilt.
type MarketSnapshot struct {
	Symbol     string
	Prices     []float64
	Quantities []int64
}

// Validate checks the snapshot shape before it is allowed to replace a
// book: a non-empty symbol and exactly SnapshotDepth prices and
// quantities.
func (s MarketSnapshot) Validate() error {
	if s.Symbol == "" {
		return &ValidationError{Message: "snapshot symbol must not be empty"}
	}
	if len(s.Prices) != SnapshotDepth || len(s.Quantities) != SnapshotDepth {
		return &ValidationError{Message: fmt.Sprintf(
			"snapshot must carry exactly %d prices and %d quantities, got %d and %d",
			SnapshotDepth, SnapshotDepth, len(s.Prices), len(s.Quantities))}
	}
	return nil
}
