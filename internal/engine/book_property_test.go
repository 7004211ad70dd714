package engine

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/dasabz/simex/internal/domain"
)

// Property: the resting book is never crossed. After any sequence of
// order entries the best bid is strictly below the best ask, because an
// incoming order that could cross matches before resting.
func TestProperty_BookNeverCrossed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 60).Draw(t, "n")

		for i := 0; i < n; i++ {
			side := domain.SideBuy
			if rapid.Bool().Draw(t, fmt.Sprintf("sell%d", i)) {
				side = domain.SideSell
			}
			price := float64(rapid.IntRange(95, 105).Draw(t, fmt.Sprintf("price%d", i)))
			qty := rapid.Int64Range(1, 500).Draw(t, fmt.Sprintf("qty%d", i))

			e.EnterNew(domain.NewOrder("TEST", side, qty, price, fmt.Sprintf("c%d", i)))

			top, err := e.TopOfBook("TEST")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if top.HasBid() && top.HasAsk() && top.BidPrice >= top.AskPrice {
				t.Fatalf("book crossed after order %d: bid %v >= ask %v", i, top.BidPrice, top.AskPrice)
			}
		}
	})
}

// Property: quantity is conserved. Every entered unit either rests on
// the book or was consumed by a trade, and each trade consumes one unit
// from each side.
func TestProperty_QuantityConserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 60).Draw(t, "n")

		var entered, traded int64
		for i := 0; i < n; i++ {
			side := domain.SideBuy
			if rapid.Bool().Draw(t, fmt.Sprintf("sell%d", i)) {
				side = domain.SideSell
			}
			price := float64(rapid.IntRange(98, 102).Draw(t, fmt.Sprintf("price%d", i)))
			qty := rapid.Int64Range(1, 300).Draw(t, fmt.Sprintf("qty%d", i))

			status, trades := e.EnterNew(domain.NewOrder("TEST", side, qty, price, fmt.Sprintf("c%d", i)))
			if status == domain.OrderStatusRejected {
				continue
			}
			entered += qty
			for _, tr := range trades {
				traded += tr.Quantity
			}
		}

		var resting int64
		bids, asks, err := e.BookLevels("TEST")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, level := range append(bids, asks...) {
			for _, q := range level.Quantities {
				if q <= 0 {
					t.Fatalf("non-positive resting quantity %d at level %v", q, level.Price)
				}
				resting += q
			}
		}

		if entered != resting+2*traded {
			t.Fatalf("quantity not conserved: entered %d, resting %d, traded %d", entered, resting, traded)
		}
	})
}

// Property: trade ids increase strictly and start at the sequence
// origin for a fresh engine.
func TestProperty_TradeIDsStrictlyIncrease(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		n := rapid.IntRange(1, 40).Draw(t, "n")

		var all []*domain.Trade
		for i := 0; i < n; i++ {
			side := domain.SideBuy
			if i%2 == 1 {
				side = domain.SideSell
			}
			price := float64(rapid.IntRange(99, 101).Draw(t, fmt.Sprintf("price%d", i)))
			qty := rapid.Int64Range(1, 100).Draw(t, fmt.Sprintf("qty%d", i))

			_, trades := e.EnterNew(domain.NewOrder("TEST", side, qty, price, fmt.Sprintf("c%d", i)))
			all = append(all, trades...)
		}

		for i, tr := range all {
			want := FirstTradeID + int64(i)
			if tr.ID != want {
				t.Fatalf("trade %d: got id %d, want %d", i, tr.ID, want)
			}
		}
	})
}

// Property: a cancel removes every slice for the id, including slices
// accumulated through amend-ups, and prunes the emptied level.
func TestProperty_CancelRemovesAllSlices(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()

		// A lone resting order at its own price level.
		price := float64(rapid.IntRange(50, 60).Draw(t, "price"))
		qty := rapid.Int64Range(1, 100).Draw(t, "qty")
		e.EnterNew(domain.NewOrder("TEST", domain.SideBuy, qty, price, "target"))

		// Pile up extra slices through repeated amend-ups.
		amends := rapid.IntRange(0, 5).Draw(t, "amends")
		newQty := qty
		for i := 0; i < amends; i++ {
			newQty += rapid.Int64Range(1, 50).Draw(t, fmt.Sprintf("bump%d", i))
			e.EnterAmend(domain.AmendRequest{Side: domain.SideBuy, Quantity: newQty, Price: price, OrigClientOrderID: "target"})
		}

		status := e.EnterCancel(domain.CancelRequest{Side: domain.SideBuy, OrigClientOrderID: "target"})
		if status != domain.OrderStatusCancelled {
			t.Fatalf("expected cancelled, got %s", status)
		}

		bids, _, err := e.BookLevels("TEST")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, level := range bids {
			if level.Price == price {
				t.Fatalf("level %v survived the cancel with quantities %v", price, level.Quantities)
			}
		}
	})
}

// Property: within one price level, resting orders fill oldest first.
func TestProperty_TimePriorityWithinLevel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()

		makers := rapid.IntRange(2, 6).Draw(t, "makers")
		var total int64
		qtys := make([]int64, makers)
		for i := 0; i < makers; i++ {
			qtys[i] = rapid.Int64Range(1, 100).Draw(t, fmt.Sprintf("qty%d", i))
			total += qtys[i]
			e.EnterNew(domain.NewOrder("TEST", domain.SideSell, qtys[i], 100, fmt.Sprintf("m%d", i)))
		}

		takeQty := rapid.Int64Range(1, total).Draw(t, "takeQty")
		_, trades := e.EnterNew(domain.NewOrder("TEST", domain.SideBuy, takeQty, 100, "taker"))

		// Fills must walk the makers in submission order: every trade
		// except the last consumes a maker in full.
		remaining := takeQty
		for i, tr := range trades {
			wantQty := qtys[i]
			if remaining < wantQty {
				wantQty = remaining
			}
			if tr.Quantity != wantQty {
				t.Fatalf("trade %d: got qty %d, want %d", i, tr.Quantity, wantQty)
			}
			remaining -= tr.Quantity
		}
		if remaining != 0 {
			t.Fatalf("taker not fully filled: %d left of %d", remaining, takeQty)
		}
	})
}
