package store

import (
	"testing"

	"github.com/dasabz/simex/internal/domain"
)

func TestTradeLog_AppendAndList(t *testing.T) {
	log := NewTradeLog()
	o := domain.NewOrder("AAPL", domain.SideBuy, 100, 103.0, "c1")

	log.Append("c1", &domain.Trade{ID: 10000, Quantity: 60, Price: 103.0, Order: o})
	log.Append("c1", &domain.Trade{ID: 10001, Quantity: 40, Price: 104.0, Order: o})

	trades := log.List("c1")
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].ID != 10000 || trades[1].ID != 10001 {
		t.Errorf("expected execution order preserved, got ids %d, %d", trades[0].ID, trades[1].ID)
	}
}

func TestTradeLog_ListUnknownIsNil(t *testing.T) {
	log := NewTradeLog()
	if trades := log.List("missing"); trades != nil {
		t.Errorf("expected nil for unknown id, got %v", trades)
	}
}

func TestTradeLog_ListReturnsCopy(t *testing.T) {
	log := NewTradeLog()
	o := domain.NewOrder("AAPL", domain.SideSell, 100, 101.0, "c1")
	log.Append("c1", &domain.Trade{ID: 10000, Quantity: 100, Price: 101.0, Order: o})

	first := log.List("c1")
	first[0] = nil

	second := log.List("c1")
	if second[0] == nil {
		t.Error("mutating a returned slice must not affect the log")
	}
}
