package domain

import "testing"

func TestEmptyTopOfBook_Sentinels(t *testing.T) {
	top := EmptyTopOfBook("AAPL")
	if top.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", top.Symbol)
	}
	if top.BidPrice != AbsentPrice || top.AskPrice != AbsentPrice {
		t.Errorf("expected absent prices, got bid=%v ask=%v", top.BidPrice, top.AskPrice)
	}
	if top.BidQuantity != AbsentQuantity || top.AskQuantity != AbsentQuantity {
		t.Errorf("expected absent quantities, got bid=%v ask=%v", top.BidQuantity, top.AskQuantity)
	}
	if top.HasBid() || top.HasAsk() {
		t.Error("empty top of book should have neither side")
	}
}

func TestTopOfBook_EqualComparesPricesOnly(t *testing.T) {
	a := TopOfBook{Symbol: "AAPL", BidPrice: 101, AskPrice: 103, BidQuantity: 100, AskQuantity: 500}
	b := TopOfBook{Symbol: "AAPL", BidPrice: 101, AskPrice: 103, BidQuantity: 999, AskQuantity: 1}
	if !a.Equal(b) {
		t.Error("views with equal prices should be equal regardless of quantities")
	}

	c := b
	c.AskPrice = 104
	if a.Equal(c) {
		t.Error("views with different ask prices should not be equal")
	}
}

func TestTopOfBook_HasSides(t *testing.T) {
	top := TopOfBook{Symbol: "AAPL", BidPrice: 101, AskPrice: AbsentPrice, BidQuantity: 100, AskQuantity: AbsentQuantity}
	if !top.HasBid() {
		t.Error("expected bid side present")
	}
	if top.HasAsk() {
		t.Error("expected ask side absent")
	}
}
