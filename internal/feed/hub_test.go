package feed

import (
	"testing"

	"github.com/dasabz/simex/internal/domain"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub[int]()
	a := h.Subscribe(4)
	b := h.Subscribe(4)

	h.Broadcast(7)

	if got := <-a.C(); got != 7 {
		t.Errorf("subscriber a: got %d, want 7", got)
	}
	if got := <-b.C(); got != 7 {
		t.Errorf("subscriber b: got %d, want 7", got)
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)

	h.Broadcast(1)
	h.Broadcast(2) // buffer full, dropped

	if got := <-sub.C(); got != 1 {
		t.Errorf("expected the first event, got %d", got)
	}
	select {
	case got := <-sub.C():
		t.Errorf("expected the second event to be dropped, got %d", got)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub[int]()
	sub := h.Subscribe(1)
	h.Unsubscribe(sub)

	if _, ok := <-sub.C(); ok {
		t.Error("expected channel closed after unsubscribe")
	}

	// Broadcasting after unsubscribe must not panic.
	h.Broadcast(5)
}

func TestTradeEvent_Shape(t *testing.T) {
	order := domain.NewOrder("AAPL", domain.SideBuy, 100, 103.0, "c1")
	trade := &domain.Trade{ID: 10000, Quantity: 100, Price: 103.0, Order: order}

	ev := TradeEvent(trade)
	if ev.Type != EventTypeTrade {
		t.Errorf("expected type trade, got %s", ev.Type)
	}
	if ev.Trade == nil {
		t.Fatal("expected trade payload")
	}
	if ev.Trade.TradeID != 10000 || ev.Trade.Symbol != "AAPL" || ev.Trade.ClientOrderID != "c1" {
		t.Errorf("unexpected trade payload: %+v", ev.Trade)
	}
	if ev.TopOfBook != nil {
		t.Error("trade event must not carry a top-of-book payload")
	}
}

func TestTopOfBookEvent_Shape(t *testing.T) {
	ev := TopOfBookEvent(domain.TopOfBook{
		Symbol: "AAPL", BidPrice: 101, AskPrice: 103, BidQuantity: 100, AskQuantity: 500,
	})
	if ev.Type != EventTypeTopOfBook {
		t.Errorf("expected type top_of_book, got %s", ev.Type)
	}
	if ev.TopOfBook == nil {
		t.Fatal("expected top-of-book payload")
	}
	if ev.TopOfBook.BidPrice != 101 || ev.TopOfBook.AskPrice != 103 {
		t.Errorf("unexpected payload: %+v", ev.TopOfBook)
	}
	if ev.Trade != nil {
		t.Error("top-of-book event must not carry a trade payload")
	}
}
