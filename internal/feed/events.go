package feed

import (
	"time"

	"github.com/dasabz/simex/internal/domain"
)

// EventType tags the payload carried by an Event.
type EventType string

const (
	EventTypeTrade     EventType = "trade"
	EventTypeTopOfBook EventType = "top_of_book"
)

// Event is the wire shape streamed to feed subscribers.
type Event struct {
	Type      EventType        `json:"type"`
	Trade     *TradePrint      `json:"trade,omitempty"`
	TopOfBook *TopOfBookUpdate `json:"top_of_book,omitempty"`
}

// TradePrint is a public trade report.
type TradePrint struct {
	TradeID       int64   `json:"trade_id"`
	Symbol        string  `json:"symbol"`
	Side          string  `json:"side"`
	ClientOrderID string  `json:"client_order_id"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	ExecutedAt    string  `json:"executed_at"`
}

// TopOfBookUpdate is a best-bid/best-offer report. Absent sides carry
// the -1 sentinels.
type TopOfBookUpdate struct {
	Symbol      string  `json:"symbol"`
	BidPrice    float64 `json:"bid_price"`
	AskPrice    float64 `json:"ask_price"`
	BidQuantity int64   `json:"bid_quantity"`
	AskQuantity int64   `json:"ask_quantity"`
}

// TradeEvent builds a trade event from a domain trade.
func TradeEvent(t *domain.Trade) Event {
	return Event{
		Type: EventTypeTrade,
		Trade: &TradePrint{
			TradeID:       t.ID,
			Symbol:        t.Order.Symbol,
			Side:          string(t.Order.Side),
			ClientOrderID: t.Order.ClientOrderID,
			Quantity:      t.Quantity,
			Price:         t.Price,
			ExecutedAt:    t.ExecutedAt.UTC().Format(time.RFC3339Nano),
		},
	}
}

// TopOfBookEvent builds a top-of-book event from the derived view.
func TopOfBookEvent(top domain.TopOfBook) Event {
	return Event{
		Type: EventTypeTopOfBook,
		TopOfBook: &TopOfBookUpdate{
			Symbol:      top.Symbol,
			BidPrice:    top.BidPrice,
			AskPrice:    top.AskPrice,
			BidQuantity: top.BidQuantity,
			AskQuantity: top.AskQuantity,
		},
	}
}
