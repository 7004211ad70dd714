package service

import (
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/engine"
	"github.com/dasabz/simex/internal/feed"
)

var orderSymbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// SubmitOrderRequest represents the input for new-order submission.
// ClientOrderID is optional; the service assigns one when empty.
type SubmitOrderRequest struct {
	Symbol        string
	Side          domain.Side
	Quantity      int64
	Price         float64
	ClientOrderID string
}

// OrderService validates order requests, dispatches them to the
// matching engine, and publishes the resulting trades and top-of-book
// updates to the market feed.
type OrderService struct {
	engine *engine.Engine
	feed   *feed.Hub[feed.Event]
	logger *slog.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(eng *engine.Engine, hub *feed.Hub[feed.Event], logger *slog.Logger) *OrderService {
	return &OrderService{engine: eng, feed: hub, logger: logger}
}

// Submit validates and enters a new order. Malformed requests (bad
// symbol, bad side, negative quantity or price) fail with a
// ValidationError before reaching the engine; a zero quantity or zero
// price passes validation and comes back from the engine as a
// rejection, matching the core's contract.
func (s *OrderService) Submit(req SubmitOrderRequest) (domain.OrderStatus, *domain.Order, error) {
	if !orderSymbolRegex.MatchString(req.Symbol) {
		return domain.OrderStatusRejected, nil, &domain.ValidationError{Message: "symbol must be 1-10 uppercase letters"}
	}
	if !req.Side.Valid() {
		return domain.OrderStatusRejected, nil, &domain.ValidationError{Message: "side must be buy or sell"}
	}
	if req.Quantity < 0 {
		return domain.OrderStatusRejected, nil, &domain.ValidationError{Message: "quantity must not be negative"}
	}
	if req.Price < 0 {
		return domain.OrderStatusRejected, nil, &domain.ValidationError{Message: "price must not be negative"}
	}

	clientOrderID := req.ClientOrderID
	if clientOrderID == "" {
		clientOrderID = uuid.New().String()
	}

	order := domain.NewOrder(req.Symbol, req.Side, req.Quantity, req.Price, clientOrderID)
	status, trades := s.engine.EnterNew(order)
	if status == domain.OrderStatusRejected {
		order.Status = domain.OrderStatusRejected
		return status, order, nil
	}
	s.publish(order.Symbol, trades)
	return status, order, nil
}

// Amend validates and applies an amend request.
func (s *OrderService) Amend(req domain.AmendRequest) (domain.OrderStatus, error) {
	if !req.Side.Valid() {
		return domain.OrderStatusRejected, &domain.ValidationError{Message: "side must be buy or sell"}
	}
	if req.OrigClientOrderID == "" {
		return domain.OrderStatusRejected, &domain.ValidationError{Message: "orig_client_order_id must not be empty"}
	}

	// Capture the symbol before the amend in case the order leaves the
	// index (a price-changing amend re-enters it).
	var symbol string
	if orig, ok := s.engine.LiveOrder(req.OrigClientOrderID); ok {
		symbol = orig.Symbol
	}

	status, trades := s.engine.EnterAmend(req)
	if status != domain.OrderStatusRejected {
		s.publish(symbol, trades)
	}
	return status, nil
}

// Cancel validates and applies a cancel request.
func (s *OrderService) Cancel(req domain.CancelRequest) (domain.OrderStatus, error) {
	if !req.Side.Valid() {
		return domain.OrderStatusRejected, &domain.ValidationError{Message: "side must be buy or sell"}
	}
	if req.OrigClientOrderID == "" {
		return domain.OrderStatusRejected, &domain.ValidationError{Message: "orig_client_order_id must not be empty"}
	}

	var symbol string
	if orig, ok := s.engine.LiveOrder(req.OrigClientOrderID); ok {
		symbol = orig.Symbol
	}

	status := s.engine.EnterCancel(req)
	if status != domain.OrderStatusRejected {
		s.publish(symbol, nil)
	}
	return status, nil
}

// Trades returns the trade history for a client order id, oldest
// first.
func (s *OrderService) Trades(clientOrderID string) []*domain.Trade {
	return s.engine.Trades(clientOrderID)
}

// publish pushes trade prints and the post-mutation top of book onto
// the feed. Publication happens after the engine has released the
// book lock.
func (s *OrderService) publish(symbol string, trades []*domain.Trade) {
	for _, t := range trades {
		s.feed.Broadcast(feed.TradeEvent(t))
	}
	if symbol == "" {
		return
	}
	top, err := s.engine.TopOfBook(symbol)
	if err != nil {
		return
	}
	s.feed.Broadcast(feed.TopOfBookEvent(top))
}
