package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/service"
)

// OrderHandler handles HTTP requests for order entry, amend, and
// cancel.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	Symbol        string  `json:"symbol"`
	Side          string  `json:"side"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	ClientOrderID string  `json:"client_order_id"`
}

// amendOrderRequest is the JSON request body for PUT
// /orders/{orig_client_order_id}.
type amendOrderRequest struct {
	Side             string  `json:"side"`
	Quantity         int64   `json:"quantity"`
	Price            float64 `json:"price"`
	NewClientOrderID string  `json:"new_client_order_id"`
}

// orderResponse is the JSON response for order operations.
type orderResponse struct {
	Status        string  `json:"status"`
	Symbol        string  `json:"symbol,omitempty"`
	Side          string  `json:"side,omitempty"`
	Quantity      int64   `json:"quantity,omitempty"`
	Price         float64 `json:"price,omitempty"`
	ClientOrderID string  `json:"client_order_id,omitempty"`
}

// tradeResponse is a single trade in the trade-history response.
type tradeResponse struct {
	TradeID       int64   `json:"trade_id"`
	ClientOrderID string  `json:"client_order_id"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	ExecutedAt    string  `json:"executed_at"`
}

// Submit handles POST /orders.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	status, order, err := h.orderSvc.Submit(service.SubmitOrderRequest{
		Symbol:        req.Symbol,
		Side:          domain.Side(req.Side),
		Quantity:      req.Quantity,
		Price:         req.Price,
		ClientOrderID: req.ClientOrderID,
	})
	if err != nil {
		mapOrderError(w, err)
		return
	}

	resp := orderResponse{
		Status:        string(status),
		Symbol:        order.Symbol,
		Side:          string(order.Side),
		Quantity:      order.Quantity,
		Price:         order.Price,
		ClientOrderID: order.ClientOrderID,
	}
	if status == domain.OrderStatusRejected {
		WriteJSON(w, http.StatusConflict, resp)
		return
	}
	WriteJSON(w, http.StatusCreated, resp)
}

// Amend handles PUT /orders/{orig_client_order_id}.
func (h *OrderHandler) Amend(w http.ResponseWriter, r *http.Request) {
	origID := chi.URLParam(r, "orig_client_order_id")

	var req amendOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	status, err := h.orderSvc.Amend(domain.AmendRequest{
		Side:              domain.Side(req.Side),
		Quantity:          req.Quantity,
		Price:             req.Price,
		OrigClientOrderID: origID,
		NewClientOrderID:  req.NewClientOrderID,
	})
	if err != nil {
		mapOrderError(w, err)
		return
	}

	resp := orderResponse{Status: string(status), ClientOrderID: origID}
	if status == domain.OrderStatusRejected {
		WriteJSON(w, http.StatusConflict, resp)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Cancel handles DELETE /orders/{orig_client_order_id}. Side and
// new_client_order_id are query parameters; quantity and price may be
// supplied for audit logging.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	origID := chi.URLParam(r, "orig_client_order_id")
	q := r.URL.Query()

	quantity, _ := strconv.ParseInt(q.Get("quantity"), 10, 64)
	price, _ := strconv.ParseFloat(q.Get("price"), 64)

	status, err := h.orderSvc.Cancel(domain.CancelRequest{
		Side:              domain.Side(q.Get("side")),
		Quantity:          quantity,
		Price:             price,
		OrigClientOrderID: origID,
		NewClientOrderID:  q.Get("new_client_order_id"),
	})
	if err != nil {
		mapOrderError(w, err)
		return
	}

	resp := orderResponse{Status: string(status), ClientOrderID: origID}
	if status == domain.OrderStatusRejected {
		WriteJSON(w, http.StatusConflict, resp)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Trades handles GET /trades/{client_order_id}. An id with no trades
// returns an empty list.
func (h *OrderHandler) Trades(w http.ResponseWriter, r *http.Request) {
	clientOrderID := chi.URLParam(r, "client_order_id")

	trades := h.orderSvc.Trades(clientOrderID)
	resp := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		resp = append(resp, tradeResponse{
			TradeID:       t.ID,
			ClientOrderID: t.Order.ClientOrderID,
			Quantity:      t.Quantity,
			Price:         t.Price,
			ExecutedAt:    t.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// mapOrderError maps domain errors to HTTP responses for order
// endpoints.
func mapOrderError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnknownOrder):
		WriteError(w, http.StatusNotFound, "unknown_order", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
