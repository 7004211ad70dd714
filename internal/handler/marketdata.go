package handler

import (
	"errors"
	"net/http"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/service"
)

// MarketDataHandler handles HTTP requests for market-data snapshots.
type MarketDataHandler struct {
	mdSvc *service.MarketDataService
}

// NewMarketDataHandler creates a new MarketDataHandler.
func NewMarketDataHandler(mdSvc *service.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{mdSvc: mdSvc}
}

// snapshotRequest is the JSON request body for POST
// /marketdata/snapshots: 10 (price, quantity) pairs, bids at indices
// 0..4 (best last), asks at indices 5..9 (best first).
type snapshotRequest struct {
	Symbol     string    `json:"symbol"`
	Prices     []float64 `json:"prices"`
	Quantities []int64   `json:"quantities"`
}

// Apply handles POST /marketdata/snapshots.
func (h *MarketDataHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := h.mdSvc.Apply(domain.MarketSnapshot{
		Symbol:     req.Symbol,
		Prices:     req.Prices,
		Quantities: req.Quantities,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
			return
		}
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "applied"})
}
