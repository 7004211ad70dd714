package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/engine"
	"github.com/dasabz/simex/internal/service"
)

// BookHandler handles HTTP requests for book queries.
type BookHandler struct {
	bookSvc *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookSvc *service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

// topOfBookResponse is the JSON response for GET /books/{symbol}/top.
type topOfBookResponse struct {
	Symbol      string  `json:"symbol"`
	BidPrice    float64 `json:"bid_price"`
	AskPrice    float64 `json:"ask_price"`
	BidQuantity int64   `json:"bid_quantity"`
	AskQuantity int64   `json:"ask_quantity"`
}

// bookResponse is the JSON response for GET /books/{symbol}. Bids and
// asks are ordered best-to-worst; each level carries its per-order
// quantities in time-priority order.
type bookResponse struct {
	Symbol string             `json:"symbol"`
	Bids   []engine.LevelView `json:"bids"`
	Asks   []engine.LevelView `json:"asks"`
	Dump   string             `json:"dump"`
}

// Top handles GET /books/{symbol}/top.
func (h *BookHandler) Top(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	top, err := h.bookSvc.TopOfBook(symbol)
	if err != nil {
		mapBookError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, topOfBookResponse{
		Symbol:      top.Symbol,
		BidPrice:    top.BidPrice,
		AskPrice:    top.AskPrice,
		BidQuantity: top.BidQuantity,
		AskQuantity: top.AskQuantity,
	})
}

// View handles GET /books/{symbol}.
func (h *BookHandler) View(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	view, err := h.bookSvc.View(symbol)
	if err != nil {
		mapBookError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, bookResponse{
		Symbol: view.Symbol,
		Bids:   view.Bids,
		Asks:   view.Asks,
		Dump:   view.Dump,
	})
}

// mapBookError maps domain errors to HTTP responses for book
// endpoints.
func mapBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		WriteError(w, http.StatusNotFound, "symbol_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
