package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dasabz/simex/internal/feed"
)

// FeedHandler streams execution events (trades and top-of-book
// updates) over a websocket.
type FeedHandler struct {
	hub      *feed.Hub[feed.Event]
	upgrader websocket.Upgrader
	buffer   int
	logger   *slog.Logger
}

// NewFeedHandler creates a FeedHandler publishing from the given hub.
func NewFeedHandler(hub *feed.Hub[feed.Event], buffer int, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		hub:      hub,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger,
		buffer:   buffer,
	}
}

// Stream handles GET /ws. Each connection gets its own buffered
// subscription; a slow reader drops events rather than stalling the
// matching path.
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(h.buffer)
	defer h.hub.Unsubscribe(sub)

	for event := range sub.C() {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
