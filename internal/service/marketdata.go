package service

import (
	"log/slog"

	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/engine"
	"github.com/dasabz/simex/internal/feed"
)

// MarketDataService applies externally supplied market-data snapshots
// to the engine and publishes the trades generated when the engine's
// own orders re-match against the rebuilt book.
type MarketDataService struct {
	engine *engine.Engine
	feed   *feed.Hub[feed.Event]
	logger *slog.Logger
}

// NewMarketDataService creates a MarketDataService.
func NewMarketDataService(eng *engine.Engine, hub *feed.Hub[feed.Event], logger *slog.Logger) *MarketDataService {
	return &MarketDataService{engine: eng, feed: hub, logger: logger}
}

// Apply validates the snapshot shape and hands it to the engine's
// resynchronizer. Re-entry trades and the fresh top of book are
// published to the feed.
func (s *MarketDataService) Apply(snap domain.MarketSnapshot) error {
	trades, err := s.engine.ApplySnapshot(snap)
	if err != nil {
		return err
	}
	for _, t := range trades {
		s.feed.Broadcast(feed.TradeEvent(t))
	}
	if top, err := s.engine.TopOfBook(snap.Symbol); err == nil {
		s.feed.Broadcast(feed.TopOfBookEvent(top))
	}
	return nil
}
