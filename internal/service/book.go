package service

import (
	"github.com/dasabz/simex/internal/domain"
	"github.com/dasabz/simex/internal/engine"
)

// BookView is a presentation snapshot of one symbol's book: both sides
// best-first plus the textual dump rendered from the same levels.
type BookView struct {
	Symbol string
	Bids   []engine.LevelView
	Asks   []engine.LevelView
	Dump   string
}

// BookService serves read-only book queries.
type BookService struct {
	engine *engine.Engine
}

// NewBookService creates a BookService.
func NewBookService(eng *engine.Engine) *BookService {
	return &BookService{engine: eng}
}

// TopOfBook returns the derived view for a symbol.
func (s *BookService) TopOfBook(symbol string) (domain.TopOfBook, error) {
	return s.engine.TopOfBook(symbol)
}

// View returns both sides of a symbol's book plus the rendered dump.
func (s *BookService) View(symbol string) (BookView, error) {
	bids, asks, err := s.engine.BookLevels(symbol)
	if err != nil {
		return BookView{}, err
	}
	dump, err := s.engine.DumpBook(symbol)
	if err != nil {
		return BookView{}, err
	}
	return BookView{Symbol: symbol, Bids: bids, Asks: asks, Dump: dump}, nil
}
