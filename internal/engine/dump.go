package engine

import (
	"strconv"
	"strings"

	"github.com/dasabz/simex/internal/domain"
)

// Book dump layout: a rule line, ask levels highest price first
// (indented so the two sides read as columns), bid levels highest
// price first, and a closing rule. Each line is the level price
// followed by the per-order quantities in time-priority order.
const (
	dumpRule      = "___________________________"
	dumpAskIndent = "              "
)

// DumpBook renders a symbol's book in the audit-log layout.
func (e *Engine) DumpBook(symbol string) (string, error) {
	book, ok := e.bookFor(symbol)
	if !ok {
		return "", domain.ErrSymbolNotFound
	}
	book.mu.Lock()
	defer book.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(dumpRule)
	sb.WriteByte('\n')
	// Descend over the ask tree (best-first ascending) yields highest
	// prices first; Ascend over the bid tree (best-first descending)
	// already does.
	book.asks.Descend(func(level *PriceLevel) bool {
		writeDumpLine(&sb, dumpAskIndent, level)
		return true
	})
	book.bids.Ascend(func(level *PriceLevel) bool {
		writeDumpLine(&sb, "", level)
		return true
	})
	sb.WriteString(dumpRule)
	return sb.String(), nil
}

func writeDumpLine(sb *strings.Builder, indent string, level *PriceLevel) {
	sb.WriteString(indent)
	sb.WriteString(formatPrice(level.Price))
	sb.WriteByte(' ')
	if len(level.Orders) > 1 {
		for _, o := range level.Orders {
			sb.WriteString(strconv.FormatInt(o.Quantity, 10))
			sb.WriteByte(' ')
		}
	} else if len(level.Orders) == 1 {
		sb.WriteString(strconv.FormatInt(level.Orders[0].Quantity, 10))
	}
	sb.WriteByte('\n')
}

// formatPrice renders a price with at least one decimal digit, so a
// whole-number price prints as "103.0" rather than "103".
func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
