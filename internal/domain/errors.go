package domain

import "errors"

// Sentinel errors for the engine's outer surface. Core matching
// failures are never errors: they come back as OrderStatusRejected
// with the book untouched, because stale amends and cancels are an
// expected, frequent occurrence. Errors are reserved for queries and
// inputs the orchestrator cannot map to a book at all.
var (
	ErrSymbolNotFound = errors.New("symbol_not_found")
	ErrUnknownOrder   = errors.New("unknown_order")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
