package engine

import "sync/atomic"

// FirstTradeID is where the process-wide trade id sequence starts.
const FirstTradeID = 10000

// TradeSequencer allocates monotonically increasing trade ids. One
// sequencer is shared by every book in the engine, so ids are unique
// process-wide regardless of symbol.
type TradeSequencer struct {
	next atomic.Int64
}

// NewTradeSequencer creates a sequencer whose first Next() returns
// start.
func NewTradeSequencer(start int64) *TradeSequencer {
	s := &TradeSequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next trade id.
func (s *TradeSequencer) Next() int64 {
	return s.next.Add(1) - 1
}

// Current returns the id the next call to Next will return.
func (s *TradeSequencer) Current() int64 {
	return s.next.Load()
}
