package engine

import (
	"sync"
	"testing"
)

func TestTradeSequencer_StartsAtOrigin(t *testing.T) {
	s := NewTradeSequencer(FirstTradeID)
	if got := s.Next(); got != FirstTradeID {
		t.Errorf("expected first id %d, got %d", FirstTradeID, got)
	}
	if got := s.Next(); got != FirstTradeID+1 {
		t.Errorf("expected second id %d, got %d", FirstTradeID+1, got)
	}
	if got := s.Current(); got != FirstTradeID+2 {
		t.Errorf("expected current %d, got %d", FirstTradeID+2, got)
	}
}

func TestTradeSequencer_ConcurrentUnique(t *testing.T) {
	s := NewTradeSequencer(FirstTradeID)

	const goroutines = 8
	const perGoroutine = 1000

	ids := make([][]int64, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids[g] = make([]int64, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids[g][i] = s.Next()
			}
		}(g)
	}
	wg.Wait()

	seen := make(map[int64]bool, goroutines*perGoroutine)
	for _, batch := range ids {
		for _, id := range batch {
			if seen[id] {
				t.Fatalf("duplicate trade id %d", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d unique ids, got %d", goroutines*perGoroutine, len(seen))
	}
}
