package store

import (
	"testing"

	"github.com/dasabz/simex/internal/domain"
)

func TestOrderIndex_UpsertAndGet(t *testing.T) {
	idx := NewOrderIndex()

	o := domain.NewOrder("AAPL", domain.SideBuy, 100, 101.0, "c1")
	idx.Upsert(o)

	got, ok := idx.Get("c1")
	if !ok {
		t.Fatal("expected order to be found")
	}
	if got != o {
		t.Error("expected the same order object back")
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", idx.Len())
	}
}

func TestOrderIndex_UpsertReplaces(t *testing.T) {
	idx := NewOrderIndex()

	first := domain.NewOrder("AAPL", domain.SideBuy, 100, 101.0, "c1")
	second := domain.NewOrder("AAPL", domain.SideBuy, 200, 102.0, "c1")
	idx.Upsert(first)
	idx.Upsert(second)

	got, ok := idx.Get("c1")
	if !ok {
		t.Fatal("expected order to be found")
	}
	if got != second {
		t.Error("expected upsert to replace the previous entry")
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 entry after replacement, got %d", idx.Len())
	}
}

func TestOrderIndex_Remove(t *testing.T) {
	idx := NewOrderIndex()
	idx.Upsert(domain.NewOrder("AAPL", domain.SideSell, 50, 103.0, "c1"))

	idx.Remove("c1")
	if _, ok := idx.Get("c1"); ok {
		t.Error("expected order to be gone after remove")
	}
	if idx.Len() != 0 {
		t.Errorf("expected 0 entries, got %d", idx.Len())
	}

	// Removing an unknown id is a no-op.
	idx.Remove("missing")
}

func TestOrderIndex_GetUnknown(t *testing.T) {
	idx := NewOrderIndex()
	if _, ok := idx.Get("nothing"); ok {
		t.Error("expected unknown id to not be found")
	}
}
