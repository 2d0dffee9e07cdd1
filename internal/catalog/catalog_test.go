package catalog_test

import (
	"testing"

	"github.com/yoockh/mockview/internal/catalog"
)

func TestSliceClampsLow(t *testing.T) {
	qs := catalog.Slice(0)
	if len(qs) != 1 {
		t.Fatalf("expected clamp to 1 question, got %d", len(qs))
	}
	qs = catalog.Slice(-5)
	if len(qs) != 1 {
		t.Fatalf("expected clamp to 1 question, got %d", len(qs))
	}
}

func TestSliceClampsHigh(t *testing.T) {
	qs := catalog.Slice(catalog.Len() + 40)
	if len(qs) != catalog.Len() {
		t.Fatalf("expected clamp to %d questions, got %d", catalog.Len(), len(qs))
	}
}

func TestSliceReturnsCopy(t *testing.T) {
	a := catalog.Slice(2)
	a[0] = "mutated"
	b := catalog.Slice(2)
	if b[0] == "mutated" {
		t.Fatal("Slice must not alias the underlying catalog")
	}
}
