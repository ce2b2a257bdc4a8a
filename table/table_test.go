package table

import "testing"

func TestGetOutOfRangeReturnsNull(t *testing.T) {
	tb := New(2)
	if got := tb.Get(5); got != Null {
		t.Fatalf("expected Null for out-of-range index, got %+v", got)
	}
}

func TestInitOverwritesAndGrows(t *testing.T) {
	tb := New(2)
	tb.Init(0, []uint32{7, 8})
	if got := tb.Get(0); !got.IsFunc || got.Func != 7 {
		t.Fatalf("expected func 7 at index 0, got %+v", got)
	}
	tb.Init(3, []uint32{9})
	if tb.Len() != 4 {
		t.Fatalf("expected table to grow to length 4, got %d", tb.Len())
	}
	if got := tb.Get(3); !got.IsFunc || got.Func != 9 {
		t.Fatalf("expected func 9 at grown index 3, got %+v", got)
	}
}
