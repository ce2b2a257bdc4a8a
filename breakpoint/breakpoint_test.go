package breakpoint

import "testing"

func TestIndicesNeverReused(t *testing.T) {
	r := New()
	var indices []uint32
	for i := 0; i < 5; i++ {
		indices = append(indices, r.Add(Breakpoint{Kind: KindCode, Position: CodePosition{FuncIndex: 0, InstrIndex: uint32(i)}}))
	}
	for _, idx := range indices[:3] {
		if !r.Delete(idx) {
			t.Fatalf("expected delete of %d to succeed", idx)
		}
	}
	next := r.Add(Breakpoint{Kind: KindCode, Position: CodePosition{FuncIndex: 1, InstrIndex: 0}})
	if next != 5 {
		t.Fatalf("expected fresh index 5, got %d", next)
	}
}

func TestFindCode(t *testing.T) {
	r := New()
	pos := CodePosition{FuncIndex: 2, InstrIndex: 7}
	idx := r.Add(Breakpoint{Kind: KindCode, Position: pos})
	got, ok := r.FindCode(pos)
	if !ok || got != idx {
		t.Fatalf("expected to find breakpoint %d, got %d ok=%v", idx, got, ok)
	}
	if _, ok := r.FindCode(CodePosition{FuncIndex: 9, InstrIndex: 9}); ok {
		t.Fatal("expected no match for unregistered position")
	}
}

func TestFindMemoryTriggers(t *testing.T) {
	r := New()
	r.Add(Breakpoint{Kind: KindMemory, Trigger: Write, Address: 0x20})
	if _, ok := r.FindMemory(0x20, 4, false); ok {
		t.Fatal("write-only watch should not trigger on read")
	}
	if idx, ok := r.FindMemory(0x1e, 4, true); !ok || idx != 0 {
		t.Fatalf("expected write watch to trigger within range, got idx=%d ok=%v", idx, ok)
	}
}

func TestClearKeepsCounter(t *testing.T) {
	r := New()
	r.Add(Breakpoint{Kind: KindCode})
	r.Add(Breakpoint{Kind: KindCode, Position: CodePosition{InstrIndex: 1}})
	r.Clear()
	if r.Len() != 0 {
		t.Fatal("expected registry empty after clear")
	}
	next := r.Add(Breakpoint{Kind: KindCode, Position: CodePosition{InstrIndex: 2}})
	if next != 2 {
		t.Fatalf("expected counter to continue at 2 after clear, got %d", next)
	}
}
