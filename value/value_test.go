package value

import (
	"math"
	"testing"
)

func TestReinterpretRoundTrip(t *testing.T) {
	bitsToTry := []uint32{0, 1, 0x7f800000, 0xffffffff, 0x3f800000}
	for _, b := range bitsToTry {
		v := ReinterpretI32ToF32(I32Val(int32(b)))
		got := ReinterpretF32ToI32(v)
		if uint32(got.I32()) != b {
			t.Errorf("round trip f32: got %#x, want %#x", uint32(got.I32()), b)
		}
	}
}

func TestReinterpretRoundTrip64(t *testing.T) {
	bitsToTry := []uint64{0, 1, 0x7ff0000000000000, 0xffffffffffffffff}
	for _, b := range bitsToTry {
		v := ReinterpretI64ToF64(I64Val(int64(b)))
		got := ReinterpretF64ToI64(v)
		if uint64(got.I64()) != b {
			t.Errorf("round trip f64: got %#x, want %#x", uint64(got.I64()), b)
		}
	}
}

func TestWrapExtend(t *testing.T) {
	v := I64Val(-1)
	w := WrapI64ToI32(v)
	if w.I32() != -1 {
		t.Fatalf("wrap -1: got %d", w.I32())
	}
	if ExtendI32ToI64S(I32Val(-1)).I64() != -1 {
		t.Fatalf("extend_s -1 should stay -1")
	}
	if ExtendI32ToI64U(I32Val(-1)).I64() != 0xffffffff {
		t.Fatalf("extend_u -1 should be 0xffffffff")
	}
}

func TestDivSignedOverflow(t *testing.T) {
	_, err := I32DivS(I32Val(math.MinInt32), I32Val(-1))
	if err != ErrSignedOverflow {
		t.Fatalf("expected ErrSignedOverflow, got %v", err)
	}
	_, err = I32DivS(I32Val(1), I32Val(0))
	if err != ErrDivisionByZero {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestTruncInvalidConversion(t *testing.T) {
	_, err := TruncF32ToI32S(F32Val(float32(math.NaN())))
	if err == nil {
		t.Fatal("expected conversion error for NaN")
	}
	_, err = TruncF64ToI32S(F64Val(1e30))
	if err == nil {
		t.Fatal("expected conversion error for out-of-range magnitude")
	}
}

func TestMinMaxNaN(t *testing.T) {
	nan := F64Val(math.NaN())
	one := F64Val(1)
	if !math.IsNaN(F64Min(nan, one).F64()) {
		t.Fatal("min with NaN should be NaN")
	}
	if !math.IsNaN(F64Max(one, nan).F64()) {
		t.Fatal("max with NaN should be NaN")
	}
}

func TestShiftMasking(t *testing.T) {
	// shift by 32 on an i32 should act like shift by 0 (masked to width-1)
	got := I32Shl(I32Val(1), I32Val(32))
	if got.I32() != 1 {
		t.Fatalf("shl masked by 31 expected identity, got %d", got.I32())
	}
}
