package value

import (
	"errors"
	"math"
	"math/bits"
)

// ErrDivisionByZero is returned by the *_s/*_u division and remainder
// helpers when the divisor is zero.
var ErrDivisionByZero = errors.New("value: division by zero")

// ErrSignedOverflow is returned by I32DivS/I64DivS for the single pair
// MinInt/-1, the one signed division that would overflow rather than trap
// on a zero divisor.
var ErrSignedOverflow = errors.New("value: signed integer overflow")

// Integer arithmetic: wraps on overflow for add/sub/mul/shift, as required
// by the MVP numeric spec.

func I32Add(a, b Value) Value { return I32Val(a.I32() + b.I32()) }
func I32Sub(a, b Value) Value { return I32Val(a.I32() - b.I32()) }
func I32Mul(a, b Value) Value { return I32Val(a.I32() * b.I32()) }

func I32DivS(a, b Value) (Value, error) {
	x, y := a.I32(), b.I32()
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	if x == math.MinInt32 && y == -1 {
		return Value{}, ErrSignedOverflow
	}
	return I32Val(x / y), nil
}

func I32DivU(a, b Value) (Value, error) {
	x, y := uint32(a.I32()), uint32(b.I32())
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return I32Val(int32(x / y)), nil
}

func I32RemS(a, b Value) (Value, error) {
	x, y := a.I32(), b.I32()
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	if x == math.MinInt32 && y == -1 {
		return I32Val(0), nil
	}
	return I32Val(x % y), nil
}

func I32RemU(a, b Value) (Value, error) {
	x, y := uint32(a.I32()), uint32(b.I32())
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return I32Val(int32(x % y)), nil
}

func I32And(a, b Value) Value { return I32Val(a.I32() & b.I32()) }
func I32Or(a, b Value) Value  { return I32Val(a.I32() | b.I32()) }
func I32Xor(a, b Value) Value { return I32Val(a.I32() ^ b.I32()) }

func I32Shl(a, b Value) Value {
	return I32Val(a.I32() << (uint32(b.I32()) & 31))
}
func I32ShrS(a, b Value) Value {
	return I32Val(a.I32() >> (uint32(b.I32()) & 31))
}
func I32ShrU(a, b Value) Value {
	return I32Val(int32(uint32(a.I32()) >> (uint32(b.I32()) & 31)))
}
func I32Rotl(a, b Value) Value {
	return I32Val(int32(bits.RotateLeft32(uint32(a.I32()), int(b.I32()))))
}
func I32Rotr(a, b Value) Value {
	return I32Val(int32(bits.RotateLeft32(uint32(a.I32()), -int(b.I32()))))
}

func I32Clz(a Value) Value    { return I32Val(int32(bits.LeadingZeros32(uint32(a.I32())))) }
func I32Ctz(a Value) Value    { return I32Val(int32(bits.TrailingZeros32(uint32(a.I32())))) }
func I32Popcnt(a Value) Value { return I32Val(int32(bits.OnesCount32(uint32(a.I32())))) }

func I32Eqz(a Value) bool { return a.I32() == 0 }
func I32Eq(a, b Value) bool  { return a.I32() == b.I32() }
func I32Ne(a, b Value) bool  { return a.I32() != b.I32() }
func I32LtS(a, b Value) bool { return a.I32() < b.I32() }
func I32LtU(a, b Value) bool { return uint32(a.I32()) < uint32(b.I32()) }
func I32GtS(a, b Value) bool { return a.I32() > b.I32() }
func I32GtU(a, b Value) bool { return uint32(a.I32()) > uint32(b.I32()) }
func I32LeS(a, b Value) bool { return a.I32() <= b.I32() }
func I32LeU(a, b Value) bool { return uint32(a.I32()) <= uint32(b.I32()) }
func I32GeS(a, b Value) bool { return a.I32() >= b.I32() }
func I32GeU(a, b Value) bool { return uint32(a.I32()) >= uint32(b.I32()) }

func I64Add(a, b Value) Value { return I64Val(a.I64() + b.I64()) }
func I64Sub(a, b Value) Value { return I64Val(a.I64() - b.I64()) }
func I64Mul(a, b Value) Value { return I64Val(a.I64() * b.I64()) }

func I64DivS(a, b Value) (Value, error) {
	x, y := a.I64(), b.I64()
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	if x == math.MinInt64 && y == -1 {
		return Value{}, ErrSignedOverflow
	}
	return I64Val(x / y), nil
}

func I64DivU(a, b Value) (Value, error) {
	x, y := uint64(a.I64()), uint64(b.I64())
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return I64Val(int64(x / y)), nil
}

func I64RemS(a, b Value) (Value, error) {
	x, y := a.I64(), b.I64()
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	if x == math.MinInt64 && y == -1 {
		return I64Val(0), nil
	}
	return I64Val(x % y), nil
}

func I64RemU(a, b Value) (Value, error) {
	x, y := uint64(a.I64()), uint64(b.I64())
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return I64Val(int64(x % y)), nil
}

func I64And(a, b Value) Value { return I64Val(a.I64() & b.I64()) }
func I64Or(a, b Value) Value  { return I64Val(a.I64() | b.I64()) }
func I64Xor(a, b Value) Value { return I64Val(a.I64() ^ b.I64()) }

func I64Shl(a, b Value) Value {
	return I64Val(a.I64() << (uint64(b.I64()) & 63))
}
func I64ShrS(a, b Value) Value {
	return I64Val(a.I64() >> (uint64(b.I64()) & 63))
}
func I64ShrU(a, b Value) Value {
	return I64Val(int64(uint64(a.I64()) >> (uint64(b.I64()) & 63)))
}
func I64Rotl(a, b Value) Value {
	return I64Val(int64(bits.RotateLeft64(uint64(a.I64()), int(b.I64()))))
}
func I64Rotr(a, b Value) Value {
	return I64Val(int64(bits.RotateLeft64(uint64(a.I64()), -int(b.I64()))))
}

func I64Clz(a Value) Value    { return I64Val(int64(bits.LeadingZeros64(uint64(a.I64())))) }
func I64Ctz(a Value) Value    { return I64Val(int64(bits.TrailingZeros64(uint64(a.I64())))) }
func I64Popcnt(a Value) Value { return I64Val(int64(bits.OnesCount64(uint64(a.I64())))) }

func I64Eqz(a Value) bool { return a.I64() == 0 }
func I64Eq(a, b Value) bool  { return a.I64() == b.I64() }
func I64Ne(a, b Value) bool  { return a.I64() != b.I64() }
func I64LtS(a, b Value) bool { return a.I64() < b.I64() }
func I64LtU(a, b Value) bool { return uint64(a.I64()) < uint64(b.I64()) }
func I64GtS(a, b Value) bool { return a.I64() > b.I64() }
func I64GtU(a, b Value) bool { return uint64(a.I64()) > uint64(b.I64()) }
func I64LeS(a, b Value) bool { return a.I64() <= b.I64() }
func I64LeU(a, b Value) bool { return uint64(a.I64()) <= uint64(b.I64()) }
func I64GeS(a, b Value) bool { return a.I64() >= b.I64() }
func I64GeU(a, b Value) bool { return uint64(a.I64()) >= uint64(b.I64()) }

// Float arithmetic follows IEEE 754 with canonical-NaN min/max and
// sign-copying copysign, per the MVP numeric spec.

func F32Add(a, b Value) Value { return F32Val(a.F32() + b.F32()) }
func F32Sub(a, b Value) Value { return F32Val(a.F32() - b.F32()) }
func F32Mul(a, b Value) Value { return F32Val(a.F32() * b.F32()) }
func F32Div(a, b Value) Value { return F32Val(a.F32() / b.F32()) }

func F32Min(a, b Value) Value {
	x, y := a.F32(), b.F32()
	if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
		return F32Val(float32(math.NaN()))
	}
	return F32Val(float32(math.Min(float64(x), float64(y))))
}

func F32Max(a, b Value) Value {
	x, y := a.F32(), b.F32()
	if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
		return F32Val(float32(math.NaN()))
	}
	return F32Val(float32(math.Max(float64(x), float64(y))))
}

func F32Copysign(a, b Value) Value { return F32Val(float32(math.Copysign(float64(a.F32()), float64(b.F32())))) }
func F32Abs(a Value) Value         { return F32Val(float32(math.Abs(float64(a.F32())))) }
func F32Neg(a Value) Value         { return F32Val(-a.F32()) }
func F32Ceil(a Value) Value        { return F32Val(float32(math.Ceil(float64(a.F32())))) }
func F32Floor(a Value) Value       { return F32Val(float32(math.Floor(float64(a.F32())))) }
func F32Trunc(a Value) Value       { return F32Val(float32(math.Trunc(float64(a.F32())))) }
func F32Nearest(a Value) Value     { return F32Val(float32(math.RoundToEven(float64(a.F32())))) }
func F32Sqrt(a Value) Value        { return F32Val(float32(math.Sqrt(float64(a.F32())))) }

func F32Eq(a, b Value) bool { return a.F32() == b.F32() }
func F32Ne(a, b Value) bool { return a.F32() != b.F32() }
func F32Lt(a, b Value) bool { return a.F32() < b.F32() }
func F32Gt(a, b Value) bool { return a.F32() > b.F32() }
func F32Le(a, b Value) bool { return a.F32() <= b.F32() }
func F32Ge(a, b Value) bool { return a.F32() >= b.F32() }

func F64Add(a, b Value) Value { return F64Val(a.F64() + b.F64()) }
func F64Sub(a, b Value) Value { return F64Val(a.F64() - b.F64()) }
func F64Mul(a, b Value) Value { return F64Val(a.F64() * b.F64()) }
func F64Div(a, b Value) Value { return F64Val(a.F64() / b.F64()) }

func F64Min(a, b Value) Value {
	x, y := a.F64(), b.F64()
	if math.IsNaN(x) || math.IsNaN(y) {
		return F64Bits(0x7ff8000000000000)
	}
	return F64Val(math.Min(x, y))
}

func F64Max(a, b Value) Value {
	x, y := a.F64(), b.F64()
	if math.IsNaN(x) || math.IsNaN(y) {
		return F64Bits(0x7ff8000000000000)
	}
	return F64Val(math.Max(x, y))
}

func F64Copysign(a, b Value) Value { return F64Val(math.Copysign(a.F64(), b.F64())) }
func F64Abs(a Value) Value         { return F64Val(math.Abs(a.F64())) }
func F64Neg(a Value) Value         { return F64Val(-a.F64()) }
func F64Ceil(a Value) Value        { return F64Val(math.Ceil(a.F64())) }
func F64Floor(a Value) Value       { return F64Val(math.Floor(a.F64())) }
func F64Trunc(a Value) Value       { return F64Val(math.Trunc(a.F64())) }
func F64Nearest(a Value) Value     { return F64Val(math.RoundToEven(a.F64())) }
func F64Sqrt(a Value) Value        { return F64Val(math.Sqrt(a.F64())) }

func F64Eq(a, b Value) bool { return a.F64() == b.F64() }
func F64Ne(a, b Value) bool { return a.F64() != b.F64() }
func F64Lt(a, b Value) bool { return a.F64() < b.F64() }
func F64Gt(a, b Value) bool { return a.F64() > b.F64() }
func F64Le(a, b Value) bool { return a.F64() <= b.F64() }
func F64Ge(a, b Value) bool { return a.F64() >= b.F64() }
