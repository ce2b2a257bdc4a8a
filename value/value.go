// Package value implements the WebAssembly MVP numeric value domain: a
// small tagged union over i32, i64, f32 and f64, plus the conversion and
// arithmetic combinators the interpreter drives its opcode handlers
// through.
//
// Floats are stored as their raw IEEE-754 bit pattern rather than as a Go
// float32/float64, so that reinterpret and NaN-payload round trips never
// lose information to a native float representation.
package value

import (
	"fmt"
	"math"
)

// Type identifies which of the four WebAssembly value types a Value holds.
type Type byte

const (
	I32 Type = iota
	I64
	F32
	F64
)

func (t Type) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("value.Type(%d)", byte(t))
	}
}

// Value is an immutable WebAssembly numeric value. The zero Value is a
// well-formed i32 zero.
type Value struct {
	typ  Type
	bits uint64
}

// I32Val builds an i32 value.
func I32Val(v int32) Value { return Value{typ: I32, bits: uint64(uint32(v))} }

// I64Val builds an i64 value.
func I64Val(v int64) Value { return Value{typ: I64, bits: uint64(v)} }

// F32Val builds an f32 value from a native float32.
func F32Val(v float32) Value { return Value{typ: F32, bits: uint64(math.Float32bits(v))} }

// F64Val builds an f64 value from a native float64.
func F64Val(v float64) Value { return Value{typ: F64, bits: math.Float64bits(v)} }

// F32Bits builds an f32 value from a raw bit pattern, preserving NaN payloads.
func F32Bits(bits uint32) Value { return Value{typ: F32, bits: uint64(bits)} }

// F64Bits builds an f64 value from a raw bit pattern, preserving NaN payloads.
func F64Bits(bits uint64) Value { return Value{typ: F64, bits: bits} }

// Default returns the zero value of the given type.
func Default(t Type) Value {
	switch t {
	case I32:
		return I32Val(0)
	case I64:
		return I64Val(0)
	case F32:
		return F32Bits(0)
	case F64:
		return F64Bits(0)
	default:
		panic(fmt.Sprintf("value: unknown type %v", t))
	}
}

// ValueType returns the tag of v.
func (v Value) ValueType() Type { return v.typ }

// I32 returns the i32 payload of v. It panics if v is not an i32; callers
// at an opcode boundary are expected to have already type-checked via the
// module's validated signatures.
func (v Value) I32() int32 {
	v.mustBe(I32)
	return int32(uint32(v.bits))
}

// I64 returns the i64 payload of v.
func (v Value) I64() int64 {
	v.mustBe(I64)
	return int64(v.bits)
}

// F32 returns the f32 payload of v as a native float32.
func (v Value) F32() float32 {
	v.mustBe(F32)
	return math.Float32frombits(uint32(v.bits))
}

// F64 returns the f64 payload of v as a native float64.
func (v Value) F64() float64 {
	v.mustBe(F64)
	return math.Float64frombits(v.bits)
}

// Bits returns the raw bit pattern of v, zero-extended to 64 bits.
func (v Value) Bits() uint64 { return v.bits }

func (v Value) mustBe(t Type) {
	if v.typ != t {
		panic(fmt.Sprintf("value: expected %v, found %v", t, v.typ))
	}
}

func (v Value) String() string {
	switch v.typ {
	case I32:
		return fmt.Sprintf("i32:%d", v.I32())
	case I64:
		return fmt.Sprintf("i64:%d", v.I64())
	case F32:
		return fmt.Sprintf("f32:%g", v.F32())
	case F64:
		return fmt.Sprintf("f64:%g", v.F64())
	default:
		return "value.Value(invalid)"
	}
}
