package value

import "math"

// ConvError reports that a numeric conversion could not be performed
// because the source value does not fit the target's range, matching the
// WebAssembly invalid-conversion-to-integer trap condition.
type ConvError struct {
	Op  string
	Val Value
}

func (e *ConvError) Error() string {
	return "value: invalid conversion " + e.Op + " of " + e.Val.String()
}

// WrapI64ToI32 implements i32.wrap_i64: keep the low 32 bits.
func WrapI64ToI32(v Value) Value { return I32Val(int32(uint32(v.I64()))) }

// ExtendI32ToI64S implements i64.extend_i32_s: sign-extend.
func ExtendI32ToI64S(v Value) Value { return I64Val(int64(v.I32())) }

// ExtendI32ToI64U implements i64.extend_i32_u: zero-extend.
func ExtendI32ToI64U(v Value) Value { return I64Val(int64(uint32(v.I32()))) }

// Exclusive upper bounds for truncFits: each is a power of two exactly
// representable as float64, unlike e.g. math.MaxInt64 (2^63-1), which
// rounds up to 2^63 when widened to float64 and would let an
// out-of-range value slip past an inclusive <= hi check.
const (
	twoPow31 = 1 << 31
	twoPow32 = 1 << 32
	twoPow63 = 1 << 63
	twoPow64 = 1 << 64
)

// TruncF32ToI32S implements i32.trunc_f32_s.
func TruncF32ToI32S(v Value) (Value, error) {
	f := float64(v.F32())
	if !truncFits(f, math.MinInt32, twoPow31) {
		return Value{}, &ConvError{"f32->i32_s", v}
	}
	return I32Val(int32(math.Trunc(f))), nil
}

// TruncF32ToI32U implements i32.trunc_f32_u.
func TruncF32ToI32U(v Value) (Value, error) {
	f := float64(v.F32())
	if !truncFits(f, 0, twoPow32) {
		return Value{}, &ConvError{"f32->i32_u", v}
	}
	return I32Val(int32(uint32(math.Trunc(f)))), nil
}

// TruncF64ToI32S implements i32.trunc_f64_s.
func TruncF64ToI32S(v Value) (Value, error) {
	f := v.F64()
	if !truncFits(f, math.MinInt32, twoPow31) {
		return Value{}, &ConvError{"f64->i32_s", v}
	}
	return I32Val(int32(math.Trunc(f))), nil
}

// TruncF64ToI32U implements i32.trunc_f64_u.
func TruncF64ToI32U(v Value) (Value, error) {
	f := v.F64()
	if !truncFits(f, 0, twoPow32) {
		return Value{}, &ConvError{"f64->i32_u", v}
	}
	return I32Val(int32(uint32(math.Trunc(f)))), nil
}

// TruncF32ToI64S implements i64.trunc_f32_s.
func TruncF32ToI64S(v Value) (Value, error) {
	f := float64(v.F32())
	if !truncFits(f, math.MinInt64, twoPow63) {
		return Value{}, &ConvError{"f32->i64_s", v}
	}
	return I64Val(int64(math.Trunc(f))), nil
}

// TruncF32ToI64U implements i64.trunc_f32_u.
func TruncF32ToI64U(v Value) (Value, error) {
	f := float64(v.F32())
	if !truncFits(f, 0, twoPow64) {
		return Value{}, &ConvError{"f32->i64_u", v}
	}
	return I64Val(int64(uint64(math.Trunc(f)))), nil
}

// TruncF64ToI64S implements i64.trunc_f64_s.
func TruncF64ToI64S(v Value) (Value, error) {
	f := v.F64()
	if !truncFits(f, math.MinInt64, twoPow63) {
		return Value{}, &ConvError{"f64->i64_s", v}
	}
	return I64Val(int64(math.Trunc(f))), nil
}

// TruncF64ToI64U implements i64.trunc_f64_u.
func TruncF64ToI64U(v Value) (Value, error) {
	f := v.F64()
	if !truncFits(f, 0, twoPow64) {
		return Value{}, &ConvError{"f64->i64_u", v}
	}
	return I64Val(int64(uint64(math.Trunc(f)))), nil
}

// truncFits reports whether f can be truncated toward zero into [lo, hi)
// without overflow, NaN, or infinity. lo is inclusive, hi exclusive; both
// are given as float64 so the same helper serves every target width.
func truncFits(f, lo, hi float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	t := math.Trunc(f)
	return t >= lo && t < hi
}

// ConvertI32ToF32S implements f32.convert_i32_s.
func ConvertI32ToF32S(v Value) Value { return F32Val(float32(v.I32())) }

// ConvertI32ToF32U implements f32.convert_i32_u.
func ConvertI32ToF32U(v Value) Value { return F32Val(float32(uint32(v.I32()))) }

// ConvertI64ToF32S implements f32.convert_i64_s.
func ConvertI64ToF32S(v Value) Value { return F32Val(float32(v.I64())) }

// ConvertI64ToF32U implements f32.convert_i64_u.
func ConvertI64ToF32U(v Value) Value { return F32Val(float32(uint64(v.I64()))) }

// ConvertI32ToF64S implements f64.convert_i32_s.
func ConvertI32ToF64S(v Value) Value { return F64Val(float64(v.I32())) }

// ConvertI32ToF64U implements f64.convert_i32_u.
func ConvertI32ToF64U(v Value) Value { return F64Val(float64(uint32(v.I32()))) }

// ConvertI64ToF64S implements f64.convert_i64_s.
func ConvertI64ToF64S(v Value) Value { return F64Val(float64(v.I64())) }

// ConvertI64ToF64U implements f64.convert_i64_u.
func ConvertI64ToF64U(v Value) Value { return F64Val(float64(uint64(v.I64()))) }

// DemoteF64ToF32 implements f32.demote_f64, propagating NaN payloads
// truncated into the narrower mantissa the way a canonical demote does.
func DemoteF64ToF32(v Value) Value { return F32Val(float32(v.F64())) }

// PromoteF32ToF64 implements f64.promote_f32.
func PromoteF32ToF64(v Value) Value { return F64Val(float64(v.F32())) }

// ReinterpretI32ToF32 reinterprets the bit pattern with no conversion.
func ReinterpretI32ToF32(v Value) Value { return F32Bits(uint32(v.I32())) }

// ReinterpretF32ToI32 reinterprets the bit pattern with no conversion.
func ReinterpretF32ToI32(v Value) Value { return I32Val(int32(uint32(v.Bits()))) }

// ReinterpretI64ToF64 reinterprets the bit pattern with no conversion.
func ReinterpretI64ToF64(v Value) Value { return F64Bits(uint64(v.I64())) }

// ReinterpretF64ToI64 reinterprets the bit pattern with no conversion.
func ReinterpretF64ToI64(v Value) Value { return I64Val(int64(v.Bits())) }
