// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func boolValue(b bool) value.Value {
	if b {
		return value.I32Val(1)
	}
	return value.I32Val(0)
}

func (vm *VM) binI32(f func(a, b value.Value) value.Value) Trap {
	b, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	return vm.push(f(a, b))
}

func (vm *VM) binI32E(f func(a, b value.Value) (value.Value, error)) Trap {
	b, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	v, err := f(a, b)
	if err != nil {
		return valueErrToTrap(err)
	}
	return vm.push(v)
}

func (vm *VM) binI64(f func(a, b value.Value) value.Value) Trap {
	b, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	return vm.push(f(a, b))
}

func (vm *VM) binI64E(f func(a, b value.Value) (value.Value, error)) Trap {
	b, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	v, err := f(a, b)
	if err != nil {
		return valueErrToTrap(err)
	}
	return vm.push(v)
}

func (vm *VM) binF32(f func(a, b value.Value) value.Value) Trap {
	b, t := vm.popF32()
	if t != nil {
		return t
	}
	a, t := vm.popF32()
	if t != nil {
		return t
	}
	return vm.push(f(a, b))
}

func (vm *VM) binF64(f func(a, b value.Value) value.Value) Trap {
	b, t := vm.popF64()
	if t != nil {
		return t
	}
	a, t := vm.popF64()
	if t != nil {
		return t
	}
	return vm.push(f(a, b))
}

func (vm *VM) cmpI32(f func(a, b value.Value) bool) Trap {
	b, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	return vm.push(boolValue(f(a, b)))
}

func (vm *VM) cmpI64(f func(a, b value.Value) bool) Trap {
	b, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	return vm.push(boolValue(f(a, b)))
}

func (vm *VM) cmpF32(f func(a, b value.Value) bool) Trap {
	b, t := vm.popF32()
	if t != nil {
		return t
	}
	a, t := vm.popF32()
	if t != nil {
		return t
	}
	return vm.push(boolValue(f(a, b)))
}

func (vm *VM) cmpF64(f func(a, b value.Value) bool) Trap {
	b, t := vm.popF64()
	if t != nil {
		return t
	}
	a, t := vm.popF64()
	if t != nil {
		return t
	}
	return vm.push(boolValue(f(a, b)))
}

func (vm *VM) unI32(f func(value.Value) value.Value) Trap {
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) unI64(f func(value.Value) value.Value) Trap {
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) unF32(f func(value.Value) value.Value) Trap {
	a, t := vm.popF32()
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) unF64(f func(value.Value) value.Value) Trap {
	a, t := vm.popF64()
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func valueErrToTrap(err error) Trap {
	switch err {
	case value.ErrDivisionByZero:
		return TrapDivisionByZero
	case value.ErrSignedOverflow:
		return TrapSignedOverflow
	default:
		return trapf("%v", err)
	}
}

// executeNumeric is the fallback dispatch point for every comparison,
// arithmetic, bitwise, and float-transcendental opcode, plus (via
// executeConversion) every numeric conversion.
func (vm *VM) executeNumeric(instr *module.Instruction) Trap {
	switch instr.Op {
	case module.OpI32Eqz:
		a, t := vm.popTyped(value.I32)
		if t != nil {
			return t
		}
		return vm.push(boolValue(value.I32Eqz(a)))
	case module.OpI32Eq:
		return vm.cmpI32(value.I32Eq)
	case module.OpI32Ne:
		return vm.cmpI32(value.I32Ne)
	case module.OpI32LtS:
		return vm.cmpI32(value.I32LtS)
	case module.OpI32LtU:
		return vm.cmpI32(value.I32LtU)
	case module.OpI32GtS:
		return vm.cmpI32(value.I32GtS)
	case module.OpI32GtU:
		return vm.cmpI32(value.I32GtU)
	case module.OpI32LeS:
		return vm.cmpI32(value.I32LeS)
	case module.OpI32LeU:
		return vm.cmpI32(value.I32LeU)
	case module.OpI32GeS:
		return vm.cmpI32(value.I32GeS)
	case module.OpI32GeU:
		return vm.cmpI32(value.I32GeU)

	case module.OpI64Eqz:
		a, t := vm.popTyped(value.I64)
		if t != nil {
			return t
		}
		return vm.push(boolValue(value.I64Eqz(a)))
	case module.OpI64Eq:
		return vm.cmpI64(value.I64Eq)
	case module.OpI64Ne:
		return vm.cmpI64(value.I64Ne)
	case module.OpI64LtS:
		return vm.cmpI64(value.I64LtS)
	case module.OpI64LtU:
		return vm.cmpI64(value.I64LtU)
	case module.OpI64GtS:
		return vm.cmpI64(value.I64GtS)
	case module.OpI64GtU:
		return vm.cmpI64(value.I64GtU)
	case module.OpI64LeS:
		return vm.cmpI64(value.I64LeS)
	case module.OpI64LeU:
		return vm.cmpI64(value.I64LeU)
	case module.OpI64GeS:
		return vm.cmpI64(value.I64GeS)
	case module.OpI64GeU:
		return vm.cmpI64(value.I64GeU)

	case module.OpF32Eq:
		return vm.cmpF32(value.F32Eq)
	case module.OpF32Ne:
		return vm.cmpF32(value.F32Ne)
	case module.OpF32Lt:
		return vm.cmpF32(value.F32Lt)
	case module.OpF32Gt:
		return vm.cmpF32(value.F32Gt)
	case module.OpF32Le:
		return vm.cmpF32(value.F32Le)
	case module.OpF32Ge:
		return vm.cmpF32(value.F32Ge)

	case module.OpF64Eq:
		return vm.cmpF64(value.F64Eq)
	case module.OpF64Ne:
		return vm.cmpF64(value.F64Ne)
	case module.OpF64Lt:
		return vm.cmpF64(value.F64Lt)
	case module.OpF64Gt:
		return vm.cmpF64(value.F64Gt)
	case module.OpF64Le:
		return vm.cmpF64(value.F64Le)
	case module.OpF64Ge:
		return vm.cmpF64(value.F64Ge)

	case module.OpI32Clz:
		return vm.unI32(value.I32Clz)
	case module.OpI32Ctz:
		return vm.unI32(value.I32Ctz)
	case module.OpI32Popcnt:
		return vm.unI32(value.I32Popcnt)
	case module.OpI32Add:
		return vm.binI32(value.I32Add)
	case module.OpI32Sub:
		return vm.binI32(value.I32Sub)
	case module.OpI32Mul:
		return vm.binI32(value.I32Mul)
	case module.OpI32DivS:
		return vm.binI32E(value.I32DivS)
	case module.OpI32DivU:
		return vm.binI32E(value.I32DivU)
	case module.OpI32RemS:
		return vm.binI32E(value.I32RemS)
	case module.OpI32RemU:
		return vm.binI32E(value.I32RemU)
	case module.OpI32And:
		return vm.binI32(value.I32And)
	case module.OpI32Or:
		return vm.binI32(value.I32Or)
	case module.OpI32Xor:
		return vm.binI32(value.I32Xor)
	case module.OpI32Shl:
		return vm.binI32(value.I32Shl)
	case module.OpI32ShrS:
		return vm.binI32(value.I32ShrS)
	case module.OpI32ShrU:
		return vm.binI32(value.I32ShrU)
	case module.OpI32Rotl:
		return vm.binI32(value.I32Rotl)
	case module.OpI32Rotr:
		return vm.binI32(value.I32Rotr)

	case module.OpI64Clz:
		return vm.unI64(value.I64Clz)
	case module.OpI64Ctz:
		return vm.unI64(value.I64Ctz)
	case module.OpI64Popcnt:
		return vm.unI64(value.I64Popcnt)
	case module.OpI64Add:
		return vm.binI64(value.I64Add)
	case module.OpI64Sub:
		return vm.binI64(value.I64Sub)
	case module.OpI64Mul:
		return vm.binI64(value.I64Mul)
	case module.OpI64DivS:
		return vm.binI64E(value.I64DivS)
	case module.OpI64DivU:
		return vm.binI64E(value.I64DivU)
	case module.OpI64RemS:
		return vm.binI64E(value.I64RemS)
	case module.OpI64RemU:
		return vm.binI64E(value.I64RemU)
	case module.OpI64And:
		return vm.binI64(value.I64And)
	case module.OpI64Or:
		return vm.binI64(value.I64Or)
	case module.OpI64Xor:
		return vm.binI64(value.I64Xor)
	case module.OpI64Shl:
		return vm.binI64(value.I64Shl)
	case module.OpI64ShrS:
		return vm.binI64(value.I64ShrS)
	case module.OpI64ShrU:
		return vm.binI64(value.I64ShrU)
	case module.OpI64Rotl:
		return vm.binI64(value.I64Rotl)
	case module.OpI64Rotr:
		return vm.binI64(value.I64Rotr)

	case module.OpF32Abs:
		return vm.unF32(value.F32Abs)
	case module.OpF32Neg:
		return vm.unF32(value.F32Neg)
	case module.OpF32Ceil:
		return vm.unF32(value.F32Ceil)
	case module.OpF32Floor:
		return vm.unF32(value.F32Floor)
	case module.OpF32Trunc:
		return vm.unF32(value.F32Trunc)
	case module.OpF32Nearest:
		return vm.unF32(value.F32Nearest)
	case module.OpF32Sqrt:
		return vm.unF32(value.F32Sqrt)
	case module.OpF32Add:
		return vm.binF32(value.F32Add)
	case module.OpF32Sub:
		return vm.binF32(value.F32Sub)
	case module.OpF32Mul:
		return vm.binF32(value.F32Mul)
	case module.OpF32Div:
		return vm.binF32(value.F32Div)
	case module.OpF32Min:
		return vm.binF32(value.F32Min)
	case module.OpF32Max:
		return vm.binF32(value.F32Max)
	case module.OpF32Copysign:
		return vm.binF32(value.F32Copysign)

	case module.OpF64Abs:
		return vm.unF64(value.F64Abs)
	case module.OpF64Neg:
		return vm.unF64(value.F64Neg)
	case module.OpF64Ceil:
		return vm.unF64(value.F64Ceil)
	case module.OpF64Floor:
		return vm.unF64(value.F64Floor)
	case module.OpF64Trunc:
		return vm.unF64(value.F64Trunc)
	case module.OpF64Nearest:
		return vm.unF64(value.F64Nearest)
	case module.OpF64Sqrt:
		return vm.unF64(value.F64Sqrt)
	case module.OpF64Add:
		return vm.binF64(value.F64Add)
	case module.OpF64Sub:
		return vm.binF64(value.F64Sub)
	case module.OpF64Mul:
		return vm.binF64(value.F64Mul)
	case module.OpF64Div:
		return vm.binF64(value.F64Div)
	case module.OpF64Min:
		return vm.binF64(value.F64Min)
	case module.OpF64Max:
		return vm.binF64(value.F64Max)
	case module.OpF64Copysign:
		return vm.binF64(value.F64Copysign)

	default:
		return vm.executeConversion(instr)
	}
}
