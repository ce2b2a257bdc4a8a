// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func (vm *VM) convI32(f func(value.Value) value.Value) Trap {
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) convI64(f func(value.Value) value.Value) Trap {
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) convF32(f func(value.Value) value.Value) Trap {
	a, t := vm.popF32()
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) convF64(f func(value.Value) value.Value) Trap {
	a, t := vm.popF64()
	if t != nil {
		return t
	}
	return vm.push(f(a))
}

func (vm *VM) convI32E(f func(value.Value) (value.Value, error)) Trap {
	a, t := vm.popTyped(value.I32)
	if t != nil {
		return t
	}
	v, err := f(a)
	if err != nil {
		return &InvalidConversionError{Err: err}
	}
	return vm.push(v)
}

func (vm *VM) convI64E(f func(value.Value) (value.Value, error)) Trap {
	a, t := vm.popTyped(value.I64)
	if t != nil {
		return t
	}
	v, err := f(a)
	if err != nil {
		return &InvalidConversionError{Err: err}
	}
	return vm.push(v)
}

func (vm *VM) convF32E(f func(value.Value) (value.Value, error)) Trap {
	a, t := vm.popF32()
	if t != nil {
		return t
	}
	v, err := f(a)
	if err != nil {
		return &InvalidConversionError{Err: err}
	}
	return vm.push(v)
}

func (vm *VM) convF64E(f func(value.Value) (value.Value, error)) Trap {
	a, t := vm.popF64()
	if t != nil {
		return t
	}
	v, err := f(a)
	if err != nil {
		return &InvalidConversionError{Err: err}
	}
	return vm.push(v)
}

// executeConversion implements the full i32/i64/f32/f64 conversion matrix:
// wrap, extend, truncate (trapping), convert, promote/demote, and
// reinterpret.
func (vm *VM) executeConversion(instr *module.Instruction) Trap {
	switch instr.Op {
	case module.OpI32WrapI64:
		return vm.convI64(value.WrapI64ToI32)
	case module.OpI32TruncF32S:
		return vm.convF32E(value.TruncF32ToI32S)
	case module.OpI32TruncF32U:
		return vm.convF32E(value.TruncF32ToI32U)
	case module.OpI32TruncF64S:
		return vm.convF64E(value.TruncF64ToI32S)
	case module.OpI32TruncF64U:
		return vm.convF64E(value.TruncF64ToI32U)
	case module.OpI64ExtendI32S:
		return vm.convI32(value.ExtendI32ToI64S)
	case module.OpI64ExtendI32U:
		return vm.convI32(value.ExtendI32ToI64U)
	case module.OpI64TruncF32S:
		return vm.convF32E(value.TruncF32ToI64S)
	case module.OpI64TruncF32U:
		return vm.convF32E(value.TruncF32ToI64U)
	case module.OpI64TruncF64S:
		return vm.convF64E(value.TruncF64ToI64S)
	case module.OpI64TruncF64U:
		return vm.convF64E(value.TruncF64ToI64U)
	case module.OpF32ConvertI32S:
		return vm.convI32(value.ConvertI32ToF32S)
	case module.OpF32ConvertI32U:
		return vm.convI32(value.ConvertI32ToF32U)
	case module.OpF32ConvertI64S:
		return vm.convI64(value.ConvertI64ToF32S)
	case module.OpF32ConvertI64U:
		return vm.convI64(value.ConvertI64ToF32U)
	case module.OpF32DemoteF64:
		return vm.convF64(value.DemoteF64ToF32)
	case module.OpF64ConvertI32S:
		return vm.convI32(value.ConvertI32ToF64S)
	case module.OpF64ConvertI32U:
		return vm.convI32(value.ConvertI32ToF64U)
	case module.OpF64ConvertI64S:
		return vm.convI64(value.ConvertI64ToF64S)
	case module.OpF64ConvertI64U:
		return vm.convI64(value.ConvertI64ToF64U)
	case module.OpF64PromoteF32:
		return vm.convF32(value.PromoteF32ToF64)
	case module.OpI32ReinterpretF32:
		return vm.convF32(value.ReinterpretF32ToI32)
	case module.OpI64ReinterpretF64:
		return vm.convF64(value.ReinterpretF64ToI64)
	case module.OpF32ReinterpretI32:
		return vm.convI32(value.ReinterpretI32ToF32)
	case module.OpF64ReinterpretI64:
		return vm.convI64(value.ReinterpretI64ToF64)
	default:
		return trapf("unhandled opcode %v", instr.Op)
	}
}
