// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/trace"
	"github.com/wasmdbg/wasmdbg/value"
)

func breakpointPosition(ip IP) breakpoint.CodePosition {
	return breakpoint.CodePosition{FuncIndex: ip.FuncIndex, InstrIndex: ip.InstrIndex}
}

// ExecuteStep executes exactly one instruction. A sticky trap already set
// short-circuits and is returned again without advancing ip. A fresh
// sticky trap raised by this step is recorded so every subsequent call
// returns it too. Breakpoint/watchpoint traps are never recorded as
// sticky, so the very next call resumes normal execution.
func (vm *VM) ExecuteStep() Trap {
	if vm.trap != nil {
		return vm.trap
	}

	fn, err := vm.module.GetFunc(vm.ip.FuncIndex)
	if err != nil {
		t := &NoFunctionWithIndexError{Index: vm.ip.FuncIndex}
		vm.trap = t
		return t
	}
	if int(vm.ip.InstrIndex) >= len(fn.Instructions) {
		t := TrapNoFunctionFrame
		vm.trap = t
		return t
	}
	instr := &fn.Instructions[vm.ip.InstrIndex]
	curFunc, curInstr := vm.ip.FuncIndex, vm.ip.InstrIndex
	vm.ip.InstrIndex++

	preDepth := len(vm.valueStack)
	t := vm.execute(instr)
	vm.trace.Record(trace.Event{
		FuncIndex:      curFunc,
		InstrIndex:     curInstr,
		Opcode:         byte(instr.Op),
		Name:           instr.Op.String(),
		StackDepthPre:  preDepth,
		StackDepthPost: len(vm.valueStack),
	})

	if t != nil {
		if t.Sticky() {
			vm.trap = t
		}
		return t
	}

	if len(vm.labelStack) == 0 {
		t := TrapExecutionFinished
		vm.trap = t
		return t
	}

	if idx, ok := vm.breakpoints.FindCode(breakpointPosition(vm.ip)); ok {
		return &BreakpointReached{Index: idx}
	}

	return nil
}

// execute applies one instruction's effect. It is the single exhaustive
// dispatch point every opcode handler is reached through.
func (vm *VM) execute(instr *module.Instruction) Trap {
	switch instr.Op {
	case module.OpUnreachable:
		return TrapReachedUnreachable
	case module.OpNop:
		return nil

	case module.OpBlock:
		return vm.opBlock(instr)
	case module.OpLoop:
		return vm.opLoop(instr)
	case module.OpIf:
		return vm.opIf(instr)
	case module.OpElse:
		return vm.opElse()
	case module.OpEnd:
		return vm.opEnd()
	case module.OpBr:
		return vm.opBr(instr)
	case module.OpBrIf:
		return vm.opBrIf(instr)
	case module.OpBrTable:
		return vm.opBrTable(instr)
	case module.OpReturn:
		return vm.opReturn()

	case module.OpCall:
		return vm.opCall(instr)
	case module.OpCallIndirect:
		return vm.opCallIndirect(instr)

	case module.OpDrop:
		_, t := vm.pop()
		return t
	case module.OpSelect:
		return vm.opSelect()

	case module.OpGetLocal:
		return vm.opGetLocal(instr)
	case module.OpSetLocal:
		return vm.opSetLocal(instr)
	case module.OpTeeLocal:
		return vm.opTeeLocal(instr)
	case module.OpGetGlobal:
		return vm.opGetGlobal(instr)
	case module.OpSetGlobal:
		return vm.opSetGlobal(instr)

	case module.OpI32Const:
		return vm.push(value.I32Val(instr.I32Imm))
	case module.OpI64Const:
		return vm.push(value.I64Val(instr.I64Imm))
	case module.OpF32Const:
		return vm.push(value.F32Bits(instr.F32Imm))
	case module.OpF64Const:
		return vm.push(value.F64Bits(instr.F64Imm))

	case module.OpMemorySize:
		return vm.opMemorySize()
	case module.OpMemoryGrow:
		return vm.opMemoryGrow()

	case module.OpI32Load, module.OpI64Load, module.OpF32Load, module.OpF64Load,
		module.OpI32Load8S, module.OpI32Load8U, module.OpI32Load16S, module.OpI32Load16U,
		module.OpI64Load8S, module.OpI64Load8U, module.OpI64Load16S, module.OpI64Load16U,
		module.OpI64Load32S, module.OpI64Load32U:
		return vm.opLoad(instr)

	case module.OpI32Store, module.OpI64Store, module.OpF32Store, module.OpF64Store,
		module.OpI32Store8, module.OpI32Store16,
		module.OpI64Store8, module.OpI64Store16, module.OpI64Store32:
		return vm.opStore(instr)

	default:
		return vm.executeNumeric(instr)
	}
}

// push/pop are the core stack primitives every opcode handler is built
// from, mirroring the fetch/pop/push helper family idiom.

func (vm *VM) push(v value.Value) Trap {
	if len(vm.valueStack) >= ValueStackLimit {
		return TrapValueStackOverflow
	}
	vm.valueStack = append(vm.valueStack, v)
	return nil
}

func (vm *VM) pop() (value.Value, Trap) {
	if len(vm.valueStack) == 0 {
		return value.Value{}, TrapPopFromEmptyStack
	}
	v := vm.valueStack[len(vm.valueStack)-1]
	vm.valueStack = vm.valueStack[:len(vm.valueStack)-1]
	return v, nil
}

func (vm *VM) peek() (value.Value, Trap) {
	if len(vm.valueStack) == 0 {
		return value.Value{}, TrapPopFromEmptyStack
	}
	return vm.valueStack[len(vm.valueStack)-1], nil
}

func (vm *VM) popTyped(t value.Type) (value.Value, Trap) {
	v, err := vm.pop()
	if err != nil {
		return value.Value{}, err
	}
	if v.ValueType() != t {
		return value.Value{}, &TypeError{Expected: t.String(), Found: v.ValueType().String()}
	}
	return v, nil
}

func (vm *VM) popI32() (int32, Trap) {
	v, t := vm.popTyped(value.I32)
	if t != nil {
		return 0, t
	}
	return v.I32(), nil
}

func (vm *VM) popI64() (int64, Trap) {
	v, t := vm.popTyped(value.I64)
	if t != nil {
		return 0, t
	}
	return v.I64(), nil
}

func (vm *VM) popF32() (value.Value, Trap) { return vm.popTyped(value.F32) }
func (vm *VM) popF64() (value.Value, Trap) { return vm.popTyped(value.F64) }

// PopValue and PushValue expose the value stack to the hostcall.Handler
// bridge, satisfying hostcall.HostVM.
func (vm *VM) PopValue() (value.Value, error) {
	v, t := vm.pop()
	if t != nil {
		return value.Value{}, t
	}
	return v, nil
}

func (vm *VM) PushValue(v value.Value) error {
	if t := vm.push(v); t != nil {
		return t
	}
	return nil
}
