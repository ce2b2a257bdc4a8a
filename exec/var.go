// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func (vm *VM) frameLocals() ([]value.Value, Trap) {
	if len(vm.functionStack) == 0 {
		return nil, TrapNoFunctionFrame
	}
	return vm.functionStack[len(vm.functionStack)-1].Locals, nil
}

func (vm *VM) opGetLocal(instr *module.Instruction) Trap {
	locals, t := vm.frameLocals()
	if t != nil {
		return t
	}
	if int(instr.LocalIndex) >= len(locals) {
		return trapf("no local with index %d", instr.LocalIndex)
	}
	return vm.push(locals[instr.LocalIndex])
}

func (vm *VM) opSetLocal(instr *module.Instruction) Trap {
	locals, t := vm.frameLocals()
	if t != nil {
		return t
	}
	if int(instr.LocalIndex) >= len(locals) {
		return trapf("no local with index %d", instr.LocalIndex)
	}
	v, t := vm.pop()
	if t != nil {
		return t
	}
	locals[instr.LocalIndex] = v
	return nil
}

func (vm *VM) opTeeLocal(instr *module.Instruction) Trap {
	locals, t := vm.frameLocals()
	if t != nil {
		return t
	}
	if int(instr.LocalIndex) >= len(locals) {
		return trapf("no local with index %d", instr.LocalIndex)
	}
	v, t := vm.peek()
	if t != nil {
		return t
	}
	locals[instr.LocalIndex] = v
	return nil
}

func (vm *VM) opGetGlobal(instr *module.Instruction) Trap {
	if int(instr.GlobalIndex) >= len(vm.globals) {
		return trapf("no global with index %d", instr.GlobalIndex)
	}
	if t := vm.push(vm.globals[instr.GlobalIndex]); t != nil {
		return t
	}
	if idx, ok := vm.breakpoints.FindGlobal(instr.GlobalIndex, false); ok {
		return &WatchpointReached{Index: idx}
	}
	return nil
}

func (vm *VM) opSetGlobal(instr *module.Instruction) Trap {
	if int(instr.GlobalIndex) >= len(vm.globals) {
		return trapf("no global with index %d", instr.GlobalIndex)
	}
	v, t := vm.pop()
	if t != nil {
		return t
	}
	vm.globals[instr.GlobalIndex] = v
	if idx, ok := vm.breakpoints.FindGlobal(instr.GlobalIndex, true); ok {
		return &WatchpointReached{Index: idx}
	}
	return nil
}
