// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func (vm *VM) opCall(instr *module.Instruction) Trap {
	return vm.call(instr.FuncIndex)
}

func (vm *VM) opCallIndirect(instr *module.Instruction) Trap {
	if len(vm.tables) == 0 {
		return TrapNoTable
	}
	selector, t := vm.popI32()
	if t != nil {
		return t
	}
	elem := vm.tables[0].Get(uint32(selector))
	if !elem.IsFunc {
		return TrapIndirectCalleeAbsent
	}
	fn, err := vm.module.GetFunc(elem.Func)
	if err != nil {
		return &NoFunctionWithIndexError{Index: elem.Func}
	}
	if !vm.signatureMatches(fn, instr.TypeIndex) {
		return &IndirectCallTypeMismatchError{TypeIndex: instr.TypeIndex, FuncIndex: elem.Func}
	}
	return vm.call(elem.Func)
}

func (vm *VM) signatureMatches(fn *module.Function, typeIndex uint32) bool {
	if int(typeIndex) >= len(vm.module.Types) {
		return false
	}
	want := vm.module.Types[typeIndex]
	got := fn.Signature
	if len(want.Params) != len(got.Params) || want.HasResult != got.HasResult {
		return false
	}
	for i := range want.Params {
		if want.Params[i] != got.Params[i] {
			return false
		}
	}
	return !want.HasResult || want.ResultType == got.ResultType
}

// call implements the call protocol (§4.F): resolve the target, bind
// popped arguments into a fresh frame's locals, append zero-initialised
// declared locals, and transfer control. Calls to an imported function are
// instead routed through the host-call bridge.
func (vm *VM) call(index uint32) Trap {
	fn, err := vm.module.GetFunc(index)
	if err != nil {
		return &NoFunctionWithIndexError{Index: index}
	}

	if fn.Imported {
		return vm.callImported(index, fn)
	}

	nparams := len(fn.Signature.Params)
	if len(vm.valueStack) < nparams {
		return TrapPopFromEmptyStack
	}
	args := make([]value.Value, nparams)
	copy(args, vm.valueStack[len(vm.valueStack)-nparams:])
	vm.valueStack = vm.valueStack[:len(vm.valueStack)-nparams]

	locals := make([]value.Value, 0, nparams+len(fn.Locals))
	locals = append(locals, args...)
	for _, t := range fn.Locals {
		locals = append(locals, value.Default(t))
	}

	if len(vm.labelStack) >= LabelStackLimit {
		return TrapLabelStackOverflow
	}
	if len(vm.functionStack) >= FunctionStackLimit {
		return TrapFunctionStackOverflow
	}

	retAddr := vm.ip
	vm.labelStack = append(vm.labelStack, Label{Kind: LabelReturn})
	vm.functionStack = append(vm.functionStack, Frame{RetAddr: retAddr, Locals: locals})
	vm.ip = IP{FuncIndex: index, InstrIndex: 0}
	return nil
}

func (vm *VM) callImported(index uint32, fn *module.Function) Trap {
	claimed, err := vm.hostcalls.Invoke(vm, index, fn.ImportModule+"."+fn.ImportField)
	if err != nil {
		return trapf("host call %s.%s failed: %v", fn.ImportModule, fn.ImportField, err)
	}
	if !claimed {
		return &UnsupportedCallToImportedFunctionError{Index: index}
	}
	return nil
}
