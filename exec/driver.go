// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import "github.com/wasmdbg/wasmdbg/value"

// Run executes the module's start function to completion (or to the first
// trap/breakpoint/watchpoint).
func (vm *VM) Run() Trap {
	if !vm.module.HasStart {
		return TrapNoStartFunction
	}
	return vm.RunFunc(vm.module.StartFunc, nil)
}

// Start arms the VM paused at the first instruction of the start function,
// without auto-continuing.
func (vm *VM) Start() Trap {
	if !vm.module.HasStart {
		return TrapNoStartFunction
	}
	return vm.prepareCall(vm.module.StartFunc, nil)
}

// RunFunc clears the VM's stacks and sticky trap, invokes function index i
// with args, and runs to completion (or to the first trap/breakpoint/
// watchpoint).
func (vm *VM) RunFunc(i uint32, args []value.Value) Trap {
	vm.valueStack = nil
	vm.labelStack = nil
	vm.functionStack = nil
	vm.trap = nil

	if t := vm.prepareCall(i, args); t != nil {
		return t
	}
	return vm.ContinueExecution()
}

// ContinueExecution steps until any trap (including a breakpoint or
// watchpoint).
func (vm *VM) ContinueExecution() Trap {
	for {
		t := vm.ExecuteStep()
		if t != nil {
			return t
		}
	}
}

// ExecuteStepOver steps until control returns to the current frame (either
// the next instruction in it, or the caller's frame after the callee
// returns).
func (vm *VM) ExecuteStepOver() Trap {
	depth := len(vm.functionStack)
	for {
		t := vm.ExecuteStep()
		if t != nil {
			return t
		}
		if len(vm.functionStack) <= depth {
			return nil
		}
	}
}

// ExecuteStepOut steps until the current frame returns to its caller.
func (vm *VM) ExecuteStepOut() Trap {
	depth := len(vm.functionStack)
	for {
		t := vm.ExecuteStep()
		if t != nil {
			return t
		}
		if len(vm.functionStack) < depth {
			return nil
		}
	}
}

// prepareCall performs the call protocol (§4.F) for an initial invocation:
// resolve the function, bind args into a fresh frame's locals, and set ip
// to its first instruction. Unlike call (used for in-program `call`
// instructions), this takes args from the caller rather than popping them
// off the value stack; it pushes the Return label and the root frame of a
// brand-new execution.
func (vm *VM) prepareCall(i uint32, args []value.Value) Trap {
	fn, err := vm.module.GetFunc(i)
	if err != nil {
		return &NoFunctionWithIndexError{Index: i}
	}
	if fn.Imported {
		return &UnsupportedCallToImportedFunctionError{Index: i}
	}

	locals := make([]value.Value, 0, len(fn.Signature.Params)+len(fn.Locals))
	locals = append(locals, args...)
	for _, t := range fn.Locals {
		locals = append(locals, value.Default(t))
	}

	vm.labelStack = append(vm.labelStack, Label{Kind: LabelReturn})
	vm.functionStack = append(vm.functionStack, Frame{RetAddr: vm.ip, Locals: locals})
	vm.ip = IP{FuncIndex: i, InstrIndex: 0}

	if idx, ok := vm.breakpoints.FindCode(breakpointPosition(vm.ip)); ok {
		return &BreakpointReached{Index: idx}
	}
	return nil
}
