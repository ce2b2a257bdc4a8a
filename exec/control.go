// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import "github.com/wasmdbg/wasmdbg/module"

func (vm *VM) currentFunc() (*module.Function, Trap) {
	fn, err := vm.module.GetFunc(vm.ip.FuncIndex)
	if err != nil {
		return nil, &NoFunctionWithIndexError{Index: vm.ip.FuncIndex}
	}
	return fn, nil
}

func (vm *VM) pushLabel(l Label) Trap {
	if len(vm.labelStack) >= LabelStackLimit {
		return TrapLabelStackOverflow
	}
	vm.labelStack = append(vm.labelStack, l)
	return nil
}

func (vm *VM) opBlock(instr *module.Instruction) Trap {
	return vm.pushLabel(Label{Kind: LabelUnbound})
}

func (vm *VM) opLoop(instr *module.Instruction) Trap {
	// The label's target is the instruction right after Loop, i.e. the
	// already-advanced ip -- branching to a Bound label resumes the loop
	// body from its header.
	return vm.pushLabel(Label{Kind: LabelBound, Target: vm.ip.InstrIndex})
}

func (vm *VM) opIf(instr *module.Instruction) Trap {
	if t := vm.pushLabel(Label{Kind: LabelUnbound}); t != nil {
		return t
	}
	cond, t := vm.popI32()
	if t != nil {
		return t
	}
	if cond != 0 {
		return nil
	}
	fn, t := vm.currentFunc()
	if t != nil {
		return t
	}
	elseAt, endAt, t := scanMatching(fn.Instructions, vm.ip.InstrIndex)
	if t != nil {
		return t
	}
	if elseAt >= 0 {
		vm.ip.InstrIndex = uint32(elseAt) + 1
		// The label pushed above is popped later by executing the matching End.
		return nil
	}
	// No else clause: jump straight past the matching End, which will never
	// itself execute, so pop the label it would have closed right here.
	vm.ip.InstrIndex = uint32(endAt) + 1
	if len(vm.labelStack) == 0 {
		return TrapNoFunctionFrame
	}
	vm.labelStack = vm.labelStack[:len(vm.labelStack)-1]
	return nil
}

// opElse is reached only when falling off the end of a taken `if` branch;
// it behaves like an unconditional branch to depth 0 (skip the else body).
func (vm *VM) opElse() Trap {
	return vm.branchUnbound(0)
}

func (vm *VM) opEnd() Trap {
	if len(vm.labelStack) == 0 {
		return TrapNoFunctionFrame
	}
	l := vm.labelStack[len(vm.labelStack)-1]
	vm.labelStack = vm.labelStack[:len(vm.labelStack)-1]
	if l.Kind == LabelReturn {
		return vm.popFrame()
	}
	return nil
}

func (vm *VM) popFrame() Trap {
	if len(vm.functionStack) == 0 {
		return TrapNoFunctionFrame
	}
	frame := vm.functionStack[len(vm.functionStack)-1]
	vm.functionStack = vm.functionStack[:len(vm.functionStack)-1]
	vm.ip = frame.RetAddr
	return nil
}

func (vm *VM) opBr(instr *module.Instruction) Trap {
	return vm.branch(instr.BrDepth)
}

func (vm *VM) opBrIf(instr *module.Instruction) Trap {
	cond, t := vm.popI32()
	if t != nil {
		return t
	}
	if cond == 0 {
		return nil
	}
	return vm.branch(instr.BrDepth)
}

func (vm *VM) opBrTable(instr *module.Instruction) Trap {
	selector, t := vm.popI32()
	if t != nil {
		return t
	}
	target := instr.BrDefault
	if selector >= 0 && int(selector) < len(instr.BrTargets) {
		target = instr.BrTargets[selector]
	}
	return vm.branch(target)
}

func (vm *VM) opReturn() Trap {
	for len(vm.labelStack) > 0 {
		l := vm.labelStack[len(vm.labelStack)-1]
		vm.labelStack = vm.labelStack[:len(vm.labelStack)-1]
		if l.Kind == LabelReturn {
			return vm.popFrame()
		}
	}
	return TrapNoFunctionFrame
}

// branch implements `br k`: truncate the label stack by k labels (keeping
// the target label on top) and resume at whatever that label designates.
func (vm *VM) branch(k uint32) Trap {
	if int(k) >= len(vm.labelStack) {
		return TrapNoFunctionFrame
	}
	target := vm.labelStack[len(vm.labelStack)-1-int(k)]
	vm.labelStack = vm.labelStack[:len(vm.labelStack)-int(k)]

	switch target.Kind {
	case LabelBound:
		vm.ip.InstrIndex = target.Target
		return nil
	case LabelReturn:
		// A branch that targets the function-boundary label is accepted
		// as an explicit return: a well-validated module never reaches
		// this via Br, but treating it as Return keeps the interpreter
		// trap-free on malformed input instead of leaving ip dangling.
		// The Return label itself is dropped along with its frame.
		vm.labelStack = vm.labelStack[:len(vm.labelStack)-1]
		return vm.popFrame()
	default: // LabelUnbound
		return vm.branchUnbound(int(k))
	}
}

// branchUnbound scans forward from the current ip, tracking nested
// structured-op depth, until it has passed `extra` unmatched End
// instructions, and lands ip on the (extra+1)-th: the target block's own
// End, left unexecuted. The End handler pops the target's label and
// advances past it when it next runs, so branchUnbound itself must not
// pop or advance past it. It is also used by `else` (extra == 0, landing
// on this one enclosing block's own End).
func (vm *VM) branchUnbound(extra int) Trap {
	fn, t := vm.currentFunc()
	if t != nil {
		return t
	}
	depth := extra
	for i := int(vm.ip.InstrIndex); i < len(fn.Instructions); i++ {
		switch fn.Instructions[i].Op {
		case module.OpBlock, module.OpLoop, module.OpIf:
			depth++
		case module.OpEnd:
			if depth == 0 {
				vm.ip.InstrIndex = uint32(i)
				return nil
			}
			depth--
		}
	}
	return TrapNoFunctionFrame
}

// scanMatching scans forward from `from` for the Else and End instructions
// matching the If at the label just pushed, tracking nested depth. elseAt
// is -1 if the If has no Else clause.
func scanMatching(instrs []module.Instruction, from uint32) (elseAt, endAt int, trap Trap) {
	depth := 0
	elseAt = -1
	for i := int(from); i < len(instrs); i++ {
		switch instrs[i].Op {
		case module.OpBlock, module.OpLoop, module.OpIf:
			depth++
		case module.OpElse:
			if depth == 0 && elseAt == -1 {
				elseAt = i
			}
		case module.OpEnd:
			if depth == 0 {
				return elseAt, i, nil
			}
			depth--
		}
	}
	return -1, -1, TrapNoFunctionFrame
}
