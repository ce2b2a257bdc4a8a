// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"

	"github.com/wasmdbg/wasmdbg/module"
)

// Disassemble renders every instruction of function index i as one
// mnemonic line per instruction, in source order, for the REPL's
// `disassemble` command.
func (vm *VM) Disassemble(i uint32) ([]string, error) {
	fn, err := vm.module.GetFunc(i)
	if err != nil {
		return nil, err
	}
	if fn.Imported {
		return []string{fmt.Sprintf("(import %q.%q)", fn.ImportModule, fn.ImportField)}, nil
	}
	lines := make([]string, len(fn.Instructions))
	for idx, instr := range fn.Instructions {
		lines[idx] = fmt.Sprintf("%5d: %s", idx, instructionText(instr))
	}
	return lines, nil
}

func instructionText(instr module.Instruction) string {
	switch instr.Op {
	case module.OpI32Const:
		return fmt.Sprintf("i32.const %d", instr.I32Imm)
	case module.OpI64Const:
		return fmt.Sprintf("i64.const %d", instr.I64Imm)
	case module.OpF32Const:
		return fmt.Sprintf("f32.const %#x", instr.F32Imm)
	case module.OpF64Const:
		return fmt.Sprintf("f64.const %#x", instr.F64Imm)
	case module.OpCall:
		return fmt.Sprintf("call %d", instr.FuncIndex)
	case module.OpCallIndirect:
		return fmt.Sprintf("call_indirect (type %d)", instr.TypeIndex)
	case module.OpGetLocal, module.OpSetLocal, module.OpTeeLocal:
		return fmt.Sprintf("%s %d", instr.Op, instr.LocalIndex)
	case module.OpGetGlobal, module.OpSetGlobal:
		return fmt.Sprintf("%s %d", instr.Op, instr.GlobalIndex)
	case module.OpBr, module.OpBrIf:
		return fmt.Sprintf("%s %d", instr.Op, instr.BrDepth)
	case module.OpBrTable:
		return fmt.Sprintf("br_table %v default %d", instr.BrTargets, instr.BrDefault)
	default:
		return instr.Op.String()
	}
}
