// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func (vm *VM) mem0() (*memoryHandle, Trap) {
	if len(vm.memories) == 0 {
		return nil, TrapNoMemory
	}
	return &memoryHandle{vm: vm}, nil
}

// memoryHandle is a thin convenience wrapper binding memory 0 (the only
// memory index the MVP's single-linear-memory instructions address) for
// the duration of one load/store.
type memoryHandle struct{ vm *VM }

func (vm *VM) opMemorySize() Trap {
	m, t := vm.mem0()
	if t != nil {
		return t
	}
	return vm.push(value.I32Val(int32(m.vm.memories[0].PageCount())))
}

func (vm *VM) opMemoryGrow() Trap {
	m, t := vm.mem0()
	if t != nil {
		return t
	}
	delta, t := vm.popI32()
	if t != nil {
		return t
	}
	prev := m.vm.memories[0].Grow(uint32(delta))
	return vm.push(value.I32Val(prev))
}

// opLoad implements every i32/i64/f32/f64 load and the narrow
// load-and-extend variants. The effective address is addr+offset, per the
// instruction's static memarg.
func (vm *VM) opLoad(instr *module.Instruction) Trap {
	m, t := vm.mem0()
	if t != nil {
		return t
	}
	base, t := vm.popI32()
	if t != nil {
		return t
	}
	addr := uint32(base) + instr.Mem.Offset
	mem := m.vm.memories[0]

	var result value.Value
	var width uint32
	switch instr.Op {
	case module.OpI32Load:
		v, err := mem.LoadU32(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 4}
		}
		result, width = value.I32Val(int32(v)), 4
	case module.OpI64Load:
		v, err := mem.LoadU64(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 8}
		}
		result, width = value.I64Val(int64(v)), 8
	case module.OpF32Load:
		v, err := mem.LoadU32(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 4}
		}
		result, width = value.F32Bits(v), 4
	case module.OpF64Load:
		v, err := mem.LoadU64(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 8}
		}
		result, width = value.F64Bits(v), 8
	case module.OpI32Load8S:
		v, err := mem.LoadU8(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 1}
		}
		result, width = value.I32Val(int32(int8(v))), 1
	case module.OpI32Load8U:
		v, err := mem.LoadU8(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 1}
		}
		result, width = value.I32Val(int32(v)), 1
	case module.OpI32Load16S:
		v, err := mem.LoadU16(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 2}
		}
		result, width = value.I32Val(int32(int16(v))), 2
	case module.OpI32Load16U:
		v, err := mem.LoadU16(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 2}
		}
		result, width = value.I32Val(int32(v)), 2
	case module.OpI64Load8S:
		v, err := mem.LoadU8(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 1}
		}
		result, width = value.I64Val(int64(int8(v))), 1
	case module.OpI64Load8U:
		v, err := mem.LoadU8(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 1}
		}
		result, width = value.I64Val(int64(v)), 1
	case module.OpI64Load16S:
		v, err := mem.LoadU16(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 2}
		}
		result, width = value.I64Val(int64(int16(v))), 2
	case module.OpI64Load16U:
		v, err := mem.LoadU16(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 2}
		}
		result, width = value.I64Val(int64(v)), 2
	case module.OpI64Load32S:
		v, err := mem.LoadU32(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 4}
		}
		result, width = value.I64Val(int64(int32(v))), 4
	case module.OpI64Load32U:
		v, err := mem.LoadU32(addr)
		if err != nil {
			return &MemoryAccessOutOfRangeError{Address: addr + 4}
		}
		result, width = value.I64Val(int64(v)), 4
	default:
		return trapf("unhandled load opcode %v", instr.Op)
	}

	if t := vm.push(result); t != nil {
		return t
	}
	if idx, ok := vm.breakpoints.FindMemory(addr, width, false); ok {
		return &WatchpointReached{Index: idx}
	}
	return nil
}

// opStore implements every i32/i64/f32/f64 store and the narrow
// store-and-wrap variants.
func (vm *VM) opStore(instr *module.Instruction) Trap {
	m, t := vm.mem0()
	if t != nil {
		return t
	}

	var width uint32
	var addr uint32
	var storeErr error

	switch instr.Op {
	case module.OpI32Store:
		v, t := vm.popI32()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 4
		storeErr = m.vm.memories[0].StoreU32(addr, uint32(v))
	case module.OpI64Store:
		v, t := vm.popI64()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 8
		storeErr = m.vm.memories[0].StoreU64(addr, uint64(v))
	case module.OpF32Store:
		v, t := vm.popTyped(value.F32)
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 4
		storeErr = m.vm.memories[0].StoreU32(addr, uint32(v.Bits()))
	case module.OpF64Store:
		v, t := vm.popTyped(value.F64)
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 8
		storeErr = m.vm.memories[0].StoreU64(addr, v.Bits())
	case module.OpI32Store8:
		v, t := vm.popI32()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 1
		storeErr = m.vm.memories[0].StoreU8(addr, uint8(v))
	case module.OpI32Store16:
		v, t := vm.popI32()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 2
		storeErr = m.vm.memories[0].StoreU16(addr, uint16(v))
	case module.OpI64Store8:
		v, t := vm.popI64()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 1
		storeErr = m.vm.memories[0].StoreU8(addr, uint8(v))
	case module.OpI64Store16:
		v, t := vm.popI64()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 2
		storeErr = m.vm.memories[0].StoreU16(addr, uint16(v))
	case module.OpI64Store32:
		v, t := vm.popI64()
		if t != nil {
			return t
		}
		base, t := vm.popI32()
		if t != nil {
			return t
		}
		addr, width = uint32(base)+instr.Mem.Offset, 4
		storeErr = m.vm.memories[0].StoreU32(addr, uint32(v))
	default:
		return trapf("unhandled store opcode %v", instr.Op)
	}

	if storeErr != nil {
		return &MemoryAccessOutOfRangeError{Address: addr + width}
	}
	if idx, ok := vm.breakpoints.FindMemory(addr, width, true); ok {
		return &WatchpointReached{Index: idx}
	}
	return nil
}
