// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec implements the WebAssembly MVP interpreter: VM state, the
// per-opcode instruction dispatcher, and the execution driver the
// debugger facade steps through (run, continue, single-step, step-over,
// step-out).
package exec

import (
	"fmt"

	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/hostcall"
	"github.com/wasmdbg/wasmdbg/memory"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/table"
	"github.com/wasmdbg/wasmdbg/trace"
	"github.com/wasmdbg/wasmdbg/value"
)

// Resource limits, matching the caps a validated module is expected to
// stay well within; they exist to turn a runaway or adversarial module
// into a defined trap instead of unbounded host memory growth.
const (
	ValueStackLimit    = 1 << 20
	LabelStackLimit    = 1 << 16
	FunctionStackLimit = 1024
)

// IP is the instruction pointer: a function index and an offset into that
// function's decoded instruction stream.
type IP struct {
	FuncIndex  uint32
	InstrIndex uint32
}

// LabelKind distinguishes the three structured-control label shapes.
type LabelKind int

const (
	LabelUnbound LabelKind = iota // block/if: Br exits to the matching End
	LabelBound                    // loop: Br returns to the loop header
	LabelReturn                   // function boundary, popped on Return
)

// Label is one entry on the label stack.
type Label struct {
	Kind   LabelKind
	Target uint32 // valid when Kind == LabelBound: the loop header's instruction index
}

// Frame is one entry on the function call stack: where to resume once the
// callee returns, and the callee's locals (parameters followed by
// zero-initialised declared locals).
type Frame struct {
	RetAddr IP
	Locals  []value.Value
}

// VM is one instance's complete, mutable execution state.
type VM struct {
	module *module.Module

	ip IP

	valueStack    []value.Value
	labelStack    []Label
	functionStack []Frame

	globals  []value.Value
	memories []*memory.Memory
	tables   []*table.Table

	breakpoints *breakpoint.Registry
	hostcalls   hostcall.Handler
	trace       trace.Sink

	trap Trap // sticky once set; see Trap.Sticky
}

type config struct {
	globalInits []value.Value
	hostcalls   hostcall.Handler
	trace       trace.Sink
	breakpoints *breakpoint.Registry
}

// Option customises VM construction.
type Option func(*config)

// WithGlobalInits supplies initial values for imported globals, resolved
// when a local global's or a data/element offset's init expression
// references them.
func WithGlobalInits(inits []value.Value) Option {
	return func(c *config) { c.globalInits = inits }
}

// WithHostCallHandler installs the handler consulted for calls to
// imported functions. The default is hostcall.NopHandler.
func WithHostCallHandler(h hostcall.Handler) Option {
	return func(c *config) { c.hostcalls = h }
}

// WithTraceSink installs a sink notified of every executed opcode. The
// default is trace.Discard.
func WithTraceSink(s trace.Sink) Option {
	return func(c *config) { c.trace = s }
}

// WithBreakpoints shares an existing breakpoint registry with the VM,
// instead of creating a fresh empty one.
func WithBreakpoints(r *breakpoint.Registry) Option {
	return func(c *config) { c.breakpoints = r }
}

// New constructs a VM over mod. It evaluates every global's init
// expression, every element segment, and every data segment, and fails
// with an init error (not a panic) if the module is internally
// inconsistent in a way this view cannot represent.
func New(mod *module.Module, opts ...Option) (*VM, error) {
	cfg := config{hostcalls: hostcall.NopHandler{}, trace: trace.Discard{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.breakpoints == nil {
		cfg.breakpoints = breakpoint.New()
	}

	vm := &VM{
		module:      mod,
		breakpoints: cfg.breakpoints,
		hostcalls:   cfg.hostcalls,
		trace:       cfg.trace,
	}

	globals := make([]value.Value, len(mod.Globals))
	for i, g := range mod.Globals {
		v, err := g.Init.Eval(cfg.globalInits)
		if err != nil {
			return nil, fmt.Errorf("exec: evaluating global %d: %w", i, err)
		}
		if v.ValueType() != g.Type {
			return nil, fmt.Errorf("exec: global %d: %w", i, &module.MismatchedTypeError{Expected: g.Type, Found: v.ValueType()})
		}
		globals[i] = v
	}
	vm.globals = globals

	mems := make([]*memory.Memory, len(mod.Memories))
	for i, lim := range mod.Memories {
		mems[i] = memory.New(memory.Limits{Initial: lim.Initial, Maximum: lim.Maximum, HasMaximum: lim.HasMaximum})
	}
	for _, di := range mod.DataInits {
		off, err := di.Offset.Eval(cfg.globalInits)
		if err != nil {
			return nil, fmt.Errorf("exec: evaluating data segment offset: %w", err)
		}
		if off.ValueType() != value.I32 {
			return nil, fmt.Errorf("exec: data segment: %w", &module.OffsetInvalidTypeError{Found: off.ValueType()})
		}
		if int(di.MemoryIndex) >= len(mems) {
			return nil, fmt.Errorf("exec: data segment references missing memory %d", di.MemoryIndex)
		}
		mems[di.MemoryIndex].InitData(uint32(off.I32()), di.Bytes)
	}
	vm.memories = mems

	tabs := make([]*table.Table, len(mod.Tables))
	for i, lim := range mod.Tables {
		tabs[i] = table.New(lim.Initial)
	}
	for _, ei := range mod.ElementInits {
		off, err := ei.Offset.Eval(cfg.globalInits)
		if err != nil {
			return nil, fmt.Errorf("exec: evaluating element segment offset: %w", err)
		}
		if off.ValueType() != value.I32 {
			return nil, fmt.Errorf("exec: element segment: %w", &module.OffsetInvalidTypeError{Found: off.ValueType()})
		}
		if int(ei.TableIndex) >= len(tabs) {
			return nil, fmt.Errorf("exec: element segment references missing table %d", ei.TableIndex)
		}
		tabs[ei.TableIndex].Init(uint32(off.I32()), ei.FuncIndices)
	}
	vm.tables = tabs

	return vm, nil
}

// IP returns the current instruction pointer.
func (vm *VM) IP() IP { return vm.ip }

// Trap returns the current sticky trap, or nil if the VM is not trapped.
func (vm *VM) Trap() Trap { return vm.trap }

// Stack returns the current value stack, top last.
func (vm *VM) Stack() []value.Value { return vm.valueStack }

// Locals returns the locals of the innermost active frame, or nil if none.
func (vm *VM) Locals() []value.Value {
	if len(vm.functionStack) == 0 {
		return nil
	}
	return vm.functionStack[len(vm.functionStack)-1].Locals
}

// Globals returns the current values of every global.
func (vm *VM) Globals() []value.Value { return vm.globals }

// Memory returns the index'th linear memory, or nil if absent.
func (vm *VM) Memory(index uint32) *memory.Memory {
	if int(index) >= len(vm.memories) {
		return nil
	}
	return vm.memories[index]
}

// Backtrace returns the current ip followed by every pending frame's
// return address, innermost first.
func (vm *VM) Backtrace() []IP {
	bt := make([]IP, 0, len(vm.functionStack)+1)
	bt = append(bt, vm.ip)
	for i := len(vm.functionStack) - 1; i >= 0; i-- {
		bt = append(bt, vm.functionStack[i].RetAddr)
	}
	return bt
}

// Module returns the module this VM was constructed from.
func (vm *VM) Module() *module.Module { return vm.module }

// Breakpoints returns the registry this VM consults on every step.
func (vm *VM) Breakpoints() *breakpoint.Registry { return vm.breakpoints }
