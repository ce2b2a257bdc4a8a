package debugger

import (
	"errors"
	"fmt"

	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/exec"
	"github.com/wasmdbg/wasmdbg/hostcall"
	"github.com/wasmdbg/wasmdbg/memory"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/trace"
	"github.com/wasmdbg/wasmdbg/value"
)

// Sentinel errors returned by the facade when a command is issued in a
// state that cannot satisfy it.
var (
	ErrNoFileLoaded            = errors.New("debugger: no file loaded")
	ErrNoRunningInstance       = errors.New("debugger: no running instance")
	ErrNoMemory                = errors.New("debugger: module has no memory")
	ErrInvalidBreakpointPos    = errors.New("debugger: invalid breakpoint position")
	ErrInvalidWatchpointGlobal = errors.New("debugger: invalid global index for watchpoint")
)

// Debugger is the facade the REPL and CLI drive. It owns at most one
// loaded File and at most one live VM instance over it.
type Debugger struct {
	file *File
	vm   *exec.VM

	hostcalls hostcall.Handler
	trace     trace.Sink
}

// New returns an empty debugger with no file loaded.
func New() *Debugger {
	return &Debugger{hostcalls: hostcall.NopHandler{}, trace: trace.Discard{}}
}

// SetHostCallHandler installs the handler every subsequently created VM
// instance will consult for imported-function calls.
func (d *Debugger) SetHostCallHandler(h hostcall.Handler) { d.hostcalls = h }

// SetTraceSink installs the sink every subsequently created VM instance
// will record executed instructions to.
func (d *Debugger) SetTraceSink(s trace.Sink) { d.trace = s }

// LoadFile replaces any currently loaded file (and drops any running VM
// instance) with mod, read from path.
func (d *Debugger) LoadFile(path string, mod *module.Module) {
	d.file = NewFile(path, mod)
	d.vm = nil
}

// File returns the currently loaded file, or nil.
func (d *Debugger) File() *File { return d.file }

// VM returns the current VM instance, or nil if none is running.
func (d *Debugger) VM() *exec.VM { return d.vm }

func (d *Debugger) getFile() (*File, error) {
	if d.file == nil {
		return nil, ErrNoFileLoaded
	}
	return d.file, nil
}

func (d *Debugger) getVM() (*exec.VM, error) {
	if d.vm == nil {
		return nil, ErrNoRunningInstance
	}
	return d.vm, nil
}

// Backtrace returns the current call stack, innermost frame first.
func (d *Debugger) Backtrace() ([]exec.IP, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.Backtrace(), nil
}

// Locals returns the innermost frame's locals.
func (d *Debugger) Locals() ([]value.Value, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.Locals(), nil
}

// Globals returns the current value of every global.
func (d *Debugger) Globals() ([]value.Value, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.Globals(), nil
}

// Memory returns the module's first linear memory.
func (d *Debugger) Memory() (*memory.Memory, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	m := vm.Memory(0)
	if m == nil {
		return nil, ErrNoMemory
	}
	return m, nil
}

// Breakpoints returns the loaded file's breakpoint registry.
func (d *Debugger) Breakpoints() (*breakpoint.Registry, error) {
	f, err := d.getFile()
	if err != nil {
		return nil, err
	}
	return f.Breakpoints(), nil
}

// AddBreakpoint validates and registers bp, returning its assigned index.
// A code breakpoint must name an instruction that exists; a global
// watchpoint must name a global that exists; a memory watchpoint is
// always accepted (an address can be legitimately out of range today and
// in range after a future `memory.grow`).
func (d *Debugger) AddBreakpoint(bp breakpoint.Breakpoint) (uint32, error) {
	f, err := d.getFile()
	if err != nil {
		return 0, err
	}
	switch bp.Kind {
	case breakpoint.KindCode:
		fn, err := f.Module().GetFunc(bp.Position.FuncIndex)
		if err != nil || int(bp.Position.InstrIndex) >= len(fn.Instructions) {
			return 0, ErrInvalidBreakpointPos
		}
	case breakpoint.KindGlobal:
		if int(bp.Global) >= len(f.Module().Globals) {
			return 0, ErrInvalidWatchpointGlobal
		}
	case breakpoint.KindMemory:
		// Always accepted.
	}
	return f.Breakpoints().Add(bp), nil
}

// DeleteBreakpoint removes the breakpoint at index, reporting whether one
// existed there.
func (d *Debugger) DeleteBreakpoint(index uint32) (bool, error) {
	f, err := d.getFile()
	if err != nil {
		return false, err
	}
	return f.Breakpoints().Delete(index), nil
}

// ClearBreakpoints removes every breakpoint from the loaded file.
func (d *Debugger) ClearBreakpoints() error {
	f, err := d.getFile()
	if err != nil {
		return err
	}
	f.Breakpoints().Clear()
	return nil
}

// Disassemble renders function index i's instructions as mnemonic lines.
func (d *Debugger) Disassemble(i uint32) ([]string, error) {
	vm, err := d.ensureVM()
	if err != nil {
		return nil, err
	}
	return vm.Disassemble(i)
}

// Run creates a fresh VM instance and runs the start function to
// completion (or to the first trap/breakpoint/watchpoint).
func (d *Debugger) Run() (exec.Trap, error) {
	vm, err := d.createVM()
	if err != nil {
		return nil, err
	}
	return vm.Run(), nil
}

// Start creates a fresh VM instance paused at the start function's first
// instruction, without auto-continuing.
func (d *Debugger) Start() (exec.Trap, error) {
	vm, err := d.createVM()
	if err != nil {
		return nil, err
	}
	return vm.Start(), nil
}

// Call invokes function index i with args on the current VM instance,
// creating one first if none is running.
func (d *Debugger) Call(i uint32, args []value.Value) (exec.Trap, error) {
	vm, err := d.ensureVM()
	if err != nil {
		return nil, err
	}
	return vm.RunFunc(i, args), nil
}

// ResetVM discards the current VM instance, if any.
func (d *Debugger) ResetVM() error {
	if _, err := d.getFile(); err != nil {
		return err
	}
	d.vm = nil
	return nil
}

// ContinueExecution resumes the current VM instance until the next trap.
func (d *Debugger) ContinueExecution() (exec.Trap, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.ContinueExecution(), nil
}

// ExecuteStep executes exactly one instruction on the current VM instance.
func (d *Debugger) ExecuteStep() (exec.Trap, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.ExecuteStep(), nil
}

// ExecuteStepOver steps over a call instruction without descending into it.
func (d *Debugger) ExecuteStepOver() (exec.Trap, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.ExecuteStepOver(), nil
}

// ExecuteStepOut runs until the current frame returns to its caller.
func (d *Debugger) ExecuteStepOut() (exec.Trap, error) {
	vm, err := d.getVM()
	if err != nil {
		return nil, err
	}
	return vm.ExecuteStepOut(), nil
}

func (d *Debugger) createVM() (*exec.VM, error) {
	f, err := d.getFile()
	if err != nil {
		return nil, err
	}
	vm, err := exec.New(f.Module(),
		exec.WithBreakpoints(f.Breakpoints()),
		exec.WithHostCallHandler(d.hostcalls),
		exec.WithTraceSink(d.trace),
	)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}
	d.vm = vm
	return vm, nil
}

func (d *Debugger) ensureVM() (*exec.VM, error) {
	if d.vm != nil {
		return d.vm, nil
	}
	return d.createVM()
}
