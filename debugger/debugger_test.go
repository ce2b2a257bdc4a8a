package debugger

import (
	"testing"

	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/exec"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func constFortyTwoModule() *module.Module {
	return &module.Module{
		HasStart: true,
		Functions: []module.Function{
			{
				Signature: module.Signature{HasResult: true, ResultType: value.I32},
				Instructions: []module.Instruction{
					{Op: module.OpI32Const, I32Imm: 42},
					{Op: module.OpEnd},
				},
			},
		},
	}
}

func TestNoFileLoadedErrors(t *testing.T) {
	d := New()
	if _, err := d.Run(); err != ErrNoFileLoaded {
		t.Fatalf("expected ErrNoFileLoaded, got %v", err)
	}
	if _, err := d.Backtrace(); err != ErrNoRunningInstance {
		t.Fatalf("expected ErrNoRunningInstance, got %v", err)
	}
}

func TestRunToCompletion(t *testing.T) {
	d := New()
	d.LoadFile("fortytwo.wasm", constFortyTwoModule())
	tr, err := d.Run()
	if err != nil {
		t.Fatal(err)
	}
	if tr != exec.TrapExecutionFinished {
		t.Fatalf("expected clean finish, got %v", tr)
	}
	locals, err := d.Locals()
	if err != nil {
		t.Fatal(err)
	}
	_ = locals // the function takes no params; just confirm no error
}

func TestAddBreakpointValidation(t *testing.T) {
	d := New()
	d.LoadFile("fortytwo.wasm", constFortyTwoModule())

	if _, err := d.AddBreakpoint(breakpoint.Breakpoint{Kind: breakpoint.KindCode, Position: breakpoint.CodePosition{FuncIndex: 0, InstrIndex: 99}}); err != ErrInvalidBreakpointPos {
		t.Fatalf("expected ErrInvalidBreakpointPos, got %v", err)
	}
	if _, err := d.AddBreakpoint(breakpoint.Breakpoint{Kind: breakpoint.KindGlobal, Global: 0}); err != ErrInvalidWatchpointGlobal {
		t.Fatalf("expected ErrInvalidWatchpointGlobal, got %v", err)
	}
	idx, err := d.AddBreakpoint(breakpoint.Breakpoint{Kind: breakpoint.KindCode, Position: breakpoint.CodePosition{FuncIndex: 0, InstrIndex: 0}})
	if err != nil {
		t.Fatal(err)
	}

	tr, err := d.Run()
	if err != nil {
		t.Fatal(err)
	}
	bp, ok := tr.(*exec.BreakpointReached)
	if !ok || bp.Index != idx {
		t.Fatalf("expected BreakpointReached at index %d, got %v", idx, tr)
	}

	deleted, err := d.DeleteBreakpoint(idx)
	if err != nil || !deleted {
		t.Fatalf("expected breakpoint deleted, err=%v deleted=%v", err, deleted)
	}
}

func TestCallCreatesVMOnDemand(t *testing.T) {
	d := New()
	d.LoadFile("fortytwo.wasm", constFortyTwoModule())
	if d.VM() != nil {
		t.Fatal("expected no VM before first command")
	}
	tr, err := d.Call(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tr != exec.TrapExecutionFinished {
		t.Fatalf("expected clean finish, got %v", tr)
	}
	if d.VM() == nil {
		t.Fatal("expected Call to create a VM instance")
	}
}
