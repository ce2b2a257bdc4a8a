package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wasmdbg/wasmdbg/debugger"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func constFortyTwoModule() *module.Module {
	return &module.Module{
		HasStart: true,
		Exports:  []module.Export{{Name: "answer", Kind: module.ExportFunc, Index: 0}},
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

func addModule() *module.Module {
	return &module.Module{
		Functions: []module.Function{
			{
				Signature: module.Signature{
					Params:    []value.Type{value.I32, value.I32},
					HasResult: true, ResultType: value.I32,
				},
				Instructions: []module.Instruction{
					{Op: module.OpGetLocal, LocalIndex: 0},
					{Op: module.OpGetLocal, LocalIndex: 1},
					{Op: module.OpI32Add},
					{Op: module.OpEnd},
				},
			},
		},
	}
}

func newTestREPL() (*REPL, *bytes.Buffer) {
	var out bytes.Buffer
	dbg := debugger.New()
	return New(dbg, &out), &out
}

func TestDispatchUnknownCommand(t *testing.T) {
	r, out := newTestREPL()
	if quit := r.Dispatch("frobnicate"); quit {
		t.Fatal("unknown command should not quit")
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected an unknown-command message, got %q", out.String())
	}
}

func TestDispatchRunAndCall(t *testing.T) {
	r, out := newTestREPL()
	r.dbg.LoadFile("fortytwo.wasm", constFortyTwoModule())

	if quit := r.Dispatch("run"); quit {
		t.Fatal("run should not quit")
	}
	if strings.Contains(out.String(), "error") {
		t.Fatalf("unexpected error output: %q", out.String())
	}

	out.Reset()
	r.dbg.ResetVM()
	if quit := r.Dispatch("call 0"); quit {
		t.Fatal("call should not quit")
	}
	if !strings.Contains(out.String(), "42") {
		t.Fatalf("expected call result 42 in output, got %q", out.String())
	}
}

func TestDispatchCallWithArgs(t *testing.T) {
	r, out := newTestREPL()
	r.dbg.LoadFile("add.wasm", addModule())

	if quit := r.Dispatch("call 0 2 3"); quit {
		t.Fatal("call should not quit")
	}
	if !strings.Contains(out.String(), "5") {
		t.Fatalf("expected call result 5 in output, got %q", out.String())
	}
}

func TestDispatchBreakAndDelete(t *testing.T) {
	r, out := newTestREPL()
	r.dbg.LoadFile("fortytwo.wasm", constFortyTwoModule())

	r.Dispatch("break 0 0")
	if !strings.Contains(out.String(), "breakpoint 0 set") {
		t.Fatalf("expected breakpoint confirmation, got %q", out.String())
	}

	out.Reset()
	r.Dispatch("run")
	if !strings.Contains(out.String(), "breakpoint 0 reached") {
		t.Fatalf("expected breakpoint hit, got %q", out.String())
	}

	out.Reset()
	r.Dispatch("delete 0")
	if !strings.Contains(out.String(), "deleted breakpoint 0") {
		t.Fatalf("expected delete confirmation, got %q", out.String())
	}
}

func TestDispatchInfoExports(t *testing.T) {
	r, out := newTestREPL()
	r.dbg.LoadFile("fortytwo.wasm", constFortyTwoModule())
	r.Dispatch("info exports")
	if !strings.Contains(out.String(), "answer") {
		t.Fatalf("expected exported name in output, got %q", out.String())
	}
}

func TestDispatchQuit(t *testing.T) {
	r, _ := newTestREPL()
	if quit := r.Dispatch("quit"); !quit {
		t.Fatal("quit should report quit=true")
	}
}

func TestDispatchSetLocal(t *testing.T) {
	r, out := newTestREPL()
	r.dbg.LoadFile("add.wasm", addModule())

	r.Dispatch("break 0 0")
	out.Reset()
	r.Dispatch("call 0 2 3")
	if !strings.Contains(out.String(), "breakpoint 0 reached") {
		t.Fatalf("expected a breakpoint hit mid-call, got %q", out.String())
	}

	r.Dispatch("set local 0 = 10")
	locals, err := r.dbg.Locals()
	if err != nil {
		t.Fatal(err)
	}
	if locals[0].I32() != 10 {
		t.Fatalf("expected local 0 to be set to 10, got %v", locals[0])
	}

	r.Dispatch("continue")
	st := r.dbg.VM().Stack()
	if len(st) == 0 || st[len(st)-1].I32() != 13 {
		t.Fatalf("expected the result to reflect the overridden local (13), got %v", st)
	}
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("5", value.I32)
	if err != nil || v.I32() != 5 {
		t.Fatalf("parseValue(5, I32) = %v, %v", v, err)
	}
	v, err = parseValue("0x10", value.I32)
	if err != nil || v.I32() != 16 {
		t.Fatalf("parseValue(0x10, I32) = %v, %v", v, err)
	}
	if _, err := parseValue("nope", value.I32); err == nil {
		t.Fatal("expected an error for an invalid i32 literal")
	}
}

func TestTypeByName(t *testing.T) {
	for _, tc := range []struct {
		name string
		want value.Type
	}{
		{"i32", value.I32}, {"i64", value.I64}, {"f32", value.F32}, {"f64", value.F64},
	} {
		got, err := typeByName(tc.name)
		if err != nil || got != tc.want {
			t.Fatalf("typeByName(%q) = %v, %v; want %v", tc.name, got, err, tc.want)
		}
	}
	if _, err := typeByName("bogus"); err == nil {
		t.Fatal("expected an error for an unknown type name")
	}
}

func TestParseExamineFormat(t *testing.T) {
	f, err := parseExamineFormat("4wx")
	if err != nil {
		t.Fatal(err)
	}
	if f.count != 4 || f.size != 4 || f.format != 'x' {
		t.Fatalf("unexpected format %+v", f)
	}

	f, err = parseExamineFormat("")
	if err != nil {
		t.Fatal(err)
	}
	if f.count != 1 || f.size != 4 || f.format != 'x' {
		t.Fatalf("unexpected default format %+v", f)
	}

	if _, err := parseExamineFormat("zz"); err == nil {
		t.Fatal("expected an error for an invalid format spec")
	}
}

func TestFormatUnit(t *testing.T) {
	if got := formatUnit(0xff, 1, 'u'); got != "255" {
		t.Fatalf("formatUnit unsigned byte = %q", got)
	}
	if got := formatUnit(0xff, 1, 'd'); got != "-1" {
		t.Fatalf("formatUnit signed byte = %q", got)
	}
	if got := formatUnit(0x41200000, 4, 'f'); got != "10" {
		t.Fatalf("formatUnit f32 bits = %q", got)
	}
}
