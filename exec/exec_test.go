package exec

import (
	"testing"

	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/value"
)

func factorialModule() *module.Module {
	instrs := []module.Instruction{
		{Op: module.OpGetLocal, LocalIndex: 0},            // 0
		{Op: module.OpI32Const, I32Imm: 1},                // 1
		{Op: module.OpI32LeS},                             // 2
		{Op: module.OpIf},                                 // 3
		{Op: module.OpI32Const, I32Imm: 1},                // 4
		{Op: module.OpReturn},                             // 5
		{Op: module.OpEnd},                                // 6 (closes if)
		{Op: module.OpGetLocal, LocalIndex: 0},            // 7
		{Op: module.OpGetLocal, LocalIndex: 0},             // 8
		{Op: module.OpI32Const, I32Imm: 1},                // 9
		{Op: module.OpI32Sub},                             // 10
		{Op: module.OpCall, FuncIndex: 0},                  // 11
		{Op: module.OpI32Mul},                              // 12
		{Op: module.OpEnd},                                // 13 (closes function)
	}
	return &module.Module{
		Types: []module.Signature{{Params: []value.Type{value.I32}, HasResult: true, ResultType: value.I32}},
		Functions: []module.Function{
			{Signature: module.Signature{Params: []value.Type{value.I32}, HasResult: true, ResultType: value.I32}, Instructions: instrs},
		},
	}
}

func TestFactorial(t *testing.T) {
	vm, err := New(factorialModule())
	if err != nil {
		t.Fatal(err)
	}
	tr := vm.RunFunc(0, []value.Value{value.I32Val(5)})
	if tr != TrapExecutionFinished {
		t.Fatalf("expected clean finish, got %v", tr)
	}
	stack := vm.Stack()
	if len(stack) != 1 || stack[0].I32() != 120 {
		t.Fatalf("expected [120], got %v", stack)
	}
}

func TestFactorialBreakpointThenContinue(t *testing.T) {
	mod := factorialModule()
	reg := breakpoint.New()
	reg.Add(breakpoint.Breakpoint{Kind: breakpoint.KindCode, Position: breakpoint.CodePosition{FuncIndex: 0, InstrIndex: 0}})
	vm, err := New(mod, WithBreakpoints(reg))
	if err != nil {
		t.Fatal(err)
	}
	tr := vm.RunFunc(0, []value.Value{value.I32Val(5)})
	bp, ok := tr.(*BreakpointReached)
	if !ok {
		t.Fatalf("expected BreakpointReached, got %v (%T)", tr, tr)
	}
	if bp.Index != 0 {
		t.Fatalf("expected breakpoint index 0, got %d", bp.Index)
	}
	// The argument is bound as local 0, so the value stack is empty on entry.
	if len(vm.Stack()) != 0 {
		t.Fatalf("expected empty stack at entry breakpoint, got %v", vm.Stack())
	}
	// One frame: the current ip followed by the root frame's return address.
	if len(vm.Backtrace()) != 2 {
		t.Fatalf("expected single-frame backtrace of 2 entries, got %d", len(vm.Backtrace()))
	}

	// The recursive call fact(4) re-enters (0, 0) with 5 pushed for the multiply.
	tr2 := vm.ContinueExecution()
	bp2, ok := tr2.(*BreakpointReached)
	if !ok {
		t.Fatalf("expected BreakpointReached on recursive entry, got %v (%T)", tr2, tr2)
	}
	if bp2.Index != 0 {
		t.Fatalf("expected breakpoint index 0, got %d", bp2.Index)
	}
	if len(vm.Stack()) != 1 || vm.Stack()[0].I32() != 5 {
		t.Fatalf("expected stack [5] at recursive entry, got %v", vm.Stack())
	}

	if !reg.Delete(0) {
		t.Fatal("expected breakpoint 0 to be deleted")
	}
	tr3 := vm.ContinueExecution()
	if tr3 != TrapExecutionFinished {
		t.Fatalf("expected clean finish after continue, got %v", tr3)
	}
}

func divByZeroModule() *module.Module {
	instrs := []module.Instruction{
		{Op: module.OpI32Const, I32Imm: 1},
		{Op: module.OpI32Const, I32Imm: 0},
		{Op: module.OpI32DivS},
		{Op: module.OpEnd},
	}
	return &module.Module{
		Functions: []module.Function{{Instructions: instrs}},
	}
}

func TestDivideByZeroSticky(t *testing.T) {
	vm, err := New(divByZeroModule())
	if err != nil {
		t.Fatal(err)
	}
	tr := vm.RunFunc(0, nil)
	if tr != TrapDivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v", tr)
	}
	tr2 := vm.ExecuteStep()
	if tr2 != tr {
		t.Fatalf("expected same sticky trap on next step, got %v", tr2)
	}
}

func memoryModule() *module.Module {
	return &module.Module{
		Memories:  []module.Limits{{Initial: 1}},
		Functions: []module.Function{{Instructions: []module.Instruction{{Op: module.OpEnd}}}},
	}
}

func TestMemoryStoreLoadViaVM(t *testing.T) {
	vm, err := New(memoryModule())
	if err != nil {
		t.Fatal(err)
	}
	mem := vm.Memory(0)
	if err := mem.StoreU32(0x10, 0x41424344); err != nil {
		t.Fatal(err)
	}
	b := mem.Data()[0x10:0x14]
	want := []byte{0x44, 0x43, 0x42, 0x41}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %#x want %#x", i, b[i], want[i])
		}
	}
}

func growModule() *module.Module {
	return &module.Module{
		Memories:  []module.Limits{{Initial: 1, Maximum: 2, HasMaximum: true}},
		Functions: []module.Function{{Instructions: []module.Instruction{{Op: module.OpEnd}}}},
	}
}

func TestMemoryGrowRespectsMaximum(t *testing.T) {
	vm, err := New(growModule())
	if err != nil {
		t.Fatal(err)
	}
	instrs := []module.Instruction{
		{Op: module.OpI32Const, I32Imm: 1},
		{Op: module.OpMemoryGrow},
		{Op: module.OpEnd},
	}
	vm.module.Functions[0].Instructions = instrs
	if tr := vm.RunFunc(0, nil); tr != TrapExecutionFinished {
		t.Fatalf("unexpected trap: %v", tr)
	}
	if got := vm.Stack()[0].I32(); got != 1 {
		t.Fatalf("first grow: expected previous page count 1, got %d", got)
	}

	vm2, _ := New(growModule())
	vm2.module.Functions[0].Instructions = instrs
	vm2.memories[0].Grow(1) // now at the declared maximum of 2
	if tr := vm2.RunFunc(0, nil); tr != TrapExecutionFinished {
		t.Fatalf("unexpected trap: %v", tr)
	}
	if got := vm2.Stack()[0].I32(); got != -1 {
		t.Fatalf("second grow past maximum: expected -1, got %d", got)
	}
}

func TestStepOverAcrossCall(t *testing.T) {
	mod := &module.Module{
		Functions: []module.Function{
			{ // fn 0: i32.const 3; call 1 (inc); i32.const 4; i32.add; end
				Signature: module.Signature{HasResult: true, ResultType: value.I32},
				Instructions: []module.Instruction{
					{Op: module.OpI32Const, I32Imm: 3},
					{Op: module.OpCall, FuncIndex: 1},
					{Op: module.OpI32Const, I32Imm: 4},
					{Op: module.OpI32Add},
					{Op: module.OpEnd},
				},
			},
			{ // fn 1 (inc): get_local 0; i32.const 1; i32.add; end
				Signature: module.Signature{Params: []value.Type{value.I32}, HasResult: true, ResultType: value.I32},
				Instructions: []module.Instruction{
					{Op: module.OpGetLocal, LocalIndex: 0},
					{Op: module.OpI32Const, I32Imm: 1},
					{Op: module.OpI32Add},
					{Op: module.OpEnd},
				},
			},
		},
	}
	vm, err := New(mod)
	if err != nil {
		t.Fatal(err)
	}
	if tr := vm.prepareCall(0, nil); tr != nil {
		t.Fatal(tr)
	}
	// Step onto the call instruction (index 0 -> const 3 executed).
	if tr := vm.ExecuteStep(); tr != nil {
		t.Fatal(tr)
	}
	if vm.IP().InstrIndex != 1 {
		t.Fatalf("expected ip at call instruction, got %+v", vm.IP())
	}
	depthBefore := len(vm.functionStack)
	if tr := vm.ExecuteStepOver(); tr != nil {
		t.Fatal(tr)
	}
	if vm.IP().FuncIndex != 0 || vm.IP().InstrIndex != 2 {
		t.Fatalf("expected to resume in caller at instruction 2, got %+v", vm.IP())
	}
	if len(vm.functionStack) != depthBefore {
		t.Fatalf("expected same frame depth after step-over, got %d want %d", len(vm.functionStack), depthBefore)
	}
}

func watchModule() *module.Module {
	return &module.Module{
		Memories: []module.Limits{{Initial: 1}},
		Functions: []module.Function{{Instructions: []module.Instruction{
			{Op: module.OpI32Const, I32Imm: 0x20},
			{Op: module.OpI32Const, I32Imm: 7},
			{Op: module.OpI32Store},
			{Op: module.OpEnd},
		}}},
	}
}

func TestWatchpointOnWrite(t *testing.T) {
	reg := breakpoint.New()
	reg.Add(breakpoint.Breakpoint{Kind: breakpoint.KindMemory, Trigger: breakpoint.Write, Address: 0x20})
	vm, err := New(watchModule(), WithBreakpoints(reg))
	if err != nil {
		t.Fatal(err)
	}
	tr := vm.RunFunc(0, nil)
	wp, ok := tr.(*WatchpointReached)
	if !ok {
		t.Fatalf("expected WatchpointReached, got %v (%T)", tr, tr)
	}
	if wp.Index != 0 {
		t.Fatalf("expected watchpoint index 0, got %d", wp.Index)
	}
	got := vm.Memory(0).Data()[0x20:0x24]
	want := []byte{7, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d want %d", i, got[i], want[i])
		}
	}
	// The store already happened; continuing should finish cleanly.
	if tr2 := vm.ContinueExecution(); tr2 != TrapExecutionFinished {
		t.Fatalf("expected clean finish after watchpoint, got %v", tr2)
	}
}
