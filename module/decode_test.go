package module

import (
	"testing"

	"github.com/wasmdbg/wasmdbg/value"
)

func TestDecodeInstructionsLocalsAndAdd(t *testing.T) {
	// get_local 0, get_local 1, i32.add, end
	code := []byte{
		byte(OpGetLocal), 0x00,
		byte(OpGetLocal), 0x01,
		byte(OpI32Add),
		byte(OpEnd),
	}
	instrs, err := decodeInstructions(code)
	if err != nil {
		t.Fatal(err)
	}
	want := []Opcode{OpGetLocal, OpGetLocal, OpI32Add, OpEnd}
	if len(instrs) != len(want) {
		t.Fatalf("expected %d instructions, got %d", len(want), len(instrs))
	}
	for i, op := range want {
		if instrs[i].Op != op {
			t.Fatalf("instruction %d: expected %v, got %v", i, op, instrs[i].Op)
		}
	}
	if instrs[1].LocalIndex != 1 {
		t.Fatalf("expected get_local 1, got local index %d", instrs[1].LocalIndex)
	}
}

func TestDecodeInstructionsBlockAndBranch(t *testing.T) {
	// block (empty) / br 0 / end
	code := []byte{
		byte(OpBlock), 0x40,
		byte(OpBr), 0x00,
		byte(OpEnd),
	}
	instrs, err := decodeInstructions(code)
	if err != nil {
		t.Fatal(err)
	}
	if len(instrs) != 3 || instrs[0].Op != OpBlock || instrs[0].Block.HasResult {
		t.Fatalf("unexpected decode: %+v", instrs)
	}
	if instrs[1].Op != OpBr || instrs[1].BrDepth != 0 {
		t.Fatalf("unexpected br decode: %+v", instrs[1])
	}
}

func TestDecodeInstructionsLoadStoreMemarg(t *testing.T) {
	// i32.load align=2 offset=4
	code := []byte{byte(OpI32Load), 0x02, 0x04}
	instrs, err := decodeInstructions(code)
	if err != nil {
		t.Fatal(err)
	}
	if len(instrs) != 1 || instrs[0].Mem.Align != 2 || instrs[0].Mem.Offset != 4 {
		t.Fatalf("unexpected memarg decode: %+v", instrs)
	}
}

func TestDecodeInitExprConst(t *testing.T) {
	code := []byte{byte(OpI32Const), 0x2a, byte(OpEnd)} // i32.const 42; end
	expr, err := decodeInitExpr(code)
	if err != nil {
		t.Fatal(err)
	}
	v, err := expr.Eval(nil)
	if err != nil || v.ValueType() != value.I32 || v.I32() != 42 {
		t.Fatalf("expected i32 const 42, got %v, %v", v, err)
	}
}

func TestDecodeInitExprGlobalGet(t *testing.T) {
	code := []byte{byte(OpGetGlobal), 0x01, byte(OpEnd)}
	expr, err := decodeInitExpr(code)
	if err != nil {
		t.Fatal(err)
	}
	if expr.Kind != InitGlobal || expr.GlobalIndex != 1 {
		t.Fatalf("unexpected decode: %+v", expr)
	}
}

func TestDecodeInitExprMissingEnd(t *testing.T) {
	code := []byte{byte(OpI32Const), 0x01}
	if _, err := decodeInitExpr(code); err == nil {
		t.Fatal("expected an error for a missing terminating end")
	}
}
