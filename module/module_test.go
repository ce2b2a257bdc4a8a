package module

import (
	"testing"

	"github.com/wasmdbg/wasmdbg/value"
)

func TestInitExprEvalConst(t *testing.T) {
	e := InitExpr{Kind: InitConst, Const: value.I32Val(42)}
	v, err := e.Eval(nil)
	if err != nil || v.I32() != 42 {
		t.Fatalf("expected 42, got %v err %v", v, err)
	}
}

func TestInitExprEvalMissingGlobal(t *testing.T) {
	e := InitExpr{Kind: InitGlobal, GlobalIndex: 3}
	_, err := e.Eval(nil)
	if err == nil {
		t.Fatal("expected missing imported global init error")
	}
}

func TestGetFuncOutOfRange(t *testing.T) {
	m := &Module{Functions: []Function{{}}}
	if _, err := m.GetFunc(5); err == nil {
		t.Fatal("expected error for out-of-range function index")
	}
	if _, err := m.GetFunc(0); err != nil {
		t.Fatalf("expected valid lookup, got %v", err)
	}
}
