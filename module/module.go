// Package module provides a read-only view over a decoded WebAssembly
// module: functions, types, globals, tables, memories, element and data
// initialisers, the start function, and the export/import/custom-section
// tables the REPL's "info" commands surface.
//
// Section decoding and validation is delegated to
// github.com/go-interpreter/wagon/wasm; this package adapts an
// already-decoded module into the shape the rest of the interpreter
// consumes, decoding function bodies into Instructions itself and mapping
// wasm.ValueType onto value.Type with ValueTypeOf.
package module

import (
	"fmt"

	"github.com/go-interpreter/wagon/wasm"

	"github.com/wasmdbg/wasmdbg/value"
)

// ValueTypeOf converts a wagon wasm.ValueType into our value.Type.
func ValueTypeOf(t wasm.ValueType) (value.Type, error) {
	switch t {
	case wasm.ValueTypeI32:
		return value.I32, nil
	case wasm.ValueTypeI64:
		return value.I64, nil
	case wasm.ValueTypeF32:
		return value.F32, nil
	case wasm.ValueTypeF64:
		return value.F64, nil
	default:
		return 0, fmt.Errorf("module: unsupported value type %v", t)
	}
}

// Signature is a function type: ordered parameter types and an optional
// single return type.
type Signature struct {
	Params     []value.Type
	HasResult  bool
	ResultType value.Type
}

// InitExprKind distinguishes the two legal forms of an init expression.
type InitExprKind int

const (
	InitConst InitExprKind = iota
	InitGlobal
)

// InitExpr is a minimal constant/global-reference expression, used to
// compute data/element offsets and global initial values.
type InitExpr struct {
	Kind        InitExprKind
	Const       value.Value
	GlobalIndex uint32
}

// Eval resolves an init expression to a value. globalInits supplies the
// values of any imported globals the module's own globals may reference;
// it is indexed by imported-global index (a subrange of the shared global
// index space).
func (e InitExpr) Eval(globalInits []value.Value) (value.Value, error) {
	switch e.Kind {
	case InitConst:
		return e.Const, nil
	case InitGlobal:
		if int(e.GlobalIndex) >= len(globalInits) {
			return value.Value{}, &MissingImportedGlobalInitError{Index: e.GlobalIndex}
		}
		return globalInits[e.GlobalIndex], nil
	default:
		return value.Value{}, fmt.Errorf("module: unknown init expression kind %d", e.Kind)
	}
}

// MissingImportedGlobalInitError reports that an init expression referenced
// an imported global whose initial value was never supplied.
type MissingImportedGlobalInitError struct {
	Index uint32
}

func (e *MissingImportedGlobalInitError) Error() string {
	return fmt.Sprintf("module: missing initial value for imported global %d", e.Index)
}

// MismatchedTypeError reports that an evaluated value did not match an
// expected declared type.
type MismatchedTypeError struct {
	Expected value.Type
	Found    value.Type
}

func (e *MismatchedTypeError) Error() string {
	return fmt.Sprintf("module: expected %v, found %v", e.Expected, e.Found)
}

// OffsetInvalidTypeError reports that a data/element offset expression did
// not evaluate to i32.
type OffsetInvalidTypeError struct {
	Found value.Type
}

func (e *OffsetInvalidTypeError) Error() string {
	return fmt.Sprintf("module: offset expression has non-i32 type %v", e.Found)
}

// Global is a module-level global variable declaration.
type Global struct {
	Type    value.Type
	Mutable bool
	Init    InitExpr
}

// Function is an entry in the shared function index space: either an
// import (signature only) or a local definition (signature, locals, and
// decoded instructions).
type Function struct {
	Signature Signature
	Imported  bool

	// Import fields, valid when Imported.
	ImportModule string
	ImportField  string

	// Local fields, valid when !Imported.
	Locals       []value.Type
	Instructions []Instruction
}

// Limits mirrors a resizable-limits pair.
type Limits struct {
	Initial    uint32
	Maximum    uint32
	HasMaximum bool
}

// ElementInit is an element segment: a run of function indices to place
// into a table starting at an offset.
type ElementInit struct {
	TableIndex  uint32
	Offset      InitExpr
	FuncIndices []uint32
}

// DataInit is a data segment: raw bytes to place into a memory starting at
// an offset.
type DataInit struct {
	MemoryIndex uint32
	Offset      InitExpr
	Bytes       []byte
}

// Export describes one exported name.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// ExportKind enumerates the four exportable entity kinds.
type ExportKind int

const (
	ExportFunc ExportKind = iota
	ExportTable
	ExportMemory
	ExportGlobal
)

// Import describes one imported name (its resolved index is implicit in
// the position it occupies in the corresponding shared index space).
type Import struct {
	Module string
	Field  string
	Kind   ExportKind
}

// Module is the read-only view the interpreter and REPL operate on.
type Module struct {
	Types     []Signature
	Functions []Function
	Globals   []Global
	Tables    []Limits
	Memories  []Limits

	ElementInits []ElementInit
	DataInits    []DataInit

	HasStart  bool
	StartFunc uint32

	Exports []Export
	Imports []Import

	CustomSections map[string][]byte
}

// GetFunc returns the function at index, or an error if out of range.
func (m *Module) GetFunc(index uint32) (*Function, error) {
	if int(index) >= len(m.Functions) {
		return nil, fmt.Errorf("module: no function with index %d", index)
	}
	return &m.Functions[index], nil
}

// GetGlobal returns the global at index, or an error if out of range.
func (m *Module) GetGlobal(index uint32) (*Global, error) {
	if int(index) >= len(m.Globals) {
		return nil, fmt.Errorf("module: no global with index %d", index)
	}
	return &m.Globals[index], nil
}
