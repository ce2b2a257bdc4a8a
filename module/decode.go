package module

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-interpreter/wagon/wasm"

	"github.com/wasmdbg/wasmdbg/value"
)

// Load reads and decodes the module at path, adapting wagon's decoded
// *wasm.Module into our read-only view.
func Load(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("module: %w", err)
	}
	defer f.Close()

	decoded, err := wasm.ReadModule(f, nil)
	if err != nil {
		return nil, fmt.Errorf("module: decoding %s: %w", path, err)
	}
	return FromDecoded(decoded)
}

// FromDecoded adapts an already-decoded, already-validated *wasm.Module
// into our domain's read-only Module view. The merged function and global
// index spaces wagon computes (FunctionIndexSpace, GlobalIndexSpace) are
// consulted directly, so an imported and a locally defined entry of the same
// kind are indistinguishable by index, matching how every opcode that
// references them (call, get_global, ...) addresses a single shared space.
// Tables and memories are taken from the module's own Table and Memory
// sections only.
func FromDecoded(m *wasm.Module) (*Module, error) {
	out := &Module{CustomSections: make(map[string][]byte)}

	if m.Types != nil {
		out.Types = make([]Signature, len(m.Types.Entries))
		for i, t := range m.Types.Entries {
			sig, err := signatureOf(t)
			if err != nil {
				return nil, fmt.Errorf("module: type %d: %w", i, err)
			}
			out.Types[i] = sig
		}
	}

	out.Functions = make([]Function, len(m.FunctionIndexSpace))
	for i, fn := range m.FunctionIndexSpace {
		if fn.Sig == nil {
			return nil, fmt.Errorf("module: function %d has no signature", i)
		}
		sig, err := signatureOf(*fn.Sig)
		if err != nil {
			return nil, fmt.Errorf("module: function %d: %w", i, err)
		}
		if fn.Body == nil {
			// Imported: wagon still lists it in FunctionIndexSpace with a nil
			// Body and, typically, a "module.field" Name.
			modName, field := splitImportName(fn.Name)
			out.Functions[i] = Function{Signature: sig, Imported: true, ImportModule: modName, ImportField: field}
			continue
		}
		locals, err := localsOf(fn.Body.Locals)
		if err != nil {
			return nil, fmt.Errorf("module: function %d locals: %w", i, err)
		}
		instrs, err := decodeInstructions(fn.Body.Code)
		if err != nil {
			return nil, fmt.Errorf("module: function %d body: %w", i, err)
		}
		out.Functions[i] = Function{Signature: sig, Locals: locals, Instructions: instrs}
	}

	out.Globals = make([]Global, len(m.GlobalIndexSpace))
	for i, g := range m.GlobalIndexSpace {
		t, err := ValueTypeOf(g.Type.Type)
		if err != nil {
			return nil, fmt.Errorf("module: global %d: %w", i, err)
		}
		init, err := decodeInitExpr(g.Init)
		if err != nil {
			return nil, fmt.Errorf("module: global %d init: %w", i, err)
		}
		out.Globals[i] = Global{Type: t, Mutable: g.Type.Mutable, Init: init}
	}

	if m.Table != nil {
		out.Tables = make([]Limits, len(m.Table.Entries))
		for i, t := range m.Table.Entries {
			out.Tables[i] = limitsOf(t.Limits)
		}
	}
	if m.Memory != nil {
		out.Memories = make([]Limits, len(m.Memory.Entries))
		for i, mem := range m.Memory.Entries {
			out.Memories[i] = limitsOf(mem.Limits)
		}
	}

	if m.Elements != nil {
		out.ElementInits = make([]ElementInit, len(m.Elements.Entries))
		for i, e := range m.Elements.Entries {
			off, err := decodeInitExpr(e.Offset)
			if err != nil {
				return nil, fmt.Errorf("module: element segment %d offset: %w", i, err)
			}
			out.ElementInits[i] = ElementInit{TableIndex: e.Index, Offset: off, FuncIndices: e.Elems}
		}
	}
	if m.Data != nil {
		out.DataInits = make([]DataInit, len(m.Data.Entries))
		for i, d := range m.Data.Entries {
			off, err := decodeInitExpr(d.Offset)
			if err != nil {
				return nil, fmt.Errorf("module: data segment %d offset: %w", i, err)
			}
			out.DataInits[i] = DataInit{MemoryIndex: d.Index, Offset: off, Bytes: d.Data}
		}
	}

	if m.Start != nil {
		out.HasStart = true
		out.StartFunc = m.Start.Index
	}

	if m.Export != nil {
		for name, e := range m.Export.Entries {
			out.Exports = append(out.Exports, Export{Name: name, Kind: exportKindOf(e.Kind), Index: e.Index})
		}
	}
	if m.Import != nil {
		for _, im := range m.Import.Entries {
			out.Imports = append(out.Imports, Import{Module: im.ModuleName, Field: im.FieldName, Kind: importKindOf(im.Type)})
		}
	}
	// Custom sections: wagon's reader does not expose raw custom-section
	// payloads through a stable field in the version this module targets,
	// so CustomSections stays empty after a decode; `info custom` only
	// ever reports entries added to a hand-built Module (as in tests).

	return out, nil
}

func signatureOf(t wasm.FunctionSig) (Signature, error) {
	var sig Signature
	sig.Params = make([]value.Type, len(t.ParamTypes))
	for i, p := range t.ParamTypes {
		vt, err := ValueTypeOf(p)
		if err != nil {
			return Signature{}, err
		}
		sig.Params[i] = vt
	}
	if len(t.ReturnTypes) > 1 {
		return Signature{}, fmt.Errorf("multi-value returns are not supported")
	}
	if len(t.ReturnTypes) == 1 {
		vt, err := ValueTypeOf(t.ReturnTypes[0])
		if err != nil {
			return Signature{}, err
		}
		sig.HasResult = true
		sig.ResultType = vt
	}
	return sig, nil
}

func localsOf(entries []wasm.LocalEntry) ([]value.Type, error) {
	var locals []value.Type
	for _, e := range entries {
		vt, err := ValueTypeOf(e.Type)
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < e.Count; i++ {
			locals = append(locals, vt)
		}
	}
	return locals, nil
}

func limitsOf(l wasm.ResizableLimits) Limits {
	lim := Limits{Initial: l.Initial}
	if l.Flags&0x1 != 0 {
		lim.HasMaximum = true
		lim.Maximum = l.Maximum
	}
	return lim
}

func exportKindOf(k wasm.External) ExportKind {
	switch k {
	case wasm.ExternalFunction:
		return ExportFunc
	case wasm.ExternalTable:
		return ExportTable
	case wasm.ExternalMemory:
		return ExportMemory
	case wasm.ExternalGlobal:
		return ExportGlobal
	default:
		return ExportFunc
	}
}

func importKindOf(t wasm.ImportType) ExportKind {
	switch t.(type) {
	case wasm.FuncImport:
		return ExportFunc
	case wasm.TableImport:
		return ExportTable
	case wasm.MemoryImport:
		return ExportMemory
	case wasm.GlobalVarImport:
		return ExportGlobal
	default:
		return ExportFunc
	}
}

func splitImportName(name string) (mod, field string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

// decodeInitExpr decodes a constant expression: exactly one constant or
// global.get opcode followed by end, the only two forms the MVP permits
// for global initialisers and data/element offsets.
func decodeInitExpr(code []byte) (InitExpr, error) {
	r := bytes.NewReader(code)
	op, err := r.ReadByte()
	if err != nil {
		return InitExpr{}, fmt.Errorf("empty init expression")
	}
	var expr InitExpr
	switch Opcode(op) {
	case OpI32Const:
		n, err := readVarint32(r)
		if err != nil {
			return InitExpr{}, err
		}
		expr = InitExpr{Kind: InitConst, Const: value.I32Val(n)}
	case OpI64Const:
		n, err := readVarint64(r)
		if err != nil {
			return InitExpr{}, err
		}
		expr = InitExpr{Kind: InitConst, Const: value.I64Val(n)}
	case OpF32Const:
		bits, err := readU32(r)
		if err != nil {
			return InitExpr{}, err
		}
		expr = InitExpr{Kind: InitConst, Const: value.F32Bits(bits)}
	case OpF64Const:
		bits, err := readU64(r)
		if err != nil {
			return InitExpr{}, err
		}
		expr = InitExpr{Kind: InitConst, Const: value.F64Bits(bits)}
	case OpGetGlobal:
		idx, err := readVaruint32(r)
		if err != nil {
			return InitExpr{}, err
		}
		expr = InitExpr{Kind: InitGlobal, GlobalIndex: idx}
	default:
		return InitExpr{}, fmt.Errorf("unsupported init expression opcode %#x", op)
	}
	if end, err := r.ReadByte(); err != nil || Opcode(end) != OpEnd {
		return InitExpr{}, fmt.Errorf("init expression missing terminating end")
	}
	return expr, nil
}

// decodeInstructions decodes a function body's raw opcode stream (the
// bytes following the local-declarations, up to and including the final
// end that terminates the body) into our own
// Instruction slice. It implements the MVP binary encoding directly
// against the spec grammar (LEB128 immediates, block types, memargs,
// branch tables) rather than depend on an unexported wagon decoder.
func decodeInstructions(code []byte) ([]Instruction, error) {
	r := bytes.NewReader(code)
	var out []Instruction
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		op := Opcode(b)
		instr := Instruction{Op: op}

		switch op {
		case OpBlock, OpLoop, OpIf:
			bt, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			instr.Block, err = blockTypeOf(bt)
			if err != nil {
				return nil, err
			}
		case OpBr, OpBrIf:
			instr.BrDepth, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
		case OpBrTable:
			n, err := readVaruint32(r)
			if err != nil {
				return nil, err
			}
			instr.BrTargets = make([]uint32, n)
			for i := range instr.BrTargets {
				instr.BrTargets[i], err = readVaruint32(r)
				if err != nil {
					return nil, err
				}
			}
			instr.BrDefault, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
		case OpCall:
			instr.FuncIndex, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
		case OpCallIndirect:
			instr.TypeIndex, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
			if _, err := r.ReadByte(); err != nil { // reserved table index, always 0
				return nil, err
			}
		case OpGetLocal, OpSetLocal, OpTeeLocal:
			instr.LocalIndex, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
		case OpGetGlobal, OpSetGlobal:
			instr.GlobalIndex, err = readVaruint32(r)
			if err != nil {
				return nil, err
			}
		case OpI32Const:
			instr.I32Imm, err = readVarint32(r)
			if err != nil {
				return nil, err
			}
		case OpI64Const:
			instr.I64Imm, err = readVarint64(r)
			if err != nil {
				return nil, err
			}
		case OpF32Const:
			instr.F32Imm, err = readU32(r)
			if err != nil {
				return nil, err
			}
		case OpF64Const:
			instr.F64Imm, err = readU64(r)
			if err != nil {
				return nil, err
			}
		case OpMemorySize, OpMemoryGrow:
			if _, err := r.ReadByte(); err != nil { // reserved memory index, always 0
				return nil, err
			}
		default:
			if isLoadStore(op) {
				instr.Mem.Align, err = readVaruint32(r)
				if err != nil {
					return nil, err
				}
				instr.Mem.Offset, err = readVaruint32(r)
				if err != nil {
					return nil, err
				}
			}
			// Every other opcode (unreachable, nop, else, end, return, drop,
			// select, comparisons, arithmetic, conversions) carries no
			// immediate.
		}

		out = append(out, instr)
	}
	return out, nil
}

func isLoadStore(op Opcode) bool {
	return op >= OpI32Load && op <= OpI64Store32
}

func blockTypeOf(b byte) (BlockType, error) {
	const blockTypeEmpty = 0x40
	if b == blockTypeEmpty {
		return BlockType{}, nil
	}
	vt, err := ValueTypeOf(wasm.ValueType(int8(b)))
	if err != nil {
		return BlockType{}, fmt.Errorf("invalid block type %#x", b)
	}
	return BlockType{HasResult: true, Result: vt}, nil
}

func readVaruint32(r *bytes.Reader) (uint32, error) {
	v, err := binary.ReadUvarint(r)
	return uint32(v), err
}

// readVarintSized decodes a signed LEB128 integer sign-extended to size
// bits, the encoding WebAssembly uses for i32.const/i64.const immediates.
// It is not the same scheme as encoding/binary's ReadVarint, which
// zigzag-encodes instead of sign-extending.
func readVarintSized(r *bytes.Reader, size uint) (int64, error) {
	var result int64
	var shift uint
	var b byte
	for {
		next, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		b = next
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < size && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, nil
}

func readVarint32(r *bytes.Reader) (int32, error) {
	v, err := readVarintSized(r, 32)
	return int32(v), err
}

func readVarint64(r *bytes.Reader) (int64, error) {
	return readVarintSized(r, 64)
}

func readU32(r *bytes.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU64(r *bytes.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
