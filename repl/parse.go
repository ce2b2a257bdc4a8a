package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wasmdbg/wasmdbg/value"
)

// parseValue parses a literal argument against an expected type: call args
// and `set stack/local/global` read the target's own type; `set memory`
// reads an explicit trailing type name instead.
func parseValue(lit string, t value.Type) (value.Value, error) {
	switch t {
	case value.I32:
		n, err := strconv.ParseInt(lit, 0, 32)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid i32 literal %q: %w", lit, err)
		}
		return value.I32Val(int32(n)), nil
	case value.I64:
		n, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid i64 literal %q: %w", lit, err)
		}
		return value.I64Val(n), nil
	case value.F32:
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid f32 literal %q: %w", lit, err)
		}
		return value.F32Val(float32(f)), nil
	case value.F64:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid f64 literal %q: %w", lit, err)
		}
		return value.F64Val(f), nil
	default:
		return value.Value{}, fmt.Errorf("unknown value type %v", t)
	}
}

// typeByName resolves a `set memory ADDR = VAL TYPE` type suffix.
func typeByName(name string) (value.Type, error) {
	switch strings.ToLower(name) {
	case "i8", "i16", "i32":
		return value.I32, nil
	case "i64":
		return value.I64, nil
	case "f32":
		return value.F32, nil
	case "f64":
		return value.F64, nil
	default:
		return 0, fmt.Errorf("unknown type %q", name)
	}
}

// parseUint parses a decimal or 0x-prefixed index/address argument.
func parseUint(lit string) (uint64, error) {
	return strconv.ParseUint(lit, 0, 64)
}
