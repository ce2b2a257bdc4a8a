package repl

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wasmdbg/wasmdbg/memory"
)

// examineFormat is a parsed `x /FMT` specifier: [count][size][format].
type examineFormat struct {
	count  int
	size   int  // bytes: 1, 2, 4, or 8
	format byte // d,u,x,o,t,f,c,s
}

var examineFmtRE = regexp.MustCompile(`^(\d*)([bhwg]?)([duxotfcs]?)$`)

func parseExamineFormat(spec string) (examineFormat, error) {
	m := examineFmtRE.FindStringSubmatch(spec)
	if m == nil {
		return examineFormat{}, fmt.Errorf("invalid format %q", spec)
	}
	f := examineFormat{count: 1, size: 4, format: 'x'}
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return examineFormat{}, err
		}
		f.count = n
	}
	switch m[2] {
	case "b":
		f.size = 1
	case "h":
		f.size = 2
	case "w":
		f.size = 4
	case "g":
		f.size = 8
	}
	if m[3] != "" {
		f.format = m[3][0]
	}
	return f, nil
}

// examineMemory renders count units of the given size/format starting at
// addr, one line per unit (or one line total for strings).
func examineMemory(mem *memory.Memory, addr uint32, f examineFormat) ([]string, error) {
	if f.format == 's' {
		return examineStrings(mem, addr, f.count)
	}

	lines := make([]string, 0, f.count)
	for i := 0; i < f.count; i++ {
		cur := addr + uint32(i*f.size)
		var raw uint64
		switch f.size {
		case 1:
			v, err := mem.LoadU8(cur)
			if err != nil {
				return nil, err
			}
			raw = uint64(v)
		case 2:
			v, err := mem.LoadU16(cur)
			if err != nil {
				return nil, err
			}
			raw = uint64(v)
		case 4:
			v, err := mem.LoadU32(cur)
			if err != nil {
				return nil, err
			}
			raw = uint64(v)
		case 8:
			v, err := mem.LoadU64(cur)
			if err != nil {
				return nil, err
			}
			raw = v
		}
		lines = append(lines, fmt.Sprintf("%#08x: %s", cur, formatUnit(raw, f.size, f.format)))
	}
	return lines, nil
}

func formatUnit(raw uint64, size int, format byte) string {
	bits := size * 8
	switch format {
	case 'u':
		return strconv.FormatUint(raw, 10)
	case 'd':
		return strconv.FormatInt(signExtend(raw, bits), 10)
	case 'o':
		return "0" + strconv.FormatUint(raw, 8)
	case 't':
		return strconv.FormatUint(raw, 2)
	case 'c':
		return fmt.Sprintf("%q", byte(raw))
	case 'f':
		if size == 4 {
			return fmt.Sprintf("%g", math.Float32frombits(uint32(raw)))
		}
		return fmt.Sprintf("%g", math.Float64frombits(raw))
	default: // x
		return fmt.Sprintf("%#0*x", size*2, raw)
	}
}

func signExtend(v uint64, bits int) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}

func examineStrings(mem *memory.Memory, addr uint32, count int) ([]string, error) {
	lines := make([]string, 0, count)
	cur := addr
	for i := 0; i < count; i++ {
		var b strings.Builder
		for {
			c, err := mem.LoadU8(cur)
			if err != nil {
				return nil, err
			}
			cur++
			if c == 0 {
				break
			}
			b.WriteByte(c)
		}
		lines = append(lines, fmt.Sprintf("%#08x: %q", addr, b.String()))
		addr = cur
	}
	return lines, nil
}
