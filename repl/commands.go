package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/exec"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/snapshot"
	"github.com/wasmdbg/wasmdbg/trace"
	"github.com/wasmdbg/wasmdbg/value"
)

// Command is one named REPL verb.
type Command struct {
	help  string
	quits bool
	run   func(r *REPL, args []string) error
}

// commands maps every accepted spelling (including aliases) to its Command.
var commands map[string]Command

func init() {
	commands = make(map[string]Command)
	for _, c := range []struct {
		names []string
		cmd   Command
	}{
		{[]string{"load"}, Command{help: "load FILE - load and decode a module", run: cmdLoad}},
		{[]string{"run", "r"}, Command{help: "run - instantiate and run to completion or first trap", run: cmdRun}},
		{[]string{"start"}, Command{help: "start - instantiate, paused before the first instruction", run: cmdStart}},
		{[]string{"call"}, Command{help: "call FUNC_INDEX [ARGS...] - invoke a function", run: cmdCall}},
		{[]string{"continue", "c"}, Command{help: "continue - resume until the next trap", run: cmdContinue}},
		{[]string{"step", "s"}, Command{help: "step [N] - execute N instructions (default 1)", run: cmdStep}},
		{[]string{"next", "n"}, Command{help: "next [N] - step N times, stepping over calls", run: cmdNext}},
		{[]string{"finish"}, Command{help: "finish - run until the current frame returns", run: cmdFinish}},
		{[]string{"break", "b"}, Command{help: "break FUNC_INDEX [INSTR_INDEX] - set a code breakpoint", run: cmdBreak}},
		{[]string{"watch"}, Command{help: "watch memory ADDR [read|write] | watch global INDEX [read|write]", run: cmdWatch}},
		{[]string{"delete"}, Command{help: "delete BREAKPOINT_INDEX - remove a breakpoint or watchpoint", run: cmdDelete}},
		{[]string{"info"}, Command{help: "info {breakpoints,ip,file,types,imports,functions,tables,memory,globals,exports,start,elements,data,custom}", run: cmdInfo}},
		{[]string{"status"}, Command{help: "status - summarise the current VM state", run: cmdStatus}},
		{[]string{"stack"}, Command{help: "stack - print the value stack", run: cmdStack}},
		{[]string{"locals"}, Command{help: "locals - print the current frame's locals", run: cmdLocals}},
		{[]string{"labels"}, Command{help: "labels - print the number of backtrace entries (the label stack itself is not shown)", run: cmdLabels}},
		{[]string{"backtrace"}, Command{help: "backtrace - print the call stack", run: cmdBacktrace}},
		{[]string{"disassemble"}, Command{help: "disassemble [FUNC_INDEX] - print a function's instructions", run: cmdDisassemble}},
		{[]string{"nearpc"}, Command{help: "nearpc [FWD [BACK]] - print instructions around the current ip", run: cmdNearpc}},
		{[]string{"context"}, Command{help: "context - print ip, stack, and locals together", run: cmdContext}},
		{[]string{"x"}, Command{help: "x /FMT ADDR - examine memory", run: cmdExamine}},
		{[]string{"set"}, Command{help: "set memory ADDR = VAL TYPE | set stack/local/global INDEX = VAL", run: cmdSet}},
		{[]string{"memdump"}, Command{help: "memdump PATH - snapshot memory 0 to a file", run: cmdMemdump}},
		{[]string{"memload"}, Command{help: "memload PATH - restore memory 0 from a snapshot file", run: cmdMemload}},
		{[]string{"trace"}, Command{help: "trace on CONNINFO | trace off - toggle execution tracing", run: cmdTrace}},
		{[]string{"quit", "exit"}, Command{help: "quit - leave wasmdbg", quits: true, run: cmdQuit}},
		{[]string{"help"}, Command{help: "help - list commands", run: cmdHelp}},
	} {
		for _, name := range c.names {
			commands[name] = c.cmd
		}
	}
}

func cmdLoad(r *REPL, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load FILE")
	}
	mod, err := module.Load(args[0])
	if err != nil {
		return err
	}
	r.dbg.LoadFile(args[0], mod)
	r.printf("loaded %s: %d function(s)", args[0], len(mod.Functions))
	return nil
}

func cmdRun(r *REPL, args []string) error {
	tr, err := r.dbg.Run()
	if err != nil {
		return err
	}
	r.reportTrap(tr)
	return nil
}

func cmdStart(r *REPL, args []string) error {
	tr, err := r.dbg.Start()
	if err != nil {
		return err
	}
	r.reportTrap(tr)
	return nil
}

func cmdCall(r *REPL, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: call FUNC_INDEX [ARGS...]")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	vm := r.dbg.VM()
	var sig *module.Signature
	if f := r.dbg.File(); f != nil {
		if fn, err := f.Module().GetFunc(index); err == nil {
			sig = &fn.Signature
		}
	}
	var callArgs []value.Value
	for i, a := range args[1:] {
		t := value.I32
		if sig != nil && i < len(sig.Params) {
			t = sig.Params[i]
		}
		v, err := parseValue(a, t)
		if err != nil {
			return err
		}
		callArgs = append(callArgs, v)
	}
	tr, err := r.dbg.Call(index, callArgs)
	if err != nil {
		return err
	}
	r.reportTrap(tr)
	if vm == nil {
		vm = r.dbg.VM()
	}
	if vm != nil && tr == exec.TrapExecutionFinished {
		if st := vm.Stack(); len(st) > 0 {
			r.printf("-> %s", formatValue(st[len(st)-1]))
		}
	}
	return nil
}

func cmdContinue(r *REPL, args []string) error {
	tr, err := r.dbg.ContinueExecution()
	if err != nil {
		return err
	}
	r.reportTrap(tr)
	return nil
}

func stepN(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step count %q", args[0])
	}
	return n, nil
}

func cmdStep(r *REPL, args []string) error {
	n, err := stepN(args)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		tr, err := r.dbg.ExecuteStep()
		if err != nil {
			return err
		}
		if tr != nil {
			r.reportTrap(tr)
			return nil
		}
	}
	return cmdContext(r, nil)
}

func cmdNext(r *REPL, args []string) error {
	n, err := stepN(args)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		tr, err := r.dbg.ExecuteStepOver()
		if err != nil {
			return err
		}
		if tr != nil {
			r.reportTrap(tr)
			return nil
		}
	}
	return cmdContext(r, nil)
}

func cmdFinish(r *REPL, args []string) error {
	tr, err := r.dbg.ExecuteStepOut()
	if err != nil {
		return err
	}
	r.reportTrap(tr)
	return nil
}

func cmdBreak(r *REPL, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: break FUNC_INDEX [INSTR_INDEX]")
	}
	fn, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	var instr uint32
	if len(args) == 2 {
		instr, err = parseIndex(args[1])
		if err != nil {
			return err
		}
	}
	index, err := r.dbg.AddBreakpoint(breakpoint.Breakpoint{
		Kind:     breakpoint.KindCode,
		Position: breakpoint.CodePosition{FuncIndex: fn, InstrIndex: instr},
	})
	if err != nil {
		return err
	}
	r.printf("breakpoint %d set at function %d, instruction %d", index, fn, instr)
	return nil
}

func parseTrigger(s string) (breakpoint.Trigger, error) {
	switch s {
	case "", "readwrite", "rw":
		return breakpoint.ReadWrite, nil
	case "read":
		return breakpoint.Read, nil
	case "write":
		return breakpoint.Write, nil
	default:
		return 0, fmt.Errorf("invalid trigger %q", s)
	}
}

func cmdWatch(r *REPL, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: watch memory ADDR [read|write] | watch global INDEX [read|write]")
	}
	kind, rest := args[0], args[1:]
	var trigSpec string
	if len(rest) > 1 {
		trigSpec = rest[1]
	}
	trig, err := parseTrigger(trigSpec)
	if err != nil {
		return err
	}
	switch kind {
	case "memory":
		addr, err := parseUint(rest[0])
		if err != nil {
			return err
		}
		index, err := r.dbg.AddBreakpoint(breakpoint.Breakpoint{
			Kind: breakpoint.KindMemory, Address: uint32(addr), Trigger: trig,
		})
		if err != nil {
			return err
		}
		r.printf("watchpoint %d set on memory address %#x (%s)", index, addr, trig)
	case "global":
		g, err := parseIndex(rest[0])
		if err != nil {
			return err
		}
		index, err := r.dbg.AddBreakpoint(breakpoint.Breakpoint{
			Kind: breakpoint.KindGlobal, Global: g, Trigger: trig,
		})
		if err != nil {
			return err
		}
		r.printf("watchpoint %d set on global %d (%s)", index, g, trig)
	default:
		return fmt.Errorf("unknown watch kind %q", kind)
	}
	return nil
}

func cmdDelete(r *REPL, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete BREAKPOINT_INDEX")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	ok, err := r.dbg.DeleteBreakpoint(index)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no breakpoint at index %d", index)
	}
	r.printf("deleted breakpoint %d", index)
	return nil
}

func cmdInfo(r *REPL, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info SUBCOMMAND")
	}
	switch args[0] {
	case "breakpoints":
		reg, err := r.dbg.Breakpoints()
		if err != nil {
			return err
		}
		all := reg.All()
		if len(all) == 0 {
			r.printf("no breakpoints")
			return nil
		}
		for i, b := range all {
			r.printf("%d: %s", i, describeBreakpoint(b))
		}
	case "ip":
		vm := r.dbg.VM()
		if vm == nil {
			return fmt.Errorf("no running instance")
		}
		ip := vm.IP()
		r.printf("function %d, instruction %d", ip.FuncIndex, ip.InstrIndex)
	case "file":
		f := r.dbg.File()
		if f == nil {
			return fmt.Errorf("no file loaded")
		}
		r.printf("%s", f.Path())
	case "types":
		return withFile(r, func(m *module.Module) error {
			for i, t := range m.Types {
				r.printf("%d: %s", i, describeSignature(t))
			}
			return nil
		})
	case "imports":
		return withFile(r, func(m *module.Module) error {
			for i, im := range m.Imports {
				r.printf("%d: %s.%s (%s)", i, im.Module, im.Field, describeExportKind(im.Kind))
			}
			return nil
		})
	case "functions":
		return withFile(r, func(m *module.Module) error {
			for i, fn := range m.Functions {
				r.printf("%d: %s", i, describeFunction(fn))
			}
			return nil
		})
	case "tables":
		return withFile(r, func(m *module.Module) error {
			for i, t := range m.Tables {
				r.printf("%d: %s", i, describeLimits(t))
			}
			return nil
		})
	case "memory":
		return withFile(r, func(m *module.Module) error {
			for i, mem := range m.Memories {
				r.printf("%d: %s", i, describeLimits(mem))
			}
			return nil
		})
	case "globals":
		return withFile(r, func(m *module.Module) error {
			for i, g := range m.Globals {
				r.printf("%d: %s mutable=%v", i, g.Type, g.Mutable)
			}
			return nil
		})
	case "exports":
		return withFile(r, func(m *module.Module) error {
			for i, e := range m.Exports {
				r.printf("%d: %s -> %s %d", i, e.Name, describeExportKind(e.Kind), e.Index)
			}
			return nil
		})
	case "start":
		return withFile(r, func(m *module.Module) error {
			if !m.HasStart {
				r.printf("no start function")
				return nil
			}
			r.printf("function %d", m.StartFunc)
			return nil
		})
	case "elements":
		return withFile(r, func(m *module.Module) error {
			for i, e := range m.ElementInits {
				r.printf("%d: table %d, %d function(s)", i, e.TableIndex, len(e.FuncIndices))
			}
			return nil
		})
	case "data":
		return withFile(r, func(m *module.Module) error {
			for i, d := range m.DataInits {
				r.printf("%d: memory %d, %d byte(s)", i, d.MemoryIndex, len(d.Bytes))
			}
			return nil
		})
	case "custom":
		return withFile(r, func(m *module.Module) error {
			for name, data := range m.CustomSections {
				r.printf("%s: %d byte(s)", name, len(data))
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown info subcommand %q", args[0])
	}
	return nil
}

func withFile(r *REPL, f func(*module.Module) error) error {
	file := r.dbg.File()
	if file == nil {
		return fmt.Errorf("no file loaded")
	}
	return f(file.Module())
}

func cmdStatus(r *REPL, args []string) error {
	vm := r.dbg.VM()
	if vm == nil {
		r.printf("no running instance")
		return nil
	}
	if tr := vm.Trap(); tr != nil {
		r.printf("trapped: %s", tr)
		return nil
	}
	ip := vm.IP()
	r.printf("running: function %d, instruction %d", ip.FuncIndex, ip.InstrIndex)
	return nil
}

func cmdStack(r *REPL, args []string) error {
	vm := r.dbg.VM()
	if vm == nil {
		return fmt.Errorf("no running instance")
	}
	st := vm.Stack()
	for i := len(st) - 1; i >= 0; i-- {
		r.printf("%d: %s", i, formatValue(st[i]))
	}
	return nil
}

func cmdLocals(r *REPL, args []string) error {
	locals, err := r.dbg.Locals()
	if err != nil {
		return err
	}
	for i, v := range locals {
		r.printf("%d: %s", i, formatValue(v))
	}
	return nil
}

func cmdLabels(r *REPL, args []string) error {
	vm := r.dbg.VM()
	if vm == nil {
		return fmt.Errorf("no running instance")
	}
	r.printf("%d backtrace frame(s)", len(vm.Backtrace()))
	return nil
}

func cmdBacktrace(r *REPL, args []string) error {
	bt, err := r.dbg.Backtrace()
	if err != nil {
		return err
	}
	for i, ip := range bt {
		r.printf("#%d: function %d, instruction %d", i, ip.FuncIndex, ip.InstrIndex)
	}
	return nil
}

func cmdDisassemble(r *REPL, args []string) error {
	var index uint32
	if len(args) == 1 {
		i, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		index = i
	} else if len(args) == 0 {
		vm := r.dbg.VM()
		if vm == nil {
			return fmt.Errorf("usage: disassemble FUNC_INDEX")
		}
		index = vm.IP().FuncIndex
	} else {
		return fmt.Errorf("usage: disassemble [FUNC_INDEX]")
	}
	lines, err := r.dbg.Disassemble(index)
	if err != nil {
		return err
	}
	for i, l := range lines {
		r.printf("%d: %s", i, l)
	}
	return nil
}

func cmdNearpc(r *REPL, args []string) error {
	fwd, back := 3, 3
	if len(args) >= 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		fwd = n
	}
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		back = n
	}
	vm := r.dbg.VM()
	if vm == nil {
		return fmt.Errorf("no running instance")
	}
	ip := vm.IP()
	lines, err := r.dbg.Disassemble(ip.FuncIndex)
	if err != nil {
		return err
	}
	lo := int(ip.InstrIndex) - back
	if lo < 0 {
		lo = 0
	}
	hi := int(ip.InstrIndex) + fwd + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	for i := lo; i < hi; i++ {
		marker := "  "
		if uint32(i) == ip.InstrIndex {
			marker = "->"
		}
		r.printf("%s %d: %s", marker, i, lines[i])
	}
	return nil
}

func cmdContext(r *REPL, args []string) error {
	if err := cmdStatus(r, nil); err != nil {
		return err
	}
	if r.dbg.VM() == nil {
		return nil
	}
	if err := cmdNearpc(r, nil); err != nil {
		return err
	}
	return cmdStack(r, nil)
}

func cmdExamine(r *REPL, args []string) error {
	if len(args) != 2 || !strings.HasPrefix(args[0], "/") {
		return fmt.Errorf("usage: x /FMT ADDR")
	}
	f, err := parseExamineFormat(args[0][1:])
	if err != nil {
		return err
	}
	addr, err := parseUint(args[1])
	if err != nil {
		return err
	}
	mem, err := r.dbg.Memory()
	if err != nil {
		return err
	}
	lines, err := examineMemory(mem, uint32(addr), f)
	if err != nil {
		return err
	}
	for _, l := range lines {
		r.printf("%s", l)
	}
	return nil
}

func cmdSet(r *REPL, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set {memory,stack,local,global} TARGET = VAL [TYPE]")
	}
	kind := args[0]
	eq := indexOf(args, "=")
	if eq < 0 || eq == 1 || eq == len(args)-1 {
		return fmt.Errorf("usage: set %s TARGET = VAL [TYPE]", kind)
	}
	target := args[1:eq]
	rhs := args[eq+1:]

	vm := r.dbg.VM()
	if vm == nil {
		return fmt.Errorf("no running instance")
	}

	switch kind {
	case "memory":
		if len(rhs) != 2 {
			return fmt.Errorf("usage: set memory ADDR = VAL TYPE")
		}
		addr, err := parseUint(target[0])
		if err != nil {
			return err
		}
		t, err := typeByName(rhs[1])
		if err != nil {
			return err
		}
		v, err := parseValue(rhs[0], t)
		if err != nil {
			return err
		}
		mem, err := r.dbg.Memory()
		if err != nil {
			return err
		}
		switch strings.ToLower(rhs[1]) {
		case "i8":
			return mem.StoreU8(uint32(addr), uint8(v.I32()))
		case "i16":
			return mem.StoreU16(uint32(addr), uint16(v.I32()))
		}
		return storeValue(mem, uint32(addr), v)
	case "stack":
		if len(rhs) != 1 {
			return fmt.Errorf("usage: set stack INDEX = VAL")
		}
		index, err := parseIndex(target[0])
		if err != nil {
			return err
		}
		st := vm.Stack()
		if int(index) >= len(st) {
			return fmt.Errorf("stack index %d out of range", index)
		}
		v, err := parseValue(rhs[0], st[index].ValueType())
		if err != nil {
			return err
		}
		st[index] = v
	case "local":
		if len(rhs) != 1 {
			return fmt.Errorf("usage: set local INDEX = VAL")
		}
		index, err := parseIndex(target[0])
		if err != nil {
			return err
		}
		locals := vm.Locals()
		if int(index) >= len(locals) {
			return fmt.Errorf("local index %d out of range", index)
		}
		v, err := parseValue(rhs[0], locals[index].ValueType())
		if err != nil {
			return err
		}
		locals[index] = v
	case "global":
		if len(rhs) != 1 {
			return fmt.Errorf("usage: set global INDEX = VAL")
		}
		index, err := parseIndex(target[0])
		if err != nil {
			return err
		}
		globals := vm.Globals()
		if int(index) >= len(globals) {
			return fmt.Errorf("global index %d out of range", index)
		}
		v, err := parseValue(rhs[0], globals[index].ValueType())
		if err != nil {
			return err
		}
		globals[index] = v
	default:
		return fmt.Errorf("unknown set target %q", kind)
	}
	return nil
}

func storeValue(mem interface {
	StoreU8(uint32, uint8) error
	StoreU16(uint32, uint16) error
	StoreU32(uint32, uint32) error
	StoreU64(uint32, uint64) error
}, addr uint32, v value.Value) error {
	switch v.ValueType() {
	case value.I32:
		return mem.StoreU32(addr, uint32(v.I32()))
	case value.I64:
		return mem.StoreU64(addr, uint64(v.I64()))
	case value.F32:
		return mem.StoreU32(addr, uint32(v.Bits()))
	case value.F64:
		return mem.StoreU64(addr, v.Bits())
	default:
		return fmt.Errorf("unsupported value type %v", v.ValueType())
	}
}

func indexOf(ss []string, target string) int {
	for i, s := range ss {
		if s == target {
			return i
		}
	}
	return -1
}

func cmdMemdump(r *REPL, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: memdump PATH")
	}
	mem, err := r.dbg.Memory()
	if err != nil {
		return err
	}
	if err := snapshot.Dump(mem, args[0]); err != nil {
		return err
	}
	r.printf("wrote memory snapshot to %s", args[0])
	return nil
}

func cmdMemload(r *REPL, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: memload PATH")
	}
	mem, err := r.dbg.Memory()
	if err != nil {
		return err
	}
	if err := snapshot.Restore(mem, args[0]); err != nil {
		return err
	}
	r.printf("restored memory from %s", args[0])
	return nil
}

func cmdTrace(r *REPL, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: trace on CONNINFO | trace off")
	}
	switch args[0] {
	case "off":
		r.dbg.SetTraceSink(trace.Discard{})
		r.traceConnInfo = ""
		r.printf("tracing disabled")
		return nil
	case "on":
		if len(args) < 2 {
			return fmt.Errorf("usage: trace on CONNINFO")
		}
		connInfo := args[1]
		pool, err := trace.DialPostgres(connInfo)
		if err != nil {
			return err
		}
		sink, err := trace.NewPostgres(pool, 0)
		if err != nil {
			return err
		}
		r.dbg.SetTraceSink(sink)
		r.traceConnInfo = connInfo
		r.printf("tracing enabled")
		return nil
	default:
		return fmt.Errorf("usage: trace on CONNINFO | trace off")
	}
}

func cmdQuit(r *REPL, args []string) error { return nil }

func cmdHelp(r *REPL, args []string) error {
	seen := make(map[string]bool)
	for _, c := range commands {
		if seen[c.help] {
			continue
		}
		seen[c.help] = true
		r.printf("%s", c.help)
	}
	return nil
}

func describeBreakpoint(b breakpoint.Breakpoint) string {
	switch b.Kind {
	case breakpoint.KindCode:
		return fmt.Sprintf("code breakpoint at function %d, instruction %d", b.Position.FuncIndex, b.Position.InstrIndex)
	case breakpoint.KindMemory:
		return fmt.Sprintf("memory watchpoint at %#x (%s)", b.Address, b.Trigger)
	case breakpoint.KindGlobal:
		return fmt.Sprintf("global watchpoint on %d (%s)", b.Global, b.Trigger)
	default:
		return "unknown breakpoint"
	}
}

func describeSignature(s module.Signature) string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	result := "void"
	if s.HasResult {
		result = s.ResultType.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), result)
}

func describeFunction(fn module.Function) string {
	if fn.Imported {
		return fmt.Sprintf("import %s.%s %s", fn.ImportModule, fn.ImportField, describeSignature(fn.Signature))
	}
	return fmt.Sprintf("local %s, %d local(s), %d instruction(s)", describeSignature(fn.Signature), len(fn.Locals), len(fn.Instructions))
}

func describeLimits(l module.Limits) string {
	if l.HasMaximum {
		return fmt.Sprintf("initial=%d maximum=%d", l.Initial, l.Maximum)
	}
	return fmt.Sprintf("initial=%d", l.Initial)
}

func describeExportKind(k module.ExportKind) string {
	switch k {
	case module.ExportFunc:
		return "func"
	case module.ExportTable:
		return "table"
	case module.ExportMemory:
		return "memory"
	case module.ExportGlobal:
		return "global"
	default:
		return "unknown"
	}
}

func formatValue(v value.Value) string { return v.String() }
