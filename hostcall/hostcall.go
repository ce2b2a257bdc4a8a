// Package hostcall defines the pluggable bridge the interpreter consults
// whenever a call resolves to an imported function. No WASI or other
// syscall semantics are specified here -- this is purely the seam a host
// environment plugs into, grounded on the WASI-by-import-name-prefix
// convention ("wasi_unstable.*") used by the system this interpreter's
// design was distilled from.
package hostcall

import (
	"github.com/wasmdbg/wasmdbg/memory"
	"github.com/wasmdbg/wasmdbg/value"
)

// HostVM is the slice of VM state a host function needs: access to the
// argument/result value stack and to linear memory.
type HostVM interface {
	PopValue() (value.Value, error)
	PushValue(value.Value) error
	Memory(index uint32) *memory.Memory
	Globals() []value.Value
}

// Handler is consulted whenever a call resolves to an imported function.
// It reports whether it claimed the call; when it does, it is responsible
// for popping any arguments off the stack and pushing any results before
// returning.
type Handler interface {
	Invoke(vm HostVM, funcIndex uint32, name string) (claimed bool, err error)
}

// NopHandler claims nothing; every call to an imported function traps
// UnsupportedCallToImportedFunction. It is the VM's default handler.
type NopHandler struct{}

func (NopHandler) Invoke(HostVM, uint32, string) (bool, error) { return false, nil }

// Func is a host function implemented as a plain Go closure over HostVM,
// for tests and REPL scripting.
type Func func(vm HostVM) error

// FuncMap dispatches by the import's "module.field" name to a registered
// Func, claiming only names it has a mapping for.
type FuncMap map[string]Func

// Invoke implements Handler.
func (m FuncMap) Invoke(vm HostVM, _ uint32, name string) (bool, error) {
	fn, ok := m[name]
	if !ok {
		return false, nil
	}
	if err := fn(vm); err != nil {
		return true, err
	}
	return true, nil
}
