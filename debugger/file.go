// Package debugger provides the facade the REPL and CLI drive: a loaded
// module plus its breakpoint registry, and the VM instance (if any)
// currently executing it.
package debugger

import (
	"github.com/wasmdbg/wasmdbg/breakpoint"
	"github.com/wasmdbg/wasmdbg/module"
)

// File is a loaded module together with the breakpoint registry that
// outlives any one VM instance run against it.
type File struct {
	path        string
	module      *module.Module
	breakpoints *breakpoint.Registry
}

// NewFile wraps an already-decoded module. Binary decoding itself happens
// upstream of this package; see the `load` command.
func NewFile(path string, mod *module.Module) *File {
	return &File{path: path, module: mod, breakpoints: breakpoint.New()}
}

func (f *File) Path() string                      { return f.path }
func (f *File) Module() *module.Module            { return f.module }
func (f *File) Breakpoints() *breakpoint.Registry { return f.breakpoints }
