// Package repl implements the interactive command loop: line editing and
// history via github.com/peterh/liner, coloured output via
// github.com/fatih/color, driving a debugger.Debugger facade.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/wasmdbg/wasmdbg/debugger"
	"github.com/wasmdbg/wasmdbg/exec"
)

const historyFileName = ".wasmdbg_history"

// REPL is the interactive command loop.
type REPL struct {
	dbg *debugger.Debugger
	out io.Writer

	line *liner.State

	traceConnInfo string
}

// New returns a REPL driving dbg, writing output to out.
func New(dbg *debugger.Debugger, out io.Writer) *REPL {
	return &REPL{dbg: dbg, out: out}
}

// Run starts line editing, loads history, and processes commands until the
// user quits or reaches EOF. It returns the process exit code.
func (r *REPL) Run() int {
	r.line = liner.NewLiner()
	defer r.line.Close()
	r.line.SetCtrlCAborts(true)

	r.loadHistory()
	defer r.saveHistory()

	for {
		input, err := r.line.Prompt("wasmdbg> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(r.out, "Bye.")
				return 0
			}
			fmt.Fprintln(r.out, err)
			return 1
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if quit := r.Dispatch(input); quit {
			fmt.Fprintln(r.out, "Bye.")
			return 0
		}
	}
}

// RunInitFile executes every non-blank, non-comment line of path in order,
// silently doing nothing if the file does not exist. Used to replay
// ~/.wasmdbg_init's breakpoints/watchpoints before the interactive loop
// starts.
func (r *REPL) RunInitFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.Dispatch(line)
	}
}

func (r *REPL) historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

func (r *REPL) loadHistory() {
	f, err := os.Open(r.historyPath())
	if err != nil {
		return
	}
	defer f.Close()
	r.line.ReadHistory(f)
}

func (r *REPL) saveHistory() {
	f, err := os.Create(r.historyPath())
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Dispatch parses and executes one command line, reporting whether the
// REPL should exit.
func (r *REPL) Dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	cmd, ok := commands[name]
	if !ok {
		r.errorf("unknown command %q", name)
		return false
	}
	if err := cmd.run(r, args); err != nil {
		r.errorf("%s", err)
	}
	return cmd.quits
}

func (r *REPL) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *REPL) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if color.NoColor {
		fmt.Fprintln(r.out, msg)
		return
	}
	fmt.Fprintln(r.out, color.RedString("%s", msg))
}

// reportTrap prints a trap (or its absence) the way the REPL reports the
// outcome of a run/continue/step command.
func (r *REPL) reportTrap(tr exec.Trap) {
	if tr == nil {
		return
	}
	switch tr.(type) {
	case *exec.BreakpointReached, *exec.WatchpointReached:
		r.printf("%s", tr)
	default:
		r.errorf("%s", tr)
	}
}

func parseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return uint32(n), nil
}
