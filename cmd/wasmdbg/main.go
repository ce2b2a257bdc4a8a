// Command wasmdbg is an interactive source-level debugger for WebAssembly
// modules: it loads a binary, instantiates it in an in-process
// interpreter, and drives a gdb-style REPL over it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/wasmdbg/wasmdbg/debugger"
	"github.com/wasmdbg/wasmdbg/module"
	"github.com/wasmdbg/wasmdbg/repl"
)

const initFileName = ".wasmdbg_init"

func main() {
	app := cli.NewApp()
	app.Name = "wasmdbg"
	app.Usage = "an interactive WebAssembly debugger"
	app.ArgsUsage = "[file]"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "no-color", Usage: "disable coloured error output"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("no-color") {
		color.NoColor = true
	}

	dbg := debugger.New()
	r := repl.New(dbg, os.Stdout)

	if path := c.Args().First(); path != "" {
		mod, err := module.Load(path)
		if err != nil {
			fmt.Println(err)
		} else {
			dbg.LoadFile(path, mod)
			fmt.Printf("Loaded %q\n", path)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		r.RunInitFile(filepath.Join(home, initFileName))
	}

	os.Exit(r.Run())
	return nil
}
