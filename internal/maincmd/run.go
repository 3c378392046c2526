package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/fy-lang/funcy/internal/config"
	"github.com/fy-lang/funcy/internal/stdlib"
	"github.com/fy-lang/funcy/lang/bytecode"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/fvm"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/fy-lang/funcy/lang/visitor"
)

// Run loads source or bytecode from args[0], executes it, and returns the
// program's own exit code. Only an I/O or argument-shaped failure before
// execution starts is reported as an error; a compile error or a runtime
// crash both surface as ordinary (non-error) exit codes, matching the
// compiler's "exec always returns an int" contract.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) (int32, error) {
	path := args[0]
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	cfg, err = cfg.MergeFile("funcy.yaml")
	if err != nil {
		return 0, err
	}

	vm := fvm.New(cfg.Limits(), stdio.Stdout)

	if bytecode.HasMagic(b) {
		if err := vm.Load(b); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return 0, err
		}
	} else {
		log := &diag.Log{}
		loader := stdlib.New(fileLoader{})
		root := resolver.Resolve(path, loader, log)

		code := visitor.Visit(root, log)
		if log.HasErrors() {
			fmt.Fprint(stdio.Stderr, log.String())
			return fvm.ExitCrash, nil
		}
		ir.Optimize(code)

		program, err := bytecode.Serialize(code, bytecode.Flat)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return 0, err
		}
		vm.LoadFlat(program)
	}

	vm.Begin()
	ec := vm.Run()
	return ec, nil
}
