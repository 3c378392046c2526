package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/fy-lang/funcy/internal/stdlib"
	"github.com/fy-lang/funcy/lang/bytecode"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/fy-lang/funcy/lang/visitor"
)

// Disasm prints the disassembled instruction stream of each file in args,
// as a debug aid. Each file may be source or already-serialized framed
// bytecode.
func (c *Cmd) Disasm(_ context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			failed = true
			continue
		}

		var code []byte
		var codeSize uint32
		if bytecode.HasMagic(b) {
			if _, err := bytecode.DecodeHeader(b); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				failed = true
				continue
			}
			// a framed file carries no recorded code/string-table boundary of
			// its own; best effort, disassemble the whole payload as code.
			code = b[bytecode.HeaderSize:]
			codeSize = uint32(len(code))
		} else {
			log := &diag.Log{}
			loader := stdlib.New(fileLoader{})
			root := resolver.Resolve(path, loader, log)
			ircode := visitor.Visit(root, log)
			if log.HasErrors() {
				fmt.Fprint(stdio.Stderr, log.String())
				failed = true
				continue
			}
			ir.Optimize(ircode)
			serialized, err := bytecode.Serialize(ircode, bytecode.Flat)
			if err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				failed = true
				continue
			}
			code = serialized
			codeSize = bytecode.CodeSize(ircode)
		}

		fmt.Fprintf(stdio.Stdout, "; %s\n", path)
		fmt.Fprint(stdio.Stdout, bytecode.Disassemble(code, codeSize))
	}
	if failed {
		return fmt.Errorf("disasm: one or more files failed")
	}
	return nil
}
