package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/parser"
)

// Parse prints the parsed module structure of each file in args, as a
// debug aid: one line per function, listing its parameters and statement
// count.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			failed = true
			continue
		}
		log := &diag.Log{}
		mod := parser.ParseModule(path, src, 0, log)
		dumpModule(stdio, mod)
		if log.HasErrors() {
			fmt.Fprint(stdio.Stderr, log.String())
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("parse: one or more files failed")
	}
	return nil
}

func dumpModule(stdio mainer.Stdio, mod *ast.Module) {
	fmt.Fprintf(stdio.Stdout, "module %s\n", mod.Name)
	for _, incl := range mod.Includes {
		fmt.Fprintf(stdio.Stdout, "  include %q\n", incl.Path)
	}
	for _, fn := range mod.Funcs {
		names := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			names[i] = p.Name
			if p.IsMutable {
				names[i] = "mut " + names[i]
			}
		}
		fmt.Fprintf(stdio.Stdout, "  func %s(%v) %d stmt(s)\n", fn.Name, names, len(fn.Body.Stmts))
	}
}
