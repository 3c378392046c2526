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

// Build compiles the source file at args[0] and writes framed bytecode to
// args[1].
func (c *Cmd) Build(_ context.Context, stdio mainer.Stdio, args []string) error {
	in, out := args[0], args[1]

	log := &diag.Log{}
	loader := stdlib.New(fileLoader{})
	root := resolver.Resolve(in, loader, log)

	code := visitor.Visit(root, log)
	if log.HasErrors() {
		fmt.Fprint(stdio.Stderr, log.String())
		return fmt.Errorf("%s: compilation failed", in)
	}
	ir.Optimize(code)

	b, err := bytecode.Serialize(code, bytecode.Framed)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

// fileLoader resolves a canonical path directly to the on-disk file at
// that path: the resolver's canonicalization of a relative path (with no
// "..") is the path itself, cleaned.
type fileLoader struct{}

func (fileLoader) Load(canon string) ([]byte, error) {
	return os.ReadFile(canon)
}
