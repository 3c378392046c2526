package filetest

import (
	"bytes"
	"fmt"

	"github.com/fy-lang/funcy/internal/stdlib"
	"github.com/fy-lang/funcy/lang/bytecode"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/fvm"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/fy-lang/funcy/lang/token"
	"github.com/fy-lang/funcy/lang/visitor"
)

// singleFileLoader resolves every canonical path to one fixed source,
// sufficient for the end-to-end scenarios under testdata, none of which
// use `include`.
type singleFileLoader struct {
	canon string
	src   []byte
}

func (l singleFileLoader) Load(canon string) ([]byte, error) {
	if canon != l.canon {
		return nil, fmt.Errorf("no such module %q", canon)
	}
	return l.src, nil
}

// Result is the outcome of compiling and running one Funcy program: what
// the compile pipeline logged, and, if compilation succeeded cleanly
// enough to produce bytecode, what the VM printed and exited with.
type Result struct {
	Diagnostics string
	Stdout      string
	ExitCode    int32
	Ran         bool
}

// Run compiles src as the main module (with the real embedded standard
// library) and, if no diagnostics were raised, executes the result on a
// fresh FVM with the given limits.
func Run(src string, limits fvm.Limits) Result {
	log := &diag.Log{}
	loader := stdlib.New(singleFileLoader{canon: "main", src: []byte(src)})
	root := resolver.Resolve("main", loader, log)

	code := visitor.Visit(root, log)
	if log.HasErrors() {
		return Result{Diagnostics: log.String()}
	}
	ir.Optimize(code)

	out, err := bytecode.Serialize(code, bytecode.Flat)
	if err != nil {
		log.Add(token.Unlocated, "bug: serialize: %s", err)
		return Result{Diagnostics: log.String()}
	}

	var stdout bytes.Buffer
	vm := fvm.New(limits, &stdout)
	vm.LoadFlat(out)
	vm.Begin()
	ec := vm.Run()

	return Result{
		Diagnostics: log.String(),
		Stdout:      stdout.String(),
		ExitCode:    ec,
		Ran:         true,
	}
}
