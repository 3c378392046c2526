// Package visitor lowers a resolved AST into IR, performing every semantic
// check along the way: undefined names, arity mismatches, invalid call and
// assignment targets, malformed char literals, and unavailable scoped
// jumps. It owns the single scope stack for the whole program and emits
// directly into an ir.Code's current block, repositioning the cursor as it
// enters and leaves functions, branches and loops.
package visitor

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/resolver"
	"github.com/fy-lang/funcy/lang/scope"
)

type visitor struct {
	code   *ir.Code
	scopes *scope.Stack
	log    *diag.Log
	stdlib bool
}

// Visit lowers every module in root, in order, into a fresh ir.Code and
// returns it. Diagnostics are accumulated in log; Visit never panics on
// malformed input, only on a compiler bug.
func Visit(root *ast.Root, log *diag.Log) *ir.Code {
	v := &visitor{code: ir.New(), scopes: scope.NewStack(), log: log}

	for _, mod := range root.Modules {
		v.stdlib = mod.Name == resolver.StdlibPath
		for _, fn := range mod.Funcs {
			v.visitFunc(fn)
		}
	}

	v.emitEntryCall()
	return v.code
}

// emitEntryCall looks up main and calls it with zero-filled arguments if
// found, pushing its own zero exit code otherwise. This runs in the
// reserved .main block, which is always the first block the FVM executes.
func (v *visitor) emitEntryCall() {
	main, ok := v.scopes.Get("main")
	if !ok || main.Access != scope.FUNC {
		v.code.Emit(ir.Op{Kind: ir.PUSH_INT, IntValue: 0})
		v.code.Emit(ir.Op{Kind: ir.HALT})
		return
	}
	for i := int64(0); i < main.IntValue; i++ {
		v.code.Emit(ir.Op{Kind: ir.PUSH_INT, IntValue: 0})
	}
	v.code.Emit(ir.Op{Kind: ir.PUSH_LABEL, StrValue: main.StrValue})
	v.code.Emit(ir.Op{Kind: ir.CALL_PARAMC, IntValue: main.IntValue})
	v.code.Emit(ir.Op{Kind: ir.HALT})
}
