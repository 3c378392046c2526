package visitor

import "github.com/fy-lang/funcy/lang/ast"

func (v *visitor) visitFunc(fn *ast.FuncStmt) {
	if v.stdlib {
		if def, ok := matchIntrinsicDef(fn); ok {
			v.visitIntrinsicDef(fn, def)
			return
		}
	}

	if v.scopes.Has(fn.Name) {
		v.log.Add(fn.Span(), "redefinition of %q", fn.Name)
	}
	label := "func_" + fn.Name
	v.scopes.DefineFunc(fn.Name, label, len(fn.Params))

	prev := v.code.Cursor()
	block := v.code.NewNamedBlock(label)
	v.code.SetCursor(block)

	// Buffer scope: isolate this function's frame from any outer function's
	// locals and loop labels, since Funcy functions only ever appear at
	// module top level but the frame-isolation contract is unconditional.
	v.scopes.Push()
	v.scopes.UndefineLocals()
	v.scopes.UndefineScopedLabel()

	v.scopes.Push()
	for _, p := range fn.Params {
		if p.IsMutable {
			v.scopes.DefineLocalMut(p.Name)
		} else {
			v.scopes.DefineLocal(p.Name)
		}
	}

	v.visitStmt(fn.Body)

	v.scopes.Pop() // parameter scope
	v.scopes.Pop() // buffer scope

	v.code.Emit(intPush(0))
	v.code.Emit(returnOp())

	v.code.SetCursor(prev)
}

// matchIntrinsicDef recognizes the one shape a standard-library intrinsic
// definition is written in: a single `return $(name, args...);` body whose
// intrinsic name is registered and whose parameter count matches its
// arity. Anything else is visited as an ordinary function, even in the
// standard library.
func matchIntrinsicDef(fn *ast.FuncStmt) (intrinsicDef, bool) {
	def, ok := intrinsics[fn.Name]
	if !ok || len(fn.Params) != def.Arity || len(fn.Body.Stmts) != 1 {
		return intrinsicDef{}, false
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnExprStmt)
	if !ok {
		return intrinsicDef{}, false
	}
	call, ok := ret.Value.(*ast.IntrinsicExpr)
	if !ok || call.Name != fn.Name {
		return intrinsicDef{}, false
	}
	return def, true
}

// visitIntrinsicDef binds fn.Name as an INTRINSIC symbol and builds a
// named, directly-callable block for it (LOAD each parameter, run the
// intrinsic's op sequence, RETURN), so it behaves like an ordinary callable
// even though ordinary call sites inline it instead of emitting
// CALL_PARAMC.
func (v *visitor) visitIntrinsicDef(fn *ast.FuncStmt, def intrinsicDef) {
	if v.scopes.Has(fn.Name) {
		v.log.Add(fn.Span(), "redefinition of %q", fn.Name)
	}
	label := "func_" + fn.Name
	v.scopes.DefineIntrinsic(fn.Name, label, def.Arity)

	prev := v.code.Cursor()
	block := v.code.NewNamedBlock(label)
	v.code.SetCursor(block)
	for i := 0; i < def.Arity; i++ {
		v.code.Emit(loadLocal(i))
	}
	for _, op := range def.Body {
		v.code.Emit(op)
	}
	v.code.Emit(returnOp())
	v.code.SetCursor(prev)
}
