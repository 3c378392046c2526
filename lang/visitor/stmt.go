package visitor

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/token"
)

func (v *visitor) visitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		v.visitScoped(func() {
			for _, stmt := range n.Stmts {
				v.visitStmt(stmt)
			}
		})
	case *ast.IfStmt:
		v.visitIf(n)
	case *ast.IfElseStmt:
		v.visitIfElse(n)
	case *ast.WhileStmt:
		v.visitWhile(n)
	case *ast.NopStmt:
		// no code
	case *ast.LetStmt:
		v.visitLet(n.Decl, nil, n.Span())
	case *ast.LetExprStmt:
		v.visitLet(n.Decl, n.Value, n.Span())
	case *ast.ReturnStmt:
		v.code.Emit(intPush(0))
		v.code.Emit(returnOp())
	case *ast.ReturnExprStmt:
		v.visitExpr(n.Value)
		v.code.Emit(returnOp())
	case *ast.ScopedJumpStmt:
		v.visitScopedJump(n)
	case *ast.ExprStmt:
		v.visitExpr(n.Value)
		v.code.Emit(dropOp())
	case *ast.ErrorStmt:
		// already diagnosed by the parser
	default:
		panic("bug: unhandled statement kind in visitor")
	}
}

// visitScoped pushes a new scope, runs f, emits one DROP per local it
// defined directly, then pops. Used for every block-shaped construct:
// brace blocks and each arm of if/if-else/while.
func (v *visitor) visitScoped(f func()) {
	v.scopes.Push()
	f()
	for i := 0; i < v.scopes.ScopeLocalCount(); i++ {
		v.code.Emit(dropOp())
	}
	v.scopes.Pop()
}

func (v *visitor) visitIf(n *ast.IfStmt) {
	v.visitExpr(n.Cond)
	end := v.code.NewBlockAfterCursor("if_end")
	v.code.Emit(ir.Op{Kind: ir.JUMP_ZERO_LABEL, StrValue: end.Label})
	v.visitScoped(func() { v.visitStmt(n.Then) })
	v.code.SetCursor(end)
}

func (v *visitor) visitIfElse(n *ast.IfElseStmt) {
	v.visitExpr(n.Cond)
	end := v.code.NewBlockAfterCursor("if_end")
	elseBlock := v.code.NewBlockAfterCursor("if_else")
	v.code.Emit(ir.Op{Kind: ir.JUMP_ZERO_LABEL, StrValue: elseBlock.Label})
	v.visitScoped(func() { v.visitStmt(n.Then) })
	v.code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: end.Label})
	v.code.SetCursor(elseBlock)
	v.visitScoped(func() { v.visitStmt(n.Else) })
	v.code.SetCursor(end)
}

func (v *visitor) visitWhile(n *ast.WhileStmt) {
	end := v.code.NewBlockAfterCursor("while_end")
	body := v.code.NewBlockAfterCursor("while_body")
	cond := v.code.NewBlockAfterCursor("while_cond")

	v.code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: cond.Label})

	v.code.SetCursor(cond)
	v.visitExpr(n.Cond)
	v.code.Emit(ir.Op{Kind: ir.JUMP_NOT_ZERO_LABEL, StrValue: body.Label})
	v.code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: end.Label})

	v.code.SetCursor(body)
	v.visitScoped(func() {
		unwind := v.scopes.CurrentLocalCount()
		v.scopes.DefineBreak(end.Label, unwind)
		v.scopes.DefineContinue(cond.Label, unwind)
		v.visitStmt(n.Body)
	})
	v.code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: cond.Label})

	v.code.SetCursor(end)
}

// visitLet pushes the initializer (or a zero for a bare `let`), then
// either registers the declaration or, if the name already has a binding
// at this exact depth, diagnoses the redeclaration and drops the value
// instead of allocating a second slot for it.
func (v *visitor) visitLet(decl *ast.Decl, initExpr ast.Expr, span token.Span) {
	if initExpr != nil {
		v.visitExpr(initExpr)
	} else {
		v.code.Emit(intPush(0))
		if !decl.IsMutable {
			v.log.Add(span, "immutable binding %q has no initializer", decl.Name)
		}
	}

	if v.scopes.HasAtCurrentDepth(decl.Name) {
		v.log.Add(span, "redefinition of %q in the same scope", decl.Name)
		v.code.Emit(dropOp())
		return
	}

	if decl.IsMutable {
		v.scopes.DefineLocalMut(decl.Name)
	} else {
		v.scopes.DefineLocal(decl.Name)
	}
}

func (v *visitor) visitScopedJump(n *ast.ScopedJumpStmt) {
	kindName := "break"
	getLabel := v.scopes.GetBreak
	if n.Kind == ast.CONTINUE_JUMP {
		kindName = "continue"
		getLabel = v.scopes.GetContinue
	}
	lbl, ok := getLabel()
	if !ok || !lbl.IsAvailable {
		v.log.Add(n.Span(), "%s outside of a loop", kindName)
		return
	}
	unwind := v.scopes.CurrentLocalCount() - lbl.LocalCount
	for i := 0; i < unwind; i++ {
		v.code.Emit(dropOp())
	}
	v.code.Emit(ir.Op{Kind: ir.JUMP_LABEL, StrValue: lbl.Label})
}
