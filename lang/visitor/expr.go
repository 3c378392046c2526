package visitor

import (
	"fmt"
	"unicode/utf8"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/ir"
	"github.com/fy-lang/funcy/lang/scope"
	"github.com/fy-lang/funcy/lang/token"
)

func (v *visitor) visitExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntExpr:
		v.code.Emit(intPush(n.Value))
	case *ast.ChrExpr:
		v.visitChr(n)
	case *ast.StrExpr:
		v.code.Emit(ir.Op{Kind: ir.PUSH_STR, StrValue: n.Value})
	case *ast.IdentExpr:
		v.visitIdent(n)
	case *ast.CallExpr:
		v.visitCall(n)
	case *ast.AndExpr:
		v.visitAnd(n)
	case *ast.OrExpr:
		v.visitOr(n)
	case *ast.AssignExpr:
		v.visitAssign(n)
	case *ast.UnaryExpr:
		v.visitUnary(n)
	case *ast.BinaryExpr:
		v.visitBinary(n)
	case *ast.IntrinsicExpr:
		v.visitIntrinsicExpr(n)
	case *ast.ErrorExpr:
		v.code.Emit(intPush(0))
	default:
		panic("bug: unhandled expression kind in visitor")
	}
}

func (v *visitor) visitChr(n *ast.ChrExpr) {
	if utf8.RuneCountInString(n.Value) != 1 {
		v.log.Add(n.Span(), "char literal must contain exactly one character")
		v.code.Emit(ir.Op{Kind: ir.PUSH_CHR, IntValue: 0})
		return
	}
	r, _ := utf8.DecodeRuneInString(n.Value)
	v.code.Emit(ir.Op{Kind: ir.PUSH_CHR, IntValue: int64(r)})
}

func (v *visitor) visitIdent(n *ast.IdentExpr) {
	sym, ok := v.scopes.Get(n.Name)
	if !ok || sym.Access == scope.UNDEFINED {
		v.log.Add(n.Span(), "undefined name %q", n.Name)
		v.code.Emit(intPush(0))
		return
	}
	switch sym.Access {
	case scope.FUNC, scope.INTRINSIC:
		v.code.Emit(ir.Op{Kind: ir.PUSH_LABEL, StrValue: sym.StrValue})
	case scope.LOCAL, scope.LOCAL_MUT:
		v.code.Emit(ir.Op{Kind: ir.LOAD_LOCAL_OFFSET, IntValue: sym.IntValue})
	default:
		v.code.Emit(intPush(0))
	}
}

func (v *visitor) visitAnd(n *ast.AndExpr) {
	v.visitExpr(n.Left)
	v.code.Emit(ir.Op{Kind: ir.DUPLICATE})
	end := v.code.NewBlockAfterCursor("and_end")
	v.code.Emit(ir.Op{Kind: ir.JUMP_ZERO_LABEL, StrValue: end.Label})
	v.code.Emit(dropOp())
	v.visitExpr(n.Right)
	v.code.SetCursor(end)
}

func (v *visitor) visitOr(n *ast.OrExpr) {
	v.visitExpr(n.Left)
	v.code.Emit(ir.Op{Kind: ir.DUPLICATE})
	end := v.code.NewBlockAfterCursor("or_end")
	v.code.Emit(ir.Op{Kind: ir.JUMP_NOT_ZERO_LABEL, StrValue: end.Label})
	v.code.Emit(dropOp())
	v.visitExpr(n.Right)
	v.code.SetCursor(end)
}

func (v *visitor) visitUnary(n *ast.UnaryExpr) {
	v.visitExpr(n.Operand)
	switch n.Op {
	case ast.AFFIRM:
		// +x is x; no IR op carries this.
	case ast.DEREFERENCE:
		v.code.Emit(ir.Op{Kind: ir.UNARY_DEREFERENCE})
	case ast.NEGATE:
		v.code.Emit(ir.Op{Kind: ir.UNARY_NEGATE})
	case ast.NOT:
		v.code.Emit(ir.Op{Kind: ir.UNARY_NOT})
	}
}

func (v *visitor) visitBinary(n *ast.BinaryExpr) {
	v.visitExpr(n.Left)
	v.visitExpr(n.Right)
	v.code.Emit(ir.Op{Kind: binOpKind(n.Op)})
}

func (v *visitor) visitAssign(n *ast.AssignExpr) {
	ident, ok := n.Target.(*ast.IdentExpr)
	if !ok {
		v.log.Add(n.Span(), "invalid assignment target")
		v.visitExpr(n.Value)
		return
	}
	sym, ok := v.scopes.Get(ident.Name)
	if !ok || sym.Access != scope.LOCAL_MUT {
		v.log.Add(n.Span(), "cannot assign to %q: not a mutable local", ident.Name)
		v.visitExpr(n.Value)
		return
	}

	if bin, isCompound := n.Op.BinOp(); isCompound {
		v.visitExpr(n.Target)
		v.visitExpr(n.Value)
		v.code.Emit(ir.Op{Kind: binOpKind(bin)})
	} else {
		v.visitExpr(n.Value)
	}
	v.code.Emit(storeLocal(sym.IntValue))
}

func (v *visitor) visitCall(n *ast.CallExpr) {
	switch callee := n.Callee.(type) {
	case *ast.IntExpr, *ast.ChrExpr, *ast.StrExpr:
		v.log.Add(n.Span(), "literal is not callable")
		for _, a := range n.Args {
			v.visitExpr(a)
			v.code.Emit(dropOp())
		}
		v.code.Emit(intPush(0))
	case *ast.IdentExpr:
		sym, ok := v.scopes.Get(callee.Name)
		switch {
		case ok && sym.Access == scope.INTRINSIC:
			v.visitIntrinsicCall(n, sym)
		case ok && sym.Access == scope.FUNC:
			v.visitStaticCall(n, sym)
		default:
			v.visitDynamicArgsAndCall(callee, n.Args)
		}
	default:
		v.visitDynamicArgsAndCall(n.Callee, n.Args)
	}
}

// visitDynamicArgsAndCall pushes the args and then the callee's value, so
// the call target sits directly under CALL_PARAMC's count, where CALL pops
// it from.
func (v *visitor) visitDynamicArgsAndCall(callee ast.Expr, args []ast.Expr) {
	for _, a := range args {
		v.visitExpr(a)
	}
	v.visitExpr(callee)
	v.code.Emit(ir.Op{Kind: ir.CALL_PARAMC, IntValue: int64(len(args))})
}

func (v *visitor) visitStaticCall(n *ast.CallExpr, sym scope.Symbol) {
	arity := int(sym.IntValue)
	v.emitAdjustedArgs(n.Args, arity, n.Span(), fmt.Sprintf("call to %q", calleeName(n.Callee)))
	v.code.Emit(ir.Op{Kind: ir.PUSH_LABEL, StrValue: sym.StrValue})
	v.code.Emit(ir.Op{Kind: ir.CALL_PARAMC, IntValue: int64(arity)})
}

func (v *visitor) visitIntrinsicCall(n *ast.CallExpr, sym scope.Symbol) {
	def, ok := intrinsics[sym.Name]
	if !ok {
		v.log.Add(n.Span(), "bug: unknown intrinsic %q", sym.Name)
		v.code.Emit(intPush(0))
		return
	}
	v.emitAdjustedArgs(n.Args, def.Arity, n.Span(), fmt.Sprintf("call to %q", sym.Name))
	for _, op := range def.Body {
		v.code.Emit(op)
	}
}

func (v *visitor) visitIntrinsicExpr(n *ast.IntrinsicExpr) {
	def, ok := intrinsics[n.Name]
	if !ok {
		v.log.Add(n.Span(), "unknown intrinsic %q", n.Name)
		for _, a := range n.Args {
			v.visitExpr(a)
			v.code.Emit(dropOp())
		}
		v.code.Emit(intPush(0))
		return
	}
	v.emitAdjustedArgs(n.Args, def.Arity, n.Span(), fmt.Sprintf("intrinsic %q", n.Name))
	for _, op := range def.Body {
		v.code.Emit(op)
	}
}

// emitAdjustedArgs visits each arg, dropping any beyond arity, then pads
// with zeros up to arity. This keeps the stack discipline of the
// subsequent call or inline op sequence correct even when the argument
// count is wrong, which is diagnosed but not fatal.
func (v *visitor) emitAdjustedArgs(args []ast.Expr, arity int, span token.Span, what string) {
	if len(args) != arity {
		v.log.Add(span, "%s expects %d argument(s), got %d", what, arity, len(args))
	}
	for i, a := range args {
		v.visitExpr(a)
		if i >= arity {
			v.code.Emit(dropOp())
		}
	}
	for i := len(args); i < arity; i++ {
		v.code.Emit(intPush(0))
	}
}
