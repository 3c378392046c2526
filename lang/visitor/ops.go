package visitor

import (
	"fmt"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/ir"
)

func intPush(v int64) ir.Op  { return ir.Op{Kind: ir.PUSH_INT, IntValue: v} }
func returnOp() ir.Op        { return ir.Op{Kind: ir.RETURN} }
func dropOp() ir.Op          { return ir.Op{Kind: ir.DROP} }
func loadLocal(off int) ir.Op {
	return ir.Op{Kind: ir.LOAD_LOCAL_OFFSET, IntValue: int64(off)}
}
func storeLocal(off int64) ir.Op {
	return ir.Op{Kind: ir.STORE_LOCAL_OFFSET, IntValue: off}
}

func binOpKind(op ast.BinOp) ir.OpKind {
	switch op {
	case ast.ADD:
		return ir.BINARY_ADD
	case ast.SUBTRACT:
		return ir.BINARY_SUBTRACT
	case ast.MULTIPLY:
		return ir.BINARY_MULTIPLY
	case ast.DIVIDE:
		return ir.BINARY_DIVIDE
	case ast.MODULO:
		return ir.BINARY_MODULO
	case ast.EQUALS:
		return ir.BINARY_EQUALS
	case ast.NOT_EQUALS:
		return ir.BINARY_NOT_EQUALS
	case ast.GREATER:
		return ir.BINARY_GREATER
	case ast.GREATER_EQUALS:
		return ir.BINARY_GREATER_EQUALS
	case ast.LESS:
		return ir.BINARY_LESS
	case ast.LESS_EQUALS:
		return ir.BINARY_LESS_EQUALS
	case ast.AND:
		return ir.BINARY_AND
	case ast.OR:
		return ir.BINARY_OR
	default:
		panic(fmt.Sprintf("bug: unhandled BinOp %v", op))
	}
}

func calleeName(e ast.Expr) string {
	if id, ok := e.(*ast.IdentExpr); ok {
		return id.Name
	}
	return "<expr>"
}
