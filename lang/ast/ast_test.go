package ast_test

import (
	"testing"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/token"
	"github.com/stretchr/testify/require"
)

func TestBlockEndingStatements(t *testing.T) {
	require.True(t, (&ast.ReturnStmt{}).BlockEnding())
	require.True(t, (&ast.ReturnExprStmt{}).BlockEnding())
	require.True(t, (&ast.ScopedJumpStmt{}).BlockEnding())
	require.False(t, (&ast.ExprStmt{}).BlockEnding())
	require.False(t, (&ast.IfStmt{}).BlockEnding())
}

func TestIsAssignable(t *testing.T) {
	require.True(t, ast.IsAssignable(&ast.IdentExpr{Name: "x"}))
	require.False(t, ast.IsAssignable(&ast.IntExpr{Value: 1}))
}

func TestAssignOpBinOp(t *testing.T) {
	op, ok := ast.ASSIGN_ADD.BinOp()
	require.True(t, ok)
	require.Equal(t, ast.ADD, op)

	_, ok = ast.ASSIGN_SIMPLE.BinOp()
	require.False(t, ok)
}

func TestNodeSpans(t *testing.T) {
	sp := token.NewSpan(token.Position{Offset: 0}, token.Position{Offset: 1})
	n := &ast.IntExpr{Value: 1, ExprSpan: sp}
	require.Equal(t, sp, n.Span())
}
