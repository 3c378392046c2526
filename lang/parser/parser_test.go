package parser_test

import (
	"testing"

	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/parser"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Module, *diag.Log) {
	t.Helper()
	log := &diag.Log{}
	mod := parser.ParseModule("test", []byte(src), 0, log)
	require.NotNil(t, mod)
	return mod, log
}

func TestParseMinimalFunc(t *testing.T) {
	mod, log := parse(t, `func main() { return 0; }`)
	require.False(t, log.HasErrors())
	require.Len(t, mod.Funcs, 1)
	fn := mod.Funcs[0]
	require.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnExprStmt)
	require.True(t, ok)
	i, ok := ret.Value.(*ast.IntExpr)
	require.True(t, ok)
	require.Equal(t, int64(0), i.Value)
}

func TestParseIncludesBeforeFuncs(t *testing.T) {
	mod, log := parse(t, `include "std"; func main() { return; }`)
	require.False(t, log.HasErrors())
	require.Len(t, mod.Includes, 1)
	require.Equal(t, "std", mod.Includes[0].Path)
}

func TestParseIncludeAfterFuncIsError(t *testing.T) {
	_, log := parse(t, `func main() { return; } include "std";`)
	require.True(t, log.HasErrors())
}

func TestAssignmentRightAssociative(t *testing.T) {
	mod, log := parse(t, `func f() { let mut a; let mut b; a = b = 1; return; }`)
	require.False(t, log.HasErrors())
	stmt := mod.Funcs[0].Body.Stmts[2].(*ast.ExprStmt)
	outer := stmt.Value.(*ast.AssignExpr)
	require.Equal(t, ast.ASSIGN_SIMPLE, outer.Op)
	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	require.Equal(t, ast.ASSIGN_SIMPLE, inner.Op)
}

func TestCompoundAssignment(t *testing.T) {
	mod, log := parse(t, `func f() { let mut a; a += 1; return; }`)
	require.False(t, log.HasErrors())
	stmt := mod.Funcs[0].Body.Stmts[1].(*ast.ExprStmt)
	assign := stmt.Value.(*ast.AssignExpr)
	require.Equal(t, ast.ASSIGN_ADD, assign.Op)
}

func TestBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3).
	mod, log := parse(t, `func f() { return 1 + 2 * 3; }`)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	add := ret.Value.(*ast.BinaryExpr)
	require.Equal(t, ast.ADD, add.Op)
	_, leftIsInt := add.Left.(*ast.IntExpr)
	require.True(t, leftIsInt)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.MULTIPLY, mul.Op)
}

func TestShortCircuitAndOr(t *testing.T) {
	mod, log := parse(t, `func f() { return 1 && 2 || 3; }`)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	or, ok := ret.Value.(*ast.OrExpr)
	require.True(t, ok)
	_, ok = or.Left.(*ast.AndExpr)
	require.True(t, ok)
}

func TestPrefixChaining(t *testing.T) {
	mod, log := parse(t, `func f() { return --1; }`)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	outer := ret.Value.(*ast.UnaryExpr)
	require.Equal(t, ast.NEGATE, outer.Op)
	inner, ok := outer.Operand.(*ast.UnaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.NEGATE, inner.Op)
}

func TestChainedCalls(t *testing.T) {
	mod, log := parse(t, `func f() { return g(1)(2); }`)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	outer := ret.Value.(*ast.CallExpr)
	require.Len(t, outer.Args, 1)
	_, ok := outer.Callee.(*ast.CallExpr)
	require.True(t, ok)
}

func TestIfElse(t *testing.T) {
	mod, log := parse(t, `func f() { if (1) return 1; else return 2; }`)
	require.False(t, log.HasErrors())
	_, ok := mod.Funcs[0].Body.Stmts[0].(*ast.IfElseStmt)
	require.True(t, ok)
}

func TestWhileLoop(t *testing.T) {
	mod, log := parse(t, `func f() { while (1) { break; } return; }`)
	require.False(t, log.HasErrors())
	while, ok := mod.Funcs[0].Body.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	block := while.Body.(*ast.BlockStmt)
	jump, ok := block.Stmts[0].(*ast.ScopedJumpStmt)
	require.True(t, ok)
	require.Equal(t, ast.BREAK_JUMP, jump.Kind)
}

func TestLetWithAndWithoutInitializer(t *testing.T) {
	mod, log := parse(t, `func f() { let mut a; let b = 1; return; }`)
	require.False(t, log.HasErrors())
	_, ok := mod.Funcs[0].Body.Stmts[0].(*ast.LetStmt)
	require.True(t, ok)
	letExpr, ok := mod.Funcs[0].Body.Stmts[1].(*ast.LetExprStmt)
	require.True(t, ok)
	require.False(t, letExpr.Decl.IsMutable)
}

func TestMissingSemicolonRecoversAtCurrentPosition(t *testing.T) {
	mod, log := parse(t, `func f() { return 1 }`)
	require.True(t, log.HasErrors())
	require.Len(t, mod.Funcs, 1)
	_, ok := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	require.True(t, ok)
}

func TestTrailingCommaInArgsIsError(t *testing.T) {
	_, log := parse(t, `func f() { return g(1, 2,); }`)
	require.True(t, log.HasErrors())
}

func TestMissingCommaInParamsIsError(t *testing.T) {
	_, log := parse(t, `func f(a b) { return; }`)
	require.True(t, log.HasErrors())
}

func TestBadTopLevelTokenRecovers(t *testing.T) {
	mod, log := parse(t, `123 func f() { return; }`)
	require.True(t, log.HasErrors())
	require.Len(t, mod.Funcs, 1)
}

func TestDollarParenRejectedOutsideStdlibMode(t *testing.T) {
	_, log := parse(t, `func f() { return $(putChr, 1); }`)
	require.True(t, log.HasErrors())
}

func TestDollarParenAcceptedInStdlibMode(t *testing.T) {
	log := &diag.Log{}
	mod := parser.ParseModule("std", []byte(`func f() { return $(putChr, 1); }`), parser.StdlibMode, log)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	intr, ok := ret.Value.(*ast.IntrinsicExpr)
	require.True(t, ok)
	require.Equal(t, "putChr", intr.Name)
	require.Len(t, intr.Args, 1)
}

func TestParenthesizedGroupingDoesNotCreateExtraNode(t *testing.T) {
	mod, log := parse(t, `func f() { return (1 + 2) * 3; }`)
	require.False(t, log.HasErrors())
	ret := mod.Funcs[0].Body.Stmts[0].(*ast.ReturnExprStmt)
	mul := ret.Value.(*ast.BinaryExpr)
	require.Equal(t, ast.MULTIPLY, mul.Op)
	_, ok := mul.Left.(*ast.BinaryExpr)
	require.True(t, ok)
}
