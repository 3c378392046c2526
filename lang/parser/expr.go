package parser

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/token"
)

// parseExpr parses a full expression, starting from the lowest-precedence
// production (assignment, right-associative).
func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.EQ:         ast.ASSIGN_SIMPLE,
	token.PLUS_EQ:    ast.ASSIGN_ADD,
	token.MINUS_EQ:   ast.ASSIGN_SUBTRACT,
	token.STAR_EQ:    ast.ASSIGN_MULTIPLY,
	token.SLASH_EQ:   ast.ASSIGN_DIVIDE,
	token.PERCENT_EQ: ast.ASSIGN_MODULO,
	token.AMP_EQ:     ast.ASSIGN_AND,
	token.PIPE_EQ:    ast.ASSIGN_OR,
}

// parseAssignment is right-associative: a = b = c parses as a = (b = c).
func (p *parser) parseAssignment() ast.Expr {
	p.begin()
	left := p.parseLogicalOr()
	op, ok := assignOps[p.tok.Kind]
	if !ok {
		p.starts = p.starts[:len(p.starts)-1]
		return left
	}
	p.advance()
	if !ast.IsAssignable(left) {
		p.errorAt(left.Span(), "left-hand side of assignment is not assignable")
	}
	value := p.parseAssignment()
	return &ast.AssignExpr{Target: left, Op: op, Value: value, ExprSpan: p.end()}
}

func (p *parser) parseLogicalOr() ast.Expr {
	p.begin()
	left := p.parseLogicalAnd()
	for p.tok.Kind == token.PIPE_PIPE {
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.OrExpr{Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

func (p *parser) parseLogicalAnd() ast.Expr {
	p.begin()
	left := p.parseEagerOr()
	for p.tok.Kind == token.AMP_AMP {
		p.advance()
		right := p.parseEagerOr()
		left = &ast.AndExpr{Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

func (p *parser) parseEagerOr() ast.Expr {
	p.begin()
	left := p.parseEagerAnd()
	for p.tok.Kind == token.PIPE {
		p.advance()
		right := p.parseEagerAnd()
		left = &ast.BinaryExpr{Op: ast.OR, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

func (p *parser) parseEagerAnd() ast.Expr {
	p.begin()
	left := p.parseEquality()
	for p.tok.Kind == token.AMP {
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Op: ast.AND, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

var equalityOps = map[token.Kind]ast.BinOp{
	token.EQ_EQ:   ast.EQUALS,
	token.BANG_EQ: ast.NOT_EQUALS,
}

func (p *parser) parseEquality() ast.Expr {
	p.begin()
	left := p.parseComparison()
	for {
		op, ok := equalityOps[p.tok.Kind]
		if !ok {
			break
		}
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

var comparisonOps = map[token.Kind]ast.BinOp{
	token.LT:    ast.LESS,
	token.LT_EQ: ast.LESS_EQUALS,
	token.GT:    ast.GREATER,
	token.GT_EQ: ast.GREATER_EQUALS,
}

func (p *parser) parseComparison() ast.Expr {
	p.begin()
	left := p.parseSum()
	for {
		op, ok := comparisonOps[p.tok.Kind]
		if !ok {
			break
		}
		p.advance()
		right := p.parseSum()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

var sumOps = map[token.Kind]ast.BinOp{
	token.PLUS:  ast.ADD,
	token.MINUS: ast.SUBTRACT,
}

func (p *parser) parseSum() ast.Expr {
	p.begin()
	left := p.parseTerm()
	for {
		op, ok := sumOps[p.tok.Kind]
		if !ok {
			break
		}
		p.advance()
		right := p.parseTerm()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

var termOps = map[token.Kind]ast.BinOp{
	token.STAR:    ast.MULTIPLY,
	token.SLASH:   ast.DIVIDE,
	token.PERCENT: ast.MODULO,
}

func (p *parser) parseTerm() ast.Expr {
	p.begin()
	left := p.parsePrefix()
	for {
		op, ok := termOps[p.tok.Kind]
		if !ok {
			break
		}
		p.advance()
		right := p.parsePrefix()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return left
}

var prefixOps = map[token.Kind]ast.UnOp{
	token.STAR:  ast.DEREFERENCE,
	token.PLUS:  ast.AFFIRM,
	token.MINUS: ast.NEGATE,
	token.BANG:  ast.NOT,
}

// parsePrefix is right-associative and allows chaining, e.g. "--x" negates
// twice and "!!x" double-negates.
func (p *parser) parsePrefix() ast.Expr {
	op, ok := prefixOps[p.tok.Kind]
	if !ok {
		return p.parseCall()
	}
	p.begin()
	p.advance()
	operand := p.parsePrefix()
	return &ast.UnaryExpr{Op: op, Operand: operand, ExprSpan: p.end()}
}

// parseCall parses a primary expression followed by zero or more chained
// call suffixes, e.g. f(x)(y).
func (p *parser) parseCall() ast.Expr {
	p.begin()
	callee := p.parsePrimary()
	for p.tok.Kind == token.LPAREN {
		p.advance()
		args := p.parseArgList()
		p.expectSoft(token.RPAREN)
		callee = &ast.CallExpr{Callee: callee, Args: args, ExprSpan: p.spanSince()}
		p.begin()
	}
	p.starts = p.starts[:len(p.starts)-1]
	return callee
}

func (p *parser) parsePrimary() ast.Expr {
	p.begin()
	switch p.tok.Kind {
	case token.LITERAL_INT:
		v := p.tok.Value.IntVal
		p.advance()
		return &ast.IntExpr{Value: v, ExprSpan: p.end()}

	case token.LITERAL_CHR:
		v := p.tok.Value.StrVal
		p.advance()
		return &ast.ChrExpr{Value: v, ExprSpan: p.end()}

	case token.LITERAL_STR:
		v := p.tok.Value.StrVal
		p.advance()
		return &ast.StrExpr{Value: v, ExprSpan: p.end()}

	case token.TRUE:
		p.advance()
		return &ast.IntExpr{Value: 1, ExprSpan: p.end()}

	case token.FALSE:
		p.advance()
		return &ast.IntExpr{Value: 0, ExprSpan: p.end()}

	case token.IDENTIFIER:
		name := p.tok.Value.StrVal
		p.advance()
		return &ast.IdentExpr{Name: name, ExprSpan: p.end()}

	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expectSoft(token.RPAREN)
		p.starts = p.starts[:len(p.starts)-1]
		return inner

	case token.DOLLAR_LPAREN:
		if !p.stdlib {
			p.errorAt(p.tok.Span, "intrinsic calls are only permitted in the standard-library module")
		}
		p.advance()
		name := p.tok.Value.StrVal
		p.expect(token.IDENTIFIER)
		var args []ast.Expr
		if p.tok.Kind == token.COMMA {
			p.advance()
			args = p.parseArgList()
		}
		p.expectSoft(token.RPAREN)
		return &ast.IntrinsicExpr{Name: name, Args: args, ExprSpan: p.end()}

	default:
		p.errorAt(p.tok.Span, "expected expression, found %s", p.tok.Kind.GoString())
		panic(errPanicMode{})
	}
}

// spanSince closes the span frame opened for a left-associative binary-op
// loop iteration: the start is the start of the whole left-hand chain, kept
// alive across iterations by re-pushing it in the caller's loop body.
func (p *parser) spanSince() token.Span {
	n := len(p.starts) - 1
	start := p.starts[n]
	p.starts = p.starts[:n]
	return token.NewSpan(start, p.prevEnd)
}
