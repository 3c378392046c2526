package parser

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/token"
)

// parseDecl parses "[mut] name", as used by let-statements and parameters.
func (p *parser) parseDecl() *ast.Decl {
	p.begin()
	mut := false
	if p.tok.Kind == token.MUT {
		p.advance()
		mut = true
	}
	name := p.tok.Value.StrVal
	p.expect(token.IDENTIFIER)
	return &ast.Decl{IsMutable: mut, Name: name, DeclSpan: p.end()}
}

// parseParamList parses a comma-separated, non-trailing-comma parameter list
// up to (but not consuming) the closing ')'.
func (p *parser) parseParamList() []*ast.Decl {
	var decls []*ast.Decl
	for p.tok.Kind != token.RPAREN && p.tok.Kind != token.EOF {
		decls = append(decls, p.parseDecl())
		if !p.continueList(token.RPAREN, "parameter list") {
			break
		}
	}
	return decls
}

// parseArgList parses a comma-separated, non-trailing-comma argument list up
// to (but not consuming) the closing ')'.
func (p *parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for p.tok.Kind != token.RPAREN && p.tok.Kind != token.EOF {
		args = append(args, p.parseExpr())
		if !p.continueList(token.RPAREN, "argument list") {
			break
		}
	}
	return args
}

// continueList consumes a separating comma if present, reports a missing or
// trailing comma, and reports whether the caller's loop should continue.
func (p *parser) continueList(end token.Kind, what string) bool {
	switch {
	case p.tok.Kind == token.COMMA:
		p.advance()
		if p.tok.Kind == end {
			p.errorAt(p.tok.Span, "trailing comma in %s", what)
			return false
		}
		return true
	case p.tok.Kind == end:
		return false
	default:
		p.errorAt(p.tok.Span, "expected ',' or %s in %s", end.GoString(), what)
		return false
	}
}
