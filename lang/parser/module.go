package parser

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/token"
)

// parseModule parses the whole source file: leading include directives
// followed by top-level function declarations, through to EOF.
func (p *parser) parseModule() *ast.Module {
	p.begin()

	var includes []*ast.Incl
	for p.tok.Kind == token.INCLUDE {
		if incl := p.parseIncludeRecover(); incl != nil {
			includes = append(includes, incl)
		}
	}

	var funcs []*ast.FuncStmt
	for p.tok.Kind != token.EOF {
		if p.tok.Kind == token.INCLUDE {
			p.errorAt(p.tok.Span, "include directives must precede all function declarations")
		}
		if fn := p.parseFuncRecover(); fn != nil {
			funcs = append(funcs, fn)
		}
	}

	return &ast.Module{Includes: includes, Funcs: funcs, ModuleSpan: p.end()}
}

func (p *parser) parseIncludeRecover() (incl *ast.Incl) {
	mark := len(p.starts)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errPanicMode); !ok {
				panic(r)
			}
			p.starts = p.starts[:mark]
			p.syncTopLevel()
			incl = nil
		}
	}()
	return p.parseInclude()
}

func (p *parser) parseInclude() *ast.Incl {
	p.begin()
	p.advance() // 'include'
	path := p.tok.Value.StrVal
	p.expect(token.LITERAL_STR)
	p.expectSoft(token.SEMI)
	return &ast.Incl{Path: path, InclSpan: p.end()}
}

func (p *parser) parseFuncRecover() (fn *ast.FuncStmt) {
	mark := len(p.starts)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errPanicMode); !ok {
				panic(r)
			}
			p.starts = p.starts[:mark]
			p.syncTopLevel()
			fn = nil
		}
	}()
	if p.tok.Kind != token.FUNC {
		p.errorAt(p.tok.Span, "expected function declaration, found %s", p.tok.Kind.GoString())
		panic(errPanicMode{})
	}
	return p.parseFuncStmt()
}

func (p *parser) parseFuncStmt() *ast.FuncStmt {
	p.begin()
	p.advance() // 'func'
	name := p.tok.Value.StrVal
	p.expect(token.IDENTIFIER)
	p.expectSoft(token.LPAREN)
	params := p.parseParamList()
	p.expectSoft(token.RPAREN)
	body := p.parseBlock()
	return &ast.FuncStmt{Name: name, Params: params, Body: body, StmtSpan: p.end()}
}

// syncTopLevel advances past tokens until one that plausibly starts a new
// top-level declaration (func) or ends the file.
func (p *parser) syncTopLevel() {
	for {
		switch p.tok.Kind {
		case token.EOF, token.FUNC:
			return
		default:
			p.advance()
		}
	}
}
