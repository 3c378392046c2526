// Package parser implements a recursive-descent, precedence-climbing parser
// that turns a token stream into an *ast.Module. Errors are reported through
// the diag.Log and parsing resynchronizes at statement boundaries rather
// than aborting, so a single source file can yield many diagnostics in one
// pass.
package parser

import (
	"github.com/fy-lang/funcy/lang/ast"
	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/lexer"
	"github.com/fy-lang/funcy/lang/token"
)

// Mode configures the parser. By default (0) "$(" is a lexer error; StdlibMode
// enables it, and is only ever set for the standard-library module itself.
type Mode uint

const (
	StdlibMode Mode = 1 << iota
)

// errPanicMode is the sentinel panicked with to unwind to the nearest
// statement-level recover point.
type errPanicMode struct{}

// parser holds the mutable state of a single parse.
type parser struct {
	lex    *lexer.Lexer
	log    *diag.Log
	module string
	stdlib bool

	tok  token.Token // current token
	next token.Token // one token of lookahead past tok

	starts  []token.Position // span-start stack, pushed by begin, popped by end
	prevEnd token.Position   // end position of the last consumed token
}

func newParser(module string, src []byte, mode Mode, log *diag.Log) *parser {
	stdlib := mode&StdlibMode != 0
	p := &parser{module: module, stdlib: stdlib, log: log}
	p.lex = lexer.New(module, src, stdlib, log)
	p.tok = p.lex.Next()
	p.next = p.lex.Next()
	p.prevEnd = p.tok.Span.Start
	return p
}

// ParseModule parses a single source file into an *ast.Module. name is the
// canonical module name (assigned by the resolver's include graph, not by
// the parser); the parser only fills in Includes and Funcs.
func ParseModule(name string, src []byte, mode Mode, log *diag.Log) *ast.Module {
	p := newParser(name, src, mode, log)
	return p.parseModule()
}

func (p *parser) advance() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.next
	p.next = p.lex.Next()
}

// begin records the start position of a node about to be parsed.
func (p *parser) begin() {
	p.starts = append(p.starts, p.tok.Span.Start)
}

// end pairs the most recently begun start position with the end of the last
// consumed token, producing the node's full span.
func (p *parser) end() token.Span {
	n := len(p.starts) - 1
	start := p.starts[n]
	p.starts = p.starts[:n]
	return token.NewSpan(start, p.prevEnd)
}

// consume returns the current token's span and advances past it.
func (p *parser) consume() token.Span {
	sp := p.tok.Span
	p.advance()
	return sp
}

// expect requires kind to be current. On mismatch it reports and aborts the
// enclosing statement via panic(errPanicMode{}), since there is no sensible
// token to continue from (e.g. a missing function name or include path).
func (p *parser) expect(kind token.Kind) token.Span {
	if p.tok.Kind != kind {
		p.errorExpected(kind)
		panic(errPanicMode{})
	}
	return p.consume()
}

// expectSoft requires kind to be current. On mismatch it reports but does
// NOT consume and does NOT panic: parsing continues at the current
// position, as if the missing token had been there. Used for the
// semicolons, parentheses and braces the spec asks to recover from softly.
func (p *parser) expectSoft(kind token.Kind) token.Span {
	if p.tok.Kind != kind {
		p.errorExpected(kind)
		return token.NewSpan(p.tok.Span.Start, p.tok.Span.Start)
	}
	return p.consume()
}

func (p *parser) errorAt(span token.Span, format string, args ...any) {
	if p.log != nil {
		p.log.Add(span, format, args...)
	}
}

func (p *parser) errorExpected(kind token.Kind) {
	p.errorAt(p.tok.Span, "expected %s, found %s", kind.GoString(), p.tok.Kind.GoString())
}

// syncStmt advances past tokens until one that plausibly starts or ends a
// statement, so that parsing can resume after a hard parse error. A leading
// ';' is consumed (it closed out the broken statement); anything else that
// can start a new statement, or a block/file terminator, is left in place.
func (p *parser) syncStmt() {
	for {
		switch p.tok.Kind {
		case token.SEMI:
			p.advance()
			return
		case token.EOF, token.RBRACE,
			token.FUNC, token.IF, token.WHILE, token.LET,
			token.RETURN, token.BREAK, token.CONTINUE, token.LBRACE:
			return
		default:
			p.advance()
		}
	}
}
