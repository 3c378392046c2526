// Package lexer turns Funcy source text into a stream of tokens. Design
// follows the teacher repo's scanner package: a single rune of lookahead,
// position tracked incrementally as each rune is consumed, and errors
// reported through a caller-supplied sink rather than returned eagerly.
package lexer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/token"
)

// Lexer tokenizes a single module's source.
type Lexer struct {
	module string
	src    []byte
	stdlib bool
	log    *diag.Log

	cur rune // current lookahead rune, -1 at EOF
	off int  // byte offset of cur
	roff int // byte offset just past cur
	pos token.Position
}

// New creates a Lexer for src, identified as module in diagnostics and
// spans. stdlib enables the "$(" intrinsic-call opener token, which is only
// legal while lexing the standard-library module.
func New(module string, src []byte, stdlib bool, log *diag.Log) *Lexer {
	l := &Lexer{module: module, src: src, stdlib: stdlib, log: log}
	l.pos = token.Position{Module: module, Line: 1, Column: 1, Offset: 0}
	l.readRune()
	return l
}

func (l *Lexer) readRune() {
	if l.roff >= len(l.src) {
		l.off = len(l.src)
		l.cur = -1
		return
	}
	l.off = l.roff
	r, w := rune(l.src[l.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.src[l.roff:])
	}
	l.roff += w
	l.cur = r
}

// advance consumes cur (updating pos) and loads the next rune.
func (l *Lexer) advance() {
	if l.cur >= 0 {
		l.pos = l.pos.Advance(l.cur)
	}
	l.readRune()
}

func (l *Lexer) peekByte() byte {
	if l.roff < len(l.src) {
		return l.src[l.roff]
	}
	return 0
}

// advanceIf consumes cur if it equals r, returning whether it did.
func (l *Lexer) advanceIf(r rune) bool {
	if l.cur == r {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) here() token.Position { return l.pos }

func (l *Lexer) errorAt(pos token.Position, format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Add(token.NewSpan(pos, l.here()), format, args...)
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()

	startPos := l.here()
	startOff := l.off

	switch {
	case l.cur < 0:
		return token.Token{Kind: token.EOF, Span: token.NewSpan(startPos, startPos)}

	case isLetter(l.cur):
		lit := l.scanIdent()
		kind := token.LookupIdent(lit)
		v := token.Value{}
		if kind == token.IDENTIFIER {
			v.StrVal = lit
		}
		return token.Token{Kind: kind, Span: token.NewSpan(startPos, l.here()), Value: v}

	case isDecimal(l.cur):
		return l.scanNumber(startPos, startOff)

	case l.cur == '"' || l.cur == '\'':
		return l.scanQuoted(startPos, l.cur)

	default:
		return l.scanPunct(startPos)
	}
}

func (l *Lexer) skipTrivia() {
	for {
		progressed := false
		for l.cur >= 0 && l.cur <= 32 {
			l.advance()
			progressed = true
		}
		if l.cur == '/' && l.peekByte() == '/' {
			for l.cur != '\n' && l.cur >= 0 {
				l.advance()
			}
			progressed = true
		} else if l.cur == '/' && l.peekByte() == '*' {
			l.skipBlockComment()
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	startPos := l.here()
	l.advance() // consume '/'
	l.advance() // consume '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.cur < 0:
			l.errorAt(startPos, "unterminated block comment")
			return
		case l.cur == '/' && l.peekByte() == '*':
			l.advance()
			l.advance()
			depth++
		case l.cur == '*' && l.peekByte() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
}

func (l *Lexer) scanIdent() string {
	startOff := l.off
	for isLetter(l.cur) || isDigit(l.cur) {
		l.advance()
	}
	return string(l.src[startOff:l.off])
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool  { return isDecimal(r) }
func isDecimal(r rune) bool { return '0' <= r && r <= '9' }
func isHex(r rune) bool {
	return isDecimal(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func lower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// scanPunct handles every single- and multi-character operator, "$(" and
// unknown characters.
func (l *Lexer) scanPunct(startPos token.Position) token.Token {
	startOff := l.off
	if l.cur == '$' && l.peekByte() == '(' && l.stdlib {
		l.advance()
		l.advance()
		return token.Token{Kind: token.DOLLAR_LPAREN, Span: token.NewSpan(startPos, l.here())}
	}

	// longest-match against the punctuation table: try 2-char lexemes
	// before falling back to 1-char ones.
	rest := l.src[startOff:]
	for _, n := range []int{2, 1} {
		if len(rest) < n {
			continue
		}
		cand := string(rest[:n])
		for _, p := range token.Punctuation(l.stdlib) {
			if p.Lit == cand {
				for i := 0; i < n; i++ {
					l.advance()
				}
				return token.Token{Kind: p.Kind, Span: token.NewSpan(startPos, l.here())}
			}
		}
	}

	bad := l.cur
	l.advance()
	msg := fmt.Sprintf("illegal character %q", bad)
	if suggestion := suggestOperators(string(bad), l.stdlib); suggestion != "" {
		msg += "; did you mean " + suggestion + "?"
	}
	l.errorAt(startPos, "%s", msg)
	return token.Token{
		Kind:  token.ERROR,
		Span:  token.NewSpan(startPos, l.here()),
		Value: token.Value{StrVal: msg},
	}
}

// suggestOperators lists punctuation lexemes that start with prefix, for
// "did you mean" diagnostics on an unrecognized character.
func suggestOperators(prefix string, stdlib bool) string {
	var matches []string
	for _, p := range token.Punctuation(stdlib) {
		if strings.HasPrefix(p.Lit, prefix) {
			matches = append(matches, p.Lit)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = "'" + m + "'"
	}
	return strings.Join(matches, ", ")
}
