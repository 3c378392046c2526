// Package token defines the lexical token kinds, source positions and spans
// shared by every stage of the Funcy compiler pipeline.
package token

import "fmt"

// TabSize is the number of display columns a tab character advances the
// cursor to (rounded up to the next multiple).
const TabSize = 4

// Position identifies a single byte in a named source module by its
// 0-based byte offset and 1-based line/column. A Position with a negative
// Offset is the "unlocated" sentinel used by diagnostics that cannot be
// pinned to a specific place in the source.
type Position struct {
	Module string
	Offset int
	Line   int
	Column int
}

// Unknown reports whether p is the unlocated sentinel position.
func (p Position) Unknown() bool { return p.Offset < 0 }

// Advance returns the position reached by consuming the rune r starting
// from p. It implements the tab-stop, newline and carriage-return rules
// from the specification; every other rune advances the column by one.
// Offset always advances by one regardless of the rune's encoded width,
// since the lexer operates a character (not byte) at a time and callers
// are expected to add any multi-byte width separately if needed.
func (p Position) Advance(r rune) Position {
	next := p
	next.Offset++
	switch r {
	case '\t':
		next.Column += TabSize - (p.Column-1)%TabSize
	case '\n':
		next.Line++
		next.Column = 1
	case '\r':
		next.Column = 1
	default:
		next.Column++
	}
	return next
}

func (p Position) String() string {
	if p.Unknown() {
		return "<unlocated>"
	}
	mod := p.Module
	if mod == "" {
		mod = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", mod, p.Line, p.Column)
}

// Span is an ordered pair of Positions delimiting a lexeme or AST node.
// Spans are value types: they are copied, never shared or mutated through
// a pointer.
type Span struct {
	Start Position
	End   Position
}

// NewSpan returns the span covering exactly [start, end).
func NewSpan(start, end Position) Span { return Span{Start: start, End: end} }

// Unlocated is the sentinel span (offset -1) used by diagnostics with no
// specific source location.
var Unlocated = Span{Start: Position{Offset: -1}, End: Position{Offset: -1}}

// Include widens s to the union of s and other, returning the smallest span
// that covers both.
func (s Span) Include(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	if s.Start.Unknown() {
		return "<unlocated>"
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
