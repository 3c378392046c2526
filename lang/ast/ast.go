// Package ast defines the Funcy abstract syntax tree: a closed sum type of
// node kinds, every one of them carrying a Span. The tree is an owning
// tree (no back-pointers); children are scanned by direct type switches in
// the packages that consume the tree (resolver, visitor) rather than
// through a generic Walk/Visitor indirection, since the node set is small
// and fixed and every consumer needs different traversal behavior anyway.
package ast

import "github.com/fy-lang/funcy/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()

	// BlockEnding reports whether this statement may only appear as the last
	// statement of a block (return/return-expr, break, continue).
	BlockEnding() bool
}

// Decl is a "[mut] name" declaration, as used by let-statements and
// function parameters.
type Decl struct {
	IsMutable bool
	Name      string
	DeclSpan  token.Span
}

func (d *Decl) Span() token.Span { return d.DeclSpan }

// Incl is an `include "<path>";` directive at the top of a module.
type Incl struct {
	Path     string
	InclSpan token.Span
}

func (n *Incl) Span() token.Span { return n.InclSpan }

// Module is a single parsed source unit: its includes followed by its
// top-level function declarations.
type Module struct {
	// Name is the canonical module name assigned by the resolver.
	Name       string
	Includes   []*Incl
	Funcs      []*FuncStmt
	ModuleSpan token.Span
}

func (n *Module) Span() token.Span { return n.ModuleSpan }

// Root is the fully-resolved program: every module reachable from the main
// module's include graph, topologically sorted so each module follows
// every module it includes.
type Root struct {
	Modules  []*Module
	RootSpan token.Span
}

func (n *Root) Span() token.Span { return n.RootSpan }

// ErrorExpr is a synthetic placeholder for an expression that failed to
// parse. The parser does not construct it (a failed expression aborts the
// whole statement, which becomes an ErrorStmt); the visitor lowers it to a
// zero.
type ErrorExpr struct {
	Message   string
	ErrorSpan token.Span
}

func (n *ErrorExpr) Span() token.Span { return n.ErrorSpan }
func (n *ErrorExpr) exprNode()        {}

// ErrorStmt is the statement-level counterpart of ErrorExpr, produced by
// panic/recover synchronization in the parser.
type ErrorStmt struct {
	Message   string
	ErrorSpan token.Span
}

func (n *ErrorStmt) Span() token.Span   { return n.ErrorSpan }
func (n *ErrorStmt) stmtNode()          {}
func (n *ErrorStmt) BlockEnding() bool  { return false }
