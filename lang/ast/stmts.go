package ast

import "github.com/fy-lang/funcy/lang/token"

// ScopedJumpKind distinguishes break from continue.
type ScopedJumpKind int

const (
	BREAK_JUMP ScopedJumpKind = iota
	CONTINUE_JUMP
)

type (
	// FuncStmt is a top-level function declaration.
	FuncStmt struct {
		Name     string
		Params   []*Decl
		Body     *BlockStmt
		StmtSpan token.Span
	}

	// BlockStmt is a brace-delimited list of statements, and also the
	// implicit top-level block of a function body.
	BlockStmt struct {
		Stmts    []Stmt
		StmtSpan token.Span
	}

	// IfStmt is `if (cond) then` with no else branch.
	IfStmt struct {
		Cond     Expr
		Then     Stmt
		StmtSpan token.Span
	}

	// IfElseStmt is `if (cond) then else else_`.
	IfElseStmt struct {
		Cond       Expr
		Then, Else Stmt
		StmtSpan   token.Span
	}

	// WhileStmt is `while (cond) body`.
	WhileStmt struct {
		Cond     Expr
		Body     Stmt
		StmtSpan token.Span
	}

	// NopStmt is the bare `;` statement.
	NopStmt struct {
		StmtSpan token.Span
	}

	// LetStmt is `let decl;` with no initializer.
	LetStmt struct {
		Decl     *Decl
		StmtSpan token.Span
	}

	// LetExprStmt is `let decl = value;`.
	LetExprStmt struct {
		Decl     *Decl
		Value    Expr
		StmtSpan token.Span
	}

	// ReturnStmt is the bare `return;`.
	ReturnStmt struct {
		StmtSpan token.Span
	}

	// ReturnExprStmt is `return value;`.
	ReturnExprStmt struct {
		Value    Expr
		StmtSpan token.Span
	}

	// ScopedJumpStmt is `break;` or `continue;`.
	ScopedJumpStmt struct {
		Kind     ScopedJumpKind
		StmtSpan token.Span
	}

	// ExprStmt is an expression used as a statement.
	ExprStmt struct {
		Value    Expr
		StmtSpan token.Span
	}
)

func (n *FuncStmt) Span() token.Span       { return n.StmtSpan }
func (n *BlockStmt) Span() token.Span      { return n.StmtSpan }
func (n *IfStmt) Span() token.Span         { return n.StmtSpan }
func (n *IfElseStmt) Span() token.Span     { return n.StmtSpan }
func (n *WhileStmt) Span() token.Span      { return n.StmtSpan }
func (n *NopStmt) Span() token.Span        { return n.StmtSpan }
func (n *LetStmt) Span() token.Span        { return n.StmtSpan }
func (n *LetExprStmt) Span() token.Span    { return n.StmtSpan }
func (n *ReturnStmt) Span() token.Span     { return n.StmtSpan }
func (n *ReturnExprStmt) Span() token.Span { return n.StmtSpan }
func (n *ScopedJumpStmt) Span() token.Span { return n.StmtSpan }
func (n *ExprStmt) Span() token.Span       { return n.StmtSpan }

func (n *FuncStmt) stmtNode()       {}
func (n *BlockStmt) stmtNode()      {}
func (n *IfStmt) stmtNode()         {}
func (n *IfElseStmt) stmtNode()     {}
func (n *WhileStmt) stmtNode()      {}
func (n *NopStmt) stmtNode()        {}
func (n *LetStmt) stmtNode()        {}
func (n *LetExprStmt) stmtNode()    {}
func (n *ReturnStmt) stmtNode()     {}
func (n *ReturnExprStmt) stmtNode() {}
func (n *ScopedJumpStmt) stmtNode() {}
func (n *ExprStmt) stmtNode()       {}

// BlockEnding is true only for the statements that may only appear last in
// a block: return, return-expr, break and continue.
func (n *FuncStmt) BlockEnding() bool       { return false }
func (n *BlockStmt) BlockEnding() bool      { return false }
func (n *IfStmt) BlockEnding() bool         { return false }
func (n *IfElseStmt) BlockEnding() bool     { return false }
func (n *WhileStmt) BlockEnding() bool      { return false }
func (n *NopStmt) BlockEnding() bool        { return false }
func (n *LetStmt) BlockEnding() bool        { return false }
func (n *LetExprStmt) BlockEnding() bool    { return false }
func (n *ReturnStmt) BlockEnding() bool     { return true }
func (n *ReturnExprStmt) BlockEnding() bool { return true }
func (n *ScopedJumpStmt) BlockEnding() bool { return true }
func (n *ExprStmt) BlockEnding() bool       { return false }
