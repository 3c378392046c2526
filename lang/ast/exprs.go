package ast

import "github.com/fy-lang/funcy/lang/token"

type (
	// IntExpr is an integer literal.
	IntExpr struct {
		Value    int64
		ExprSpan token.Span
	}

	// ChrExpr is a char literal. Value holds the decoded content exactly as
	// the lexer produced it; whether it is exactly one character is checked
	// by the visitor, not the parser.
	ChrExpr struct {
		Value    string
		ExprSpan token.Span
	}

	// StrExpr is a string literal.
	StrExpr struct {
		Value    string
		ExprSpan token.Span
	}

	// IdentExpr is a bare identifier reference.
	IdentExpr struct {
		Name     string
		ExprSpan token.Span
	}

	// CallExpr is a function call, e.g. f(a, b).
	CallExpr struct {
		Callee   Expr
		Args     []Expr
		ExprSpan token.Span
	}

	// AndExpr is the short-circuit && operator.
	AndExpr struct {
		Left, Right Expr
		ExprSpan    token.Span
	}

	// OrExpr is the short-circuit || operator.
	OrExpr struct {
		Left, Right Expr
		ExprSpan    token.Span
	}

	// AssignExpr is an assignment (simple or compound). It evaluates to the
	// stored value.
	AssignExpr struct {
		Target   Expr
		Op       AssignOp
		Value    Expr
		ExprSpan token.Span
	}

	// UnaryExpr applies a prefix unary operator.
	UnaryExpr struct {
		Op       UnOp
		Operand  Expr
		ExprSpan token.Span
	}

	// BinaryExpr applies an eager binary operator.
	BinaryExpr struct {
		Op          BinOp
		Left, Right Expr
		ExprSpan    token.Span
	}

	// IntrinsicExpr is a `$(name, args...)` call, legal only in the
	// standard-library module.
	IntrinsicExpr struct {
		Name     string
		Args     []Expr
		ExprSpan token.Span
	}
)

func (n *IntExpr) Span() token.Span       { return n.ExprSpan }
func (n *ChrExpr) Span() token.Span       { return n.ExprSpan }
func (n *StrExpr) Span() token.Span       { return n.ExprSpan }
func (n *IdentExpr) Span() token.Span     { return n.ExprSpan }
func (n *CallExpr) Span() token.Span      { return n.ExprSpan }
func (n *AndExpr) Span() token.Span       { return n.ExprSpan }
func (n *OrExpr) Span() token.Span        { return n.ExprSpan }
func (n *AssignExpr) Span() token.Span    { return n.ExprSpan }
func (n *UnaryExpr) Span() token.Span     { return n.ExprSpan }
func (n *BinaryExpr) Span() token.Span    { return n.ExprSpan }
func (n *IntrinsicExpr) Span() token.Span { return n.ExprSpan }

func (n *IntExpr) exprNode()       {}
func (n *ChrExpr) exprNode()       {}
func (n *StrExpr) exprNode()       {}
func (n *IdentExpr) exprNode()     {}
func (n *CallExpr) exprNode()      {}
func (n *AndExpr) exprNode()       {}
func (n *OrExpr) exprNode()        {}
func (n *AssignExpr) exprNode()    {}
func (n *UnaryExpr) exprNode()     {}
func (n *BinaryExpr) exprNode()    {}
func (n *IntrinsicExpr) exprNode() {}

// IsAssignable reports whether e is syntactically valid as an assignment
// target. Whether it additionally resolves to a mutable local is a
// semantic check performed by the visitor.
func IsAssignable(e Expr) bool {
	_, ok := e.(*IdentExpr)
	return ok
}
