package ast

import "quill/internal/symbols"

// Expr is the closed expression variant set.
type Expr interface {
	expr()
}

// Literal wraps a constant value. Value is one of: string, rune, *big.Int,
// *big.Float, bool, or nil for the null literal. Anything else is a
// contract violation surfaced by the backend.
type Literal struct {
	Value any
}

// Group is an explicitly parenthesized sub-expression. The parentheses come
// from the source parse and are always rendered, never re-derived from
// precedence.
type Group struct {
	Expression Expr
}

// Binary applies Op to Left and Right. Op is the analyzer's operator tag
// (e.g. "AND", "<=", "ADD"), translated to a target spelling at emission.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Access reads a variable, optionally through a receiver. A nil Receiver
// renders unqualified.
type Access struct {
	Receiver Expr
	Variable *symbols.Variable
}

// Call invokes a function, optionally through a receiver.
type Call struct {
	Receiver  Expr
	Function  *symbols.Function
	Arguments []Expr
}

func (*Literal) expr() {}
func (*Group) expr()   {}
func (*Binary) expr()  {}
func (*Access) expr()  {}
func (*Call) expr()    {}
