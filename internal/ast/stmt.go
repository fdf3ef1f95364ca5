package ast

import "quill/internal/symbols"

// Stmt is the closed statement variant set.
type Stmt interface {
	stmt()
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Expression Expr
}

// Declaration introduces a local variable. Value is nil when the
// declaration has no initializer.
type Declaration struct {
	Variable *symbols.Variable
	Value    Expr
}

// Assignment stores Value into the place named by Receiver.
type Assignment struct {
	Receiver Expr
	Value    Expr
}

// If branches on Condition. Either branch list may be empty.
type If struct {
	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

// For iterates Name over Value.
type For struct {
	Name  string
	Value Expr
	Body  []Stmt
}

// While loops on Condition.
type While struct {
	Condition Expr
	Body      []Stmt
}

// Return yields Value from the enclosing method. The grammar always
// supplies a value expression; there is no bare return.
type Return struct {
	Value Expr
}

func (*ExprStmt) stmt()    {}
func (*Declaration) stmt() {}
func (*Assignment) stmt()  {}
func (*If) stmt()          {}
func (*For) stmt()         {}
func (*While) stmt()       {}
func (*Return) stmt()      {}
