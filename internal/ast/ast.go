// Package ast defines the resolved abstract syntax tree handed to the code
// generator. The tree is immutable by convention: the analyzer builds it
// once, the backend walks it once and never writes to it.
//
// The node sets are closed. Statements and expressions are interfaces with
// unexported marker methods, so the full variant list lives in this package
// and a type switch over it can treat any other implementation as a
// contract violation.
package ast

import "quill/internal/symbols"

// Program is the root node: fields, then methods. The target-language entry
// point is synthesized by the backend and has no node here.
type Program struct {
	Fields  []Field
	Methods []Method
}

// Field is a top-level variable declaration. Value is nil when the field
// has no initializer.
type Field struct {
	Variable *symbols.Variable
	Value    Expr
}

// Method is a top-level function. Parameters carries the source-order
// parameter names; their types live on Function.ParameterTypes at the same
// indices.
type Method struct {
	Function   *symbols.Function
	Parameters []string
	Body       []Stmt
}
