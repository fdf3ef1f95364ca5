package java

import (
	"bytes"
	"math/big"
	"testing"

	"quill/internal/ast"
	"quill/internal/symbols"
)

func emitExprString(t *testing.T, expr ast.Expr) string {
	t.Helper()
	var buf bytes.Buffer
	e := New(&buf, Options{Newline: "\n"})
	if err := e.emitExpr(expr); err != nil {
		t.Fatalf("emitExpr: %v", err)
	}
	return buf.String()
}

func TestEmitLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", `"hello"`},
		{"string with quotes", `say "hi"`, `"say \"hi\""`},
		{"character", 'a', "'a'"},
		{"single quote character", '\'', `'\''`},
		{"integer", big.NewInt(12345), "12345"},
		{"negative integer", big.NewInt(-7), "-7"},
		{"decimal", big.NewFloat(1.5), "1.5"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"null", nil, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emitExprString(t, &ast.Literal{Value: tt.value})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitGroup_AlwaysParenthesizes(t *testing.T) {
	// Grouping comes from the parse, so even a redundant group keeps its
	// parentheses.
	expr := &ast.Group{Expression: &ast.Group{Expression: intLit(1)}}
	if got := emitExprString(t, expr); got != "((1))" {
		t.Errorf("got %q, want %q", got, "((1))")
	}
}

func TestEmitBinary(t *testing.T) {
	expr := &ast.Binary{
		Op:   "AND",
		Left: &ast.Literal{Value: true},
		Right: &ast.Binary{
			Op:    "<",
			Left:  &ast.Access{Variable: intVar("x")},
			Right: intLit(10),
		},
	}
	if got := emitExprString(t, expr); got != "true && x < 10" {
		t.Errorf("got %q", got)
	}
}

func TestEmitAccess(t *testing.T) {
	obj := &symbols.Variable{RenderName: "obj", Type: &symbols.Type{RenderName: "Object"}}
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"unqualified", &ast.Access{Variable: intVar("x")}, "x"},
		{
			"qualified",
			&ast.Access{
				Receiver: &ast.Access{Variable: obj},
				Variable: intVar("field"),
			},
			"obj.field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExprString(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitCall(t *testing.T) {
	obj := &symbols.Variable{RenderName: "obj", Type: &symbols.Type{RenderName: "Object"}}
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"no arguments", &ast.Call{Function: intFn("f")}, "f()"},
		{
			"arguments comma separated",
			&ast.Call{
				Function:  intFn("f", integerType, integerType, integerType),
				Arguments: []ast.Expr{intLit(1), intLit(2), intLit(3)},
			},
			"f(1, 2, 3)",
		},
		{
			"with receiver",
			&ast.Call{
				Receiver:  &ast.Access{Variable: obj},
				Function:  intFn("size"),
				Arguments: nil,
			},
			"obj.size()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emitExprString(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitExpr_UnknownVariant(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, Options{Newline: "\n"})
	if err := e.emitExpr(nil); err == nil {
		t.Fatal("expected error for unknown expression variant")
	}
}
