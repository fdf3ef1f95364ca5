package java

import (
	"bytes"
	"math/big"
	"testing"

	"quill/internal/ast"
	"quill/internal/javacheck"
	"quill/internal/symbols"
)

// Every generated program must parse as Java. This is the strongest
// end-to-end signal available without actually compiling the output.
func TestEmitProgram_RoundTripParses(t *testing.T) {
	stringType := &symbols.Type{RenderName: "String"}
	listVar := &symbols.Variable{RenderName: "items", Type: &symbols.Type{RenderName: "Iterable"}}
	printFn := &symbols.Function{
		RenderName:     "print",
		ReturnType:     integerType,
		ParameterTypes: []*symbols.Type{stringType},
	}

	tests := []struct {
		name string
		prog *ast.Program
	}{
		{
			name: "empty program",
			prog: &ast.Program{},
		},
		{
			name: "fields only",
			prog: &ast.Program{
				Fields: []ast.Field{
					{Variable: intVar("x"), Value: intLit(5)},
					{Variable: &symbols.Variable{RenderName: "s", Type: stringType},
						Value: &ast.Literal{Value: `say "hi"`}},
					{Variable: intVar("bare")},
				},
			},
		},
		{
			name: "unicode render names",
			prog: &ast.Program{
				Fields: []ast.Field{
					{Variable: intVar("café"), Value: intLit(1)},
				},
				Methods: []ast.Method{
					{
						Function:   intFn("größe", integerType),
						Parameters: []string{"tiefe"},
						Body: []ast.Stmt{
							&ast.Return{Value: &ast.Binary{
								Op:    "+",
								Left:  &ast.Access{Variable: intVar("café")},
								Right: &ast.Access{Variable: intVar("tiefe")},
							}},
						},
					},
				},
			},
		},
		{
			name: "every statement and expression form",
			prog: &ast.Program{
				Fields: []ast.Field{
					{Variable: intVar("x"), Value: intLit(0)},
				},
				Methods: []ast.Method{
					{
						Function:   intFn("compute", integerType),
						Parameters: []string{"limit"},
						Body: []ast.Stmt{
							&ast.Declaration{Variable: intVar("sum"), Value: intLit(0)},
							&ast.For{
								Name:  "item",
								Value: &ast.Access{Variable: listVar},
								Body: []ast.Stmt{
									&ast.Assignment{
										Receiver: &ast.Access{Variable: intVar("sum")},
										Value: &ast.Binary{
											Op:    "ADD",
											Left:  &ast.Access{Variable: intVar("sum")},
											Right: &ast.Access{Variable: intVar("item")},
										},
									},
								},
							},
							&ast.While{
								Condition: &ast.Binary{
									Op:    ">",
									Left:  &ast.Access{Variable: intVar("sum")},
									Right: &ast.Access{Variable: intVar("limit")},
								},
								Body: []ast.Stmt{
									&ast.Assignment{
										Receiver: &ast.Access{Variable: intVar("sum")},
										Value: &ast.Group{Expression: &ast.Binary{
											Op:    "DIVIDE",
											Left:  &ast.Access{Variable: intVar("sum")},
											Right: intLit(2),
										}},
									},
								},
							},
							&ast.If{
								Condition: &ast.Binary{
									Op:    "AND",
									Left:  &ast.Literal{Value: true},
									Right: &ast.Binary{
										Op:    "!=",
										Left:  &ast.Access{Variable: intVar("sum")},
										Right: &ast.Literal{Value: nil},
									},
								},
								Then: []ast.Stmt{
									&ast.ExprStmt{Expression: &ast.Call{
										Function:  printFn,
										Arguments: []ast.Expr{&ast.Literal{Value: "done"}},
									}},
								},
							},
							&ast.If{Condition: &ast.Literal{Value: false}},
							&ast.Return{Value: &ast.Access{Variable: intVar("sum")}},
						},
					},
					{
						Function: intFn("chars"),
						Body: []ast.Stmt{
							&ast.Declaration{
								Variable: &symbols.Variable{RenderName: "q", Type: &symbols.Type{RenderName: "Character"}},
								Value:    &ast.Literal{Value: '\''},
							},
							&ast.Return{Value: &ast.Literal{Value: big.NewFloat(2.25)}},
						},
					},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, Options{Newline: "\n"}).EmitProgram(tt.prog); err != nil {
				t.Fatalf("EmitProgram: %v", err)
			}
			if err := javacheck.Check(buf.Bytes()); err != nil {
				t.Errorf("generated program does not parse: %v\noutput:\n%s", err, buf.String())
			}
		})
	}
}
