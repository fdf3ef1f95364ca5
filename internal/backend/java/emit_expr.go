package java

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"quill/internal/ast"
)

// Expressions render inline with no indentation and no trailing
// punctuation; statement owners add both.
func (e *Emitter) emitExpr(expr ast.Expr) error {
	switch x := expr.(type) {
	case *ast.Literal:
		return e.emitLiteral(x)
	case *ast.Group:
		if err := e.write("("); err != nil {
			return err
		}
		if err := e.emitExpr(x.Expression); err != nil {
			return err
		}
		return e.write(")")
	case *ast.Binary:
		if err := e.emitExpr(x.Left); err != nil {
			return err
		}
		if err := e.write(" " + operatorSpelling(x.Op) + " "); err != nil {
			return err
		}
		return e.emitExpr(x.Right)
	case *ast.Access:
		return e.emitAccess(x)
	case *ast.Call:
		return e.emitCall(x)
	default:
		return fmt.Errorf("java: unsupported expression node %T", expr)
	}
}

func (e *Emitter) emitLiteral(lit *ast.Literal) error {
	switch v := lit.Value.(type) {
	case string:
		return e.write(`"` + strings.ReplaceAll(v, `"`, `\"`) + `"`)
	case rune:
		if v == '\'' {
			return e.write(`'\''`)
		}
		return e.write("'" + string(v) + "'")
	case *big.Int:
		return e.write(v.String())
	case *big.Float:
		return e.write(v.Text('f', -1))
	case bool:
		return e.write(strconv.FormatBool(v))
	case nil:
		return e.write("null")
	default:
		return fmt.Errorf("java: unsupported literal value %T", lit.Value)
	}
}

func (e *Emitter) emitAccess(x *ast.Access) error {
	if x.Variable == nil {
		return fmt.Errorf("java: access missing resolved variable")
	}
	if x.Receiver != nil {
		if err := e.emitExpr(x.Receiver); err != nil {
			return err
		}
		if err := e.write("."); err != nil {
			return err
		}
	}
	return e.write(x.Variable.RenderName)
}

func (e *Emitter) emitCall(x *ast.Call) error {
	if x.Function == nil {
		return fmt.Errorf("java: call missing resolved function")
	}
	if x.Receiver != nil {
		if err := e.emitExpr(x.Receiver); err != nil {
			return err
		}
		if err := e.write("."); err != nil {
			return err
		}
	}
	if err := e.write(x.Function.RenderName + "("); err != nil {
		return err
	}
	for i, arg := range x.Arguments {
		if i > 0 {
			if err := e.write(", "); err != nil {
				return err
			}
		}
		if err := e.emitExpr(arg); err != nil {
			return err
		}
	}
	return e.write(")")
}
