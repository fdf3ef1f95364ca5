package snapshot

import (
	"errors"
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"quill/internal/ast"
	"quill/internal/symbols"
)

func encodeType(t *symbols.Type, where string) (typeDTO, error) {
	if t == nil {
		return typeDTO{}, fmt.Errorf("snapshot: %s missing resolved type", where)
	}
	return typeDTO{Name: t.RenderName}, nil
}

func encodeVariable(v *symbols.Variable, where string) (variableDTO, error) {
	if v == nil {
		return variableDTO{}, fmt.Errorf("snapshot: %s missing resolved variable", where)
	}
	t, err := encodeType(v.Type, where)
	if err != nil {
		return variableDTO{}, err
	}
	return variableDTO{Name: v.RenderName, Type: t}, nil
}

func encodeFunction(fn *symbols.Function, where string) (functionDTO, error) {
	if fn == nil {
		return functionDTO{}, fmt.Errorf("snapshot: %s missing resolved function", where)
	}
	ret, err := encodeType(fn.ReturnType, where)
	if err != nil {
		return functionDTO{}, err
	}
	dto := functionDTO{Name: fn.RenderName, ReturnType: ret}
	for i, pt := range fn.ParameterTypes {
		t, err := encodeType(pt, fmt.Sprintf("%s parameter %d", where, i))
		if err != nil {
			return functionDTO{}, err
		}
		dto.ParamTypes = append(dto.ParamTypes, t)
	}
	return dto, nil
}

func encodeField(f *ast.Field) (fieldDTO, error) {
	v, err := encodeVariable(f.Variable, "field")
	if err != nil {
		return fieldDTO{}, err
	}
	dto := fieldDTO{Variable: v}
	if f.Value != nil {
		value, err := encodeExpr(f.Value)
		if err != nil {
			return fieldDTO{}, err
		}
		dto.Value = value
	}
	return dto, nil
}

func encodeMethod(m *ast.Method) (methodDTO, error) {
	fn, err := encodeFunction(m.Function, "method")
	if err != nil {
		return methodDTO{}, err
	}
	dto := methodDTO{Function: fn, Params: m.Parameters}
	for _, stmt := range m.Body {
		s, err := encodeStmt(stmt)
		if err != nil {
			return methodDTO{}, err
		}
		dto.Body = append(dto.Body, s)
	}
	return dto, nil
}

func encodeStmts(stmts []ast.Stmt) ([]stmtDTO, error) {
	out := make([]stmtDTO, 0, len(stmts))
	for _, stmt := range stmts {
		s, err := encodeStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeStmt(stmt ast.Stmt) (stmtDTO, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		value, err := encodeExpr(s.Expression)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtExpr, Value: value}, nil
	case *ast.Declaration:
		v, err := encodeVariable(s.Variable, "declaration")
		if err != nil {
			return stmtDTO{}, err
		}
		dto := stmtDTO{Kind: stmtDecl, Variable: &v}
		if s.Value != nil {
			value, err := encodeExpr(s.Value)
			if err != nil {
				return stmtDTO{}, err
			}
			dto.Value = value
		}
		return dto, nil
	case *ast.Assignment:
		target, err := encodeExpr(s.Receiver)
		if err != nil {
			return stmtDTO{}, err
		}
		value, err := encodeExpr(s.Value)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtAssign, Target: target, Value: value}, nil
	case *ast.If:
		cond, err := encodeExpr(s.Condition)
		if err != nil {
			return stmtDTO{}, err
		}
		then, err := encodeStmts(s.Then)
		if err != nil {
			return stmtDTO{}, err
		}
		otherwise, err := encodeStmts(s.Else)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtIf, Value: cond, Body: then, Else: otherwise}, nil
	case *ast.For:
		iter, err := encodeExpr(s.Value)
		if err != nil {
			return stmtDTO{}, err
		}
		body, err := encodeStmts(s.Body)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtFor, Name: s.Name, Value: iter, Body: body}, nil
	case *ast.While:
		cond, err := encodeExpr(s.Condition)
		if err != nil {
			return stmtDTO{}, err
		}
		body, err := encodeStmts(s.Body)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtWhile, Value: cond, Body: body}, nil
	case *ast.Return:
		value, err := encodeExpr(s.Value)
		if err != nil {
			return stmtDTO{}, err
		}
		return stmtDTO{Kind: stmtReturn, Value: value}, nil
	default:
		return stmtDTO{}, fmt.Errorf("snapshot: unsupported statement node %T", stmt)
	}
}

func encodeExpr(expr ast.Expr) (*exprDTO, error) {
	switch x := expr.(type) {
	case *ast.Literal:
		return encodeLiteral(x)
	case *ast.Group:
		inner, err := encodeExpr(x.Expression)
		if err != nil {
			return nil, err
		}
		return &exprDTO{Kind: exprGroup, Inner: inner}, nil
	case *ast.Binary:
		left, err := encodeExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return &exprDTO{Kind: exprBinary, Op: x.Op, Left: left, Right: right}, nil
	case *ast.Access:
		v, err := encodeVariable(x.Variable, "access")
		if err != nil {
			return nil, err
		}
		dto := &exprDTO{Kind: exprAccess, Variable: &v}
		if x.Receiver != nil {
			if dto.Receiver, err = encodeExpr(x.Receiver); err != nil {
				return nil, err
			}
		}
		return dto, nil
	case *ast.Call:
		fn, err := encodeFunction(x.Function, "call")
		if err != nil {
			return nil, err
		}
		dto := &exprDTO{Kind: exprCall, Function: &fn}
		if x.Receiver != nil {
			if dto.Receiver, err = encodeExpr(x.Receiver); err != nil {
				return nil, err
			}
		}
		for _, arg := range x.Arguments {
			a, err := encodeExpr(arg)
			if err != nil {
				return nil, err
			}
			dto.Args = append(dto.Args, *a)
		}
		return dto, nil
	default:
		return nil, fmt.Errorf("snapshot: unsupported expression node %T", expr)
	}
}

func encodeLiteral(lit *ast.Literal) (*exprDTO, error) {
	dto := &exprDTO{Kind: exprLiteral}
	switch v := lit.Value.(type) {
	case string:
		dto.LitKind = litString
		dto.LitText = v
	case rune:
		ch, err := safecast.Conv[uint32](v)
		if err != nil {
			return nil, fmt.Errorf("snapshot: character literal out of range: %w", err)
		}
		dto.LitKind = litChar
		dto.LitChar = ch
	case *big.Int:
		if v == nil {
			return nil, errors.New("snapshot: nil integer literal")
		}
		dto.LitKind = litInteger
		dto.LitText = v.String()
	case *big.Float:
		if v == nil {
			return nil, errors.New("snapshot: nil decimal literal")
		}
		dto.LitKind = litDecimal
		dto.LitText = v.Text('f', -1)
	case bool:
		dto.LitKind = litBool
		dto.LitBool = v
	case nil:
		dto.LitKind = litNull
	default:
		return nil, fmt.Errorf("snapshot: unsupported literal value %T", lit.Value)
	}
	return dto, nil
}
