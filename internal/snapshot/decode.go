package snapshot

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"quill/internal/ast"
	"quill/internal/symbols"
)

func decodeType(t *typeDTO) *symbols.Type {
	return &symbols.Type{RenderName: renderName(t.Name)}
}

func decodeVariable(v *variableDTO) *symbols.Variable {
	return &symbols.Variable{RenderName: renderName(v.Name), Type: decodeType(&v.Type)}
}

func decodeFunction(fn *functionDTO) *symbols.Function {
	out := &symbols.Function{
		RenderName: renderName(fn.Name),
		ReturnType: decodeType(&fn.ReturnType),
	}
	for i := range fn.ParamTypes {
		out.ParameterTypes = append(out.ParameterTypes, decodeType(&fn.ParamTypes[i]))
	}
	return out
}

func decodeField(f *fieldDTO) (ast.Field, error) {
	field := ast.Field{Variable: decodeVariable(&f.Variable)}
	if f.Value != nil {
		value, err := decodeExpr(f.Value)
		if err != nil {
			return ast.Field{}, err
		}
		field.Value = value
	}
	return field, nil
}

func decodeMethod(m *methodDTO) (ast.Method, error) {
	method := ast.Method{Function: decodeFunction(&m.Function)}
	for _, p := range m.Params {
		method.Parameters = append(method.Parameters, renderName(p))
	}
	body, err := decodeStmts(m.Body)
	if err != nil {
		return ast.Method{}, err
	}
	method.Body = body
	return method, nil
}

func decodeStmts(dtos []stmtDTO) ([]ast.Stmt, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	out := make([]ast.Stmt, 0, len(dtos))
	for i := range dtos {
		s, err := decodeStmt(&dtos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeStmt(dto *stmtDTO) (ast.Stmt, error) {
	switch dto.Kind {
	case stmtExpr:
		value, err := decodeRequired(dto.Value, "expression statement")
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expression: value}, nil
	case stmtDecl:
		if dto.Variable == nil {
			return nil, fmt.Errorf("snapshot: declaration missing variable")
		}
		stmt := &ast.Declaration{Variable: decodeVariable(dto.Variable)}
		if dto.Value != nil {
			value, err := decodeExpr(dto.Value)
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		return stmt, nil
	case stmtAssign:
		target, err := decodeRequired(dto.Target, "assignment receiver")
		if err != nil {
			return nil, err
		}
		value, err := decodeRequired(dto.Value, "assignment value")
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Receiver: target, Value: value}, nil
	case stmtIf:
		cond, err := decodeRequired(dto.Value, "if condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStmts(dto.Body)
		if err != nil {
			return nil, err
		}
		otherwise, err := decodeStmts(dto.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Condition: cond, Then: then, Else: otherwise}, nil
	case stmtFor:
		iter, err := decodeRequired(dto.Value, "for iterable")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(dto.Body)
		if err != nil {
			return nil, err
		}
		return &ast.For{Name: renderName(dto.Name), Value: iter, Body: body}, nil
	case stmtWhile:
		cond, err := decodeRequired(dto.Value, "while condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(dto.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Condition: cond, Body: body}, nil
	case stmtReturn:
		value, err := decodeRequired(dto.Value, "return value")
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: value}, nil
	default:
		return nil, fmt.Errorf("snapshot: unknown statement kind %d", dto.Kind)
	}
}

func decodeRequired(dto *exprDTO, where string) (ast.Expr, error) {
	if dto == nil {
		return nil, fmt.Errorf("snapshot: %s missing", where)
	}
	return decodeExpr(dto)
}

func decodeExpr(dto *exprDTO) (ast.Expr, error) {
	switch dto.Kind {
	case exprLiteral:
		return decodeLiteral(dto)
	case exprGroup:
		inner, err := decodeRequired(dto.Inner, "group expression")
		if err != nil {
			return nil, err
		}
		return &ast.Group{Expression: inner}, nil
	case exprBinary:
		left, err := decodeRequired(dto.Left, "binary left operand")
		if err != nil {
			return nil, err
		}
		right, err := decodeRequired(dto.Right, "binary right operand")
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: dto.Op, Left: left, Right: right}, nil
	case exprAccess:
		if dto.Variable == nil {
			return nil, fmt.Errorf("snapshot: access missing variable")
		}
		out := &ast.Access{Variable: decodeVariable(dto.Variable)}
		if dto.Receiver != nil {
			recv, err := decodeExpr(dto.Receiver)
			if err != nil {
				return nil, err
			}
			out.Receiver = recv
		}
		return out, nil
	case exprCall:
		if dto.Function == nil {
			return nil, fmt.Errorf("snapshot: call missing function")
		}
		out := &ast.Call{Function: decodeFunction(dto.Function)}
		if dto.Receiver != nil {
			recv, err := decodeExpr(dto.Receiver)
			if err != nil {
				return nil, err
			}
			out.Receiver = recv
		}
		for i := range dto.Args {
			arg, err := decodeExpr(&dto.Args[i])
			if err != nil {
				return nil, err
			}
			out.Arguments = append(out.Arguments, arg)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("snapshot: unknown expression kind %d", dto.Kind)
	}
}

func decodeLiteral(dto *exprDTO) (ast.Expr, error) {
	switch dto.LitKind {
	case litString:
		return &ast.Literal{Value: dto.LitText}, nil
	case litChar:
		ch, err := safecast.Conv[rune](dto.LitChar)
		if err != nil {
			return nil, fmt.Errorf("snapshot: character literal out of range: %w", err)
		}
		return &ast.Literal{Value: ch}, nil
	case litInteger:
		n, ok := new(big.Int).SetString(dto.LitText, 10)
		if !ok {
			return nil, fmt.Errorf("snapshot: malformed integer literal %q", dto.LitText)
		}
		return &ast.Literal{Value: n}, nil
	case litDecimal:
		f, _, err := big.ParseFloat(dto.LitText, 10, 53, big.ToNearestEven)
		if err != nil {
			return nil, fmt.Errorf("snapshot: malformed decimal literal %q: %w", dto.LitText, err)
		}
		return &ast.Literal{Value: f}, nil
	case litBool:
		return &ast.Literal{Value: dto.LitBool}, nil
	case litNull:
		return &ast.Literal{Value: nil}, nil
	default:
		return nil, fmt.Errorf("snapshot: unknown literal kind %d", dto.LitKind)
	}
}
