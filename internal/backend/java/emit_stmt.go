package java

import (
	"fmt"

	"quill/internal/ast"
)

// emitStmt renders one statement on its own indented line. Trailing
// newlines are uneven on purpose: Declaration leaves the line ending to its
// owner so field rendering can share the same path, and If relies on the
// enclosing statement loop for spacing while For and While terminate their
// own line. Golden tests pin this down; do not regularize it.
func (e *Emitter) emitStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return e.emitExprStmt(s)
	case *ast.Declaration:
		return e.emitDeclaration(s)
	case *ast.Assignment:
		return e.emitAssignment(s)
	case *ast.If:
		return e.emitIf(s)
	case *ast.For:
		return e.emitFor(s)
	case *ast.While:
		return e.emitWhile(s)
	case *ast.Return:
		return e.emitReturn(s)
	default:
		return fmt.Errorf("java: unsupported statement node %T", stmt)
	}
}

func (e *Emitter) emitExprStmt(s *ast.ExprStmt) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.emitExpr(s.Expression); err != nil {
		return err
	}
	if err := e.write(";"); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitDeclaration(s *ast.Declaration) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.emitTypedName(s.Variable, "declaration"); err != nil {
		return err
	}
	if s.Value != nil {
		if err := e.write(" = "); err != nil {
			return err
		}
		if err := e.emitExpr(s.Value); err != nil {
			return err
		}
	}
	return e.write(";")
}

func (e *Emitter) emitAssignment(s *ast.Assignment) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.emitExpr(s.Receiver); err != nil {
		return err
	}
	if err := e.write(" = "); err != nil {
		return err
	}
	if err := e.emitExpr(s.Value); err != nil {
		return err
	}
	if err := e.write(";"); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitIf(s *ast.If) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("if ("); err != nil {
		return err
	}
	if err := e.emitExpr(s.Condition); err != nil {
		return err
	}
	if err := e.write(")"); err != nil {
		return err
	}
	if err := e.emitBraced(s.Then); err != nil {
		return err
	}
	// An empty else branch renders nothing, not "else {}".
	if len(s.Else) > 0 {
		if err := e.write(" else"); err != nil {
			return err
		}
		if err := e.emitBraced(s.Else); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitFor(s *ast.For) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("for (var " + s.Name + " : "); err != nil {
		return err
	}
	if err := e.emitExpr(s.Value); err != nil {
		return err
	}
	if err := e.write(")"); err != nil {
		return err
	}
	if err := e.emitBraced(s.Body); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitWhile(s *ast.While) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("while ("); err != nil {
		return err
	}
	if err := e.emitExpr(s.Condition); err != nil {
		return err
	}
	if err := e.write(")"); err != nil {
		return err
	}
	if err := e.emitBraced(s.Body); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitReturn(s *ast.Return) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("return "); err != nil {
		return err
	}
	if err := e.emitExpr(s.Value); err != nil {
		return err
	}
	if err := e.write(";"); err != nil {
		return err
	}
	return e.newlines(1)
}

// emitBraced writes a block body after an already-rendered header. An empty
// body collapses to " {}" with no inner newline; a non-empty body opens the
// brace on the header line and closes it on its own line at the header's
// depth.
func (e *Emitter) emitBraced(body []ast.Stmt) error {
	if len(body) == 0 {
		return e.write(" {}")
	}
	if err := e.write(" {"); err != nil {
		return err
	}
	if err := e.newlines(1); err != nil {
		return err
	}
	e.depth++
	for _, stmt := range body {
		if err := e.emitStmt(stmt); err != nil {
			return err
		}
	}
	e.depth--
	if err := e.indent(); err != nil {
		return err
	}
	return e.write("}")
}
