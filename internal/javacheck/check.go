// Package javacheck verifies that generated Java text is syntactically
// well formed. It understands exactly the subset of Java the backend
// emits: one public class, fields, the static entry point, methods, and
// the statement and expression forms of the source language.
//
// It is a structural checker for tests and the CLI's --check flag, not a
// general Java frontend.
package javacheck

import "fmt"

// SyntaxError reports the first structural problem found in the input.
type SyntaxError struct {
	Line uint32
	Col  uint32
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type checker struct {
	lx  *lexer
	tok token
}

// Check parses src and returns nil when it is syntactically valid, or the
// first *SyntaxError otherwise.
func Check(src []byte) error {
	lx, err := newLexer(src)
	if err != nil {
		return err
	}
	c := &checker{lx: lx}
	if err := c.advance(); err != nil {
		return err
	}
	return c.parseFile()
}

func (c *checker) advance() error {
	tok, err := c.lx.next()
	if err != nil {
		return err
	}
	c.tok = tok
	return nil
}

func (c *checker) errorf(format string, args ...any) error {
	return &SyntaxError{Line: c.tok.line, Col: c.tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (c *checker) at(kind tokenKind, text string) bool {
	return c.tok.kind == kind && c.tok.text == text
}

func (c *checker) expect(kind tokenKind, text string) error {
	if !c.at(kind, text) {
		return c.errorf("expected %q, found %q", text, c.tok.text)
	}
	return c.advance()
}

func (c *checker) expectIdent() (string, error) {
	if c.tok.kind != tokIdent {
		return "", c.errorf("expected identifier, found %q", c.tok.text)
	}
	name := c.tok.text
	return name, c.advance()
}

func (c *checker) parseFile() error {
	if err := c.expect(tokIdent, "public"); err != nil {
		return err
	}
	if err := c.expect(tokIdent, "class"); err != nil {
		return err
	}
	if _, err := c.expectIdent(); err != nil {
		return err
	}
	if err := c.expect(tokPunct, "{"); err != nil {
		return err
	}
	for !c.at(tokPunct, "}") {
		if c.tok.kind == tokEOF {
			return c.errorf("unexpected end of file in class body")
		}
		if err := c.parseMember(); err != nil {
			return err
		}
	}
	if err := c.advance(); err != nil {
		return err
	}
	if c.tok.kind != tokEOF {
		return c.errorf("trailing input after class body")
	}
	return nil
}

// parseMember handles the three top-level forms: the synthesized static
// entry point, a field, and a method.
func (c *checker) parseMember() error {
	if c.at(tokIdent, "public") {
		return c.parseEntryPoint()
	}
	if _, err := c.expectIdent(); err != nil { // type
		return err
	}
	if _, err := c.expectIdent(); err != nil { // name
		return err
	}
	if c.at(tokPunct, "(") {
		return c.parseMethodTail()
	}
	// Field with optional initializer.
	if c.at(tokPunct, "=") {
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.parseExpr(); err != nil {
			return err
		}
	}
	return c.expect(tokPunct, ";")
}

func (c *checker) parseEntryPoint() error {
	for _, word := range []string{"public", "static", "void", "main"} {
		if err := c.expect(tokIdent, word); err != nil {
			return err
		}
	}
	if err := c.expect(tokPunct, "("); err != nil {
		return err
	}
	if err := c.expect(tokIdent, "String"); err != nil {
		return err
	}
	if err := c.expect(tokPunct, "["); err != nil {
		return err
	}
	if err := c.expect(tokPunct, "]"); err != nil {
		return err
	}
	if _, err := c.expectIdent(); err != nil {
		return err
	}
	if err := c.expect(tokPunct, ")"); err != nil {
		return err
	}
	return c.parseBlock()
}

func (c *checker) parseMethodTail() error {
	if err := c.advance(); err != nil { // consume "("
		return err
	}
	for !c.at(tokPunct, ")") {
		if _, err := c.expectIdent(); err != nil { // parameter type
			return err
		}
		if _, err := c.expectIdent(); err != nil { // parameter name
			return err
		}
		if c.at(tokPunct, ",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if err := c.expect(tokPunct, ")"); err != nil {
		return err
	}
	return c.parseBlock()
}

func (c *checker) parseBlock() error {
	if err := c.expect(tokPunct, "{"); err != nil {
		return err
	}
	for !c.at(tokPunct, "}") {
		if c.tok.kind == tokEOF {
			return c.errorf("unexpected end of file in block")
		}
		if err := c.parseStmt(); err != nil {
			return err
		}
	}
	return c.advance()
}

func (c *checker) parseStmt() error {
	switch {
	case c.at(tokIdent, "if"):
		if err := c.parseHeaderedBlock("if"); err != nil {
			return err
		}
		if c.at(tokIdent, "else") {
			if err := c.advance(); err != nil {
				return err
			}
			return c.parseBlock()
		}
		return nil
	case c.at(tokIdent, "while"):
		return c.parseHeaderedBlock("while")
	case c.at(tokIdent, "for"):
		return c.parseForStmt()
	case c.at(tokIdent, "return"):
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.parseExpr(); err != nil {
			return err
		}
		return c.expect(tokPunct, ";")
	default:
		return c.parseSimpleStmt()
	}
}

// parseHeaderedBlock parses `<kw> (<expr>) { ... }`.
func (c *checker) parseHeaderedBlock(kw string) error {
	if err := c.expect(tokIdent, kw); err != nil {
		return err
	}
	if err := c.expect(tokPunct, "("); err != nil {
		return err
	}
	if err := c.parseExpr(); err != nil {
		return err
	}
	if err := c.expect(tokPunct, ")"); err != nil {
		return err
	}
	return c.parseBlock()
}

func (c *checker) parseForStmt() error {
	if err := c.expect(tokIdent, "for"); err != nil {
		return err
	}
	if err := c.expect(tokPunct, "("); err != nil {
		return err
	}
	if err := c.expect(tokIdent, "var"); err != nil {
		return err
	}
	if _, err := c.expectIdent(); err != nil {
		return err
	}
	if err := c.expect(tokPunct, ":"); err != nil {
		return err
	}
	if err := c.parseExpr(); err != nil {
		return err
	}
	if err := c.expect(tokPunct, ")"); err != nil {
		return err
	}
	return c.parseBlock()
}

// parseSimpleStmt covers declarations, assignments and expression
// statements. Two leading identifiers mean a declaration; otherwise an
// expression optionally followed by `= expr` (assignment).
func (c *checker) parseSimpleStmt() error {
	if c.tok.kind == tokIdent {
		save := *c.lx
		saveTok := c.tok
		if err := c.advance(); err != nil {
			return err
		}
		if c.tok.kind == tokIdent {
			// Declaration: type name [= expr] ;
			if err := c.advance(); err != nil {
				return err
			}
			if c.at(tokPunct, "=") {
				if err := c.advance(); err != nil {
					return err
				}
				if err := c.parseExpr(); err != nil {
					return err
				}
			}
			return c.expect(tokPunct, ";")
		}
		*c.lx = save
		c.tok = saveTok
	}
	if err := c.parseExpr(); err != nil {
		return err
	}
	if c.at(tokPunct, "=") {
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.parseExpr(); err != nil {
			return err
		}
	}
	return c.expect(tokPunct, ";")
}

func isBinaryOp(text string) bool {
	switch text {
	case "&&", "||", "<", ">", "<=", ">=", "==", "!=", "+", "-", "*", "/", "^":
		return true
	}
	return false
}

// parseExpr validates structure only; operator precedence is irrelevant
// for a syntax check.
func (c *checker) parseExpr() error {
	if err := c.parsePrimary(); err != nil {
		return err
	}
	for c.tok.kind == tokPunct && isBinaryOp(c.tok.text) {
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.parsePrimary(); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) parsePrimary() error {
	switch {
	case c.at(tokPunct, "("):
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.parseExpr(); err != nil {
			return err
		}
		if err := c.expect(tokPunct, ")"); err != nil {
			return err
		}
	case c.at(tokPunct, "-"):
		// Negative numeric literal.
		if err := c.advance(); err != nil {
			return err
		}
		if c.tok.kind != tokNumber {
			return c.errorf("expected number after unary minus, found %q", c.tok.text)
		}
		return c.advance()
	case c.tok.kind == tokNumber || c.tok.kind == tokString || c.tok.kind == tokChar:
		return c.advance()
	case c.at(tokIdent, "new"):
		// Allocation as emitted by the entry point: new Ident(args).
		if err := c.advance(); err != nil {
			return err
		}
		if _, err := c.expectIdent(); err != nil {
			return err
		}
		if !c.at(tokPunct, "(") {
			return c.errorf("expected argument list after new, found %q", c.tok.text)
		}
		if err := c.parseCallArgs(); err != nil {
			return err
		}
	case c.tok.kind == tokIdent:
		if err := c.advance(); err != nil {
			return err
		}
		if c.at(tokPunct, "(") {
			if err := c.parseCallArgs(); err != nil {
				return err
			}
		}
	default:
		return c.errorf("expected expression, found %q", c.tok.text)
	}
	return c.parsePostfix()
}

func (c *checker) parsePostfix() error {
	for c.at(tokPunct, ".") {
		if err := c.advance(); err != nil {
			return err
		}
		if _, err := c.expectIdent(); err != nil {
			return err
		}
		if c.at(tokPunct, "(") {
			if err := c.parseCallArgs(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) parseCallArgs() error {
	if err := c.advance(); err != nil { // consume "("
		return err
	}
	if c.at(tokPunct, ")") {
		return c.advance()
	}
	for {
		if err := c.parseExpr(); err != nil {
			return err
		}
		if c.at(tokPunct, ",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return c.expect(tokPunct, ")")
}
