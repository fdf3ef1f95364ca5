// Package java renders a resolved quill AST as Java source text.
//
// The emitter is the last pipeline stage and is purely syntactic: it walks
// the tree once, depth first, and writes spellings, punctuation and block
// structure. It trusts the resolution facts on the tree completely; a
// missing descriptor is a contract defect upstream and stops generation
// with an error rather than producing partial output that looks valid.
package java

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"quill/internal/ast"
	"quill/internal/symbols"
)

// className is the container class wrapping every generated program.
const className = "Main"

// Options controls rendering details that are not dictated by the tree.
type Options struct {
	// Newline is the line terminator. Empty selects the platform default.
	Newline string
}

func (o Options) withDefaults() Options {
	if o.Newline == "" {
		if runtime.GOOS == "windows" {
			o.Newline = "\r\n"
		} else {
			o.Newline = "\n"
		}
	}
	return o
}

// Emitter writes one program to one sink. Instances share no state, so
// concurrent generation of independent trees just needs one Emitter each.
type Emitter struct {
	w       io.Writer
	newline string
	depth   int
}

// New returns an emitter writing to w. The emitter never closes or
// flushes w.
func New(w io.Writer, opts Options) *Emitter {
	opts = opts.withDefaults()
	return &Emitter{w: w, newline: opts.Newline}
}

// EmitProgram renders prog in full. The output layout is fixed: the class
// header, the field block, the synthesized static entry point, then the
// methods, with single blank lines separating each non-empty section.
func (e *Emitter) EmitProgram(prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("java: nil program")
	}
	if err := e.write("public class " + className + " {"); err != nil {
		return err
	}
	if err := e.newlines(2); err != nil {
		return err
	}
	e.depth++

	for i := range prog.Fields {
		if err := e.emitField(&prog.Fields[i]); err != nil {
			return err
		}
	}
	if len(prog.Fields) > 0 {
		if err := e.newlines(1); err != nil {
			return err
		}
	}

	if err := e.emitEntryPoint(); err != nil {
		return err
	}

	if len(prog.Methods) > 0 {
		if err := e.newlines(1); err != nil {
			return err
		}
		for i := range prog.Methods {
			if i > 0 {
				if err := e.newlines(1); err != nil {
					return err
				}
			}
			if err := e.emitMethod(&prog.Methods[i]); err != nil {
				return err
			}
		}
	}

	e.depth--
	if err := e.indent(); err != nil {
		return err
	}
	return e.write("}")
}

// emitEntryPoint writes the fixed bridge from Java's static entry
// convention to the program's instance-level main method. It is boilerplate
// by design and reads nothing from the tree.
func (e *Emitter) emitEntryPoint() error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("public static void main(String[] args) {"); err != nil {
		return err
	}
	if err := e.newlines(1); err != nil {
		return err
	}
	e.depth++
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("System.exit(new " + className + "().main());"); err != nil {
		return err
	}
	if err := e.newlines(1); err != nil {
		return err
	}
	e.depth--
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("}"); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitField(field *ast.Field) error {
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.emitTypedName(field.Variable, "field"); err != nil {
		return err
	}
	if field.Value != nil {
		if err := e.write(" = "); err != nil {
			return err
		}
		if err := e.emitExpr(field.Value); err != nil {
			return err
		}
	}
	if err := e.write(";"); err != nil {
		return err
	}
	return e.newlines(1)
}

func (e *Emitter) emitMethod(method *ast.Method) error {
	fn := method.Function
	if fn == nil {
		return fmt.Errorf("java: method missing resolved function")
	}
	if fn.ReturnType == nil {
		return fmt.Errorf("java: method %s missing return type", fn.RenderName)
	}
	if len(method.Parameters) != len(fn.ParameterTypes) {
		return fmt.Errorf("java: method %s has %d parameter names for %d parameter types",
			fn.RenderName, len(method.Parameters), len(fn.ParameterTypes))
	}

	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write(fn.ReturnType.RenderName + " " + fn.RenderName + "("); err != nil {
		return err
	}
	for i, name := range method.Parameters {
		if i > 0 {
			if err := e.write(", "); err != nil {
				return err
			}
		}
		pt := fn.ParameterTypes[i]
		if pt == nil {
			return fmt.Errorf("java: method %s parameter %s missing type", fn.RenderName, name)
		}
		if err := e.write(pt.RenderName + " " + name); err != nil {
			return err
		}
	}
	if err := e.write(") {"); err != nil {
		return err
	}
	if err := e.newlines(1); err != nil {
		return err
	}
	e.depth++
	for _, stmt := range method.Body {
		if err := e.emitStmt(stmt); err != nil {
			return err
		}
	}
	e.depth--
	if err := e.indent(); err != nil {
		return err
	}
	if err := e.write("}"); err != nil {
		return err
	}
	return e.newlines(1)
}

// emitTypedName writes "<type> <name>" for a resolved variable, the shared
// head of field and local declarations.
func (e *Emitter) emitTypedName(v *symbols.Variable, where string) error {
	if v == nil {
		return fmt.Errorf("java: %s missing resolved variable", where)
	}
	if v.Type == nil {
		return fmt.Errorf("java: %s %s missing resolved type", where, v.RenderName)
	}
	return e.write(v.Type.RenderName + " " + v.RenderName)
}

func (e *Emitter) write(s string) error {
	if _, err := io.WriteString(e.w, s); err != nil {
		return fmt.Errorf("java: write output: %w", err)
	}
	return nil
}

func (e *Emitter) indent() error {
	return e.write(strings.Repeat("    ", e.depth))
}

func (e *Emitter) newlines(n int) error {
	for i := 0; i < n; i++ {
		if err := e.write(e.newline); err != nil {
			return err
		}
	}
	return nil
}
