// Package symbols holds the resolution facts the analyzer attaches to the
// AST before code generation. The backend reads these descriptors as-is; it
// never resolves or validates names itself.
package symbols

// Type is a resolved type. RenderName is the Java spelling chosen by the
// analyzer (reserved words and mangled names are already dealt with there).
type Type struct {
	RenderName string
}

// Variable is a resolved variable or field.
type Variable struct {
	RenderName string
	Type       *Type
}

// Function is a resolved function or method.
type Function struct {
	RenderName     string
	ReturnType     *Type
	ParameterTypes []*Type
}
