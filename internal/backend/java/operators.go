package java

// operatorSpelling maps the analyzer's operator tags to their Java
// spellings. Comparison operators already use the target spelling and pass
// through, as does any tag this table does not know: unknown tags render
// unchanged instead of failing, so operators that need no translation keep
// working without a table entry.
func operatorSpelling(op string) string {
	switch op {
	case "AND":
		return "&&"
	case "OR":
		return "||"
	case "<", ">", "<=", ">=", "==", "!=":
		return op
	case "ADD", "+":
		return "+"
	case "SUBTRACT", "-":
		return "-"
	case "MULTIPLY", "*":
		return "*"
	case "DIVIDE", "/":
		return "/"
	case "EXPONENT":
		return "^"
	default:
		return op
	}
}
