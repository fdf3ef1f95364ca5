package javacheck

import (
	"errors"
	"strings"
	"testing"
)

func TestCheck_ValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "minimal program",
			src: `public class Main {

    public static void main(String[] args) {
        System.exit(new Main().main());
    }
}`,
		},
		{
			name: "fields and methods",
			src: `public class Main {

    Integer x = 5;
    String greeting = "say \"hi\"";
    Boolean flag;

    public static void main(String[] args) {
        System.exit(new Main().main());
    }

    Integer f(Integer a, Integer b) {
        Integer y = (a + b) * 2;        return y;
    }
}`,
		},
		{
			name: "control flow with empty blocks",
			src: `public class Main {

    public static void main(String[] args) {
        System.exit(new Main().main());
    }

    Integer f() {
        if (true) {}        while (x < 10) {
            x = x + 1;
        }
        for (var i : list) {
            print(i);
        }
        if (flag) {
            x = 1;
        } else {
            x = 2;
        }
        return obj.size() && 'a' != '\'';
    }
}`,
		},
		{
			name: "unicode identifiers",
			src: `public class Main {

    Integer café = 1;

    public static void main(String[] args) {
        System.exit(new Main().main());
    }

    Integer żółć(Integer größe) {
        café = größe + café;        return café;
    }
}`,
		},
		{
			name: "comments and null",
			src: `public class Main {
    // line comment
    /* block
       comment */
    Object o = null;

    public static void main(String[] args) {
        System.exit(new Main().main());
    }
}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Check([]byte(tt.src)); err != nil {
				t.Errorf("Check failed: %v", err)
			}
		})
	}
}

func TestCheck_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "not a class",
			src:  "package Main;",
			want: `expected "public"`,
		},
		{
			name: "unterminated class body",
			src:  "public class Main {",
			want: "unexpected end of file",
		},
		{
			name: "missing semicolon",
			src:  "public class Main {\n    Integer x = 5\n}",
			want: `expected ";"`,
		},
		{
			name: "unterminated string",
			src:  "public class Main {\n    String s = \"oops;\n}",
			want: "unterminated string literal",
		},
		{
			name: "unbalanced parens",
			src: `public class Main {
    Integer f() {
        return (1 + 2;
    }
}`,
			want: `expected ")"`,
		},
		{
			name: "stray character",
			src:  "public class Main {\n    Integer x = #5;\n}",
			want: "unexpected character",
		},
		{
			name: "string ending in lone backslash",
			src:  "public class Main {\n    String s = \"path\\\";\n}",
			want: "unterminated string literal",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check([]byte(tt.src))
			if err == nil {
				t.Fatal("expected syntax error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCheck_ErrorPosition(t *testing.T) {
	src := "public class Main {\n    Integer x = ;\n}"
	err := Check([]byte(src))
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T (%v)", err, err)
	}
	if serr.Line != 2 {
		t.Errorf("error line = %d, want 2", serr.Line)
	}
}
