package parser

import (
	"testing"

	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
)

// FuzzParserNoPanic ensures parsing never panics for arbitrary input.
func FuzzParserNoPanic(f *testing.F) {
	seeds := []string{
		"",
		"declare int x;",
		"declare function int add(int a, int b);\nfunction int add(int a, int b) { return a + b; }",
		"declare int[][] grid;",
		"declare function void main();\nfunction void main() { if (true) { } elif (false) { } else { } }",
		"declare function void main();\nfunction void main() { for (int i = 0; i < 3; i = i + 1) { break; } }",
		"declare function void main();\nfunction void main() { switch (1) { case 1: fallthrough; default: } }",
		"declare function void main();\nfunction void main() { do { } while (true) }",
		"declare function void main();\nfunction void main() { asm { \"nop\" } return; }",
		"declare int x = (1 + 2) * 3 == 0b101;",
		"function int f(",
		"declare function int f(int a);\nfunction bool f(int a) { }",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("parser panicked for input %q: %v", input, r)
			}
		}()

		program, err := ParseString(input)
		if err != nil {
			// every failure must still be renderable
			_ = diag.Render(input, err)
			return
		}
		_ = program.String()
		_ = program.Info()
	})
}
