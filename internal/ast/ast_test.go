package ast

import (
	"strings"
	"testing"

	"github.com/MarkProvanP/mips-toy-lang/internal/token"
	"github.com/MarkProvanP/mips-toy-lang/internal/typesys"
)

func tok(tt token.TokenType, lit string) token.Token { return token.Token{Type: tt, Literal: lit} }

func at(tt token.TokenType, lit string, line, start int) token.Token {
	return token.Token{Type: tt, Literal: lit, Line: line, CharStart: start, CharEnd: start + len([]rune(lit)) - 1}
}

func ident(name string) *Ident { return &Ident{Token: tok(token.IDENT, name)} }

func typ(name string, dims int) *Type {
	b, _ := typesys.Lookup(name)
	return &Type{Bounds: Bounds{First: tok(token.IDENT, name), Last: tok(token.IDENT, name)}, Ident: ident(name), Base: b, Dims: dims}
}

func arg(t, name string) *SignatureArgument {
	return &SignatureArgument{Type: typ(t, 0), Name: &Name{Ident: ident(name)}}
}

func TestProgramAndNodeStrings(t *testing.T) {
	a := &VariableAccessExpression{Name: ident("a")}
	b := &VariableAccessExpression{Name: ident("b")}
	one := &Number{Token: tok(token.UINT_BASE10, "1")}
	sum := &BinaryExpression{Left: a, Operator: tok(token.BINARY_OP, "+"), Right: b}

	decl := &FunctionDeclaration{
		ReturnType: typ("int", 0),
		Name:       &Name{Ident: ident("add")},
		Arguments:  SignatureArguments{arg("int", "a"), arg("int", "b")},
	}
	def := &FunctionDefinition{
		ReturnType: typ("int", 0),
		Name:       &Name{Ident: ident("add")},
		Arguments:  SignatureArguments{arg("int", "a"), arg("int", "b")},
		Body:       &Statements{List: []Statement{&ReturnStatement{Value: sum}}},
	}
	global := &DeclareStatement{VarType: typ("int", 1), Name: &Name{Ident: ident("xs")}}

	p := &Program{
		FunctionDeclarations: []*FunctionDeclaration{decl},
		GlobalDeclarations:   []*DeclareStatement{global},
		FunctionDefinitions:  []*FunctionDefinition{def},
	}
	want := "declare function int add(int a, int b);\n" +
		"declare int[] xs;\n" +
		"function int add(int a, int b) {\nreturn (a + b);\n}\n"
	if got := p.String(); got != want {
		t.Fatalf("Program.String()=%q want %q", got, want)
	}
	if got := def.Signature(); got != "function int add(int a, int b) { ... }" {
		t.Fatalf("Signature=%q", got)
	}

	stmts := []struct {
		node Node
		want string
	}{
		{&DeclareStatement{VarType: typ("uint", 0), Name: &Name{Ident: ident("x")}, Value: one}, "declare uint x = 1;"},
		{&ExpressionStatement{Expression: &AssignmentExpression{Target: ident("x"), Value: one}}, "x = 1;"},
		{&ExpressionStatement{Expression: &IncrementExpression{Target: ident("i"), Operator: tok(token.UNARY_OP, "--")}}, "i--;"},
		{&FunctionCallStatement{Call: &FunctionCallExpression{Function: ident("f"), Arguments: []Expression{one, a}}}, "f(1, a);"},
		{&ReturnStatement{}, "return;"},
		{&BreakStatement{}, "break;"},
		{&FallthroughStatement{}, "fallthrough;"},
		{&ArrayAccessExpression{Array: ident("m"), Indices: []Expression{one, a}}, "m[1][a]"},
		{&ParenExpression{Inner: sum}, "(a + b)"},
		{&ParenExpression{Inner: a}, "(a)"},
		{&WhileStatement{Condition: a, Body: &Statements{}}, "while (a) {\n}"},
		{&DoWhileStatement{Condition: a, Body: &Statements{}}, "do {\n} while (a)"},
		{&ASMStatement{Lines: []*String{{Token: tok(token.STRING, `"nop"`)}}}, "asm {\n\"nop\"\n}"},
		{&ForLoopStatement{
			Init:         &ForInitialisation{VarType: typ("int", 0), Name: &Name{Ident: ident("i")}, Value: one},
			Condition:    a,
			Afterthought: &IncrementExpression{Target: ident("i"), Operator: tok(token.UNARY_OP, "++")},
			Body:         &Statements{},
		}, "for (int i = 1; a; i++) {\n}"},
		{&ForLoopStatement{Body: &Statements{}}, "for (; ; ) {\n}"},
		{&IfElseStatement{
			IfThens: []*IfThen{{Condition: a, Then: &Statements{}}, {Condition: b, Then: &Statements{}}},
			Else:    &Statements{},
		}, "if (a) {\n} elif (b) {\n} else {\n}"},
		{&SwitchStatement{
			Subject: a,
			Cases:   []*CaseClause{{Value: one, Body: &Statements{List: []Statement{&BreakStatement{}}}}},
			Default: &DefaultClause{Body: &Statements{}},
		}, "switch (a) {\ncase 1:\nbreak;\ndefault:\n}"},
	}
	for i, tt := range stmts {
		if got := tt.node.String(); got != tt.want {
			t.Fatalf("stmts[%d] String()=%q want %q", i, got, tt.want)
		}
	}
}

func TestProgramInfoAndLinks(t *testing.T) {
	decl := &FunctionDeclaration{Name: &Name{Ident: ident("f")}, Index: 0, DefinitionIndex: -1}
	def := &FunctionDefinition{Name: &Name{Ident: ident("f")}, DeclarationIndex: 0}
	p := &Program{FunctionDeclarations: []*FunctionDeclaration{decl}}

	if _, ok := p.DefinitionOf(decl); ok {
		t.Fatalf("undefined declaration should have no definition")
	}
	p.FunctionDefinitions = append(p.FunctionDefinitions, def)
	decl.DefinitionIndex = 0
	if got, ok := p.DefinitionOf(decl); !ok || got != def {
		t.Fatalf("DefinitionOf=%v %v", got, ok)
	}
	if got, ok := p.DeclarationOf(def); !ok || got != decl {
		t.Fatalf("DeclarationOf=%v %v", got, ok)
	}

	info := p.Info()
	for _, want := range []string{
		"# Number of function declarations: 1",
		"# Number of global variables: 0",
		"# Number of function definitions: 1",
	} {
		if !strings.Contains(info, want) {
			t.Fatalf("Info() missing %q:\n%s", want, info)
		}
	}
}

func TestSignatureEquality(t *testing.T) {
	decl := &FunctionDeclaration{ReturnType: typ("int", 0), Arguments: SignatureArguments{arg("int", "a")}}
	tests := []struct {
		def  *FunctionDefinition
		want bool
	}{
		{&FunctionDefinition{ReturnType: typ("int", 0), Arguments: SignatureArguments{arg("int", "b")}}, true},
		{&FunctionDefinition{ReturnType: typ("bool", 0), Arguments: SignatureArguments{arg("int", "a")}}, false},
		{&FunctionDefinition{ReturnType: typ("int", 0), Arguments: SignatureArguments{arg("uint", "a")}}, false},
		{&FunctionDefinition{ReturnType: typ("int", 0)}, false},
		{&FunctionDefinition{ReturnType: typ("int", 0), Arguments: SignatureArguments{arg("int", "a"), arg("int", "b")}}, false},
		{&FunctionDefinition{ReturnType: typ("int", 1), Arguments: SignatureArguments{arg("int", "a")}}, false},
	}
	for i, tt := range tests {
		if got := decl.SignatureEqual(tt.def); got != tt.want {
			t.Fatalf("tests[%d] SignatureEqual=%v want %v (%s)", i, got, tt.want, tt.def.Signature())
		}
	}
}

func TestNumberEval(t *testing.T) {
	tests := []struct {
		tt   token.TokenType
		lit  string
		want int64
		typ  typesys.Base
	}{
		{token.UINT_BASE2, "0b101", 5, typesys.UInt},
		{token.UINT_BASE8, "0o17", 15, typesys.UInt},
		{token.UINT_BASE16, "0x1F", 31, typesys.UInt},
		{token.INT_BASE10, "-7", -7, typesys.Int},
		{token.UINT_BASE10, "42", 42, typesys.UInt},
	}
	for _, tt := range tests {
		n := &Number{Token: tok(tt.tt, tt.lit)}
		v, err := n.Eval()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.lit, err)
		}
		if !v.IsInt64() || v.Int64() != tt.want {
			t.Fatalf("%s: Eval=%s want %d", tt.lit, v, tt.want)
		}
		if n.Type() != tt.typ {
			t.Fatalf("%s: Type=%s want %s", tt.lit, n.Type(), tt.typ)
		}
	}

	big := &Number{Token: tok(token.UINT_BASE16, "0xFFFFFFFFFFFFFFFFFF")}
	v, err := big.Eval()
	if err != nil || v.BitLen() != 72 {
		t.Fatalf("wide literal Eval=%v %v", v, err)
	}
	if _, err := (&Number{Token: tok(token.UINT_BASE16, "0x")}).Eval(); err == nil {
		t.Fatalf("expected error for empty hex literal")
	}
	if _, err := (&Number{Token: tok(token.STRING, `"1"`)}).Eval(); err == nil {
		t.Fatalf("expected error for non-number token")
	}
}

func TestCharStringBoolEval(t *testing.T) {
	chars := []struct {
		lit  string
		want rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\0'`, 0},
		{`'\\'`, '\\'},
		{`'\''`, '\''},
		{`'é'`, 'é'},
	}
	for _, tt := range chars {
		got, err := (&Char{Token: tok(token.CHAR, tt.lit)}).Eval()
		if err != nil || got != tt.want {
			t.Fatalf("%s: Eval=(%q,%v) want %q", tt.lit, got, err, tt.want)
		}
	}
	if _, err := (&Char{Token: tok(token.CHAR, `'\q'`)}).Eval(); err == nil {
		t.Fatalf("expected unknown escape error")
	}

	if got := (&String{Token: tok(token.STRING, `"a\nb"`)}).Eval(); got != `a\nb` {
		t.Fatalf("String.Eval=%q", got)
	}
	if !(&Bool{Token: tok(token.BOOL, "true")}).Eval() || (&Bool{Token: tok(token.BOOL, "false")}).Eval() {
		t.Fatalf("Bool.Eval wrong")
	}
}

func TestBoundsAndSourceRef(t *testing.T) {
	left := &Number{Token: at(token.UINT_BASE10, "1", 3, 5)}
	right := &Number{Token: at(token.UINT_BASE10, "22", 3, 9)}
	be := &BinaryExpression{Left: left, Operator: at(token.BINARY_OP, "+", 3, 7), Right: right}

	if be.FirstToken() != left.Token || be.LastToken() != right.Token {
		t.Fatalf("binary bounds wrong: %v %v", be.FirstToken(), be.LastToken())
	}
	ref := SourceRef(be)
	if !strings.Contains(ref, "between token: 1 on line 3 between char 5 and 5") ||
		!strings.Contains(ref, "and token: 22 on line 3 between char 9 and 10") {
		t.Fatalf("SourceRef=%q", ref)
	}
	if ref := SourceRef(left); !strings.Contains(ref, "at token: 1 on line 3") {
		t.Fatalf("leaf SourceRef=%q", ref)
	}
}

func TestInspect(t *testing.T) {
	one := &Number{Token: tok(token.UINT_BASE10, "1")}
	x := &VariableAccessExpression{Name: ident("x")}
	body := &Statements{List: []Statement{
		&DeclareStatement{VarType: typ("int", 0), Name: &Name{Ident: ident("y")}, Value: one},
		&IfElseStatement{IfThens: []*IfThen{{Condition: x, Then: &Statements{List: []Statement{&BreakStatement{}}}}}},
		&ReturnStatement{},
	}}

	var kinds []string
	Inspect(body, func(n Node) bool {
		switch n.(type) {
		case *DeclareStatement:
			kinds = append(kinds, "declare")
		case *Number:
			kinds = append(kinds, "number")
		case *BreakStatement:
			kinds = append(kinds, "break")
		case *ReturnStatement:
			kinds = append(kinds, "return")
		case *IfThen:
			kinds = append(kinds, "ifthen")
		}
		return true
	})
	if got := strings.Join(kinds, ","); got != "declare,number,ifthen,break,return" {
		t.Fatalf("Inspect order=%s", got)
	}

	count := 0
	Inspect(body, func(n Node) bool {
		count++
		_, isIf := n.(*IfElseStatement)
		return !isIf
	})
	// body, declare, type, ident, name, ident, number, if, return
	if count != 9 {
		t.Fatalf("pruned walk visited %d nodes", count)
	}
}

func TestIsFunction(t *testing.T) {
	if !IsFunction(&FunctionDeclaration{}) {
		t.Fatalf("function declaration not recognised")
	}
	if IsFunction(&DeclareStatement{}) || IsFunction(arg("int", "a")) {
		t.Fatalf("variable declared as function")
	}
}
