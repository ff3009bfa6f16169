package scope

import (
	"strings"
	"testing"

	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

func variable(name string) *ast.DeclareStatement {
	id := &ast.Ident{Token: token.Token{Type: token.IDENT, Literal: name, Line: 1, CharStart: 1, CharEnd: len(name)}}
	typ := &ast.Type{Ident: &ast.Ident{Token: token.Token{Type: token.IDENT, Literal: "int"}}, Base: "int"}
	return &ast.DeclareStatement{
		Bounds:  ast.Bounds{First: token.Token{Type: token.DECLARE, Literal: "declare", Line: 1, CharStart: 1, CharEnd: 7}},
		VarType: typ,
		Name:    &ast.Name{Ident: id},
	}
}

func function(name string) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		ReturnType: &ast.Type{Ident: &ast.Ident{Token: token.Token{Type: token.IDENT, Literal: "void"}}, Base: "void"},
		Name:       &ast.Name{Ident: &ast.Ident{Token: token.Token{Type: token.IDENT, Literal: name}}},
	}
}

func mustExtend(t *testing.T, e *Environment, name string, d ast.Declaration) *Environment {
	t.Helper()
	out, err := e.Extend(name, d)
	if err != nil {
		t.Fatalf("Extend(%q): %v", name, err)
	}
	return out
}

func TestExtendDoesNotMutate(t *testing.T) {
	root := New()
	x := variable("x")
	withX := mustExtend(t, root, "x", x)

	if _, ok := root.Lookup("x"); ok {
		t.Fatalf("parent environment observed child binding")
	}
	if got, ok := withX.Lookup("x"); !ok || got != x {
		t.Fatalf("Lookup(x)=%v %v", got, ok)
	}

	// siblings built from the same parent stay independent
	a := mustExtend(t, withX, "a", variable("a"))
	b := mustExtend(t, withX, "b", variable("b"))
	if _, ok := a.Lookup("b"); ok {
		t.Fatalf("sibling leaked binding b")
	}
	if _, ok := b.Lookup("a"); ok {
		t.Fatalf("sibling leaked binding a")
	}
}

func TestRepeatedDeclaration(t *testing.T) {
	env := mustExtend(t, New(), "x", variable("x"))

	same, err := env.Extend("x", variable("x"))
	if err == nil {
		t.Fatalf("expected repeated declaration error")
	}
	if same != env {
		t.Fatalf("failed Extend should return the receiver")
	}
	if !xerrors.Is(err, diag.ErrRepeatedDeclaration) {
		t.Fatalf("expected ErrRepeatedDeclaration, got %v", err)
	}
	var rerr *RedeclaredError
	if !xerrors.As(err, &rerr) || rerr.Name != "x" {
		t.Fatalf("expected *RedeclaredError for x, got %#v", err)
	}
	if !strings.Contains(err.Error(), "declare on line 1") {
		t.Fatalf("message should point at the first declaration: %v", err)
	}
}

func TestNestedScopesShadow(t *testing.T) {
	outer := mustExtend(t, New(), "x", variable("x"))
	inner := outer.Enter()
	if inner.Depth() != 1 || outer.Depth() != 0 {
		t.Fatalf("depths=%d,%d", outer.Depth(), inner.Depth())
	}
	if _, ok := inner.LookupLocal("x"); ok {
		t.Fatalf("outer binding reported as local")
	}

	shadow := variable("x")
	inner = mustExtend(t, inner, "x", shadow)
	if got, _ := inner.Lookup("x"); got != shadow {
		t.Fatalf("inner lookup should find the shadowing declaration")
	}
	if _, err := inner.Extend("x", variable("x")); err == nil {
		t.Fatalf("second binding in the same nested scope should fail")
	}
	if got, _ := outer.Lookup("x"); got == shadow {
		t.Fatalf("shadowing leaked to outer scope")
	}
}

func TestNamesAndString(t *testing.T) {
	env := mustExtend(t, New(), "f", function("f"))
	env = mustExtend(t, env, "b", variable("b"))
	env = mustExtend(t, env.Enter(), "b", variable("b"))
	env = mustExtend(t, env, "a", variable("a"))

	if got := strings.Join(env.Names(), ","); got != "a,b,f" {
		t.Fatalf("Names=%s", got)
	}
	if env.Len() != 3 {
		t.Fatalf("Len=%d", env.Len())
	}
	dump := env.String()
	if !strings.Contains(dump, "f: function declare function void f();") ||
		!strings.Contains(dump, "a: variable declare int a;") {
		t.Fatalf("String=%q", dump)
	}
}
