package scope

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
)

// Environment maps names to the declaration that introduced them.
// It is immutable: Extend and Enter return a new Environment linked to the
// old one, so a parse holding an older Environment never sees later bindings.
type Environment struct {
	name  string
	decl  ast.Declaration // nil for a scope marker
	depth int
	outer *Environment // nil for the empty global environment
}

// New creates an empty global environment
func New() *Environment {
	return &Environment{}
}

// Depth is the nesting level of the innermost scope, 0 for globals.
func (e *Environment) Depth() int { return e.depth }

// Lookup finds the innermost visible declaration of name
func (e *Environment) Lookup(name string) (ast.Declaration, bool) {
	for n := e; n != nil; n = n.outer {
		if n.decl != nil && n.name == name {
			return n.decl, true
		}
	}
	return nil, false
}

// LookupLocal only searches the innermost scope.
func (e *Environment) LookupLocal(name string) (ast.Declaration, bool) {
	for n := e; n != nil && n.depth == e.depth; n = n.outer {
		if n.decl != nil && n.name == name {
			return n.decl, true
		}
	}
	return nil, false
}

// Extend returns a new environment with name bound to d in the innermost scope.
// Binding a name already bound in that scope fails with a *RedeclaredError.
func (e *Environment) Extend(name string, d ast.Declaration) (*Environment, error) {
	if prev, ok := e.LookupLocal(name); ok {
		return e, &RedeclaredError{Name: name, Previous: prev}
	}
	return &Environment{name: name, decl: d, depth: e.depth, outer: e}, nil
}

// Enter opens a nested scope. Names bound in it may shadow outer ones.
func (e *Environment) Enter() *Environment {
	return &Environment{depth: e.depth + 1, outer: e}
}

// Names lists every visible name, sorted.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var names []string
	for n := e; n != nil; n = n.outer {
		if n.decl == nil || seen[n.name] {
			continue
		}
		seen[n.name] = true
		names = append(names, n.name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of visible names.
func (e *Environment) Len() int { return len(e.Names()) }

// String dumps the visible bindings, one per line
func (e *Environment) String() string {
	var out bytes.Buffer
	for _, name := range e.Names() {
		d, _ := e.Lookup(name)
		kind := "variable"
		if ast.IsFunction(d) {
			kind = "function"
		}
		fmt.Fprintf(&out, "%s: %s %s\n", name, kind, d.String())
	}
	return out.String()
}

// RedeclaredError reports a name bound twice in one scope
type RedeclaredError struct {
	Name     string
	Previous ast.Declaration
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("%v: %s was already declared at %s", diag.ErrRepeatedDeclaration, e.Name, e.Previous.FirstToken().SourceRef())
}

func (e *RedeclaredError) Unwrap() error { return diag.ErrRepeatedDeclaration }
