package ast

import (
	"bytes"
	"fmt"

	"github.com/MarkProvanP/mips-toy-lang/internal/token"
	"github.com/MarkProvanP/mips-toy-lang/internal/typesys"
)

// Node is the base interface for all AST nodes
// Every node keeps the first and last token it was parsed from, for diagnostics
type Node interface {
	TokenLiteral() string
	String() string
	FirstToken() token.Token
	LastToken() token.Token
}

// Statement nodes don't produce values
// Examples: declare int x; return 10;
type Statement interface {
	Node
	statementNode() // Dummy method to distinguish statements from expressions
}

// Expression nodes produce values
// Examples: 5, x, add(2, 3), 5 + 3
type Expression interface {
	Node
	expressionNode()
}

// Declaration is a node that binds a name in an environment:
// a function declaration, a variable declaration or a function parameter.
type Declaration interface {
	Node
	DeclaredName() string
	declarationNode()
}

// IsFunction reports whether d declares a function rather than a variable.
func IsFunction(d Declaration) bool {
	_, ok := d.(*FunctionDeclaration)
	return ok
}

// Bounds is embedded by nodes built from more than one token.
type Bounds struct {
	First token.Token
	Last  token.Token
}

func (b Bounds) FirstToken() token.Token { return b.First }
func (b Bounds) LastToken() token.Token  { return b.Last }
func (b Bounds) TokenLiteral() string    { return b.First.Literal }

// SourceRef describes where n came from in the original source.
func SourceRef(n Node) string {
	first, last := n.FirstToken(), n.LastToken()
	if first == last {
		return fmt.Sprintf("%s\nat token: %s", n.String(), first.SourceRef())
	}
	return fmt.Sprintf("%s\nbetween token: %s\nand token: %s", n.String(), first.SourceRef(), last.SourceRef())
}

// Program is the root node of every AST
// Declarations come first, then the definitions of declared functions
type Program struct {
	FunctionDeclarations []*FunctionDeclaration
	GlobalDeclarations   []*DeclareStatement
	FunctionDefinitions  []*FunctionDefinition

	first, last token.Token
}

// SetBounds records the first and last token of the whole program.
func (p *Program) SetBounds(first, last token.Token) { p.first, p.last = first, last }

func (p *Program) FirstToken() token.Token { return p.first }
func (p *Program) LastToken() token.Token  { return p.last }
func (p *Program) TokenLiteral() string    { return p.first.Literal }

// String builds the program back into source code (useful for debugging)
func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.FunctionDeclarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range p.GlobalDeclarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range p.FunctionDefinitions {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Info is a banner summarising the program's shape.
func (p *Program) Info() string {
	return fmt.Sprintf("\n"+
		"##########################################\n"+
		"# Program info:\n"+
		"# Number of function declarations: %d\n"+
		"# Number of global variables: %d\n"+
		"# Number of function definitions: %d\n"+
		"##########################################\n",
		len(p.FunctionDeclarations), len(p.GlobalDeclarations), len(p.FunctionDefinitions))
}

// DefinitionOf follows a declaration's link to its definition.
func (p *Program) DefinitionOf(d *FunctionDeclaration) (*FunctionDefinition, bool) {
	if d == nil || d.DefinitionIndex < 0 || d.DefinitionIndex >= len(p.FunctionDefinitions) {
		return nil, false
	}
	return p.FunctionDefinitions[d.DefinitionIndex], true
}

// DeclarationOf follows a definition's link back to its declaration.
func (p *Program) DeclarationOf(d *FunctionDefinition) (*FunctionDeclaration, bool) {
	if d == nil || d.DeclarationIndex < 0 || d.DeclarationIndex >= len(p.FunctionDeclarations) {
		return nil, false
	}
	return p.FunctionDeclarations[d.DeclarationIndex], true
}

// Ident is a single identifier token
type Ident struct {
	Token token.Token
}

func (i *Ident) TokenLiteral() string    { return i.Token.Literal }
func (i *Ident) String() string          { return i.Token.Literal }
func (i *Ident) FirstToken() token.Token { return i.Token }
func (i *Ident) LastToken() token.Token  { return i.Token }

// Name is the identifier being declared by a declaration
type Name struct {
	Ident *Ident
}

func (n *Name) TokenLiteral() string    { return n.Ident.Token.Literal }
func (n *Name) String() string          { return n.Ident.String() }
func (n *Name) FirstToken() token.Token { return n.Ident.Token }
func (n *Name) LastToken() token.Token  { return n.Ident.Token }

// Type is a base type name with zero or more "[]" suffixes
type Type struct {
	Bounds
	Ident *Ident
	Base  typesys.Base
	Dims  int
}

func (t *Type) String() string {
	return typesys.FormatTypeDescriptor(t.Ident.String(), t.Dims)
}

func (t *Type) Descriptor() typesys.Descriptor {
	return typesys.Descriptor{Base: t.Base, Dims: t.Dims}
}

// SignatureArgument is one "Type Name" entry of a function signature
type SignatureArgument struct {
	Type *Type
	Name *Name
}

func (a *SignatureArgument) declarationNode()        {}
func (a *SignatureArgument) DeclaredName() string    { return a.Name.String() }
func (a *SignatureArgument) TokenLiteral() string    { return a.Type.TokenLiteral() }
func (a *SignatureArgument) FirstToken() token.Token { return a.Type.FirstToken() }
func (a *SignatureArgument) LastToken() token.Token  { return a.Name.LastToken() }
func (a *SignatureArgument) String() string          { return a.Type.String() + " " + a.Name.String() }

// SignatureArguments is the parameter list of a declaration or definition
type SignatureArguments []*SignatureArgument

func (s SignatureArguments) String() string {
	var out bytes.Buffer
	for i, a := range s {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	return out.String()
}

// TypesEqual compares parameter count and each parameter's type.
// Parameter names are allowed to differ.
func (s SignatureArguments) TypesEqual(o SignatureArguments) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Type.Descriptor().Equal(o[i].Type.Descriptor()) {
			return false
		}
	}
	return true
}

// FunctionDeclaration: declare function int add(int a, int b);
type FunctionDeclaration struct {
	Bounds
	ReturnType *Type
	Name       *Name
	Arguments  SignatureArguments

	Index           int // position in Program.FunctionDeclarations
	DefinitionIndex int // position in Program.FunctionDefinitions, -1 until defined
}

func (fd *FunctionDeclaration) declarationNode()     {}
func (fd *FunctionDeclaration) DeclaredName() string { return fd.Name.String() }

func (fd *FunctionDeclaration) String() string {
	return fmt.Sprintf("declare function %s %s(%s);", fd.ReturnType, fd.Name, fd.Arguments)
}

// SignatureEqual reports whether def has the same return and parameter types.
func (fd *FunctionDeclaration) SignatureEqual(def *FunctionDefinition) bool {
	return fd.ReturnType.Descriptor().Equal(def.ReturnType.Descriptor()) &&
		fd.Arguments.TypesEqual(def.Arguments)
}

// FunctionDefinition: function int add(int a, int b) { ... }
type FunctionDefinition struct {
	Bounds
	ReturnType *Type
	Name       *Name
	Arguments  SignatureArguments
	Body       *Statements

	DeclarationIndex int // position in Program.FunctionDeclarations
}

func (fd *FunctionDefinition) String() string {
	return fmt.Sprintf("function %s %s(%s) {\n%s}", fd.ReturnType, fd.Name, fd.Arguments, fd.Body)
}

// Signature renders the definition's first line only.
func (fd *FunctionDefinition) Signature() string {
	return fmt.Sprintf("function %s %s(%s) { ... }", fd.ReturnType, fd.Name, fd.Arguments)
}
