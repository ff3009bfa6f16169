// Package report turns token streams and parsed programs into plain data
// for text and YAML output.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// Span runs from the first character of one token to the last character of another
type Span struct {
	Line    int `yaml:"line"`
	Start   int `yaml:"start"`
	EndLine int `yaml:"end_line"`
	End     int `yaml:"end"`
}

func spanOf(n ast.Node) Span {
	first, last := n.FirstToken(), n.LastToken()
	return Span{Line: first.Line, Start: first.CharStart, EndLine: last.Line, End: last.CharEnd}
}

// Token is one lexed token
type Token struct {
	Type    string `yaml:"type"`
	Literal string `yaml:"literal"`
	Span    Span   `yaml:"span"`
}

// Tokens converts a token stream.
func Tokens(toks []token.Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{
			Type:    string(t.Type),
			Literal: t.Literal,
			Span:    Span{Line: t.Line, Start: t.CharStart, EndLine: t.Line, End: t.CharEnd},
		})
	}
	return out
}

// Param is one function parameter
type Param struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// Function summarises a declaration or a definition
type Function struct {
	Name    string  `yaml:"name"`
	Returns string  `yaml:"returns"`
	Params  []Param `yaml:"params"`
	Span    Span    `yaml:"span"`
	Link    int     `yaml:"link"` // index of the matching definition or declaration, -1 if none
}

// Global summarises a global variable
type Global struct {
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Initialised bool   `yaml:"initialised"`
	Span        Span   `yaml:"span"`
}

// Program summarises a parsed program
type Program struct {
	Declarations []Function `yaml:"declarations"`
	Globals      []Global   `yaml:"globals"`
	Definitions  []Function `yaml:"definitions"`
}

func params(args ast.SignatureArguments) []Param {
	out := make([]Param, 0, len(args))
	for _, a := range args {
		out = append(out, Param{Type: a.Type.String(), Name: a.Name.String()})
	}
	return out
}

// Summarize flattens prog into a Program report.
func Summarize(prog *ast.Program) Program {
	r := Program{
		Declarations: []Function{},
		Globals:      []Global{},
		Definitions:  []Function{},
	}
	for _, d := range prog.FunctionDeclarations {
		r.Declarations = append(r.Declarations, Function{
			Name:    d.Name.String(),
			Returns: d.ReturnType.String(),
			Params:  params(d.Arguments),
			Span:    spanOf(d),
			Link:    d.DefinitionIndex,
		})
	}
	for _, g := range prog.GlobalDeclarations {
		r.Globals = append(r.Globals, Global{
			Type:        g.VarType.String(),
			Name:        g.Name.String(),
			Initialised: g.Value != nil,
			Span:        spanOf(g),
		})
	}
	for _, d := range prog.FunctionDefinitions {
		r.Definitions = append(r.Definitions, Function{
			Name:    d.Name.String(),
			Returns: d.ReturnType.String(),
			Params:  params(d.Arguments),
			Span:    spanOf(d),
			Link:    d.DeclarationIndex,
		})
	}
	return r
}

// WriteYAML encodes v to w with two-space indentation.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return enc.Close()
}

// WriteTokens prints one Info line per token.
func WriteTokens(w io.Writer, toks []token.Token) error {
	for _, t := range toks {
		if _, err := fmt.Fprintln(w, t.Info()); err != nil {
			return err
		}
	}
	return nil
}

// WriteProgram prints the info banner followed by the program's source form.
func WriteProgram(w io.Writer, prog *ast.Program) error {
	_, err := fmt.Fprintf(w, "%s\n%s", prog.Info(), prog.String())
	return err
}
