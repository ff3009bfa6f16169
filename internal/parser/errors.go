package parser

import (
	"fmt"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

func tokenSpan(t token.Token) diag.Span {
	return diag.Span{Line: t.Line, Start: t.CharStart, End: t.CharEnd}
}

// WrongTokenError is raised when the parser expected one kind of token and found another
type WrongTokenError struct {
	Got      token.Token
	Expected string
}

func (e *WrongTokenError) Error() string {
	if e.Got.IsEOI() {
		return fmt.Sprintf("parser error: %v: expected %s but got end of input on line %d",
			diag.ErrWrongToken, e.Expected, e.Got.Line)
	}
	return fmt.Sprintf("parser error: %v: expected %s but got %s", diag.ErrWrongToken, e.Expected, e.Got.Info())
}

func (e *WrongTokenError) Span() diag.Span { return tokenSpan(e.Got) }
func (e *WrongTokenError) Unwrap() error   { return diag.ErrWrongToken }

// ResolveError is a name that did not resolve the way its use requires.
// Kind is one of ErrUseBeforeDeclare, ErrDefineWithoutDeclare,
// ErrRepeatedDeclaration, ErrRepeatedDefinition, ErrKindMismatch or ErrArityMismatch.
type ResolveError struct {
	Kind     error
	Name     token.Token
	Previous ast.Node // the earlier declaration or definition, if any
	Detail   string
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("parser error: %v: %s", e.Kind, e.Name.SourceRef())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Previous != nil {
		msg += fmt.Sprintf(" (see %s)", e.Previous.FirstToken().SourceRef())
	}
	return msg
}

func (e *ResolveError) Span() diag.Span { return tokenSpan(e.Name) }
func (e *ResolveError) Unwrap() error   { return e.Kind }

// SignatureMismatchError is a function definition whose types differ from its declaration
type SignatureMismatchError struct {
	Declaration *ast.FunctionDeclaration
	Definition  *ast.FunctionDefinition
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("parser error: %v: definition %s on line %d does not match declaration %s on line %d",
		diag.ErrSignatureMismatch,
		e.Definition.Signature(), e.Definition.FirstToken().Line,
		e.Declaration.String(), e.Declaration.FirstToken().Line)
}

func (e *SignatureMismatchError) Span() diag.Span {
	return tokenSpan(e.Definition.Name.Ident.Token)
}

func (e *SignatureMismatchError) Unwrap() error { return diag.ErrSignatureMismatch }

// UnknownTypeError is a type name missing from the base type table
type UnknownTypeError struct {
	Type token.Token
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("parser error: %v: %s", diag.ErrUnknownType, e.Type.SourceRef())
}

func (e *UnknownTypeError) Span() diag.Span { return tokenSpan(e.Type) }
func (e *UnknownTypeError) Unwrap() error   { return diag.ErrUnknownType }
