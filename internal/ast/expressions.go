package ast

import (
	"bytes"

	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// BinaryExpression: left operator right
// Operator precedence has already been applied by the parser
type BinaryExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (be *BinaryExpression) expressionNode()         {}
func (be *BinaryExpression) TokenLiteral() string    { return be.Operator.Literal }
func (be *BinaryExpression) FirstToken() token.Token { return be.Left.FirstToken() }
func (be *BinaryExpression) LastToken() token.Token  { return be.Right.LastToken() }

func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator.Literal + " " + be.Right.String() + ")"
}

// ParenExpression is an expression grouped with parentheses
type ParenExpression struct {
	Bounds
	Inner Expression
}

func (pe *ParenExpression) expressionNode() {}

// String does not double the parentheses a binary expression already prints.
func (pe *ParenExpression) String() string {
	if _, ok := pe.Inner.(*BinaryExpression); ok {
		return pe.Inner.String()
	}
	return "(" + pe.Inner.String() + ")"
}

// AssignmentExpression: x = value
type AssignmentExpression struct {
	Bounds
	Target      *Ident
	Value       Expression
	Declaration Declaration // what Target resolved to
}

func (ae *AssignmentExpression) expressionNode() {}
func (ae *AssignmentExpression) String() string {
	return ae.Target.String() + " = " + ae.Value.String()
}

// IncrementExpression: x++ or x--
type IncrementExpression struct {
	Bounds
	Target      *Ident
	Operator    token.Token
	Declaration Declaration
}

func (ie *IncrementExpression) expressionNode() {}
func (ie *IncrementExpression) String() string  { return ie.Target.String() + ie.Operator.Literal }

// Decrement reports whether this is the "--" form.
func (ie *IncrementExpression) Decrement() bool { return ie.Operator.Literal == "--" }

// VariableAccessExpression is a use of a declared variable
type VariableAccessExpression struct {
	Name        *Ident
	Declaration Declaration
}

func (va *VariableAccessExpression) expressionNode()         {}
func (va *VariableAccessExpression) TokenLiteral() string    { return va.Name.Token.Literal }
func (va *VariableAccessExpression) FirstToken() token.Token { return va.Name.Token }
func (va *VariableAccessExpression) LastToken() token.Token  { return va.Name.Token }
func (va *VariableAccessExpression) String() string          { return va.Name.String() }

// ArrayAccessExpression: name[i][j]
type ArrayAccessExpression struct {
	Bounds
	Array       *Ident
	Indices     []Expression
	Declaration Declaration
}

func (aa *ArrayAccessExpression) expressionNode() {}

func (aa *ArrayAccessExpression) String() string {
	var out bytes.Buffer
	out.WriteString(aa.Array.String())
	for _, ix := range aa.Indices {
		out.WriteString("[")
		out.WriteString(ix.String())
		out.WriteString("]")
	}
	return out.String()
}

// FunctionCallExpression: add(1, 2)
type FunctionCallExpression struct {
	Bounds
	Function    *Ident
	Arguments   []Expression
	Declaration *FunctionDeclaration
}

func (fc *FunctionCallExpression) expressionNode() {}

func (fc *FunctionCallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(fc.Function.String())
	out.WriteString("(")
	for i, a := range fc.Arguments {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}
