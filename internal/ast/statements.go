package ast

import (
	"bytes"
	"strings"
)

// Statements is a sequence of statements, such as a function body or a case body.
// An empty sequence has First and Last set to the token where it would have started.
type Statements struct {
	Bounds
	List []Statement
}

func (s *Statements) String() string {
	var out bytes.Buffer
	for _, st := range s.List {
		out.WriteString(st.String())
		out.WriteString("\n")
	}
	return out.String()
}

// DeclareStatement: declare int x = 5;
type DeclareStatement struct {
	Bounds
	VarType *Type
	Name    *Name
	Value   Expression // optional
}

func (ds *DeclareStatement) statementNode()       {}
func (ds *DeclareStatement) declarationNode()     {}
func (ds *DeclareStatement) DeclaredName() string { return ds.Name.String() }

func (ds *DeclareStatement) String() string {
	if ds.Value != nil {
		return "declare " + ds.VarType.String() + " " + ds.Name.String() + " = " + ds.Value.String() + ";"
	}
	return "declare " + ds.VarType.String() + " " + ds.Name.String() + ";"
}

// ExpressionStatement wraps an assignment or increment used as a statement
type ExpressionStatement struct {
	Bounds
	Expression Expression
}

func (es *ExpressionStatement) statementNode()  {}
func (es *ExpressionStatement) String() string { return es.Expression.String() + ";" }

// FunctionCallStatement is a call whose result is discarded: f(x);
type FunctionCallStatement struct {
	Bounds
	Call *FunctionCallExpression
}

func (fs *FunctionCallStatement) statementNode()  {}
func (fs *FunctionCallStatement) String() string { return fs.Call.String() + ";" }

// IfThen is one condition and its branch, for either the "if" or an "elif"
type IfThen struct {
	Bounds
	Condition Expression
	Then      *Statements
}

func (it *IfThen) String() string {
	return "(" + it.Condition.String() + ") {\n" + it.Then.String() + "}"
}

// IfElseStatement: if (c) { ... } elif (d) { ... } else { ... }
type IfElseStatement struct {
	Bounds
	IfThens []*IfThen
	Else    *Statements // optional
}

func (is *IfElseStatement) statementNode() {}

func (is *IfElseStatement) String() string {
	var out bytes.Buffer
	for i, it := range is.IfThens {
		if i == 0 {
			out.WriteString("if ")
		} else {
			out.WriteString(" elif ")
		}
		out.WriteString(it.String())
	}
	if is.Else != nil {
		out.WriteString(" else {\n")
		out.WriteString(is.Else.String())
		out.WriteString("}")
	}
	return out.String()
}

// DoWhileStatement: do { ... } while (c)
type DoWhileStatement struct {
	Bounds
	Body      *Statements
	Condition Expression
}

func (dw *DoWhileStatement) statementNode() {}

func (dw *DoWhileStatement) String() string {
	return "do {\n" + dw.Body.String() + "} while (" + dw.Condition.String() + ")"
}

// WhileStatement: while (c) { ... }
type WhileStatement struct {
	Bounds
	Condition Expression
	Body      *Statements
}

func (ws *WhileStatement) statementNode() {}

func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") {\n" + ws.Body.String() + "}"
}

// ForInitialisation is the declaring form of a for-loop init clause: int i = 0
type ForInitialisation struct {
	Bounds
	VarType *Type
	Name    *Name
	Value   Expression // optional
}

func (fi *ForInitialisation) declarationNode()     {}
func (fi *ForInitialisation) DeclaredName() string { return fi.Name.String() }

func (fi *ForInitialisation) String() string {
	if fi.Value != nil {
		return fi.VarType.String() + " " + fi.Name.String() + " = " + fi.Value.String()
	}
	return fi.VarType.String() + " " + fi.Name.String()
}

// ForLoopStatement: for (init; condition; afterthought) { ... }
// Init is nil, a *ForInitialisation or an *AssignmentExpression.
// Condition and Afterthought may be nil.
type ForLoopStatement struct {
	Bounds
	Init         Node
	Condition    Expression
	Afterthought Expression
	Body         *Statements
}

func (fl *ForLoopStatement) statementNode() {}

func (fl *ForLoopStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fl.Init != nil {
		out.WriteString(fl.Init.String())
	}
	out.WriteString("; ")
	if fl.Condition != nil {
		out.WriteString(fl.Condition.String())
	}
	out.WriteString("; ")
	if fl.Afterthought != nil {
		out.WriteString(fl.Afterthought.String())
	}
	out.WriteString(") {\n")
	out.WriteString(fl.Body.String())
	out.WriteString("}")
	return out.String()
}

// CaseClause: case 1: ...
type CaseClause struct {
	Bounds
	Value Expression
	Body  *Statements
}

func (cc *CaseClause) String() string {
	return "case " + cc.Value.String() + ":\n" + cc.Body.String()
}

// DefaultClause: default: ...
type DefaultClause struct {
	Bounds
	Body *Statements
}

func (dc *DefaultClause) String() string { return "default:\n" + dc.Body.String() }

// SwitchStatement: switch (x) { case ...: ... default: ... }
type SwitchStatement struct {
	Bounds
	Subject Expression
	Cases   []*CaseClause
	Default *DefaultClause // optional
}

func (ss *SwitchStatement) statementNode() {}

func (ss *SwitchStatement) String() string {
	var out bytes.Buffer
	out.WriteString("switch (" + ss.Subject.String() + ") {\n")
	for _, c := range ss.Cases {
		out.WriteString(c.String())
	}
	if ss.Default != nil {
		out.WriteString(ss.Default.String())
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStatement: return x; or return;
type ReturnStatement struct {
	Bounds
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode() {}

func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

type BreakStatement struct {
	Bounds
}

func (bs *BreakStatement) statementNode()  {}
func (bs *BreakStatement) String() string { return "break;" }

type FallthroughStatement struct {
	Bounds
}

func (fs *FallthroughStatement) statementNode()  {}
func (fs *FallthroughStatement) String() string { return "fallthrough;" }

// ASMStatement is an inline assembly block of string lines
type ASMStatement struct {
	Bounds
	Lines []*String
}

func (as *ASMStatement) statementNode() {}

func (as *ASMStatement) String() string {
	parts := make([]string, 0, len(as.Lines))
	for _, l := range as.Lines {
		parts = append(parts, l.String())
	}
	if len(parts) == 0 {
		return "asm {}"
	}
	return "asm {\n" + strings.Join(parts, "\n") + "\n}"
}
