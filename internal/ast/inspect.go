package ast

// Inspect traverses the tree rooted at node depth-first, calling f for each
// node before its children. If f returns false the node's children are skipped.
// Only owned children are visited; declaration links are not followed.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range children(node) {
		Inspect(c, f)
	}
}

func children(node Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, n := range ns {
			if n != nil && !isNilNode(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.FunctionDeclarations {
			add(d)
		}
		for _, d := range n.GlobalDeclarations {
			add(d)
		}
		for _, d := range n.FunctionDefinitions {
			add(d)
		}
	case *Name:
		add(n.Ident)
	case *Type:
		add(n.Ident)
	case *SignatureArgument:
		add(n.Type, n.Name)
	case *FunctionDeclaration:
		add(n.ReturnType, n.Name)
		for _, a := range n.Arguments {
			add(a)
		}
	case *FunctionDefinition:
		add(n.ReturnType, n.Name)
		for _, a := range n.Arguments {
			add(a)
		}
		add(n.Body)
	case *Statements:
		for _, s := range n.List {
			add(s)
		}
	case *DeclareStatement:
		add(n.VarType, n.Name, n.Value)
	case *ExpressionStatement:
		add(n.Expression)
	case *FunctionCallStatement:
		add(n.Call)
	case *IfElseStatement:
		for _, it := range n.IfThens {
			add(it)
		}
		add(n.Else)
	case *IfThen:
		add(n.Condition, n.Then)
	case *DoWhileStatement:
		add(n.Body, n.Condition)
	case *WhileStatement:
		add(n.Condition, n.Body)
	case *ForInitialisation:
		add(n.VarType, n.Name, n.Value)
	case *ForLoopStatement:
		add(n.Init, n.Condition, n.Afterthought, n.Body)
	case *SwitchStatement:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c)
		}
		add(n.Default)
	case *CaseClause:
		add(n.Value, n.Body)
	case *DefaultClause:
		add(n.Body)
	case *ReturnStatement:
		add(n.Value)
	case *ASMStatement:
		for _, l := range n.Lines {
			add(l)
		}
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *ParenExpression:
		add(n.Inner)
	case *AssignmentExpression:
		add(n.Target, n.Value)
	case *IncrementExpression:
		add(n.Target)
	case *VariableAccessExpression:
		add(n.Name)
	case *ArrayAccessExpression:
		add(n.Array)
		for _, ix := range n.Indices {
			add(ix)
		}
	case *FunctionCallExpression:
		add(n.Function)
		for _, a := range n.Arguments {
			add(a)
		}
	}
	return out
}

// isNilNode catches typed nil pointers stored in optional fields.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Statements:
		return v == nil
	case *DefaultClause:
		return v == nil
	case *Type:
		return v == nil
	case *Name:
		return v == nil
	case *Ident:
		return v == nil
	}
	return false
}
