package parser

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/scope"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// parseExpression parses a full binary expression tree
func (p *Parser) parseExpression(env *scope.Environment) (ast.Expression, error) {
	return p.parseBinary(1, env)
}

// parseBinary is Fraser-Hanson precedence climbing. Starting at the current
// operator's precedence and working down to k, it folds every operator at
// exactly that level left to right, parsing each right operand one level up.
func (p *Parser) parseBinary(k int, env *scope.Environment) (ast.Expression, error) {
	left, err := p.parsePrimary(env)
	if err != nil {
		return nil, err
	}

	for i := p.Current().Precedence(); i >= k; i-- {
		for p.Current().Precedence() == i {
			operator := p.Current()
			p.Advance()
			right, err := p.parseBinary(i+1, env)
			if err != nil {
				return nil, xerrors.Errorf("while parsing right operand of %s: %w", operator.SourceRef(), err)
			}
			left = &ast.BinaryExpression{Left: left, Operator: operator, Right: right}
		}
	}
	return left, nil
}

// parsePrimary parses a single-valued term. An identifier is disambiguated
// by the token after it.
func (p *Parser) parsePrimary(env *scope.Environment) (ast.Expression, error) {
	cur := p.Current()
	switch {
	case cur.Type.IsNumber():
		p.Advance()
		return &ast.Number{Token: cur}, nil
	case cur.Type == token.IDENT:
		switch p.Peek(1).Type {
		case token.LBRACKET:
			return p.parseArrayAccess(env)
		case token.LPAREN:
			return p.parseCall(env)
		case token.ASSIGN:
			return p.parseAssignment(env)
		}
		return p.parseVariableAccess(env)
	case cur.Type == token.BOOL:
		p.Advance()
		return &ast.Bool{Token: cur}, nil
	case cur.Type == token.CHAR:
		p.Advance()
		return &ast.Char{Token: cur}, nil
	case cur.Type == token.STRING:
		p.Advance()
		return &ast.String{Token: cur}, nil
	case cur.Type == token.LPAREN:
		return p.parseParen(env)
	}
	return nil, &WrongTokenError{Got: cur, Expected: "expression"}
}

func (p *Parser) parseParen(env *scope.Environment) (ast.Expression, error) {
	first, err := p.Expect(token.LPAREN)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing parenthesised expression: %w", err)
	}
	last, err := p.Expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.ParenExpression{Bounds: ast.Bounds{First: first, Last: last}, Inner: inner}, nil
}

func (p *Parser) parseVariableAccess(env *scope.Environment) (ast.Expression, error) {
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl, err := resolveVariable(env, name)
	if err != nil {
		return nil, err
	}
	return &ast.VariableAccessExpression{Name: &ast.Ident{Token: name}, Declaration: decl}, nil
}

func (p *Parser) parseArrayAccess(env *scope.Environment) (ast.Expression, error) {
	p.trace("ArrayAccessExpression")
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl, err := resolveVariable(env, name)
	if err != nil {
		return nil, err
	}

	expr := &ast.ArrayAccessExpression{Array: &ast.Ident{Token: name}, Declaration: decl}
	expr.First = name
	for p.curTokenIs(token.LBRACKET) {
		p.Advance()
		index, err := p.parseExpression(env)
		if err != nil {
			return nil, xerrors.Errorf("while parsing array index number %d: %w", len(expr.Indices)+1, err)
		}
		expr.Indices = append(expr.Indices, index)
		if expr.Last, err = p.Expect(token.RBRACKET); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) parseCall(env *scope.Environment) (*ast.FunctionCallExpression, error) {
	p.trace("FunctionCallExpression")
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl, err := resolveFunction(env, name)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}

	call := &ast.FunctionCallExpression{Function: &ast.Ident{Token: name}, Declaration: decl}
	call.First = name
	if !p.curTokenIs(token.RPAREN) {
		for {
			arg, err := p.parseExpression(env)
			if err != nil {
				return nil, xerrors.Errorf("while parsing call argument number %d: %w", len(call.Arguments)+1, err)
			}
			call.Arguments = append(call.Arguments, arg)
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.Advance()
		}
	}
	if call.Last, err = p.Expect(token.RPAREN); err != nil {
		return nil, err
	}

	if len(call.Arguments) != len(decl.Arguments) {
		return nil, &ResolveError{
			Kind:     diag.ErrArityMismatch,
			Name:     name,
			Previous: decl,
			Detail:   fmt.Sprintf("expected %d arguments but got %d", len(decl.Arguments), len(call.Arguments)),
		}
	}
	return call, nil
}

func (p *Parser) parseAssignment(env *scope.Environment) (*ast.AssignmentExpression, error) {
	p.trace("AssignmentExpression")
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl, err := resolveVariable(env, name)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing value assigned to %s: %w", name.Literal, err)
	}
	return &ast.AssignmentExpression{
		Bounds:      ast.Bounds{First: name, Last: value.LastToken()},
		Target:      &ast.Ident{Token: name},
		Value:       value,
		Declaration: decl,
	}, nil
}

func (p *Parser) parseIncrement(env *scope.Environment) (*ast.IncrementExpression, error) {
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl, err := resolveVariable(env, name)
	if err != nil {
		return nil, err
	}
	op, err := p.Expect(token.UNARY_OP)
	if err != nil {
		return nil, err
	}
	return &ast.IncrementExpression{
		Bounds:      ast.Bounds{First: name, Last: op},
		Target:      &ast.Ident{Token: name},
		Operator:    op,
		Declaration: decl,
	}, nil
}

// resolveVariable finds the declaration a variable use refers to
func resolveVariable(env *scope.Environment, name token.Token) (ast.Declaration, error) {
	decl, ok := env.Lookup(name.Literal)
	if !ok {
		return nil, &ResolveError{Kind: diag.ErrUseBeforeDeclare, Name: name, Detail: "variable used before it was declared"}
	}
	if ast.IsFunction(decl) {
		return nil, &ResolveError{Kind: diag.ErrKindMismatch, Name: name, Previous: decl, Detail: "function used as a variable"}
	}
	return decl, nil
}

// resolveFunction finds the declaration a call refers to
func resolveFunction(env *scope.Environment, name token.Token) (*ast.FunctionDeclaration, error) {
	decl, ok := env.Lookup(name.Literal)
	if !ok {
		return nil, &ResolveError{Kind: diag.ErrUseBeforeDeclare, Name: name, Detail: "function called before it was declared"}
	}
	fn, ok := decl.(*ast.FunctionDeclaration)
	if !ok {
		return nil, &ResolveError{Kind: diag.ErrKindMismatch, Name: name, Previous: decl, Detail: "variable called as a function"}
	}
	return fn, nil
}
