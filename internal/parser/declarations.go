package parser

import (
	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/scope"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
	"github.com/MarkProvanP/mips-toy-lang/internal/typesys"
)

// ParseProgram parses all leading declarations, then the function definitions.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.trace("Program")
	prog := &ast.Program{}
	env := scope.New()
	first := p.Current()

	for p.curTokenIs(token.DECLARE) {
		if p.peekTokenIs(1, token.FUNCTION) {
			decl, err := p.parseFunctionDeclaration()
			if err != nil {
				return nil, xerrors.Errorf("while parsing function declaration number %d: %w",
					len(prog.FunctionDeclarations)+1, err)
			}
			if env, err = bind(env, decl.Name, decl); err != nil {
				return nil, xerrors.Errorf("while parsing function declaration number %d: %w",
					len(prog.FunctionDeclarations)+1, err)
			}
			decl.Index = len(prog.FunctionDeclarations)
			decl.DefinitionIndex = -1
			prog.FunctionDeclarations = append(prog.FunctionDeclarations, decl)
			continue
		}
		stmt, next, err := p.parseDeclareStatement(env)
		if err != nil {
			return nil, xerrors.Errorf("while parsing global variable declaration number %d: %w",
				len(prog.GlobalDeclarations)+1, err)
		}
		prog.GlobalDeclarations = append(prog.GlobalDeclarations, stmt)
		env = next
	}
	p.log.Debug("declarations parsed", "names", env.Names())

	for !p.Current().IsEOI() {
		if !p.curTokenIs(token.FUNCTION) {
			return nil, &WrongTokenError{Got: p.Current(), Expected: describe(token.FUNCTION)}
		}
		if err := p.parseFunctionDefinition(env, prog); err != nil {
			return nil, xerrors.Errorf("while parsing function definition number %d: %w",
				len(prog.FunctionDefinitions)+1, err)
		}
	}

	prog.SetBounds(first, p.Peek(-1))
	return prog, nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	p.trace("FunctionDeclaration")
	first, err := p.Expect(token.DECLARE)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.FUNCTION); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, xerrors.Errorf("while parsing return type: %w", err)
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	last, err := p.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		Bounds:          ast.Bounds{First: first, Last: last},
		ReturnType:      ret,
		Name:            name,
		Arguments:       args,
		DefinitionIndex: -1,
	}, nil
}

// parseFunctionDefinition parses a body for a declared function and links
// the two together in prog.
func (p *Parser) parseFunctionDefinition(env *scope.Environment, prog *ast.Program) error {
	p.trace("FunctionDefinition")
	first, err := p.Expect(token.FUNCTION)
	if err != nil {
		return err
	}
	ret, err := p.parseType()
	if err != nil {
		return xerrors.Errorf("while parsing return type: %w", err)
	}
	name, err := p.parseName()
	if err != nil {
		return err
	}

	prev, ok := env.Lookup(name.String())
	if !ok {
		return &ResolveError{Kind: diag.ErrDefineWithoutDeclare, Name: name.Ident.Token, Detail: "function defined without a declaration"}
	}
	decl, ok := prev.(*ast.FunctionDeclaration)
	if !ok {
		return &ResolveError{Kind: diag.ErrKindMismatch, Name: name.Ident.Token, Previous: prev, Detail: "variable defined as a function"}
	}
	if earlier, ok := prog.DefinitionOf(decl); ok {
		return &ResolveError{Kind: diag.ErrRepeatedDefinition, Name: name.Ident.Token, Previous: earlier, Detail: "function defined twice"}
	}

	args, err := p.parseSignature()
	if err != nil {
		return err
	}
	def := &ast.FunctionDefinition{
		ReturnType:       ret,
		Name:             name,
		Arguments:        args,
		DeclarationIndex: decl.Index,
	}
	def.First = first
	if !decl.SignatureEqual(def) {
		return &SignatureMismatchError{Declaration: decl, Definition: def}
	}

	// parameters and the top level of the body share one scope
	fnEnv := env.Enter()
	for _, arg := range args {
		if fnEnv, err = bind(fnEnv, arg.Name, arg); err != nil {
			return xerrors.Errorf("while binding parameters: %w", err)
		}
	}
	if _, err := p.Expect(token.LBRACE); err != nil {
		return err
	}
	if def.Body, err = p.parseStatements(fnEnv); err != nil {
		return err
	}
	if def.Last, err = p.Expect(token.RBRACE); err != nil {
		return err
	}

	decl.DefinitionIndex = len(prog.FunctionDefinitions)
	prog.FunctionDefinitions = append(prog.FunctionDefinitions, def)
	return nil
}

// parseSignature parses "( Type Name, ... )"
func (p *Parser) parseSignature() (ast.SignatureArguments, error) {
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args ast.SignatureArguments
	if !p.curTokenIs(token.RPAREN) {
		for {
			typ, err := p.parseType()
			if err != nil {
				return nil, xerrors.Errorf("while parsing signature argument number %d: %w", len(args)+1, err)
			}
			name, err := p.parseName()
			if err != nil {
				return nil, xerrors.Errorf("while parsing signature argument number %d: %w", len(args)+1, err)
			}
			args = append(args, &ast.SignatureArgument{Type: typ, Name: name})
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.Advance()
		}
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseType parses a base type name followed by any number of "[]"
func (p *Parser) parseType() (*ast.Type, error) {
	name := p.Current()
	if name.Type != token.IDENT {
		return nil, &WrongTokenError{Got: name, Expected: "type name"}
	}
	base, ok := typesys.Lookup(name.Literal)
	if !ok {
		return nil, &UnknownTypeError{Type: name}
	}
	p.Advance()

	typ := &ast.Type{Bounds: ast.Bounds{First: name, Last: name}, Ident: &ast.Ident{Token: name}, Base: base}
	for p.curTokenIs(token.LBRACKET) {
		p.Advance()
		last, err := p.Expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		typ.Last = last
		typ.Dims++
	}
	return typ, nil
}

func (p *Parser) parseName() (*ast.Name, error) {
	name, err := p.Expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.Name{Ident: &ast.Ident{Token: name}}, nil
}

// bind extends env with d, reporting a clash at the new name's position
func bind(env *scope.Environment, name *ast.Name, d ast.Declaration) (*scope.Environment, error) {
	next, err := env.Extend(name.String(), d)
	if err != nil {
		var redeclared *scope.RedeclaredError
		if xerrors.As(err, &redeclared) {
			return env, &ResolveError{
				Kind:     diag.ErrRepeatedDeclaration,
				Name:     name.Ident.Token,
				Previous: redeclared.Previous,
				Detail:   "name declared twice in the same scope",
			}
		}
		return env, err
	}
	return next, nil
}
