package parser

import (
	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/scope"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// parseStatements parses statements for as long as one can start.
// Each statement sees the environment left by the one before it.
func (p *Parser) parseStatements(env *scope.Environment) (*ast.Statements, error) {
	start := p.Current()
	stmts := &ast.Statements{Bounds: ast.Bounds{First: start, Last: start}}
	for p.Current().Type.IsStatementStart() {
		stmt, next, err := p.parseStatement(env)
		if err != nil {
			return nil, xerrors.Errorf("while parsing statement number %d: %w", len(stmts.List)+1, err)
		}
		stmts.List = append(stmts.List, stmt)
		env = next
	}
	if n := len(stmts.List); n > 0 {
		stmts.First = stmts.List[0].FirstToken()
		stmts.Last = stmts.List[n-1].LastToken()
	}
	return stmts, nil
}

// parseBlock parses "{ statements }" in a nested scope
func (p *Parser) parseBlock(env *scope.Environment) (*ast.Statements, token.Token, error) {
	if _, err := p.Expect(token.LBRACE); err != nil {
		return nil, token.Token{}, err
	}
	body, err := p.parseStatements(env.Enter())
	if err != nil {
		return nil, token.Token{}, err
	}
	last, err := p.Expect(token.RBRACE)
	if err != nil {
		return nil, token.Token{}, err
	}
	return body, last, nil
}

// parseStatement returns the statement and the environment in effect after it
func (p *Parser) parseStatement(env *scope.Environment) (ast.Statement, *scope.Environment, error) {
	switch p.Current().Type {
	case token.IDENT:
		stmt, err := p.parseIdentStatement(env)
		return stmt, env, err
	case token.IF:
		stmt, err := p.parseIfElseStatement(env)
		return stmt, env, annotate("if statement", err)
	case token.DO:
		stmt, err := p.parseDoWhileStatement(env)
		return stmt, env, annotate("do-while statement", err)
	case token.WHILE:
		stmt, err := p.parseWhileStatement(env)
		return stmt, env, annotate("while statement", err)
	case token.FOR:
		stmt, next, err := p.parseForLoopStatement(env)
		return stmt, next, annotate("for loop statement", err)
	case token.RETURN:
		stmt, err := p.parseReturnStatement(env)
		return stmt, env, annotate("return statement", err)
	case token.DECLARE:
		stmt, next, err := p.parseDeclareStatement(env)
		return stmt, next, annotate("declare statement", err)
	case token.SWITCH:
		stmt, err := p.parseSwitchStatement(env)
		return stmt, env, annotate("switch statement", err)
	case token.BREAK:
		stmt, err := p.parseBreakStatement()
		return stmt, env, err
	case token.FALLTHROUGH:
		stmt, err := p.parseFallthroughStatement()
		return stmt, env, err
	case token.ASM:
		stmt, err := p.parseASMStatement()
		return stmt, env, annotate("asm statement", err)
	}
	return nil, env, &WrongTokenError{Got: p.Current(), Expected: "statement"}
}

func annotate(what string, err error) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf("while parsing %s: %w", what, err)
}

// parseIdentStatement handles the statements that begin with a name:
// calls, assignments and increments
func (p *Parser) parseIdentStatement(env *scope.Environment) (ast.Statement, error) {
	switch p.Peek(1).Type {
	case token.LPAREN:
		p.trace("FunctionCallStatement")
		call, err := p.parseCall(env)
		if err != nil {
			return nil, err
		}
		last, err := p.Expect(token.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCallStatement{Bounds: ast.Bounds{First: call.First, Last: last}, Call: call}, nil
	case token.ASSIGN, token.UNARY_OP:
		p.trace("ExpressionStatement")
		var expr ast.Expression
		var err error
		if p.peekTokenIs(1, token.ASSIGN) {
			expr, err = p.parseExpression(env)
		} else {
			expr, err = p.parseIncrement(env)
		}
		if err != nil {
			return nil, err
		}
		last, err := p.Expect(token.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Bounds: ast.Bounds{First: expr.FirstToken(), Last: last}, Expression: expr}, nil
	}
	return nil, &WrongTokenError{Got: p.Peek(1), Expected: `"(", "=" or an increment after ` + p.Current().Literal}
}

func (p *Parser) parseDeclareStatement(env *scope.Environment) (*ast.DeclareStatement, *scope.Environment, error) {
	p.trace("DeclareStatement")
	first, err := p.Expect(token.DECLARE)
	if err != nil {
		return nil, env, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, env, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, env, err
	}

	stmt := &ast.DeclareStatement{VarType: typ, Name: name}
	stmt.First = first
	if p.curTokenIs(token.ASSIGN) {
		p.Advance()
		// the name is not yet visible in its own initialiser
		if stmt.Value, err = p.parseExpression(env); err != nil {
			return nil, env, xerrors.Errorf("while parsing initial value of %s: %w", name, err)
		}
	}
	if stmt.Last, err = p.Expect(token.SEMICOLON); err != nil {
		return nil, env, err
	}

	next, err := bind(env, name, stmt)
	if err != nil {
		return nil, env, err
	}
	return stmt, next, nil
}

func (p *Parser) parseIfElseStatement(env *scope.Environment) (*ast.IfElseStatement, error) {
	p.trace("IfElseStatement")
	first, err := p.Expect(token.IF)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfElseStatement{}
	stmt.First = first

	ifThen, err := p.parseIfThen(env, first)
	if err != nil {
		return nil, err
	}
	stmt.IfThens = append(stmt.IfThens, ifThen)

	for p.curTokenIs(token.ELIF) {
		kw := p.Current()
		p.Advance()
		ifThen, err := p.parseIfThen(env, kw)
		if err != nil {
			return nil, xerrors.Errorf("while parsing elif number %d: %w", len(stmt.IfThens), err)
		}
		stmt.IfThens = append(stmt.IfThens, ifThen)
	}
	stmt.Last = stmt.IfThens[len(stmt.IfThens)-1].Last

	if !p.curTokenIs(token.ELSE) {
		if !p.canFollowIf() {
			return nil, &WrongTokenError{Got: p.Current(), Expected: `"else"`}
		}
		return stmt, nil
	}
	p.Advance()
	if stmt.Else, stmt.Last, err = p.parseBlock(env); err != nil {
		return nil, xerrors.Errorf("while parsing else branch: %w", err)
	}
	return stmt, nil
}

// canFollowIf reports whether an if without an else may end here
func (p *Parser) canFollowIf() bool {
	switch cur := p.Current(); {
	case cur.Type.IsStatementStart():
		return true
	case cur.Type == token.RBRACE, cur.Type == token.CASE, cur.Type == token.DEFAULT, cur.IsEOI():
		return true
	}
	return false
}

func (p *Parser) parseIfThen(env *scope.Environment, kw token.Token) (*ast.IfThen, error) {
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing condition: %w", err)
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, last, err := p.parseBlock(env)
	if err != nil {
		return nil, err
	}
	return &ast.IfThen{Bounds: ast.Bounds{First: kw, Last: last}, Condition: cond, Then: then}, nil
}

func (p *Parser) parseDoWhileStatement(env *scope.Environment) (*ast.DoWhileStatement, error) {
	p.trace("DoWhileStatement")
	first, err := p.Expect(token.DO)
	if err != nil {
		return nil, err
	}
	body, _, err := p.parseBlock(env)
	if err != nil {
		return nil, err
	}
	for _, t := range []token.TokenType{token.WHILE, token.LPAREN} {
		if _, err := p.Expect(t); err != nil {
			return nil, err
		}
	}
	cond, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing condition: %w", err)
	}
	last, err := p.Expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(token.SEMICOLON) {
		last = p.Current()
		p.Advance()
	}
	return &ast.DoWhileStatement{Bounds: ast.Bounds{First: first, Last: last}, Body: body, Condition: cond}, nil
}

func (p *Parser) parseWhileStatement(env *scope.Environment) (*ast.WhileStatement, error) {
	p.trace("WhileStatement")
	first, err := p.Expect(token.WHILE)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing condition: %w", err)
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, last, err := p.parseBlock(env)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Bounds: ast.Bounds{First: first, Last: last}, Condition: cond, Body: body}, nil
}

// parseForLoopStatement returns the environment extended with the loop's
// declared variable, if it has one. The variable stays in scope after the loop.
func (p *Parser) parseForLoopStatement(env *scope.Environment) (*ast.ForLoopStatement, *scope.Environment, error) {
	p.trace("ForLoopStatement")
	first, err := p.Expect(token.FOR)
	if err != nil {
		return nil, env, err
	}
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, env, err
	}

	stmt := &ast.ForLoopStatement{}
	stmt.First = first

	forEnv := env
	switch {
	case p.curTokenIs(token.SEMICOLON):
	case p.curTokenIs(token.IDENT) && p.peekTokenIs(1, token.ASSIGN):
		if stmt.Init, err = p.parseAssignment(env); err != nil {
			return nil, env, xerrors.Errorf("while parsing initialisation: %w", err)
		}
	default:
		decl, next, err := p.parseForInitialisation(env)
		if err != nil {
			return nil, env, xerrors.Errorf("while parsing initialisation: %w", err)
		}
		stmt.Init, forEnv = decl, next
	}
	if _, err := p.Expect(token.SEMICOLON); err != nil {
		return nil, env, err
	}

	if !p.curTokenIs(token.SEMICOLON) {
		if stmt.Condition, err = p.parseExpression(forEnv); err != nil {
			return nil, env, xerrors.Errorf("while parsing condition: %w", err)
		}
	}
	if _, err := p.Expect(token.SEMICOLON); err != nil {
		return nil, env, err
	}

	if !p.curTokenIs(token.RPAREN) {
		if stmt.Afterthought, err = p.parseAfterthought(forEnv); err != nil {
			return nil, env, xerrors.Errorf("while parsing afterthought: %w", err)
		}
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, env, err
	}

	if stmt.Body, stmt.Last, err = p.parseBlock(forEnv); err != nil {
		return nil, env, err
	}
	return stmt, forEnv, nil
}

func (p *Parser) parseForInitialisation(env *scope.Environment) (*ast.ForInitialisation, *scope.Environment, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, env, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, env, err
	}
	fi := &ast.ForInitialisation{
		Bounds:  ast.Bounds{First: typ.First, Last: name.LastToken()},
		VarType: typ,
		Name:    name,
	}
	if p.curTokenIs(token.ASSIGN) {
		p.Advance()
		if fi.Value, err = p.parseExpression(env); err != nil {
			return nil, env, err
		}
		fi.Last = fi.Value.LastToken()
	}
	next, err := bind(env, name, fi)
	if err != nil {
		return nil, env, err
	}
	return fi, next, nil
}

// parseAfterthought accepts an assignment, an increment or a call
func (p *Parser) parseAfterthought(env *scope.Environment) (ast.Expression, error) {
	if p.curTokenIs(token.IDENT) {
		switch p.Peek(1).Type {
		case token.ASSIGN:
			return p.parseAssignment(env)
		case token.UNARY_OP:
			return p.parseIncrement(env)
		case token.LPAREN:
			return p.parseCall(env)
		}
	}
	return nil, &WrongTokenError{Got: p.Current(), Expected: "assignment, increment or call"}
}

func (p *Parser) parseReturnStatement(env *scope.Environment) (*ast.ReturnStatement, error) {
	p.trace("ReturnStatement")
	first, err := p.Expect(token.RETURN)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStatement{}
	stmt.First = first
	if !p.curTokenIs(token.SEMICOLON) {
		if stmt.Value, err = p.parseExpression(env); err != nil {
			return nil, err
		}
	}
	if stmt.Last, err = p.Expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseBreakStatement() (*ast.BreakStatement, error) {
	first, err := p.Expect(token.BREAK)
	if err != nil {
		return nil, err
	}
	last, err := p.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.BreakStatement{Bounds: ast.Bounds{First: first, Last: last}}, nil
}

func (p *Parser) parseFallthroughStatement() (*ast.FallthroughStatement, error) {
	first, err := p.Expect(token.FALLTHROUGH)
	if err != nil {
		return nil, err
	}
	last, err := p.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.FallthroughStatement{Bounds: ast.Bounds{First: first, Last: last}}, nil
}

func (p *Parser) parseSwitchStatement(env *scope.Environment) (*ast.SwitchStatement, error) {
	p.trace("SwitchStatement")
	first, err := p.Expect(token.SWITCH)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(env)
	if err != nil {
		return nil, xerrors.Errorf("while parsing switch expression: %w", err)
	}
	for _, t := range []token.TokenType{token.RPAREN, token.LBRACE} {
		if _, err := p.Expect(t); err != nil {
			return nil, err
		}
	}

	stmt := &ast.SwitchStatement{Subject: subject}
	stmt.First = first
	for p.curTokenIs(token.CASE) {
		c, err := p.parseCaseClause(env)
		if err != nil {
			return nil, xerrors.Errorf("while parsing case number %d: %w", len(stmt.Cases)+1, err)
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if p.curTokenIs(token.DEFAULT) {
		if stmt.Default, err = p.parseDefaultClause(env); err != nil {
			return nil, xerrors.Errorf("while parsing default case: %w", err)
		}
	}
	if stmt.Last, err = p.Expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCaseClause(env *scope.Environment) (*ast.CaseClause, error) {
	first, err := p.Expect(token.CASE)
	if err != nil {
		return nil, err
	}
	value, err := p.parsePrimary(env)
	if err != nil {
		return nil, err
	}
	colon, err := p.Expect(token.COLON)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatements(env.Enter())
	if err != nil {
		return nil, err
	}
	return &ast.CaseClause{Bounds: ast.Bounds{First: first, Last: clauseEnd(body, colon)}, Value: value, Body: body}, nil
}

func (p *Parser) parseDefaultClause(env *scope.Environment) (*ast.DefaultClause, error) {
	first, err := p.Expect(token.DEFAULT)
	if err != nil {
		return nil, err
	}
	colon, err := p.Expect(token.COLON)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatements(env.Enter())
	if err != nil {
		return nil, err
	}
	return &ast.DefaultClause{Bounds: ast.Bounds{First: first, Last: clauseEnd(body, colon)}, Body: body}, nil
}

func clauseEnd(body *ast.Statements, colon token.Token) token.Token {
	if len(body.List) == 0 {
		return colon
	}
	return body.Last
}

func (p *Parser) parseASMStatement() (*ast.ASMStatement, error) {
	p.trace("ASMStatement")
	first, err := p.Expect(token.ASM)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.LBRACE); err != nil {
		return nil, err
	}
	stmt := &ast.ASMStatement{}
	stmt.First = first
	for p.curTokenIs(token.STRING) {
		stmt.Lines = append(stmt.Lines, &ast.String{Token: p.Current()})
		p.Advance()
	}
	if stmt.Last, err = p.Expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmt, nil
}
