package parser

import (
	"io"
	"log/slog"
	"strings"

	"github.com/MarkProvanP/mips-toy-lang/internal/ast"
	"github.com/MarkProvanP/mips-toy-lang/internal/lexer"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// Parser is a cursor over a fully lexed token sequence
type Parser struct {
	tokens []token.Token
	pos    int         // Index of the current token
	eoi    token.Token // Returned once the cursor runs off the end

	log     *slog.Logger
	lexOpts []lexer.Option
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sends the production trace to log at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithLexerOptions passes opts to the lexer when parsing source text.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(p *Parser) { p.lexOpts = append(p.lexOpts, opts...) }
}

// New creates a parser over tokens, which must not include the EOI sentinel.
func New(tokens []token.Token, opts ...Option) *Parser {
	eoi := token.EOIAt(1, 1)
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		eoi = token.EOIAt(last.Line, last.CharEnd+1)
	}
	return newParser(tokens, eoi, opts)
}

func newParser(tokens []token.Token, eoi token.Token, opts []Option) *Parser {
	p := &Parser{
		tokens: tokens,
		eoi:    eoi,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram parses an already lexed token sequence.
func ParseProgram(tokens []token.Token, opts ...Option) (*ast.Program, error) {
	return New(tokens, opts...).ParseProgram()
}

// ParseString lexes and parses src.
func ParseString(src string, opts ...Option) (*ast.Program, error) {
	return ParseReader(strings.NewReader(src), opts...)
}

// ParseReader lexes all of r, then parses the resulting tokens.
func ParseReader(r io.Reader, opts ...Option) (*ast.Program, error) {
	p := newParser(nil, token.Token{}, opts)
	l := lexer.New(r, append([]lexer.Option{lexer.WithLogger(p.log)}, p.lexOpts...)...)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.IsEOI() {
			p.eoi = tok
			break
		}
		p.tokens = append(p.tokens, tok)
	}
	return p.ParseProgram()
}

// Current returns the token under the cursor, or EOI past the end.
func (p *Parser) Current() token.Token {
	return p.Peek(0)
}

// Advance moves past the current token. It does nothing at the end.
func (p *Parser) Advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Peek looks n tokens ahead of the cursor without moving it.
func (p *Parser) Peek(n int) token.Token {
	i := p.pos + n
	if i < 0 || i >= len(p.tokens) {
		return p.eoi
	}
	return p.tokens[i]
}

// Expect consumes and returns the current token if it has type t.
func (p *Parser) Expect(t token.TokenType) (token.Token, error) {
	cur := p.Current()
	if cur.Type != t {
		return cur, &WrongTokenError{Got: cur, Expected: describe(t)}
	}
	p.Advance()
	return cur, nil
}

// curTokenIs checks if current token matches
func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.Current().Type == t
}

// peekTokenIs checks the token n places ahead
func (p *Parser) peekTokenIs(n int, t token.TokenType) bool {
	return p.Peek(n).Type == t
}

func (p *Parser) trace(production string) {
	cur := p.Current()
	p.log.Debug("parse", "production", production, "line", cur.Line, "char", cur.CharStart, "token", cur.String())
}

// describe names a token type the way a reader would write it
func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.EOI:
		return "end of input"
	case token.UNARY_OP:
		return `"++" or "--"`
	}
	if _, ok := token.LookupPunctuation(string(t)); ok {
		return `"` + string(t) + `"`
	}
	return strings.ToLower(string(t))
}
