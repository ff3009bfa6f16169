package ast

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/token"
	"github.com/MarkProvanP/mips-toy-lang/internal/typesys"
)

// Literal is an expression whose value is written in the source
type Literal interface {
	Expression
	Type() typesys.Base
}

// Bool represents true or false
type Bool struct {
	Token token.Token
}

func (b *Bool) expressionNode()         {}
func (b *Bool) TokenLiteral() string    { return b.Token.Literal }
func (b *Bool) FirstToken() token.Token { return b.Token }
func (b *Bool) LastToken() token.Token  { return b.Token }
func (b *Bool) String() string          { return b.Token.Literal }
func (b *Bool) Type() typesys.Base      { return typesys.Bool }
func (b *Bool) Eval() bool              { return b.Token.Literal == "true" }

// Number represents any of the integer literal forms: 0b101, 0o17, 42, 0x1F, -7
type Number struct {
	Token token.Token
}

func (n *Number) expressionNode()         {}
func (n *Number) TokenLiteral() string    { return n.Token.Literal }
func (n *Number) FirstToken() token.Token { return n.Token }
func (n *Number) LastToken() token.Token  { return n.Token }
func (n *Number) String() string          { return n.Token.Literal }

// Type is int for signed literals and uint for everything else.
func (n *Number) Type() typesys.Base {
	if n.Token.Type == token.INT_BASE10 {
		return typesys.Int
	}
	return typesys.UInt
}

// Eval returns the literal's value. For the prefixed forms the digits are
// the ones after the radix marker.
func (n *Number) Eval() (*big.Int, error) {
	lit := n.Token.Literal
	base := 10
	switch n.Token.Type {
	case token.UINT_BASE2:
		base = 2
	case token.UINT_BASE8:
		base = 8
	case token.UINT_BASE16:
		base = 16
	case token.UINT_BASE10, token.INT_BASE10:
	default:
		return nil, xerrors.Errorf("%s is not a number literal", n.Token.SourceRef())
	}
	if base != 10 {
		if len(lit) < 3 {
			return nil, xerrors.Errorf("malformed number literal %s", n.Token.SourceRef())
		}
		lit = lit[2:]
	}
	v, ok := new(big.Int).SetString(lit, base)
	if !ok {
		return nil, xerrors.Errorf("malformed number literal %s", n.Token.SourceRef())
	}
	return v, nil
}

// Char represents a character literal such as 'a' or '\n'
type Char struct {
	Token token.Token
}

func (c *Char) expressionNode()         {}
func (c *Char) TokenLiteral() string    { return c.Token.Literal }
func (c *Char) FirstToken() token.Token { return c.Token }
func (c *Char) LastToken() token.Token  { return c.Token }
func (c *Char) String() string          { return c.Token.Literal }
func (c *Char) Type() typesys.Base      { return typesys.Char }

var charEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// Eval decodes the character, resolving a single backslash escape.
func (c *Char) Eval() (rune, error) {
	r := []rune(c.Token.Literal)
	if len(r) < 3 || r[0] != '\'' || r[len(r)-1] != '\'' {
		return 0, xerrors.Errorf("malformed character literal %s", c.Token.SourceRef())
	}
	body := r[1 : len(r)-1]
	switch {
	case len(body) == 1 && body[0] != '\\':
		return body[0], nil
	case len(body) == 2 && body[0] == '\\':
		if v, ok := charEscapes[body[1]]; ok {
			return v, nil
		}
		return 0, xerrors.Errorf("unknown escape \\%c in %s", body[1], c.Token.SourceRef())
	}
	return 0, xerrors.Errorf("malformed character literal %s", c.Token.SourceRef())
}

// String represents a string literal. Its text is used as written.
type String struct {
	Token token.Token
}

func (s *String) expressionNode()         {}
func (s *String) TokenLiteral() string    { return s.Token.Literal }
func (s *String) FirstToken() token.Token { return s.Token }
func (s *String) LastToken() token.Token  { return s.Token }
func (s *String) String() string          { return s.Token.Literal }
func (s *String) Type() typesys.Base      { return typesys.String }

// Eval strips the surrounding quotes.
func (s *String) Eval() string {
	lit := s.Token.Literal
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}
