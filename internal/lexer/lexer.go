package lexer

import (
	"io"
	"log/slog"
	"strings"

	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// Lexer holds the state while tokenizing input
// It reads character by character, like a tape reader
type Lexer struct {
	r *Reader

	ch     rune // Current character under examination
	atEnd  bool // No current character, input is exhausted
	primed bool // First character has been read

	line int // Line of ch, 1-based
	col  int // Column of ch, 1-based

	buf       strings.Builder // Text of the token being built
	startLine int
	startCol  int
	endCol    int

	hyphens bool
	log     *slog.Logger
	err     error // Sticky failure, returned by every later call
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithIdentifierHyphens controls whether '-' may continue an identifier.
// It defaults to true, which is the grammar's historical behaviour.
func WithIdentifierHyphens(allow bool) Option {
	return func(l *Lexer) { l.hyphens = allow }
}

// WithLogger sends the lexer's debug trace to log.
func WithLogger(log *slog.Logger) Option {
	return func(l *Lexer) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a new Lexer reading from r
func New(r io.Reader, opts ...Option) *Lexer {
	l := &Lexer{
		r:       NewReader(r),
		line:    1,
		col:     1,
		hyphens: true,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewString creates a new Lexer for the given input
func NewString(input string, opts ...Option) *Lexer {
	return New(strings.NewReader(input), opts...)
}

// Tokenize runs a fresh Lexer over r to completion.
// The returned slice does not include the end-of-input sentinel.
func Tokenize(r io.Reader, opts ...Option) ([]token.Token, error) {
	return New(r, opts...).Tokens()
}

// Tokens drains the lexer, stopping before the end-of-input sentinel.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		if tok.IsEOI() {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// NextToken returns the next token from input.
// At end of input it returns the EOI sentinel, and keeps doing so.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.nextToken()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	if !tok.IsEOI() {
		l.log.Debug("token", "type", tok.Type, "literal", tok.Literal,
			"line", tok.Line, "start", tok.CharStart, "end", tok.CharEnd)
	}
	return tok, nil
}

func (l *Lexer) nextToken() (token.Token, error) {
	if !l.primed {
		l.primed = true
		if err := l.readChar(); err != nil {
			return token.Token{}, err
		}
	}
	if err := l.skipIgnored(); err != nil {
		return token.Token{}, err
	}
	if l.atEnd {
		return token.EOIAt(l.line, l.col), nil
	}

	l.buf.Reset()
	l.startLine = l.line
	l.startCol = l.col
	l.endCol = l.col

	switch {
	case isIdentStart(l.ch):
		return l.readIdentifier()
	case isDigit(l.ch):
		return l.readNumber()
	case l.ch == '-':
		return l.readMinus()
	case l.ch == '\'':
		return l.readCharLiteral()
	case l.ch == '"':
		return l.readString()
	default:
		return l.readPunctuation()
	}
}

// readChar advances to the next character without buffering the current one
func (l *Lexer) readChar() error {
	ch, ok, err := l.r.Next()
	if err == errInvalidUTF8 {
		return &Error{Kind: diag.ErrUnexpectedCharacter, Expected: "valid UTF-8",
			Got: 0xFFFD, Line: l.line, Start: l.col, End: l.col}
	}
	if err != nil {
		return err
	}
	l.ch, l.atEnd = ch, !ok
	return nil
}

// consume appends the current character to the token and moves on
func (l *Lexer) consume() error {
	l.buf.WriteRune(l.ch)
	l.endCol = l.col
	l.col++
	return l.readChar()
}

func (l *Lexer) token(t token.TokenType) token.Token {
	return token.Token{
		Type:      t,
		Literal:   l.buf.String(),
		Line:      l.startLine,
		CharStart: l.startCol,
		CharEnd:   l.endCol,
	}
}

func (l *Lexer) fail(kind error, expected string) *Error {
	end := l.endCol
	if end < l.startCol {
		end = l.startCol
	}
	return &Error{
		Kind:     kind,
		Lexeme:   l.buf.String(),
		Got:      l.ch,
		AtEnd:    l.atEnd,
		Expected: expected,
		Line:     l.startLine,
		Start:    l.startCol,
		End:      end,
	}
}
