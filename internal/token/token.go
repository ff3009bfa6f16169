package token

import "fmt"

// TokenType is a string alias for token types
// Using string makes debugging easier (we can print "IDENT" instead of a number)
type TokenType string

// Token is an immutable lexical unit with its source span.
// Line is 1-based; CharStart and CharEnd are 1-based inclusive columns.
type Token struct {
	Type      TokenType
	Literal   string
	Line      int
	CharStart int
	CharEnd   int
}

const (
	// Special
	EOI TokenType = "EOI" // End of input sentinel

	// Identifiers and literals
	IDENT       TokenType = "IDENT"
	BOOL        TokenType = "BOOL"
	UINT_BASE2  TokenType = "UINT_BASE2"  // 0b101
	UINT_BASE8  TokenType = "UINT_BASE8"  // 0o17
	UINT_BASE10 TokenType = "UINT_BASE10" // 42
	UINT_BASE16 TokenType = "UINT_BASE16" // 0x1F
	INT_BASE10  TokenType = "INT_BASE10"  // -7
	CHAR        TokenType = "CHAR"        // 'a'
	STRING      TokenType = "STRING"      // "hello"

	// Operators
	BINARY_OP TokenType = "BINARY_OP" // + - * / == != > < >= <= << >> & | && ||
	UNARY_OP  TokenType = "UNARY_OP"  // ++ --

	// Punctuation
	SEMICOLON TokenType = ";"
	ASSIGN    TokenType = "="
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	COMMA     TokenType = ","
	COLON     TokenType = ":"

	// Keywords
	FUNCTION    TokenType = "FUNCTION"
	IF          TokenType = "IF"
	ELIF        TokenType = "ELIF"
	ELSE        TokenType = "ELSE"
	DO          TokenType = "DO"
	WHILE       TokenType = "WHILE"
	FOR         TokenType = "FOR"
	RETURN      TokenType = "RETURN"
	DECLARE     TokenType = "DECLARE"
	SWITCH      TokenType = "SWITCH"
	CASE        TokenType = "CASE"
	DEFAULT     TokenType = "DEFAULT"
	BREAK       TokenType = "BREAK"
	FALLTHROUGH TokenType = "FALLTHROUGH"
	ASM         TokenType = "ASM"
)

// keywords maps reserved words to their token type
var keywords = map[string]TokenType{
	"function":    FUNCTION,
	"if":          IF,
	"elif":        ELIF,
	"else":        ELSE,
	"do":          DO,
	"while":       WHILE,
	"for":         FOR,
	"return":      RETURN,
	"declare":     DECLARE,
	"switch":      SWITCH,
	"case":        CASE,
	"default":     DEFAULT,
	"break":       BREAK,
	"fallthrough": FALLTHROUGH,
	"asm":         ASM,
	"true":        BOOL,
	"false":       BOOL,
}

// LookupIdent checks if an identifier is a keyword
// Unmatched words are plain identifiers
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// operators maps every one- and two-character punctuation lexeme to its type
var operators = map[string]TokenType{
	";":  SEMICOLON,
	"=":  ASSIGN,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	"[":  LBRACKET,
	"]":  RBRACKET,
	",":  COMMA,
	":":  COLON,
	"+":  BINARY_OP,
	"-":  BINARY_OP,
	"*":  BINARY_OP,
	"/":  BINARY_OP,
	"==": BINARY_OP,
	"!=": BINARY_OP,
	">":  BINARY_OP,
	"<":  BINARY_OP,
	">=": BINARY_OP,
	"<=": BINARY_OP,
	"<<": BINARY_OP,
	">>": BINARY_OP,
	"&":  BINARY_OP,
	"|":  BINARY_OP,
	"&&": BINARY_OP,
	"||": BINARY_OP,
	"++": UNARY_OP,
	"--": UNARY_OP,
}

// LookupPunctuation classifies a punctuation lexeme.
func LookupPunctuation(lexeme string) (TokenType, bool) {
	t, ok := operators[lexeme]
	return t, ok
}

// precedences only covers the operators the expression parser climbs over.
// Everything else is 0, the floor of the climbing loop.
var precedences = map[string]int{
	"==": 1,
	"!=": 1,
	">":  2,
	"<":  2,
	">=": 2,
	"<=": 2,
	"+":  3,
	"-":  3,
	"*":  4,
	"/":  4,
}

// Precedence returns the binding strength of a binary operator token.
func (t Token) Precedence() int {
	if t.Type != BINARY_OP {
		return 0
	}
	return precedences[t.Literal]
}

// IsNumber reports whether t is one of the integer literal forms.
func (t TokenType) IsNumber() bool {
	switch t {
	case UINT_BASE2, UINT_BASE8, UINT_BASE10, UINT_BASE16, INT_BASE10:
		return true
	}
	return false
}

// IsStatementStart reports whether a statement may begin with t.
func (t TokenType) IsStatementStart() bool {
	switch t {
	case IDENT, IF, DO, WHILE, FOR, RETURN, DECLARE, SWITCH, BREAK, FALLTHROUGH, ASM:
		return true
	}
	return false
}

// IsEOI reports whether t is the end-of-input sentinel.
func (t Token) IsEOI() bool { return t.Type == EOI }

// EOIAt builds the end-of-input sentinel positioned just after the last token.
func EOIAt(line, char int) Token {
	return Token{Type: EOI, Line: line, CharStart: char, CharEnd: char}
}

func (t Token) String() string {
	if t.Type == EOI {
		return "end of input"
	}
	return t.Literal
}

// Info renders a full description of the token, one line per token.
func (t Token) Info() string {
	return fmt.Sprintf("Token type %s, original text: %s on line %d between char: %d and %d",
		t.Type, t.Literal, t.Line, t.CharStart, t.CharEnd)
}

// SourceRef renders the lexeme with its location, for diagnostics.
func (t Token) SourceRef() string {
	if t.Type == EOI {
		return fmt.Sprintf("end of input on line %d", t.Line)
	}
	return fmt.Sprintf("%s on line %d between char %d and %d", t.Literal, t.Line, t.CharStart, t.CharEnd)
}
