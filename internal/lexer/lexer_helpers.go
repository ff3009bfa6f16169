package lexer

import (
	"unicode"

	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
	"github.com/MarkProvanP/mips-toy-lang/internal/token"
)

// skipIgnored steps over whitespace and '#' line comments
func (l *Lexer) skipIgnored() error {
	for !l.atEnd {
		switch {
		case l.ch == '\n':
			l.line++
			l.col = 1
			if err := l.readChar(); err != nil {
				return err
			}
		case isWhitespace(l.ch):
			l.col++
			if err := l.readChar(); err != nil {
				return err
			}
		case l.ch == '#':
			if err := l.skipLineComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipLineComment consumes up to, not including, the terminating newline
func (l *Lexer) skipLineComment() error {
	startCol := l.col
	for !l.atEnd && l.ch != '\n' {
		l.col++
		if err := l.readChar(); err != nil {
			return err
		}
	}
	l.log.Debug("comment", "line", l.line, "start", startCol, "end", l.col-1)
	return nil
}

// readIdentifier reads an identifier or keyword.
// First char is guaranteed to be a letter/underscore by caller.
func (l *Lexer) readIdentifier() (token.Token, error) {
	for !l.atEnd && l.isIdentContinue(l.ch) {
		if err := l.consume(); err != nil {
			return token.Token{}, err
		}
	}
	return l.token(token.LookupIdent(l.buf.String())), nil
}

// readNumber reads an unsigned literal. The character after the first digit
// picks the radix: another digit for decimal, or one of 'b', 'o', 'x'.
func (l *Lexer) readNumber() (token.Token, error) {
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	if l.atEnd {
		return l.token(token.UINT_BASE10), nil
	}
	switch {
	case isDigit(l.ch):
		return l.readRun(token.UINT_BASE10, isDigit, "")
	case l.ch == 'b':
		return l.readRadix(token.UINT_BASE2, isBinaryDigit, "binary digit")
	case l.ch == 'o':
		return l.readRadix(token.UINT_BASE8, isOctalDigit, "octal digit")
	case l.ch == 'x':
		return l.readRadix(token.UINT_BASE16, isHexDigit, "hexadecimal digit")
	default:
		return l.token(token.UINT_BASE10), nil
	}
}

func (l *Lexer) readRadix(t token.TokenType, digit func(rune) bool, want string) (token.Token, error) {
	// radix marker
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	return l.readRun(t, digit, want)
}

// readRun consumes a run of digits. A non-empty want makes an empty run an error.
func (l *Lexer) readRun(t token.TokenType, digit func(rune) bool, want string) (token.Token, error) {
	n := 0
	for !l.atEnd && digit(l.ch) {
		if err := l.consume(); err != nil {
			return token.Token{}, err
		}
		n++
	}
	if n == 0 && want != "" {
		return token.Token{}, l.fail(diag.ErrMalformedLiteral, want)
	}
	return l.token(t), nil
}

// readMinus reads either a signed decimal literal or the '-' operator
func (l *Lexer) readMinus() (token.Token, error) {
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	if !l.atEnd && isDigit(l.ch) {
		return l.readRun(token.INT_BASE10, isDigit, "")
	}
	return l.finishPunctuation()
}

// readCharLiteral reads 'c' or a one-level escape such as '\n'
func (l *Lexer) readCharLiteral() (token.Token, error) {
	// opening quote
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	for i := 0; i < 2; i++ {
		if l.atEnd || l.ch == '\n' {
			return token.Token{}, l.fail(diag.ErrUnterminatedLiteral, "character")
		}
		escape := i == 0 && l.ch == '\\'
		if err := l.consume(); err != nil {
			return token.Token{}, err
		}
		if !escape {
			break
		}
	}
	if l.atEnd || l.ch != '\'' {
		return token.Token{}, l.fail(diag.ErrUnterminatedLiteral, `"'"`)
	}
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	return l.token(token.CHAR), nil
}

// readString reads up to and including the next '"'.
// A string must close on the line it opened on, so every token spans one line.
// Backslashes get no special treatment here, unlike in character literals.
func (l *Lexer) readString() (token.Token, error) {
	// opening quote
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	for {
		if l.atEnd || l.ch == '\n' {
			return token.Token{}, l.fail(diag.ErrUnterminatedLiteral, `'"'`)
		}
		closing := l.ch == '"'
		if err := l.consume(); err != nil {
			return token.Token{}, err
		}
		if closing {
			return l.token(token.STRING), nil
		}
	}
}

// readPunctuation reads one- and two-character punctuation and operators
func (l *Lexer) readPunctuation() (token.Token, error) {
	single := isSinglePunctuation(l.ch)
	if err := l.consume(); err != nil {
		return token.Token{}, err
	}
	if single {
		return l.classifyPunctuation()
	}
	return l.finishPunctuation()
}

// finishPunctuation takes a second character only when it forms a known operator
func (l *Lexer) finishPunctuation() (token.Token, error) {
	if !l.atEnd && isSecondPunctuation(l.ch) {
		if _, ok := token.LookupPunctuation(l.buf.String() + string(l.ch)); ok {
			if err := l.consume(); err != nil {
				return token.Token{}, err
			}
		}
	}
	return l.classifyPunctuation()
}

func (l *Lexer) classifyPunctuation() (token.Token, error) {
	t, ok := token.LookupPunctuation(l.buf.String())
	if !ok {
		return token.Token{}, l.fail(diag.ErrUnexpectedCharacter, "")
	}
	return l.token(t), nil
}

func (l *Lexer) isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || (l.hyphens && ch == '-')
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isBinaryDigit(ch rune) bool { return ch == '0' || ch == '1' }

func isOctalDigit(ch rune) bool { return '0' <= ch && ch <= '7' }

// Hex digits are upper case only: 0x1f lexes as 0x1 followed by f.
func isHexDigit(ch rune) bool { return isDigit(ch) || 'A' <= ch && ch <= 'F' }

func isSinglePunctuation(ch rune) bool {
	switch ch {
	case '{', '}', ',', '(', ')', ';', '*', '/', '[', ']', '%', '^':
		return true
	}
	return false
}

func isSecondPunctuation(ch rune) bool {
	switch ch {
	case '=', '&', '|', '<', '>', '+', '-':
		return true
	}
	return false
}
