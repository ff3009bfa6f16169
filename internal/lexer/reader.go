package lexer

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// errInvalidUTF8 is converted into a positioned *Error by the Lexer.
var errInvalidUTF8 = errors.New("invalid UTF-8")

// Reader supplies one character at a time from an input stream.
// Carriage returns are dropped so CRLF input reads like LF input.
type Reader struct {
	rr io.RuneReader
}

// NewReader wraps r, buffering it unless it already reads runes.
func NewReader(r io.Reader) *Reader {
	if rr, ok := r.(io.RuneReader); ok {
		return &Reader{rr: rr}
	}
	return &Reader{rr: bufio.NewReader(r)}
}

// Next returns the next character. ok is false at end of input.
func (r *Reader) Next() (ch rune, ok bool, err error) {
	for {
		ch, size, err := r.rr.ReadRune()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		if ch == utf8.RuneError && size == 1 {
			return 0, false, errInvalidUTF8
		}
		if ch == '\r' {
			continue
		}
		return ch, true, nil
	}
}
