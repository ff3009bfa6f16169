package lexer

import (
	"fmt"
	"strconv"

	"github.com/MarkProvanP/mips-toy-lang/internal/diag"
)

// Error is a lexing failure at a known position.
// Kind is one of the diag error kinds and is what Unwrap returns.
type Error struct {
	Kind     error
	Lexeme   string // text consumed for the token so far
	Got      rune   // offending character, if any
	AtEnd    bool   // input ran out instead of Got
	Expected string // what the lexer wanted instead, if known
	Line     int
	Start    int
	End      int
}

func (e *Error) Error() string {
	got := "end of input"
	if !e.AtEnd {
		got = strconv.QuoteRune(e.Got)
	}
	msg := fmt.Sprintf("lexer error: %v", e.Kind)
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s but got %s", e.Expected, got)
	} else if e.Lexeme != "" {
		msg += fmt.Sprintf(": %q", e.Lexeme)
	}
	return msg + " on " + e.Span().String()
}

func (e *Error) Span() diag.Span {
	return diag.Span{Line: e.Line, Start: e.Start, End: e.End}
}

func (e *Error) Unwrap() error { return e.Kind }
