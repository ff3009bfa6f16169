package diag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Error kinds. Every lexer and parser error unwraps to one of these.
var (
	ErrUnterminatedLiteral  = errors.New("unterminated literal")
	ErrMalformedLiteral     = errors.New("malformed literal")
	ErrUnexpectedCharacter  = errors.New("unexpected character")
	ErrWrongToken           = errors.New("wrong token")
	ErrUseBeforeDeclare     = errors.New("use before declaration")
	ErrDefineWithoutDeclare = errors.New("definition without declaration")
	ErrRepeatedDeclaration  = errors.New("repeated declaration")
	ErrRepeatedDefinition   = errors.New("repeated definition")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrUnknownType          = errors.New("unknown type")
	ErrKindMismatch         = errors.New("declaration kind mismatch")
	ErrArityMismatch        = errors.New("argument count mismatch")
)

// Span is a single-line source range. Start and End are 1-based inclusive columns.
type Span struct {
	Line  int
	Start int
	End   int
}

func (s Span) Valid() bool { return s.Line > 0 && s.Start > 0 && s.End >= s.Start }

func (s Span) String() string {
	return "line " + strconv.Itoa(s.Line) + " between char " + strconv.Itoa(s.Start) + " and " + strconv.Itoa(s.End)
}

// Diagnostic is an error that knows where in the source it happened.
type Diagnostic interface {
	error
	Span() Span
}

// SpanOf digs through an annotation chain for the innermost diagnostic span.
func SpanOf(err error) (Span, bool) {
	var d Diagnostic
	if !xerrors.As(err, &d) {
		return Span{}, false
	}
	return d.Span(), d.Span().Valid()
}

type CodeError struct {
	Message string
	Context string
	Line    int
	Column  int
	EndCol  int
}

// FromError resolves err against the source it came from.
func FromError(source string, err error) CodeError {
	ce := CodeError{Message: err.Error()}
	span, ok := SpanOf(err)
	if !ok {
		return ce
	}
	ce.Line, ce.Column, ce.EndCol = span.Line, span.Start, span.End
	if ln, ok := SourceLine(source, span.Line); ok {
		ce.Context = ln
	}
	return ce
}

// SourceLine returns the 1-based line of source without its terminator.
func SourceLine(source string, line int) (string, bool) {
	if line <= 0 {
		return "", false
	}
	lines := strings.Split(strings.ReplaceAll(source, "\r", ""), "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// Format renders the error with an excerpt and caret run.
// header and caret style their respective parts and may be nil.
func (e CodeError) Format(header, caret func(string) string) string {
	if header == nil {
		header = plain
	}
	if caret == nil {
		caret = plain
	}
	var out strings.Builder
	out.WriteString(header(e.Message))
	if e.Line <= 0 {
		return out.String()
	}
	gutter := strconv.Itoa(e.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(&out, "\n %s | %s\n", gutter, e.Context)

	// Columns count runes; tabs are kept so the caret lines up under them.
	prefix := []rune(e.Context)
	var lead strings.Builder
	for i := 0; i < e.Column-1; i++ {
		if i < len(prefix) && prefix[i] == '\t' {
			lead.WriteRune('\t')
			continue
		}
		lead.WriteRune(' ')
	}
	width := e.EndCol - e.Column + 1
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&out, " %s | %s%s", pad, lead.String(), caret(strings.Repeat("^", width)))
	return out.String()
}

// Render formats err against source without styling.
func Render(source string, err error) string {
	return FromError(source, err).Format(nil, nil)
}

func plain(s string) string { return s }
