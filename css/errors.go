package css

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a recoverable parse error.
type ErrorKind int

const (
	// UnterminatedSelector means a selector group could not be parsed; the
	// whole rule was skipped.
	UnterminatedSelector ErrorKind = iota + 1
	// UnterminatedDeclaration means a declaration could not be parsed; only
	// that declaration was skipped.
	UnterminatedDeclaration
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedSelector:
		return "unterminated selector"
	case UnterminatedDeclaration:
		return "unterminated declaration"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrUnterminatedSelector    = errors.New("css: unterminated selector")
	ErrUnterminatedDeclaration = errors.New("css: unterminated declaration")
)

// ParseError records a skipped rule or declaration. Line and Column are
// 1-based positions of the token where the problem was detected.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("css: %s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// Unwrap returns the sentinel error for the error's kind.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case UnterminatedSelector:
		return ErrUnterminatedSelector
	case UnterminatedDeclaration:
		return ErrUnterminatedDeclaration
	}
	return nil
}

func newParseError(kind ErrorKind, line, column int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}
