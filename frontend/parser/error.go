package parser

import (
	"fmt"

	protocol "github.com/gluax-lang/lsp"
	"github.com/kvlift/kvlift/frontend/common"
)

// ParseErrorKind classifies parser failures.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	SyntaxError
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case SyntaxError:
		return "syntax error"
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParsingError is a structured parser diagnostic. In strict mode the first
// one aborts the parse; in tolerant mode they accumulate alongside a partial
// module.
type ParsingError struct {
	Line       int // 1-indexed
	Column     int // 1-indexed
	Message    string
	Kind       ParseErrorKind
	Suggestion string
	Source     string
}

func (e *ParsingError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

func (e *ParsingError) ToDiagnostic() *protocol.Diagnostic {
	span := common.SpanLine(e.Line, e.Column)
	span.Source = e.Source
	msg := e.Message
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return common.ErrorDiag(msg, span)
}

func errorToParsingError(r any) *ParsingError {
	if err, ok := r.(*ParsingError); ok {
		return err
	}
	panic(fmt.Errorf("parser: unexpected panic: %v", r))
}
