package lexer

import (
	"fmt"

	protocol "github.com/gluax-lang/lsp"
	"github.com/kvlift/kvlift/frontend/common"
)

// LexErrorKind classifies tokenizer failures.
type LexErrorKind int

const (
	InvalidIndentation LexErrorKind = iota
	UnterminatedString
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidIndentation:
		return "invalid indentation"
	case UnterminatedString:
		return "unterminated string"
	}
	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

// LexError is a fatal tokenizer error. Lexing fails fast: the first error
// aborts the whole token stream.
type LexError struct {
	Kind    LexErrorKind
	Line    int // 1-indexed
	Column  int // 1-indexed
	Message string
	Source  string
}

func (e *LexError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

func (e *LexError) ToDiagnostic() *protocol.Diagnostic {
	span := common.SpanLine(e.Line, e.Column)
	span.Source = e.Source
	return common.ErrorDiag(e.Message, span)
}
