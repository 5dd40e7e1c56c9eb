package common

import (
	"fmt"

	protocol "github.com/gluax-lang/lsp"
)

// Span represents a range in a source file. Lines and columns are 1-indexed;
// LSP ranges are 0-indexed, which ToRange accounts for.
type Span struct {
	LineStart, LineEnd     int
	ColumnStart, ColumnEnd int
	Source                 string // "" == unknown
}

func adjustN(n int) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(n - 1)
}

func (s Span) ToRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      adjustN(s.LineStart),
			Character: adjustN(s.ColumnStart),
		},
		End: protocol.Position{
			Line:      adjustN(s.LineEnd),
			Character: uint32(max(s.ColumnEnd, 0)),
		},
	}
}

func (s Span) String() string {
	if s.Source == "" {
		return fmt.Sprintf("%d:%d-%d:%d", s.LineStart, s.ColumnStart, s.LineEnd, s.ColumnEnd)
	}
	return fmt.Sprintf("%d:%d-%d:%d (%s)", s.LineStart, s.ColumnStart, s.LineEnd, s.ColumnEnd, s.Source)
}

func SpanNew(lineStart, lineEnd, columnStart, columnEnd int) Span {
	return Span{
		LineStart:   lineStart,
		LineEnd:     lineEnd,
		ColumnStart: columnStart,
		ColumnEnd:   columnEnd,
	}
}

// SpanLine spans a single position on one line.
func SpanLine(line, column int) Span {
	return SpanNew(line, line, column, column)
}
