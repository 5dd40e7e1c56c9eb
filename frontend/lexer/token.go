package lexer

import (
	"fmt"

	"github.com/kvlift/kvlift/frontend/common"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Structural tokens synthesized from significant whitespace.
	TokenIndent
	TokenDedent
	TokenNewline

	// Delimiters.
	TokenColon
	TokenComma
	TokenLAngle
	TokenRAngle
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenDot
	TokenMinus
	TokenAt
	TokenPlus

	// Literals.
	TokenIdent
	TokenString
	TokenNumber

	// `canvas` is only a keyword in body position, but the lexer tags it so
	// the parser can switch on the kind directly.
	TokenCanvas

	// A full `#:`-prefixed line, carried raw; its internal grammar is parsed
	// by the parser, not here.
	TokenDirective

	TokenComment

	// TokenSymbol is a catch-all for operator characters that only ever occur
	// inside property values. The grammar never consumes them; raw value
	// reconstruction does.
	TokenSymbol
)

var kindNames = map[TokenKind]string{
	TokenEOF:       "eof",
	TokenIndent:    "indent",
	TokenDedent:    "dedent",
	TokenNewline:   "newline",
	TokenColon:     "':'",
	TokenComma:     "','",
	TokenLAngle:    "'<'",
	TokenRAngle:    "'>'",
	TokenLBracket:  "'['",
	TokenRBracket:  "']'",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenDot:       "'.'",
	TokenMinus:     "'-'",
	TokenAt:        "'@'",
	TokenPlus:      "'+'",
	TokenIdent:     "identifier",
	TokenString:    "string",
	TokenNumber:    "number",
	TokenCanvas:    "'canvas'",
	TokenDirective: "directive",
	TokenComment:   "comment",
	TokenSymbol:    "symbol",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexeme. Tokens are owned by the stream that produced them
// and are never mutated after creation.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int // 1-indexed
	Column int // 1-indexed
	Length int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIndent, TokenDedent, TokenNewline, TokenEOF:
		return t.Kind.String()
	default:
		return t.Text
	}
}

func (t Token) Span() common.Span {
	return common.SpanNew(t.Line, t.Line, t.Column, t.Column+t.Length-1)
}

// Adjacent reports whether next started immediately after t in the source,
// with no whitespace in between. Value reconstruction relies on this to
// round-trip raw expressions exactly.
func (t Token) Adjacent(next Token) bool {
	return t.Line == next.Line && t.Column+t.Length == next.Column
}
