// Package lexer tokenizes KV source. Indentation is significant: the lexer
// synthesizes Indent/Dedent/Newline tokens from leading whitespace, the way a
// whitespace-sensitive language frontend would.
package lexer

import (
	"fmt"
	"strings"
)

// tabWidth is how many columns a tab advances.
const tabWidth = 4

// lexer is a hand-rolled, byte-based scanner. It holds only per-call state;
// independent source texts can be lexed concurrently.
type lexer struct {
	src   string // file name, for diagnostics only
	input string
	pos   int
	line  int
	col   int

	indents []int
	unit    int // detected indent size, 0 until the first increase

	tokens []Token
}

// Lex converts KV source into a flat token stream. It fails fast on the first
// error.
func Lex(src, code string) ([]Token, *LexError) {
	lx := &lexer{
		src:     src,
		input:   code,
		line:    1,
		col:     1,
		indents: []int{0},
	}
	for lx.pos < len(lx.input) {
		if err := lx.lexLine(); err != nil {
			return nil, err
		}
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(TokenDedent, "", lx.line, lx.col, 0)
	}
	lx.emit(TokenEOF, "", lx.line, lx.col, 0)
	return lx.tokens, nil
}

func (lx *lexer) emit(kind TokenKind, text string, line, col, length int) {
	lx.tokens = append(lx.tokens, Token{
		Kind:   kind,
		Text:   text,
		Line:   line,
		Column: col,
		Length: length,
	})
}

func (lx *lexer) errf(kind LexErrorKind, line, col int, format string, args ...any) *LexError {
	return &LexError{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
		Source:  lx.src,
	}
}

// consumeNewline eats a line ending ("\n", "\r\n" or a lone "\r") and resets
// the column counter.
func (lx *lexer) consumeNewline() {
	if lx.pos < len(lx.input) && lx.input[lx.pos] == '\r' {
		lx.pos++
	}
	if lx.pos < len(lx.input) && lx.input[lx.pos] == '\n' {
		lx.pos++
	}
	lx.line++
	lx.col = 1
}

func (lx *lexer) atLineEnd() bool {
	if lx.pos >= len(lx.input) {
		return true
	}
	c := lx.input[lx.pos]
	return c == '\n' || c == '\r'
}

// lexLine processes one physical line: leading whitespace, then either
// nothing (blank/comment line), a directive, or indentation bookkeeping
// followed by the line's tokens and a Newline.
func (lx *lexer) lexLine() *LexError {
	width := 0
	for lx.pos < len(lx.input) {
		switch lx.input[lx.pos] {
		case ' ':
			width++
			lx.pos++
			lx.col++
		case '\t':
			width += tabWidth
			lx.pos++
			lx.col += tabWidth
		default:
			goto measured
		}
	}
measured:
	if lx.atLineEnd() {
		// Blank lines carry no structure.
		if lx.pos < len(lx.input) {
			lx.consumeNewline()
		}
		return nil
	}

	if lx.input[lx.pos] == '#' {
		if strings.HasPrefix(lx.input[lx.pos:], "#:") {
			line, col := lx.line, lx.col
			start := lx.pos
			for !lx.atLineEnd() {
				lx.pos++
				lx.col++
			}
			text := lx.input[start:lx.pos]
			lx.emit(TokenDirective, text, line, col, len(text))
			lx.emit(TokenNewline, "", lx.line, lx.col, 0)
			lx.consumeNewline()
			return nil
		}
		// Full-line comment: skipped without structural tokens.
		for !lx.atLineEnd() {
			lx.pos++
			lx.col++
		}
		lx.consumeNewline()
		return nil
	}

	if err := lx.handleIndent(width); err != nil {
		return err
	}

	for !lx.atLineEnd() {
		if err := lx.lexToken(); err != nil {
			return err
		}
	}
	lx.emit(TokenNewline, "", lx.line, lx.col, 0)
	if lx.pos < len(lx.input) {
		lx.consumeNewline()
	}
	return nil
}

// handleIndent compares the measured line width against the indent stack. The
// first increase in the file fixes the indent unit; every later level must be
// an exact multiple of it.
func (lx *lexer) handleIndent(width int) *LexError {
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		if lx.unit == 0 {
			lx.unit = width - top
		}
		if width-top != lx.unit || width%lx.unit != 0 {
			return lx.errf(InvalidIndentation, lx.line, lx.col,
				"inconsistent indentation: expected a multiple of %d columns, got %d", lx.unit, width)
		}
		lx.indents = append(lx.indents, width)
		lx.emit(TokenIndent, "", lx.line, 1, 0)
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.emit(TokenDedent, "", lx.line, 1, 0)
		}
		if lx.indents[len(lx.indents)-1] != width {
			return lx.errf(InvalidIndentation, lx.line, lx.col,
				"unindent does not match any outer indentation level")
		}
	}
	return nil
}

func (lx *lexer) lexToken() *LexError {
	c := lx.input[lx.pos]

	// Inter-token whitespace.
	if c == ' ' || c == '\t' {
		lx.pos++
		if c == '\t' {
			lx.col += tabWidth
		} else {
			lx.col++
		}
		return nil
	}

	// Trailing comment: tokenized, the parser treats it as trivia.
	if c == '#' {
		line, col := lx.line, lx.col
		start := lx.pos
		for !lx.atLineEnd() {
			lx.pos++
			lx.col++
		}
		text := lx.input[start:lx.pos]
		lx.emit(TokenComment, text, line, col, len(text))
		return nil
	}

	if c == '\'' || c == '"' {
		return lx.lexString()
	}

	if isIdentStart(c) {
		line, col := lx.line, lx.col
		start := lx.pos
		for lx.pos < len(lx.input) && isIdentPart(lx.input[lx.pos]) {
			lx.pos++
			lx.col++
		}
		text := lx.input[start:lx.pos]
		kind := TokenIdent
		if text == "canvas" {
			kind = TokenCanvas
		}
		lx.emit(kind, text, line, col, len(text))
		return nil
	}

	if isDigit(c) {
		line, col := lx.line, lx.col
		start := lx.pos
		for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
			lx.pos++
			lx.col++
		}
		if lx.pos+1 < len(lx.input) && lx.input[lx.pos] == '.' && isDigit(lx.input[lx.pos+1]) {
			lx.pos++
			lx.col++
			for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
				lx.pos++
				lx.col++
			}
		}
		text := lx.input[start:lx.pos]
		lx.emit(TokenNumber, text, line, col, len(text))
		return nil
	}

	kind := TokenSymbol
	switch c {
	case ':':
		kind = TokenColon
	case ',':
		kind = TokenComma
	case '<':
		kind = TokenLAngle
	case '>':
		kind = TokenRAngle
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '.':
		kind = TokenDot
	case '-':
		kind = TokenMinus
	case '@':
		kind = TokenAt
	case '+':
		kind = TokenPlus
	}
	lx.emit(kind, string(c), lx.line, lx.col, 1)
	lx.pos++
	lx.col++
	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
