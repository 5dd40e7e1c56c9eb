package lexer

// lexString scans a single-, double- or triple-quoted string literal. The
// token text keeps the literal exactly as written, quotes and escapes
// included, so property values round-trip byte-for-byte.
func (lx *lexer) lexString() *LexError {
	startLine, startCol := lx.line, lx.col
	start := lx.pos
	quote := lx.input[lx.pos]

	triple := lx.pos+2 < len(lx.input) &&
		lx.input[lx.pos+1] == quote && lx.input[lx.pos+2] == quote
	if triple {
		lx.pos += 3
		lx.col += 3
		for {
			if lx.pos >= len(lx.input) {
				return lx.errf(UnterminatedString, startLine, startCol,
					"unterminated triple-quoted string literal")
			}
			c := lx.input[lx.pos]
			if c == '\\' && lx.pos+1 < len(lx.input) {
				lx.pos += 2
				lx.col += 2
				continue
			}
			if c == quote && lx.pos+2 < len(lx.input) &&
				lx.input[lx.pos+1] == quote && lx.input[lx.pos+2] == quote {
				lx.pos += 3
				lx.col += 3
				break
			}
			if c == '\n' {
				lx.pos++
				lx.line++
				lx.col = 1
				continue
			}
			lx.pos++
			lx.col++
		}
	} else {
		lx.pos++
		lx.col++
		for {
			if lx.pos >= len(lx.input) || lx.input[lx.pos] == '\n' || lx.input[lx.pos] == '\r' {
				return lx.errf(UnterminatedString, startLine, startCol,
					"unterminated string literal")
			}
			c := lx.input[lx.pos]
			if c == '\\' && lx.pos+1 < len(lx.input) {
				lx.pos += 2
				lx.col += 2
				continue
			}
			lx.pos++
			lx.col++
			if c == quote {
				break
			}
		}
	}

	text := lx.input[start:lx.pos]
	lx.emit(TokenString, text, startLine, startCol, len(text))
	return nil
}
