package bindings

import "strings"

// literal is one string literal found in an expression, with its prefix
// letters (`f`, `r`, `b`, combinations) and the body between the quotes.
type literal struct {
	prefix string
	body   string
}

// stripLiterals removes every string literal from the expression so that
// path-like text inside literals cannot be mistaken for a watched key. Each
// literal is replaced by a single space to keep neighboring tokens apart.
// The removed literals are returned for separate f-string scanning.
func stripLiterals(s string) (string, []literal) {
	var sb strings.Builder
	var lits []literal

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\'' && c != '"' {
			sb.WriteByte(c)
			i++
			continue
		}

		// Collect any identifier letters directly before the quote; they are
		// the literal's prefix (f"...", rb'...').
		prefix := ""
		for p := i - 1; p >= 0 && isLetter(s[p]); p-- {
			prefix = string(s[p]) + prefix
		}
		if len(prefix) > 3 || !isPrefixLetters(prefix) {
			prefix = ""
		}

		quote := c
		triple := i+2 < len(s) && s[i+1] == quote && s[i+2] == quote

		var body string
		var end int
		if triple {
			body, end = scanUntil(s, i+3, strings.Repeat(string(quote), 3))
		} else {
			body, end = scanUntil(s, i+1, string(quote))
		}

		// The prefix letters were already written out; they are harmless on
		// their own (a lone identifier is never a dotted chain).
		lits = append(lits, literal{prefix: strings.ToLower(prefix), body: body})
		sb.WriteByte(' ')
		i = end
	}
	return sb.String(), lits
}

// scanUntil scans from start to the closing delimiter, honoring backslash
// escapes. It returns the body and the index just past the delimiter. An
// unterminated literal runs to the end of the text; the dependency compiler
// is tolerant here, malformed values are the validator's concern.
func scanUntil(s string, start int, delim string) (string, int) {
	i := start
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		if strings.HasPrefix(s[i:], delim) {
			return s[start:i], i + len(delim)
		}
		i++
	}
	return s[start:], len(s)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isPrefixLetters(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case 'f', 'F', 'r', 'R', 'b', 'B', 'u', 'U':
		default:
			return false
		}
	}
	return true
}
