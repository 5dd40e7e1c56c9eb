package codegen

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kvlift/kvlift/registry"
)

// attrAccessRe matches an expression that is exactly one dotted attribute
// access, e.g. `app.title`.
var attrAccessRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+$`)

// simpleAttrAccess reports whether raw is a single simple attribute access
// and returns its segments.
func simpleAttrAccess(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if !attrAccessRe.MatchString(raw) {
		return nil, false
	}
	return strings.Split(raw, "."), true
}

func chainText(key []string) string {
	return strings.Join(key, ".")
}

// substituteChain replaces whole occurrences of a dotted chain with repl. A
// trailing guard keeps `self.parent` from matching inside
// `self.parent.width`; watched keys are maximal chains, so a key can never
// legitimately occur as the tail of a longer chain in the same expression.
func substituteChain(expr, chain, repl string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(chain) + `($|[^.\w])`)
	return re.ReplaceAllString(expr, strings.ReplaceAll(repl, "$", "$$")+"${1}")
}

var (
	selfNameRe = regexp.MustCompile(`\bself\b`)
	rootNameRe = regexp.MustCompile(`\broot\b`)
)

// rewriteScope maps the KV-level names `self` and `root` onto the generated
// code's variables: `self` is the widget a value is scoped to (the child
// variable inside a child block), `root` is always the rule widget. The
// rewrite is textual and best-effort; a literal containing the bare word
// `self` would be rewritten too, which generation tolerates by design.
func rewriteScope(expr, selfVar, rootVar string) string {
	if selfVar != "self" {
		expr = selfNameRe.ReplaceAllString(expr, strings.ReplaceAll(selfVar, "$", "$$"))
	}
	expr = rootNameRe.ReplaceAllString(expr, strings.ReplaceAll(rootVar, "$", "$$"))
	return expr
}

/* Static literal conversion */

// convertLiteral turns a constant raw value into a Python literal: numeric
// strings become numbers, comma-separated values become a tuple (or a list
// when the target field is list-typed), booleans and None map through, and
// everything else becomes a string literal.
func convertLiteral(raw string, kind registry.PropertyKind) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return `""`
	}
	if parts := splitTopLevel(s, ','); len(parts) > 1 {
		conv := make([]string, len(parts))
		for i, p := range parts {
			conv[i] = convertScalar(strings.TrimSpace(p))
		}
		if kind == registry.List {
			return "[" + strings.Join(conv, ", ") + "]"
		}
		return "(" + strings.Join(conv, ", ") + ")"
	}
	return convertScalar(s)
}

func convertScalar(s string) string {
	switch s {
	case "True", "False", "None":
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return formatNumber(f)
	}
	if quoted, ok := unquote(s); ok {
		return pythonQuote(quoted)
	}
	// An already-structured container literal passes through untouched.
	if len(s) > 1 {
		if (s[0] == '(' && s[len(s)-1] == ')') ||
			(s[0] == '[' && s[len(s)-1] == ']') ||
			(s[0] == '{' && s[len(s)-1] == '}') {
			return s
		}
	}
	return pythonQuote(s)
}

// formatNumber renders a float the way the target language spells a numeric
// property value: always with a decimal point.
func formatNumber(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".e") {
		out += ".0"
	}
	return out
}

// unquote strips a matching pair of string quotes, unescaping only the quote
// character itself.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if len(s) >= 6 && strings.HasPrefix(s, strings.Repeat(string(q), 3)) &&
		strings.HasSuffix(s, strings.Repeat(string(q), 3)) {
		inner = s[3 : len(s)-3]
	}
	return strings.ReplaceAll(inner, `\`+string(q), string(q)), true
}

func pythonQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// splitTopLevel splits on sep outside any bracket or string nesting. It
// returns a single element when no top-level separator exists.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
