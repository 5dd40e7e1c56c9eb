// Package bindings is the dependency compiler: it classifies a raw property
// value and extracts the dotted attribute paths ("watched keys") the value
// reads, so the generator knows which listeners to install.
package bindings

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
)

// handlerPrefix marks event handlers. Handlers execute on demand and are
// never watched.
const handlerPrefix = "on_"

// Compiled is the result of compiling one property value. Keys are
// deduplicated and sorted for deterministic output.
type Compiled struct {
	Value ast.CompiledValue
	Keys  [][]string
}

// IsConstant reports whether the value needs no listener.
func (c Compiled) IsConstant() bool {
	return len(c.Keys) == 0
}

// chainRe matches maximal dotted identifier chains of depth >= 2, e.g.
// `self.parent.width`.
var chainRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)+`)

// translationRe matches a call to the translation marker function `_(...)`.
var translationRe = regexp.MustCompile(`(?:^|[^A-Za-z0-9_.])_\(`)

// Compile is a pure function of its two inputs and is safe to call
// concurrently.
func Compile(propertyName, raw string) Compiled {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(propertyName, handlerPrefix) {
		return Compiled{Value: ast.CompiledValue{Kind: ast.ValueCode, Text: raw}}
	}

	keys := extractKeys(raw)
	kind := ast.ValueExpression
	if len(keys) == 0 {
		kind = ast.ValueLiteral
	}
	return Compiled{
		Value: ast.CompiledValue{Kind: kind, Text: raw},
		Keys:  keys,
	}
}

func extractKeys(raw string) [][]string {
	stripped, literals := stripLiterals(raw)

	// Trailing comment. Literals are already gone, so any '#' left is one.
	if i := strings.IndexByte(stripped, '#'); i >= 0 {
		stripped = stripped[:i]
	}

	seen := make(map[string]struct{})
	var keys [][]string

	add := func(chain string) {
		if _, dup := seen[chain]; dup {
			return
		}
		seen[chain] = struct{}{}
		keys = append(keys, strings.Split(chain, "."))
	}

	for _, chain := range chainRe.FindAllString(stripped, -1) {
		add(chain)
	}

	// Interpolation slots live inside literals that the strip above discards;
	// f-strings are re-scanned separately.
	for _, lit := range literals {
		if !strings.ContainsAny(lit.prefix, "fF") {
			continue
		}
		for _, slot := range interpolationSlots(lit.body) {
			for _, chain := range chainRe.FindAllString(slot, -1) {
				add(chain)
			}
		}
	}

	// A translation marker anywhere means locale changes must re-trigger
	// evaluation.
	if translationRe.MatchString(raw) {
		add("_")
	}

	sort.Slice(keys, func(i, j int) bool {
		return strings.Join(keys[i], ".") < strings.Join(keys[j], ".")
	})
	return keys
}

// ScannableText returns the parts of an expression that execute as code:
// string literals are replaced by spaces and f-string interpolation slots are
// appended, the same view extractKeys scans. Callers matching identifiers in
// expression text use it so words inside literals cannot match.
func ScannableText(raw string) string {
	stripped, literals := stripLiterals(raw)
	var sb strings.Builder
	sb.WriteString(stripped)
	for _, lit := range literals {
		if !strings.ContainsAny(lit.prefix, "fF") {
			continue
		}
		for _, slot := range interpolationSlots(lit.body) {
			sb.WriteByte(' ')
			sb.WriteString(slot)
		}
	}
	return sb.String()
}

// interpolationSlots returns the contents of every `{...}` slot in a format
// string body. Doubled braces are escapes, not slots.
func interpolationSlots(body string) []string {
	var slots []string
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '{' {
			if i+1 < len(body) && body[i+1] == '{' {
				i++
				continue
			}
			depth := 1
			j := i + 1
			for j < len(body) && depth > 0 {
				switch body[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth == 0 {
				slots = append(slots, body[i+1:j-1])
			}
			i = j - 1
		} else if c == '}' && i+1 < len(body) && body[i+1] == '}' {
			i++
		}
	}
	return slots
}
