package codegen

import (
	"fmt"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
)

// emitReactive writes the initial assignment of an expression property and
// one listener per watched key. When the expression is exactly a single
// watched attribute chain, a Kivy setter shortcut replaces the callback and
// the binding stays alive with the widget tree, so it is not recorded for
// teardown. Canvas instructions cannot use the shortcut: their fields are not
// Kivy properties, so every canvas listener is a closure.
func (cg *Codegen) emitReactive(p *ast.Property, targetExpr, propName string, scope scopeInfo, canvasCtx bool) {
	raw := strings.TrimSpace(p.RawValue)
	cg.ln("%s.%s = %s", targetExpr, propName, rewriteScope(raw, scope.selfVar, "self"))

	if !canvasCtx && len(p.Watched) == 1 {
		if chain, ok := simpleAttrAccess(raw); ok && chainText(chain) == chainText(p.Watched[0]) {
			obj, prop, ok := bindSite(p.Watched[0], scope)
			if ok {
				cg.ln("%s.bind(%s=%s.setter(%q))", obj, prop, targetExpr, propName)
				return
			}
		}
	}

	for _, key := range p.Watched {
		obj, prop, ok := bindSite(key, scope)
		if !ok {
			continue
		}
		cb := cg.callbackName()
		cg.ln("%s = lambda instance, value: setattr(%s, %q, %s)", cb, targetExpr, propName, setattrValue(closureBody(raw, key, scope, canvasCtx)))
		cg.ln("%s.bind(%s=%s)", obj, prop, cb)
		cg.record(obj, prop, cb)
	}
}

// bindSite splits a watched key into the Python object expression to bind on
// and the property name to observe. Keys with no attribute part, such as the
// translation marker, have nothing observable and report false.
func bindSite(key []string, scope scopeInfo) (object, property string, ok bool) {
	if len(key) < 2 {
		return "", "", false
	}
	object = rewriteScope(strings.Join(key[:len(key)-1], "."), scope.selfVar, "self")
	return object, key[len(key)-1], true
}

// closureBody builds the lambda body that recomputes the target value when a
// watched key fires. The fired key's chain is replaced with the callback's
// `value` argument; in canvas mode the dispatching widget arrives as
// `instance`, so the KV `self` is rewritten to it instead.
func closureBody(raw string, key []string, scope scopeInfo, canvasCtx bool) string {
	chain := chainText(key)
	if strings.TrimSpace(raw) == chain {
		return "value"
	}
	if canvasCtx {
		return rewriteScope(raw, "instance", "self")
	}
	return rewriteScope(substituteChain(raw, chain, "value"), scope.selfVar, "self")
}

// setattrValue parenthesizes a comma tuple so setattr receives it as one
// value instead of extra positional arguments. Commas nested in brackets or
// string literals do not count.
func setattrValue(body string) string {
	depth := 0
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
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
		case ',':
			if depth == 0 {
				return "(" + body + ")"
			}
		}
	}
	return body
}

// staticKwargs renders the constant properties of a widget as constructor
// keyword arguments.
func (cg *Codegen) staticKwargs(props []*ast.Property, typeName string) string {
	var parts []string
	for _, p := range props {
		if !p.IsConstant() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, convertLiteral(p.RawValue, cg.propertyKind(p.Name, typeName))))
	}
	return strings.Join(parts, ", ")
}
