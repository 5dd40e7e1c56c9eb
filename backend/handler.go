package codegen

import (
	"regexp"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
)

var (
	callStmtRe   = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*\((.*)\)$`)
	assignStmtRe = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*=[^=]`)
)

// emitSelfHandler binds a handler declared on the rule widget to a real
// method on the generated class, returning the method to append after
// __init__ and __del__.
func (cg *Codegen) emitSelfHandler(h *ast.Property) method {
	name := "_" + h.Name + "_handler"
	cg.ln("self.bind(%s=self.%s)", h.Name, name)
	cg.record("self", h.Name, "self."+name)

	var body []string
	for _, line := range strings.Split(h.RawValue, "\n") {
		if stmt, ok := convertStatement(line, selfScope); ok {
			body = append(body, stmt)
		}
	}
	if len(body) == 0 {
		body = []string{"pass"}
	}
	return method{name: name, body: body}
}

// emitChildHandler binds a handler declared on a child widget with a lambda;
// child widgets get no methods of their own, so the handler collapses to its
// first convertible statement.
func (cg *Codegen) emitChildHandler(h *ast.Property, ownerVar string, scope scopeInfo) {
	body := "None"
	for _, line := range strings.Split(h.RawValue, "\n") {
		if stmt, ok := convertStatement(line, scope); ok {
			body = stmt
			break
		}
	}
	cb := cg.callbackName()
	cg.ln("%s = lambda instance: %s", cb, body)
	cg.ln("%s.bind(%s=%s)", ownerVar, h.Name, cb)
	cg.record(ownerVar, h.Name, cb)
}

// convertStatement translates one handler line to Python on a best-effort
// basis: a call with literal or attribute arguments, or a plain assignment.
// Anything more elaborate is dropped rather than emitted wrong.
func convertStatement(line string, scope scopeInfo) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", false
	}
	if m := callStmtRe.FindStringSubmatch(s); m != nil {
		recv := rewriteScope(m[1], scope.selfVar, "self")
		var args []string
		for _, a := range splitTopLevel(m[2], ',') {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			args = append(args, convertArgument(a, scope))
		}
		return recv + "(" + strings.Join(args, ", ") + ")", true
	}
	if m := assignStmtRe.FindStringSubmatch(s); m != nil {
		lhs := rewriteScope(m[1], scope.selfVar, "self")
		rhs := rewriteScope(strings.TrimSpace(s[strings.Index(s, "=")+1:]), scope.selfVar, "self")
		return lhs + " = " + rhs, true
	}
	return "", false
}

func convertArgument(arg string, scope scopeInfo) string {
	if text, ok := unquote(arg); ok {
		return pythonQuote(text)
	}
	switch arg {
	case "True", "False", "None":
		return arg
	}
	return rewriteScope(arg, scope.selfVar, "self")
}
