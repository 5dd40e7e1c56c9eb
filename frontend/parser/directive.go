package parser

import (
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
)

// parseDirective splits a raw `#:` line into its tagged variant. The lexer
// hands the line over whole; its internal grammar lives here.
func (p *parser) parseDirective() ast.Directive {
	tok := p.expect(lexer.TokenDirective)
	line := tok.Line
	body := strings.TrimSpace(strings.TrimPrefix(tok.Text, "#:"))

	name, rest, _ := strings.Cut(body, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "kivy":
		if rest == "" {
			p.failAt(line, tok.Column, SyntaxError,
				"#:kivy directive needs a version", "write e.g. `#:kivy 2.0`")
		}
		return ast.KivyDirective{Version: rest, Line: line}
	case "import":
		alias, module, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(module) == "" {
			p.failAt(line, tok.Column, SyntaxError,
				"#:import directive needs an alias and a module",
				"write e.g. `#:import np numpy`")
		}
		return ast.ImportDirective{Alias: alias, Module: strings.TrimSpace(module), Line: line}
	case "set":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(value) == "" {
			p.failAt(line, tok.Column, SyntaxError,
				"#:set directive needs a name and a value",
				"write e.g. `#:set my_color (1, 0, 0, 1)`")
		}
		return ast.SetDirective{Name: key, Value: strings.TrimSpace(value), Line: line}
	case "include":
		force := false
		if path, found := strings.CutPrefix(rest, "force "); found {
			force = true
			rest = strings.TrimSpace(path)
		}
		if rest == "" {
			p.failAt(line, tok.Column, SyntaxError,
				"#:include directive needs a file path",
				"write e.g. `#:include other.kv`")
		}
		return ast.IncludeDirective{Path: rest, Force: force, Line: line}
	default:
		p.failAt(line, tok.Column, SyntaxError,
			"unknown directive #:"+name,
			"known directives are kivy, import, set and include")
		return nil // unreachable
	}
}
