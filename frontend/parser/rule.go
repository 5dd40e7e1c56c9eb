package parser

import (
	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
)

// parseRuleInto parses `<Selector>:` plus its body and registers any dynamic
// classes the selector declares.
func (p *parser) parseRuleInto(m *ast.Module) {
	open := p.expect(lexer.TokenLAngle)
	avoid := p.tryConsume(lexer.TokenMinus)
	selector := p.parseSelector()
	p.expect(lexer.TokenRAngle)
	// The trailing colon is optional; informal KV leaves it off.
	p.tryConsume(lexer.TokenColon)

	rule := &ast.Rule{
		Selector:      selector,
		AvoidPrevious: avoid,
		Line:          open.Line,
	}

	if p.tryConsume(lexer.TokenNewline) && p.tryConsume(lexer.TokenIndent) {
		parts := p.parseBody(1)
		parts.fillRule(rule)
	}
	rule.IDs = collectIDs(rule.Children)

	registerDynamicClasses(m, selector)
	m.Rules = append(m.Rules, rule)
}

// parseSelector parses one or more comma-separated selector items.
func (p *parser) parseSelector() ast.Selector {
	first := p.parseSelectorItem()
	if !p.at(lexer.TokenComma) {
		return first
	}
	items := []ast.Selector{first}
	for p.tryConsume(lexer.TokenComma) {
		items = append(items, p.parseSelectorItem())
	}
	return ast.SelectorMultiple{Items: items}
}

// parseSelectorItem parses `.name`, `Name` or `Name@Base1+Base2`.
func (p *parser) parseSelectorItem() ast.Selector {
	if p.tryConsume(lexer.TokenDot) {
		name := p.expectIdent("class selector name")
		return ast.SelectorClassName{Name: name.Text}
	}
	name := p.expectIdent("selector name")
	if !p.tryConsume(lexer.TokenAt) {
		return ast.SelectorName{Name: name.Text}
	}
	bases := []string{p.expectIdent("base class name").Text}
	for p.tryConsume(lexer.TokenPlus) {
		bases = append(bases, p.expectIdent("base class name").Text)
	}
	return ast.SelectorDynamic{Name: name.Text, Bases: bases}
}

// parseTemplate parses the deprecated `[Name@Base+Base]:` construct.
func (p *parser) parseTemplate() *ast.Template {
	open := p.expect(lexer.TokenLBracket)
	name := p.expectIdent("template name")
	p.expect(lexer.TokenAt)
	bases := []string{p.expectIdent("base class name").Text}
	for p.tryConsume(lexer.TokenPlus) {
		bases = append(bases, p.expectIdent("base class name").Text)
	}
	p.expect(lexer.TokenRBracket)
	p.tryConsume(lexer.TokenColon)

	rule := &ast.Rule{
		Selector: ast.SelectorName{Name: name.Text},
		Line:     open.Line,
	}
	if p.tryConsume(lexer.TokenNewline) && p.tryConsume(lexer.TokenIndent) {
		parts := p.parseBody(1)
		parts.fillRule(rule)
	}
	rule.IDs = collectIDs(rule.Children)

	return &ast.Template{
		Name:        name.Text,
		BaseClasses: bases,
		Rule:        rule,
		Line:        open.Line,
	}
}

func registerDynamicClasses(m *ast.Module, sel ast.Selector) {
	switch s := sel.(type) {
	case ast.SelectorDynamic:
		m.DynamicClasses[s.Name] = s.Bases
	case ast.SelectorMultiple:
		for _, item := range s.Items {
			registerDynamicClasses(m, item)
		}
	}
}

// collectIDs gathers `id:` declarations from a widget subtree in pre-order,
// the same order the generator populates the runtime id table in.
func collectIDs(children []*ast.Widget) map[string]*ast.Widget {
	ids := make(map[string]*ast.Widget)
	var walk func(ws []*ast.Widget)
	walk = func(ws []*ast.Widget) {
		for _, w := range ws {
			if w.ID != "" {
				ids[w.ID] = w
			}
			walk(w.Children)
		}
	}
	walk(children)
	return ids
}
