// Package parser builds a KV syntax tree from the lexer's token stream by
// recursive descent with one token of lookahead. Parse failures propagate as
// *ParsingError panics and are recovered at the API boundary.
package parser

import (
	"fmt"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/bindings"
	"github.com/kvlift/kvlift/frontend/lexer"
)

type parser struct {
	src    string
	tokens []lexer.Token
	tok    lexer.Token
	pos    int

	// depth tracks the current indentation level; error recovery
	// resynchronizes on depth-0 identifiers.
	depth int
}

// Result is the outcome of a tolerant parse: a best-effort partial module
// plus every diagnostic collected along the way.
type Result struct {
	Module *ast.Module
	Errors []*ParsingError
}

// Parse is the strict entry point: it fails fast with the first error.
func Parse(tokens []lexer.Token) (m *ast.Module, err *ParsingError) {
	p := newParser("", tokens)
	m = newModule()
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, errorToParsingError(r)
		}
	}()
	for !p.at(lexer.TokenEOF) {
		p.parseTopLevel(m)
	}
	return m, nil
}

// ParseWithRecovery keeps parsing after a malformed construct: the offending
// tokens are skipped up to a synchronization point and top-level parsing
// resumes.
func ParseWithRecovery(tokens []lexer.Token) Result {
	p := newParser("", tokens)
	m := newModule()
	var errs []*ParsingError
	for !p.at(lexer.TokenEOF) {
		if err := p.parseTopLevelProtected(m); err != nil {
			errs = append(errs, err)
			p.synchronize()
		}
	}
	return Result{Module: m, Errors: errs}
}

func newModule() *ast.Module {
	return &ast.Module{DynamicClasses: make(map[string][]string)}
}

func newParser(src string, tokens []lexer.Token) *parser {
	// Comments are trivia to the grammar; dropping them up front keeps the
	// one-token lookahead honest.
	kept := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != lexer.TokenComment {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		kept = []lexer.Token{{Kind: lexer.TokenEOF, Line: 1, Column: 1}}
	}
	return &parser{src: src, tokens: kept, tok: kept[0]}
}

func (p *parser) parseTopLevelProtected(m *ast.Module) (err *ParsingError) {
	defer func() {
		if r := recover(); r != nil {
			err = errorToParsingError(r)
		}
	}()
	p.parseTopLevel(m)
	return nil
}

func (p *parser) parseTopLevel(m *ast.Module) {
	switch p.tok.Kind {
	case lexer.TokenNewline, lexer.TokenIndent, lexer.TokenDedent:
		// Stray structure between items.
		p.advance()
	case lexer.TokenDirective:
		m.Directives = append(m.Directives, p.parseDirective())
		p.tryConsume(lexer.TokenNewline)
	case lexer.TokenLAngle:
		p.parseRuleInto(m)
	case lexer.TokenLBracket:
		m.Templates = append(m.Templates, p.parseTemplate())
	case lexer.TokenIdent:
		w := p.parseWidget(0)
		if m.Root != nil {
			p.failAt(w.Line, 1, SyntaxError,
				fmt.Sprintf("only one root widget is allowed, %q is the second", w.Name),
				"declare a rule with <"+w.Name+"> instead")
		}
		m.Root = w
	default:
		p.fail(UnexpectedToken,
			fmt.Sprintf("unexpected %s at top level", p.tok.Kind), "")
	}
}

// synchronize skips tokens until a safe boundary: the next `<`, the next `[`,
// or an identifier at indentation level 0.
func (p *parser) synchronize() {
	if !p.at(lexer.TokenEOF) {
		p.advance()
	}
	for !p.at(lexer.TokenEOF) {
		switch p.tok.Kind {
		case lexer.TokenLAngle, lexer.TokenLBracket, lexer.TokenDirective:
			return
		case lexer.TokenIdent:
			if p.depth == 0 {
				return
			}
		}
		p.advance()
	}
}

/* Token plumbing */

func (p *parser) advance() {
	switch p.tok.Kind {
	case lexer.TokenIndent:
		p.depth++
	case lexer.TokenDedent:
		if p.depth > 0 {
			p.depth--
		}
	}
	if p.pos+1 < len(p.tokens) {
		p.pos++
		p.tok = p.tokens[p.pos]
	} else {
		p.tok = p.tokens[len(p.tokens)-1]
	}
}

func (p *parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) at(kind lexer.TokenKind) bool {
	return p.tok.Kind == kind
}

func (p *parser) tryConsume(kind lexer.TokenKind) bool {
	if p.tok.Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind lexer.TokenKind) lexer.Token {
	if p.tok.Kind != kind {
		p.fail(UnexpectedToken,
			fmt.Sprintf("expected %s, got %s", kind, p.tok.Kind), "")
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) expectIdent(what string) lexer.Token {
	if p.tok.Kind != lexer.TokenIdent {
		p.fail(UnexpectedToken,
			fmt.Sprintf("expected %s, got %s", what, p.tok.Kind), "")
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) fail(kind ParseErrorKind, msg, suggestion string) {
	p.failAt(p.tok.Line, p.tok.Column, kind, msg, suggestion)
}

func (p *parser) failAt(line, col int, kind ParseErrorKind, msg, suggestion string) {
	panic(&ParsingError{
		Line:       line,
		Column:     col,
		Message:    msg,
		Kind:       kind,
		Suggestion: suggestion,
		Source:     p.src,
	})
}

// newProperty compiles the raw value as part of node construction, so the
// finished tree is immutable.
func newProperty(name, raw string, line int, ignorePrevious bool) *ast.Property {
	c := bindings.Compile(name, raw)
	return &ast.Property{
		Name:           name,
		RawValue:       raw,
		Compiled:       c.Value,
		Watched:        c.Keys,
		IgnorePrevious: ignorePrevious,
		Line:           line,
	}
}
