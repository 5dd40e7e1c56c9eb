package parser

import (
	"fmt"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
)

// bodyParts accumulates one indented body before it is attached to its
// owning rule or widget.
type bodyParts struct {
	props    []*ast.Property
	handlers []*ast.Property

	canvasBefore *ast.Canvas
	canvas       *ast.Canvas
	canvasAfter  *ast.Canvas

	children []*ast.Widget
	id       string
	idLine   int
}

func (b *bodyParts) fillRule(r *ast.Rule) {
	r.Properties = b.props
	r.Handlers = b.handlers
	r.CanvasBefore = b.canvasBefore
	r.Canvas = b.canvas
	r.CanvasAfter = b.canvasAfter
	r.Children = b.children
	// A stray `id:` directly under a rule names nothing at runtime; it is
	// recorded for the validator and otherwise ignored.
	r.RootID = b.id
	r.RootIDLine = b.idLine
}

func (b *bodyParts) fillWidget(w *ast.Widget) {
	w.Properties = b.props
	w.Handlers = b.handlers
	w.CanvasBefore = b.canvasBefore
	w.Canvas = b.canvas
	w.CanvasAfter = b.canvasAfter
	w.Children = b.children
	w.ID = b.id
}

// parseWidget parses `Name:` plus an optional indented body.
func (p *parser) parseWidget(level int) *ast.Widget {
	name := p.expectIdent("widget name")
	p.expect(lexer.TokenColon)
	w := &ast.Widget{Name: name.Text, Level: level, Line: name.Line}
	if !p.tryConsume(lexer.TokenNewline) {
		p.fail(UnexpectedToken,
			fmt.Sprintf("widget %q takes no value on its declaration line", name.Text),
			"put properties on indented lines below")
	}
	if p.tryConsume(lexer.TokenIndent) {
		parts := p.parseBody(level + 1)
		parts.fillWidget(w)
	}
	return w
}

// parseBody consumes an indented body up to and including its Dedent.
//
// Disambiguation: inside a body, `ident ':'` is a child widget when ident
// starts with an uppercase letter, otherwise a property. This
// naming-convention heuristic is load-bearing.
func (p *parser) parseBody(level int) bodyParts {
	var parts bodyParts
	for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEOF) {
		switch {
		case p.tryConsume(lexer.TokenNewline):

		case p.at(lexer.TokenCanvas):
			p.parseCanvasInto(&parts)

		case p.at(lexer.TokenMinus) && p.peek().Kind == lexer.TokenIdent:
			p.advance() // `-`
			prop := p.parseProperty(true)
			parts.add(prop)

		case p.at(lexer.TokenIdent):
			if startsUpper(p.tok.Text) && p.peek().Kind == lexer.TokenColon {
				parts.children = append(parts.children, p.parseWidget(level))
				continue
			}
			prop := p.parseProperty(false)
			if prop.Name == "id" {
				parts.id = strings.TrimSpace(prop.RawValue)
				parts.idLine = prop.Line
				continue
			}
			parts.add(prop)

		default:
			p.fail(UnexpectedToken,
				fmt.Sprintf("unexpected %s in widget body", p.tok.Kind), "")
		}
	}
	p.tryConsume(lexer.TokenDedent)
	return parts
}

func (b *bodyParts) add(prop *ast.Property) {
	if prop.IsHandler() {
		b.handlers = append(b.handlers, prop)
	} else {
		b.props = append(b.props, prop)
	}
}

// parseProperty parses `name: value`, including the wrapped-line continuation
// form. The raw value is compiled as part of construction.
func (p *parser) parseProperty(ignorePrev bool) *ast.Property {
	name := p.expectIdent("property name")
	p.expect(lexer.TokenColon)
	raw := p.parseValue()
	return newProperty(name.Text, raw, name.Line, ignorePrev)
}

// parseValue reconstructs the raw value text: the rest of the line, plus any
// wrapped continuation lines introduced by NEWLINE INDENT, joined with
// newlines up to the matching DEDENT.
func (p *parser) parseValue() string {
	first := p.lineValue()
	if !p.tryConsume(lexer.TokenNewline) {
		return first
	}
	if !p.at(lexer.TokenIndent) {
		return first
	}
	p.advance()
	depth := 1

	var lines []string
	if first != "" {
		lines = append(lines, first)
	}
	for depth > 0 && !p.at(lexer.TokenEOF) {
		switch p.tok.Kind {
		case lexer.TokenIndent:
			depth++
			p.advance()
		case lexer.TokenDedent:
			depth--
			p.advance()
		case lexer.TokenNewline:
			p.advance()
		default:
			lines = append(lines, p.lineValue())
		}
	}
	return strings.Join(lines, "\n")
}

// lineValue concatenates raw token texts until the end of the line. Tokens
// that were adjacent in the source are joined without a space, everything
// else with a single one, so the text round-trips through the dependency
// compiler identically to hand-written source.
func (p *parser) lineValue() string {
	var sb strings.Builder
	var prev lexer.Token
	havePrev := false
	for {
		switch p.tok.Kind {
		case lexer.TokenNewline, lexer.TokenEOF, lexer.TokenIndent, lexer.TokenDedent:
			return sb.String()
		}
		if havePrev && !prev.Adjacent(p.tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.tok.Text)
		prev = p.tok
		havePrev = true
		p.advance()
	}
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
