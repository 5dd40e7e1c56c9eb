package parser

import (
	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
)

// parseCanvasInto parses a `canvas:`/`canvas.before:`/`canvas.after:` block
// and slots it into the body being built.
func (p *parser) parseCanvasInto(parts *bodyParts) {
	tok := p.expect(lexer.TokenCanvas)
	layer := ast.CanvasDefault
	if p.tryConsume(lexer.TokenDot) {
		mod := p.expectIdent("canvas modifier")
		switch mod.Text {
		case "before":
			layer = ast.CanvasBefore
		case "after":
			layer = ast.CanvasAfter
		default:
			p.failAt(mod.Line, mod.Column, SyntaxError,
				"unknown canvas modifier "+mod.Text,
				"use canvas.before or canvas.after")
		}
	}
	p.expect(lexer.TokenColon)
	p.expect(lexer.TokenNewline)

	c := &ast.Canvas{Layer: layer, Line: tok.Line}
	if p.tryConsume(lexer.TokenIndent) {
		for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEOF) {
			if p.tryConsume(lexer.TokenNewline) {
				continue
			}
			c.Instructions = append(c.Instructions, p.parseInstruction())
		}
		p.tryConsume(lexer.TokenDedent)
	}

	var slot **ast.Canvas
	switch layer {
	case ast.CanvasBefore:
		slot = &parts.canvasBefore
	case ast.CanvasDefault:
		slot = &parts.canvas
	case ast.CanvasAfter:
		slot = &parts.canvasAfter
	}
	if *slot != nil {
		p.failAt(tok.Line, tok.Column, SyntaxError,
			"duplicate "+layer.String()+" block", "merge the instruction lists")
	}
	*slot = c
}

// parseInstruction parses one graphics instruction with an optional indented
// property list. Context instructions such as PushMatrix have no body.
func (p *parser) parseInstruction() *ast.CanvasInstruction {
	name := p.expectIdent("canvas instruction")
	p.expect(lexer.TokenColon)
	p.expect(lexer.TokenNewline)

	ins := &ast.CanvasInstruction{InstructionType: name.Text, Line: name.Line}
	if p.tryConsume(lexer.TokenIndent) {
		for !p.at(lexer.TokenDedent) && !p.at(lexer.TokenEOF) {
			switch {
			case p.tryConsume(lexer.TokenNewline):
			case p.at(lexer.TokenMinus) && p.peek().Kind == lexer.TokenIdent:
				p.advance()
				ins.Properties = append(ins.Properties, p.parseProperty(true))
			default:
				ins.Properties = append(ins.Properties, p.parseProperty(false))
			}
		}
		p.tryConsume(lexer.TokenDedent)
	}
	return ins
}
