// Package kvfmt re-serializes a parsed module back to canonical KV source:
// four-space indentation, one space after each property colon, directives
// first, rules in source order. Formatting a formatted module is a no-op.
package kvfmt

import (
	"fmt"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
)

const indentUnit = "    "

// Format renders a module as canonical KV text.
func Format(m *ast.Module) string {
	f := &formatter{}
	for _, d := range m.Directives {
		f.directive(d)
	}
	if len(m.Directives) > 0 && (len(m.Rules) > 0 || len(m.Templates) > 0 || m.Root != nil) {
		f.blank()
	}
	for i, rule := range m.Rules {
		if i > 0 {
			f.blank()
		}
		f.rule(rule)
	}
	for _, tpl := range m.Templates {
		if len(m.Rules) > 0 {
			f.blank()
		}
		f.template(tpl)
	}
	if m.Root != nil {
		if len(m.Rules) > 0 || len(m.Templates) > 0 {
			f.blank()
		}
		f.widget(m.Root, 0)
	}
	return f.buf.String()
}

type formatter struct {
	buf strings.Builder
}

func (f *formatter) line(depth int, format string, args ...any) {
	for range depth {
		f.buf.WriteString(indentUnit)
	}
	fmt.Fprintf(&f.buf, format, args...)
	f.buf.WriteByte('\n')
}

func (f *formatter) blank() {
	f.buf.WriteByte('\n')
}

func (f *formatter) directive(d ast.Directive) {
	switch d := d.(type) {
	case ast.KivyDirective:
		f.line(0, "#:kivy %s", d.Version)
	case ast.ImportDirective:
		f.line(0, "#:import %s %s", d.Alias, d.Module)
	case ast.SetDirective:
		f.line(0, "#:set %s %s", d.Name, d.Value)
	case ast.IncludeDirective:
		if d.Force {
			f.line(0, "#:include force %s", d.Path)
		} else {
			f.line(0, "#:include %s", d.Path)
		}
	}
}

func (f *formatter) rule(r *ast.Rule) {
	marker := ""
	if r.AvoidPrevious {
		marker = "-"
	}
	f.line(0, "<%s%s>:", marker, selectorText(r.Selector))
	f.ruleBody(r, 1)
}

func (f *formatter) template(t *ast.Template) {
	f.line(0, "[%s@%s]:", t.Name, strings.Join(t.BaseClasses, "+"))
	f.ruleBody(t.Rule, 1)
}

func (f *formatter) ruleBody(r *ast.Rule, depth int) {
	for _, p := range r.Properties {
		f.property(p, depth)
	}
	for _, h := range r.Handlers {
		f.property(h, depth)
	}
	f.canvas(r.CanvasBefore, depth)
	f.canvas(r.Canvas, depth)
	f.canvas(r.CanvasAfter, depth)
	for _, c := range r.Children {
		f.widget(c, depth)
	}
}

func (f *formatter) widget(w *ast.Widget, depth int) {
	f.line(depth, "%s:", w.Name)
	if w.ID != "" {
		f.line(depth+1, "id: %s", w.ID)
	}
	for _, p := range w.Properties {
		f.property(p, depth+1)
	}
	for _, h := range w.Handlers {
		f.property(h, depth+1)
	}
	f.canvas(w.CanvasBefore, depth+1)
	f.canvas(w.Canvas, depth+1)
	f.canvas(w.CanvasAfter, depth+1)
	for _, c := range w.Children {
		f.widget(c, depth+1)
	}
}

func (f *formatter) canvas(c *ast.Canvas, depth int) {
	if c == nil {
		return
	}
	f.line(depth, "%s:", c.Layer)
	for _, ins := range c.Instructions {
		f.line(depth+1, "%s:", ins.InstructionType)
		for _, p := range ins.Properties {
			f.property(p, depth+2)
		}
	}
}

// property renders one `name: value` line; continuation lines keep their
// extra indentation relative to the property.
func (f *formatter) property(p *ast.Property, depth int) {
	marker := ""
	if p.IgnorePrevious {
		marker = "-"
	}
	lines := strings.Split(p.RawValue, "\n")
	f.line(depth, "%s%s: %s", marker, p.Name, strings.TrimSpace(lines[0]))
	for _, cont := range lines[1:] {
		f.line(depth+1, "%s", strings.TrimSpace(cont))
	}
}

func selectorText(sel ast.Selector) string {
	switch s := sel.(type) {
	case ast.SelectorName:
		return s.Name
	case ast.SelectorClassName:
		return "." + s.Name
	case ast.SelectorDynamic:
		return s.Name + "@" + strings.Join(s.Bases, "+")
	case ast.SelectorMultiple:
		parts := make([]string, len(s.Items))
		for i, item := range s.Items {
			parts[i] = selectorText(item)
		}
		return strings.Join(parts, ",")
	}
	return ""
}
