// Package sema checks a parsed module against the widget and instruction
// registries. All findings are advisory: unknown names degrade generation
// quality but never block it, so everything here is a diagnostic, not an
// error return.
package sema

import (
	"fmt"
	"sort"
	"strings"

	protocol "github.com/gluax-lang/lsp"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/common"
	"github.com/kvlift/kvlift/registry"
)

// Check validates one module. Issues come back in source order.
func Check(m *ast.Module, source string) []protocol.Diagnostic {
	c := &checker{source: source, dynamic: m.DynamicClasses}
	for _, rule := range m.Rules {
		c.rule(rule)
	}
	for _, tpl := range m.Templates {
		c.widgetBody(tpl.Rule.Properties, tpl.Rule.Handlers, tpl.Name, tpl.Rule.Line)
		c.canvases(tpl.Rule.CanvasBefore, tpl.Rule.Canvas, tpl.Rule.CanvasAfter)
		for _, child := range tpl.Rule.Children {
			c.widget(child)
		}
	}
	if m.Root != nil {
		c.widget(m.Root)
	}
	sort.SliceStable(c.issues, func(i, j int) bool {
		return c.issues[i].Range.Start.Line < c.issues[j].Range.Start.Line
	})
	return c.issues
}

type checker struct {
	source  string
	dynamic map[string][]string
	issues  []protocol.Diagnostic
}

func (c *checker) warn(line int, format string, args ...any) {
	span := common.SpanLine(line, 1)
	span.Source = c.source
	c.issues = append(c.issues, *common.WarningDiag(fmt.Sprintf(format, args...), span))
}

func (c *checker) rule(r *ast.Rule) {
	name := r.Selector.PrimaryName()
	if r.RootID != "" {
		c.warn(r.RootIDLine, "id %q directly under rule <%s> names nothing and is ignored", r.RootID, name)
	}
	typeName := ""
	switch sel := r.Selector.(type) {
	case ast.SelectorName:
		typeName = sel.Name
		if !registry.WidgetExists(sel.Name) {
			if _, dyn := c.dynamic[sel.Name]; !dyn {
				c.warn(r.Line, "unknown widget type %q; properties cannot be classified", sel.Name)
			}
		}
	case ast.SelectorDynamic:
		for _, base := range sel.Bases {
			if !registry.WidgetExists(base) {
				if _, dyn := c.dynamic[base]; !dyn {
					c.warn(r.Line, "dynamic class %q extends unknown base %q", sel.Name, base)
				}
			}
		}
	}
	c.widgetBody(r.Properties, r.Handlers, typeName, r.Line)
	c.canvases(r.CanvasBefore, r.Canvas, r.CanvasAfter)
	for _, child := range r.Children {
		c.widget(child)
	}
}

func (c *checker) widget(w *ast.Widget) {
	if !registry.WidgetExists(w.Name) {
		if _, dyn := c.dynamic[w.Name]; !dyn {
			c.warn(w.Line, "unknown widget type %q", w.Name)
		}
	}
	c.widgetBody(w.Properties, w.Handlers, w.Name, w.Line)
	c.canvases(w.CanvasBefore, w.Canvas, w.CanvasAfter)
	for _, child := range w.Children {
		c.widget(child)
	}
}

func (c *checker) widgetBody(props, handlers []*ast.Property, typeName string, line int) {
	seen := make(map[string]int)
	for _, p := range props {
		if prev, dup := seen[p.Name]; dup && !p.IgnorePrevious {
			c.warn(p.Line, "property %q assigned twice; the line %d value is overwritten", p.Name, prev)
		}
		seen[p.Name] = p.Line
		c.redundantSelf(p)
	}
	events := knownEvents(typeName)
	for _, h := range handlers {
		c.redundantSelf(h)
		if events == nil {
			continue
		}
		event := strings.TrimPrefix(h.Name, "on_")
		if _, ok := events[event]; ok {
			continue
		}
		// Property changes also dispatch on_<name>.
		if _, ok := registry.PropertyType(event, typeName); ok {
			continue
		}
		c.warn(h.Line, "%q does not dispatch %s; the handler never fires", typeName, h.Name)
	}
}

// redundantSelf flags chains like self.self.width, a common editing slip that
// watches nothing useful.
func (c *checker) redundantSelf(p *ast.Property) {
	for _, key := range p.Watched {
		for i := 1; i < len(key); i++ {
			if key[i] == "self" || key[i] == "root" {
				c.warn(p.Line, "watched key %q nests a scope name; did you mean %q?",
					strings.Join(key, "."), strings.Join(key[i:], "."))
				return
			}
		}
	}
}

func (c *checker) canvases(layers ...*ast.Canvas) {
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		for _, ins := range layer.Instructions {
			if !registry.InstructionExists(ins.InstructionType) {
				c.warn(ins.Line, "unknown canvas instruction %q", ins.InstructionType)
				continue
			}
			for _, p := range ins.Properties {
				if _, ok := registry.InstructionParameterType(p.Name, ins.InstructionType); !ok {
					c.warn(p.Line, "instruction %q has no parameter %q", ins.InstructionType, p.Name)
				}
			}
		}
	}
}

func knownEvents(typeName string) map[string]struct{} {
	if typeName == "" || !registry.WidgetExists(typeName) {
		return nil
	}
	events := make(map[string]struct{})
	for _, e := range registry.Events(typeName) {
		events[strings.TrimPrefix(e, "on_")] = struct{}{}
	}
	return events
}
