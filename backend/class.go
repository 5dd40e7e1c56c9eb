package codegen

import (
	"regexp"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/bindings"
	"github.com/kvlift/kvlift/registry"
)

// scopeInfo tracks what the KV names `self` and `root` mean at the point of
// emission: inside a child block, `self` is the child's variable.
type scopeInfo struct {
	selfVar string
}

var selfScope = scopeInfo{selfVar: "self"}

// method is a handler method synthesized on the generated class.
type method struct {
	name string
	body []string
}

func (cg *Codegen) generateClass(name string, rule *ast.Rule, templateBases []string) string {
	cg.bindings = nil
	cg.callbackIdx = 0
	cg.varIdx = 0

	bases := cg.classBases(name, rule, templateBases)
	for _, b := range bases {
		cg.widgetTypes[b] = struct{}{}
	}

	custom := cg.customProperties(rule, bases)
	if len(custom) > 0 {
		cg.needsProperty = true
	}
	usesApp := referencesApp(rule)
	if usesApp {
		cg.needsApp = true
	}

	selfType := cg.selfType(name, bases)
	var methods []method

	return cg.snippet(func() {
		cg.ln("class %s(%s):", name, strings.Join(bases, ", "))
		cg.pushIndent()
		cg.ln("")
		for _, prop := range custom {
			cg.ln("%s = ObjectProperty(None)", prop)
		}
		if len(custom) > 0 {
			cg.ln("")
		}

		cg.ln("def __init__(self, **kwargs):")
		cg.pushIndent()
		cg.ln("super().__init__(**kwargs)")
		cg.ln("self._bindings = []")
		if usesApp {
			cg.ln("app = App.get_running_app()")
		}

		for _, p := range rule.Properties {
			if p.IsConstant() {
				cg.ln("self.%s = %s", p.Name, convertLiteral(p.RawValue, cg.propertyKind(p.Name, selfType)))
			} else {
				cg.emitReactive(p, "self", p.Name, selfScope, false)
			}
		}
		for _, h := range rule.Handlers {
			m := cg.emitSelfHandler(h)
			methods = append(methods, m)
		}
		cg.emitCanvas(rule.CanvasBefore, "self", selfScope)
		cg.emitCanvas(rule.Canvas, "self", selfScope)
		cg.emitCanvas(rule.CanvasAfter, "self", selfScope)
		for _, child := range rule.Children {
			cg.emitWidget(child, "self")
		}

		for _, b := range cg.bindings {
			cg.ln("self._bindings.append((%s, %q, %s))", b.object, b.property, b.callback)
		}
		cg.popIndent()

		cg.ln("")
		cg.ln("def __del__(self):")
		cg.pushIndent()
		cg.ln("for (obj, prop, callback) in self._bindings:")
		cg.pushIndent()
		cg.ln("try:")
		cg.pushIndent()
		cg.ln("obj.unbind(**{prop: callback})")
		cg.popIndent()
		cg.ln("except:")
		cg.pushIndent()
		cg.ln("pass")
		cg.popIndent()
		cg.popIndent()
		cg.popIndent()

		for _, m := range methods {
			cg.ln("")
			cg.ln("def %s(self, instance):", m.name)
			cg.pushIndent()
			for _, stmt := range m.body {
				cg.ln("%s", stmt)
			}
			cg.popIndent()
		}
		cg.popIndent()
	})
}

// classBases resolves the base list of a generated class: supplemental class
// info wins, then a dynamic class's declared bases, then the registry's base
// for a restyled stock type, then the generic root.
func (cg *Codegen) classBases(name string, rule *ast.Rule, templateBases []string) []string {
	if len(templateBases) > 0 {
		return templateBases
	}
	if info, ok := cg.opts.ClassInfo[name]; ok && len(info.Bases) > 0 {
		return info.Bases
	}
	if bases, ok := cg.module.DynamicClasses[name]; ok && len(bases) > 0 {
		return bases
	}
	if registry.WidgetExists(name) {
		chain := registry.AllBaseClasses(name)
		if len(chain) > 0 {
			return chain[:1]
		}
	}
	return []string{"Widget"}
}

// selfType picks the widget type used to classify properties assigned on the
// generated class itself.
func (cg *Codegen) selfType(name string, bases []string) string {
	if registry.WidgetExists(name) {
		return name
	}
	for _, b := range bases {
		if registry.WidgetExists(b) {
			return b
		}
	}
	if len(bases) > 0 {
		return bases[0]
	}
	return "Widget"
}

// customProperties collects rule-level property names that exist on none of
// the declared bases; each is promoted to an object-typed field.
func (cg *Codegen) customProperties(rule *ast.Rule, bases []string) []string {
	var custom []string
	for _, p := range rule.Properties {
		if cg.knownProperty(p.Name, bases) {
			continue
		}
		custom = append(custom, p.Name)
	}
	return custom
}

func (cg *Codegen) knownProperty(name string, bases []string) bool {
	for _, b := range bases {
		if _, ok := registry.PropertyType(name, b); ok {
			return true
		}
		if info, ok := cg.opts.ClassInfo[b]; ok {
			if _, ok := info.Properties[name]; ok {
				return true
			}
			if cg.knownProperty(name, info.Bases) {
				return true
			}
		}
	}
	return false
}

// propertyKind resolves a property's kind for literal conversion, falling
// back to Object for anything the tables do not know.
func (cg *Codegen) propertyKind(propName, typeName string) registry.PropertyKind {
	if typeName == "" {
		return registry.Object
	}
	if k, ok := registry.PropertyType(propName, typeName); ok {
		return k
	}
	if info, ok := cg.opts.ClassInfo[typeName]; ok {
		if k, ok := info.Properties[propName]; ok {
			return k
		}
		for _, b := range info.Bases {
			if k, ok := registry.PropertyType(propName, b); ok {
				return k
			}
		}
	}
	return registry.Object
}

var appRefRe = regexp.MustCompile(`\bapp\b`)

// appRefVisitor scans a rule subtree for references to the application
// singleton.
type appRefVisitor struct {
	ast.BaseVisitor
	found bool
}

func (v *appRefVisitor) VisitProperty(p *ast.Property) {
	// Scan only the executable parts; "app" inside a plain string
	// literal is just a word.
	if appRefRe.MatchString(bindings.ScannableText(p.RawValue)) {
		v.found = true
	}
}

func referencesApp(rule *ast.Rule) bool {
	v := &appRefVisitor{}
	ast.WalkRule(v, rule)
	return v.found
}
