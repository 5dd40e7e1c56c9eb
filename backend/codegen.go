// Package codegen lowers a parsed KV module into Python class definitions
// that rebuild the same widget tree and reactive bindings without the KV
// runtime. Generation never fails: malformed expressions degrade to
// string-literal fallbacks or no-op statements so one bad rule cannot block
// the rest of the module.
package codegen

import (
	"fmt"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/registry"
)

// ClassInfo supplements the registry for project-defined classes: the bases
// and extra properties of a rule name the static tables cannot know.
type ClassInfo struct {
	Bases      []string
	Properties map[string]registry.PropertyKind
}

// Options configures one generation pass.
type Options struct {
	// UUIDNames switches synthesized variable/field names to random UUID
	// suffixes. Deterministic counters are the default so output is
	// reproducible across runs.
	UUIDNames bool

	// ClassInfo maps rule names to supplemental class information.
	ClassInfo map[string]ClassInfo
}

// pythonIndent is one level of indentation in emitted source.
const pythonIndent = "    "

// binding is one recorded listener registration, kept for symmetric teardown.
type binding struct {
	object   string
	property string
	callback string
}

// Codegen holds the state of one generation pass. All counters are local to
// the pass and threaded through recursive child/canvas generation, never
// process-wide.
type Codegen struct {
	module *ast.Module
	opts   Options

	buf    strings.Builder
	indent int

	varIdx      int
	callbackIdx int

	bindings []binding

	// usage feeds import synthesis.
	widgetTypes      map[string]struct{}
	instructionTypes map[string]struct{}
	generatedClasses map[string]struct{}
	needsApp         bool
	needsProperty    bool
}

// Generate emits target source for every rule whose selector is a plain name
// or dynamic class, plus every template. The module is borrowed read-only.
func Generate(m *ast.Module, opts Options) string {
	cg := &Codegen{
		module:           m,
		opts:             opts,
		widgetTypes:      make(map[string]struct{}),
		instructionTypes: make(map[string]struct{}),
		generatedClasses: make(map[string]struct{}),
	}
	return cg.generate()
}

func (cg *Codegen) generate() string {
	var classes []string
	for _, rule := range cg.module.Rules {
		for _, name := range classNames(rule.Selector) {
			if _, dup := cg.generatedClasses[name]; dup {
				continue
			}
			cg.generatedClasses[name] = struct{}{}
			classes = append(classes, cg.generateClass(name, rule, nil))
		}
	}
	for _, tpl := range cg.module.Templates {
		if _, dup := cg.generatedClasses[tpl.Name]; dup {
			continue
		}
		cg.generatedClasses[tpl.Name] = struct{}{}
		classes = append(classes, cg.generateClass(tpl.Name, tpl.Rule, tpl.BaseClasses))
	}

	var out strings.Builder
	out.WriteString(cg.imports())
	for _, class := range classes {
		out.WriteString("\n\n\n")
		out.WriteString(strings.TrimRight(class, "\n"))
	}
	out.WriteByte('\n')
	return out.String()
}

// classNames expands a selector into the class names to emit. Style-class
// selectors produce no classes.
func classNames(sel ast.Selector) []string {
	switch s := sel.(type) {
	case ast.SelectorName:
		return []string{s.Name}
	case ast.SelectorDynamic:
		return []string{s.Name}
	case ast.SelectorMultiple:
		var names []string
		for _, item := range s.Items {
			names = append(names, classNames(item)...)
		}
		return names
	case ast.SelectorClassName:
		return nil
	}
	return nil
}

/* Buffer plumbing */

func (cg *Codegen) writeIndent() {
	for range cg.indent {
		cg.buf.WriteString(pythonIndent)
	}
}

func (cg *Codegen) pushIndent() { cg.indent++ }

func (cg *Codegen) popIndent() {
	if cg.indent == 0 {
		panic("codegen: popIndent underflow")
	}
	cg.indent--
}

// ln writes one indented line; an empty format writes a blank line.
func (cg *Codegen) ln(format string, args ...any) {
	if format == "" && len(args) == 0 {
		cg.buf.WriteByte('\n')
		return
	}
	cg.writeIndent()
	fmt.Fprintf(&cg.buf, format, args...)
	cg.buf.WriteByte('\n')
}

// snippet runs fn against a fresh buffer and returns what it wrote,
// restoring the previous buffer afterwards.
func (cg *Codegen) snippet(fn func()) string {
	old := cg.buf
	oldIndent := cg.indent
	cg.buf = strings.Builder{}
	cg.indent = 0
	fn()
	out := cg.buf.String()
	cg.buf = old
	cg.indent = oldIndent
	return out
}

func (cg *Codegen) record(object, property, callback string) {
	cg.bindings = append(cg.bindings, binding{object, property, callback})
}
