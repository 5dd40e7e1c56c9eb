// Package ast defines the KV syntax tree. The tree is built once per source
// file and is immutable afterwards; compilation passes produce new sibling
// structures instead of mutating nodes in place.
package ast

import "strings"

// Module is the root of the AST for one source file. At most one root widget
// is permitted per module.
type Module struct {
	Directives []Directive
	Rules      []*Rule
	Templates  []*Template
	Root       *Widget

	// DynamicClasses maps a dynamic-class name to its declared base list,
	// collected from rule selectors of the `Name@Base` form.
	DynamicClasses map[string][]string
}

// Rule is a `<Selector>:` block. AvoidPrevious records a leading `-` on the
// selector; the generator only records the flag, it does not implement the
// runtime override semantics.
type Rule struct {
	Selector      Selector
	AvoidPrevious bool

	Properties []*Property
	Handlers   []*Property

	CanvasBefore *Canvas
	Canvas       *Canvas
	CanvasAfter  *Canvas

	Children []*Widget

	// IDs maps `id:` values declared anywhere in this rule's subtree to the
	// widget that declared them, in pre-order.
	IDs map[string]*Widget

	// RootID records an `id:` declared directly under the selector. It names
	// nothing at runtime; the validator reports it.
	RootID     string
	RootIDLine int

	Line int
}

// Template is the deprecated `[Name@Base]:` construct; structurally a Rule
// with an explicit name and base list.
type Template struct {
	Name        string
	BaseClasses []string
	Rule        *Rule
	Line        int
}

// Widget is an instance node. The `id` pseudo-property is extracted out of
// the property list at parse time and never appears as an ordinary property.
type Widget struct {
	Name string
	ID   string

	Properties []*Property
	Handlers   []*Property

	CanvasBefore *Canvas
	Canvas       *Canvas
	CanvasAfter  *Canvas

	Children []*Widget

	Level int
	Line  int
}

// Property is one `name: value` line. Handlers (names with the reserved
// `on_` prefix) live in the owning node's Handlers list, not Properties.
type Property struct {
	Name     string
	RawValue string
	Compiled CompiledValue
	Watched  [][]string

	IgnorePrevious bool
	Line           int
}

// IsHandler reports whether the property is an event handler.
func (p *Property) IsHandler() bool {
	return strings.HasPrefix(p.Name, "on_")
}

// IsConstant reports whether the property's value needs no listener: an empty
// watched-key set means a one-time assignment.
func (p *Property) IsConstant() bool {
	return len(p.Watched) == 0
}

// CanvasLayer selects one of the three ordered instruction lists attached to
// a widget.
type CanvasLayer int

const (
	CanvasBefore CanvasLayer = iota
	CanvasDefault
	CanvasAfter
)

func (l CanvasLayer) String() string {
	switch l {
	case CanvasBefore:
		return "canvas.before"
	case CanvasDefault:
		return "canvas"
	case CanvasAfter:
		return "canvas.after"
	}
	return "canvas"
}

type Canvas struct {
	Layer        CanvasLayer
	Instructions []*CanvasInstruction
	Line         int
}

type CanvasInstruction struct {
	InstructionType string
	Properties      []*Property
	Line            int
}
