// Package registry holds the static widget, property and canvas-instruction
// tables the compiler and generator consult. Everything here is a pure lookup
// into read-only data: the tables are never mutated after init, so concurrent
// readers need no locking.
package registry

import "sort"

// PropertyKind mirrors the reactive property classes of the target framework.
type PropertyKind int

const (
	Object PropertyKind = iota
	Numeric
	String
	Boolean
	List
	Dict
	Color
	Option
	ReferenceList
	VariableList
)

func (k PropertyKind) String() string {
	switch k {
	case Object:
		return "ObjectProperty"
	case Numeric:
		return "NumericProperty"
	case String:
		return "StringProperty"
	case Boolean:
		return "BooleanProperty"
	case List:
		return "ListProperty"
	case Dict:
		return "DictProperty"
	case Color:
		return "ColorProperty"
	case Option:
		return "OptionProperty"
	case ReferenceList:
		return "ReferenceListProperty"
	case VariableList:
		return "VariableListProperty"
	}
	return "ObjectProperty"
}

// PropertyInfo describes one declared property of a widget type.
type PropertyInfo struct {
	Name string
	Kind PropertyKind
}

// WidgetInfo describes one widget type: its import module, its direct base,
// its own properties and the events it dispatches.
type WidgetInfo struct {
	Name       string
	Module     string
	Base       string // "" for the hierarchy root
	Properties map[string]PropertyKind
	Events     []string
}

// WidgetExists reports whether name is a known widget type.
func WidgetExists(name string) bool {
	_, ok := widgets[name]
	return ok
}

// ModulePath returns the import module for a widget type.
func ModulePath(name string) (string, bool) {
	w, ok := widgets[name]
	if !ok {
		return "", false
	}
	return w.Module, true
}

// PropertyType resolves a property against a widget type, walking the base
// chain.
func PropertyType(propertyName, typeName string) (PropertyKind, bool) {
	for name := typeName; name != ""; {
		w, ok := widgets[name]
		if !ok {
			return Object, false
		}
		if kind, ok := w.Properties[propertyName]; ok {
			return kind, true
		}
		name = w.Base
	}
	return Object, false
}

// AllProperties returns every property a widget type declares or inherits.
func AllProperties(typeName string) map[string]PropertyKind {
	out := make(map[string]PropertyKind)
	// Walk leaf-to-root but let the most derived declaration win.
	for name := typeName; name != ""; {
		w, ok := widgets[name]
		if !ok {
			break
		}
		for prop, kind := range w.Properties {
			if _, taken := out[prop]; !taken {
				out[prop] = kind
			}
		}
		name = w.Base
	}
	return out
}

// AllBaseClasses returns the base chain of a widget type, most derived first,
// excluding the type itself.
func AllBaseClasses(typeName string) []string {
	var chain []string
	w, ok := widgets[typeName]
	if !ok {
		return nil
	}
	for base := w.Base; base != ""; {
		chain = append(chain, base)
		b, ok := widgets[base]
		if !ok {
			break
		}
		base = b.Base
	}
	return chain
}

// Events returns the event names a widget type dispatches, bases included.
func Events(typeName string) []string {
	seen := make(map[string]struct{})
	var events []string
	for name := typeName; name != ""; {
		w, ok := widgets[name]
		if !ok {
			break
		}
		for _, e := range w.Events {
			if _, dup := seen[e]; !dup {
				seen[e] = struct{}{}
				events = append(events, e)
			}
		}
		name = w.Base
	}
	sort.Strings(events)
	return events
}
