package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/registry"
)

// imports renders the import block for everything the generated classes
// touched: user-declared module imports first, then the widget modules, the
// App singleton, the property class for promoted fields, and the graphics
// instructions. Types generated in this very output need no import.
func (cg *Codegen) imports() string {
	var lines []string

	for _, d := range cg.module.Directives {
		imp, ok := d.(ast.ImportDirective)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("import %s as %s", imp.Module, imp.Alias))
	}

	byModule := make(map[string][]string)
	for name := range cg.widgetTypes {
		if _, generated := cg.generatedClasses[name]; generated {
			continue
		}
		path, ok := registry.ModulePath(name)
		if !ok {
			path = "kivy.uix." + strings.ToLower(name)
		}
		byModule[path] = append(byModule[path], name)
	}
	paths := make([]string, 0, len(byModule))
	for path := range byModule {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		names := byModule[path]
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("from %s import %s", path, strings.Join(names, ", ")))
	}

	if cg.needsApp {
		lines = append(lines, "from kivy.app import App")
	}
	if cg.needsProperty {
		lines = append(lines, "from kivy.properties import ObjectProperty")
	}
	if len(cg.instructionTypes) > 0 {
		names := make([]string, 0, len(cg.instructionTypes))
		for name := range cg.instructionTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, "from kivy.graphics import "+strings.Join(names, ", "))
	}

	return strings.Join(lines, "\n")
}
