package codegen

import "github.com/kvlift/kvlift/frontend/ast"

// emitWidget instantiates a child widget and everything hanging off it:
// constant properties go into the constructor call, reactive properties get
// assignments and listeners, then handlers, canvas layers, and grandchildren,
// and finally the widget is attached to its parent. Attaching last means the
// subtree is fully configured before it becomes visible.
func (cg *Codegen) emitWidget(w *ast.Widget, parentVar string) {
	cg.widgetTypes[w.Name] = struct{}{}

	varName := w.ID
	if varName == "" {
		varName = cg.widgetVar(w.Name)
	}
	scope := scopeInfo{selfVar: varName}

	cg.ln("%s = %s(%s)", varName, w.Name, cg.staticKwargs(w.Properties, w.Name))
	for _, p := range w.Properties {
		if !p.IsConstant() {
			cg.emitReactive(p, varName, p.Name, scope, false)
		}
	}
	if w.ID != "" {
		cg.ln("self.ids.%s = %s", w.ID, varName)
	}
	for _, h := range w.Handlers {
		cg.emitChildHandler(h, varName, scope)
	}
	cg.emitCanvas(w.CanvasBefore, varName, scope)
	cg.emitCanvas(w.Canvas, varName, scope)
	cg.emitCanvas(w.CanvasAfter, varName, scope)
	for _, child := range w.Children {
		cg.emitWidget(child, varName)
	}
	cg.ln("%s.add_widget(%s)", parentVar, varName)
}
