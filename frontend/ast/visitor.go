package ast

// Visitor receives nodes during a Walk. Traversal order is deterministic
// pre-order: directives, then per rule/template/widget its properties, then
// handlers, then canvas layers (before, default, after), then children.
// Generator behaviors such as id-table population depend on this order.
type Visitor interface {
	VisitDirective(Directive)
	VisitRule(*Rule)
	VisitTemplate(*Template)
	VisitWidget(*Widget)
	VisitProperty(*Property)
	VisitCanvas(*Canvas)
	VisitInstruction(*CanvasInstruction)
}

// BaseVisitor implements Visitor with no-ops, so collectors only override the
// node kinds they care about.
type BaseVisitor struct{}

func (BaseVisitor) VisitDirective(Directive)            {}
func (BaseVisitor) VisitRule(*Rule)                     {}
func (BaseVisitor) VisitTemplate(*Template)             {}
func (BaseVisitor) VisitWidget(*Widget)                 {}
func (BaseVisitor) VisitProperty(*Property)             {}
func (BaseVisitor) VisitCanvas(*Canvas)                 {}
func (BaseVisitor) VisitInstruction(*CanvasInstruction) {}

// Walk traverses the module in documented order.
func Walk(v Visitor, m *Module) {
	for _, d := range m.Directives {
		v.VisitDirective(d)
	}
	for _, r := range m.Rules {
		WalkRule(v, r)
	}
	for _, t := range m.Templates {
		v.VisitTemplate(t)
		WalkRule(v, t.Rule)
	}
	if m.Root != nil {
		WalkWidget(v, m.Root)
	}
}

func WalkRule(v Visitor, r *Rule) {
	v.VisitRule(r)
	for _, p := range r.Properties {
		v.VisitProperty(p)
	}
	for _, h := range r.Handlers {
		v.VisitProperty(h)
	}
	walkCanvases(v, r.CanvasBefore, r.Canvas, r.CanvasAfter)
	for _, c := range r.Children {
		WalkWidget(v, c)
	}
}

func WalkWidget(v Visitor, w *Widget) {
	v.VisitWidget(w)
	for _, p := range w.Properties {
		v.VisitProperty(p)
	}
	for _, h := range w.Handlers {
		v.VisitProperty(h)
	}
	walkCanvases(v, w.CanvasBefore, w.Canvas, w.CanvasAfter)
	for _, c := range w.Children {
		WalkWidget(v, c)
	}
}

func walkCanvases(v Visitor, layers ...*Canvas) {
	for _, c := range layers {
		if c == nil {
			continue
		}
		v.VisitCanvas(c)
		for _, ins := range c.Instructions {
			v.VisitInstruction(ins)
			for _, p := range ins.Properties {
				v.VisitProperty(p)
			}
		}
	}
}
