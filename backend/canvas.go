package codegen

import (
	"fmt"
	"strings"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/registry"
)

// emitCanvas writes the instructions of one canvas layer. Fully static
// instructions are constructed inline inside the add() call; an instruction
// with at least one reactive parameter is kept in a field on the generated
// class so its listeners can reach it later.
func (cg *Codegen) emitCanvas(c *ast.Canvas, ownerVar string, scope scopeInfo) {
	if c == nil {
		return
	}
	layer := ownerVar + "." + c.Layer.String()
	for _, ins := range c.Instructions {
		cg.instructionTypes[ins.InstructionType] = struct{}{}

		if !hasReactive(ins.Properties) {
			cg.ln("%s.add(%s(%s))", layer, ins.InstructionType, cg.instructionKwargs(ins))
			continue
		}

		field := cg.canvasField(ins.InstructionType)
		cg.ln("self.%s = %s(%s)", field, ins.InstructionType, cg.instructionKwargs(ins))
		cg.ln("%s.add(self.%s)", layer, field)
		for _, p := range ins.Properties {
			if !p.IsConstant() {
				cg.emitReactive(p, "self."+field, p.Name, scope, true)
			}
		}
	}
}

func hasReactive(props []*ast.Property) bool {
	for _, p := range props {
		if !p.IsConstant() {
			return true
		}
	}
	return false
}

// instructionKwargs renders the constant parameters of a graphics
// instruction as constructor keyword arguments.
func (cg *Codegen) instructionKwargs(ins *ast.CanvasInstruction) string {
	var parts []string
	for _, p := range ins.Properties {
		if !p.IsConstant() {
			continue
		}
		kind := registry.Object
		if k, ok := registry.InstructionParameterType(p.Name, ins.InstructionType); ok {
			kind = k
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, convertLiteral(p.RawValue, kind)))
	}
	return strings.Join(parts, ", ")
}
