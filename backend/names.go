package codegen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// suffix returns the unique part of a synthesized name: a counter by default,
// eight hex digits of a random UUID when the caller asked for the original
// tool's naming scheme.
func (cg *Codegen) suffix() string {
	if cg.opts.UUIDNames {
		id := uuid.New()
		return strings.ToUpper(fmt.Sprintf("%x", id[:4]))
	}
	s := fmt.Sprintf("%d", cg.varIdx)
	cg.varIdx++
	return s
}

// widgetVar names an anonymous child widget variable, e.g. label_3.
func (cg *Codegen) widgetVar(typeName string) string {
	return fmt.Sprintf("%s_%s", varPrefix(typeName), cg.suffix())
}

// canvasField names the instance field holding a bound canvas instruction,
// e.g. _canvas_rectangle_2.
func (cg *Codegen) canvasField(instructionType string) string {
	return fmt.Sprintf("_canvas_%s_%s", strings.ToLower(instructionType), cg.suffix())
}

// callbackName names a synthesized closure. The counter is per generated
// class.
func (cg *Codegen) callbackName() string {
	name := fmt.Sprintf("_callback_%d", cg.callbackIdx)
	cg.callbackIdx++
	return name
}

// varPrefix lowercases a type name and drops a trailing "layout" so
// BoxLayout children read as box_N.
func varPrefix(typeName string) string {
	p := strings.ToLower(typeName)
	if trimmed := strings.TrimSuffix(p, "layout"); trimmed != "" {
		p = trimmed
	}
	return p
}
