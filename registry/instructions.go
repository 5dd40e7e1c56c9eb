package registry

// InstructionInfo describes one graphics instruction. Context instructions
// (PushMatrix, PopMatrix) carry no drawable parameters.
type InstructionInfo struct {
	Name    string
	Context bool
	Params  map[string]PropertyKind
}

var instructions = map[string]InstructionInfo{
	"Color": {
		Name: "Color",
		Params: map[string]PropertyKind{
			"rgba": ReferenceList,
			"rgb":  ReferenceList,
			"hsv":  ReferenceList,
			"r":    Numeric,
			"g":    Numeric,
			"b":    Numeric,
			"a":    Numeric,
		},
	},
	"Rectangle": {
		Name: "Rectangle",
		Params: map[string]PropertyKind{
			"pos":    ReferenceList,
			"size":   ReferenceList,
			"source": String,
		},
	},
	"RoundedRectangle": {
		Name: "RoundedRectangle",
		Params: map[string]PropertyKind{
			"pos":      ReferenceList,
			"size":     ReferenceList,
			"radius":   List,
			"segments": Numeric,
			"source":   String,
		},
	},
	"BorderImage": {
		Name: "BorderImage",
		Params: map[string]PropertyKind{
			"pos":    ReferenceList,
			"size":   ReferenceList,
			"border": List,
			"source": String,
		},
	},
	"Ellipse": {
		Name: "Ellipse",
		Params: map[string]PropertyKind{
			"pos":         ReferenceList,
			"size":        ReferenceList,
			"angle_start": Numeric,
			"angle_end":   Numeric,
			"segments":    Numeric,
			"source":      String,
		},
	},
	"Line": {
		Name: "Line",
		Params: map[string]PropertyKind{
			"points":            List,
			"width":             Numeric,
			"cap":               Option,
			"joint":             Option,
			"close":             Boolean,
			"circle":            List,
			"ellipse":           List,
			"rectangle":         List,
			"rounded_rectangle": List,
			"bezier":            List,
			"dash_length":       Numeric,
			"dash_offset":       Numeric,
		},
	},
	"Point": {
		Name: "Point",
		Params: map[string]PropertyKind{
			"points":    List,
			"pointsize": Numeric,
		},
	},
	"Triangle": {
		Name: "Triangle",
		Params: map[string]PropertyKind{
			"points": List,
		},
	},
	"Quad": {
		Name: "Quad",
		Params: map[string]PropertyKind{
			"points": List,
		},
	},
	"Bezier": {
		Name: "Bezier",
		Params: map[string]PropertyKind{
			"points":   List,
			"segments": Numeric,
		},
	},
	"Mesh": {
		Name: "Mesh",
		Params: map[string]PropertyKind{
			"vertices": List,
			"indices":  List,
			"mode":     Option,
		},
	},
	"PushMatrix": {Name: "PushMatrix", Context: true},
	"PopMatrix":  {Name: "PopMatrix", Context: true},
	"Rotate": {
		Name: "Rotate",
		Params: map[string]PropertyKind{
			"angle":  Numeric,
			"axis":   ReferenceList,
			"origin": ReferenceList,
		},
	},
	"Translate": {
		Name: "Translate",
		Params: map[string]PropertyKind{
			"x":  Numeric,
			"y":  Numeric,
			"z":  Numeric,
			"xy": ReferenceList,
		},
	},
	"Scale": {
		Name: "Scale",
		Params: map[string]PropertyKind{
			"x":      Numeric,
			"y":      Numeric,
			"z":      Numeric,
			"origin": ReferenceList,
		},
	},
}

// InstructionExists reports whether name is a known graphics instruction.
func InstructionExists(name string) bool {
	_, ok := instructions[name]
	return ok
}

// InstructionIsContext reports whether the instruction is context-only, i.e.
// instantiated with no parameters and never bound.
func InstructionIsContext(name string) bool {
	ins, ok := instructions[name]
	return ok && ins.Context
}

// InstructionParameters returns the parameter set of an instruction.
func InstructionParameters(name string) map[string]PropertyKind {
	ins, ok := instructions[name]
	if !ok {
		return nil
	}
	return ins.Params
}

// InstructionParameterType resolves one instruction parameter. Unknown
// parameters fall back to Object, like widget properties.
func InstructionParameterType(paramName, instructionName string) (PropertyKind, bool) {
	ins, ok := instructions[instructionName]
	if !ok {
		return Object, false
	}
	kind, ok := ins.Params[paramName]
	if !ok {
		return Object, false
	}
	return kind, true
}
