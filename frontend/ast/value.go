package ast

// ValueKind distinguishes how a property value participates at runtime.
type ValueKind int

const (
	// ValueLiteral is a pre-evaluatable constant: assigned once, never bound.
	ValueLiteral ValueKind = iota
	// ValueExpression is a reactive expression, re-evaluated when any of its
	// watched keys changes.
	ValueExpression
	// ValueCode is an executable statement block, the body of an event
	// handler. Handlers run on demand and are never watched.
	ValueCode
)

func (k ValueKind) String() string {
	switch k {
	case ValueLiteral:
		return "literal"
	case ValueExpression:
		return "expression"
	case ValueCode:
		return "code"
	}
	return "unknown"
}

// CompiledValue is the dependency compiler's classification of a raw property
// value.
type CompiledValue struct {
	Kind ValueKind
	Text string
}
