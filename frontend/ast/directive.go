package ast

// Directive is one `#:` line. Closed sum: Kivy, Import, Set, Include.
type Directive interface {
	isDirective()
	DirectiveLine() int
}

// KivyDirective is `#:kivy <version>`.
type KivyDirective struct {
	Version string
	Line    int
}

// ImportDirective is `#:import alias module.path`.
type ImportDirective struct {
	Alias  string
	Module string
	Line   int
}

// SetDirective is `#:set name value`.
type SetDirective struct {
	Name  string
	Value string
	Line  int
}

// IncludeDirective is `#:include [force] path.kv`.
type IncludeDirective struct {
	Path  string
	Force bool
	Line  int
}

func (KivyDirective) isDirective()    {}
func (ImportDirective) isDirective()  {}
func (SetDirective) isDirective()     {}
func (IncludeDirective) isDirective() {}

func (d KivyDirective) DirectiveLine() int    { return d.Line }
func (d ImportDirective) DirectiveLine() int  { return d.Line }
func (d SetDirective) DirectiveLine() int     { return d.Line }
func (d IncludeDirective) DirectiveLine() int { return d.Line }
