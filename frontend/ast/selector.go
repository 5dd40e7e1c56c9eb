package ast

import "strings"

// Selector is the pattern a rule applies to. It is a closed sum: any switch
// over selectors should handle all four variants.
type Selector interface {
	isSelector()
	// PrimaryName renders the canonical label used in diagnostics and
	// generated class names.
	PrimaryName() string
}

// SelectorName matches a plain widget type name, `<Button>`.
type SelectorName struct {
	Name string
}

// SelectorClassName matches a style class, `<.sel>`.
type SelectorClassName struct {
	Name string
}

// SelectorMultiple is a comma list of selectors, `<Button,ToggleButton>`.
type SelectorMultiple struct {
	Items []Selector
}

// SelectorDynamic declares a new named type, `<Name@Base1+Base2>`.
type SelectorDynamic struct {
	Name  string
	Bases []string
}

func (SelectorName) isSelector()      {}
func (SelectorClassName) isSelector() {}
func (SelectorMultiple) isSelector()  {}
func (SelectorDynamic) isSelector()   {}

func (s SelectorName) PrimaryName() string { return s.Name }

func (s SelectorClassName) PrimaryName() string { return "." + s.Name }

func (s SelectorMultiple) PrimaryName() string {
	names := make([]string, len(s.Items))
	for i, item := range s.Items {
		names[i] = item.PrimaryName()
	}
	return strings.Join(names, ",")
}

func (s SelectorDynamic) PrimaryName() string { return s.Name }
