// Package frontend ties the lexer, parser and validator into one pipeline
// and owns the project manifest.
package frontend

import (
	protocol "github.com/gluax-lang/lsp"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
	"github.com/kvlift/kvlift/frontend/parser"
	"github.com/kvlift/kvlift/frontend/sema"
)

type Diagnostic = protocol.Diagnostic

// Analysis is the outcome of compiling one KV source file: the best-effort
// module plus every diagnostic from lexing, parsing and validation. Module is
// nil only when lexing failed outright.
type Analysis struct {
	Module *ast.Module
	Diags  []Diagnostic
}

// HasErrors reports whether any diagnostic is error-severity.
func (a Analysis) HasErrors() bool {
	for _, d := range a.Diags {
		if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityError {
			return true
		}
	}
	return false
}

// Analyze runs the full frontend over one source file. src is the file name,
// used in diagnostics only.
func Analyze(src, code string) Analysis {
	tokens, lexErr := lexer.Lex(src, code)
	if lexErr != nil {
		return Analysis{Diags: []Diagnostic{*lexErr.ToDiagnostic()}}
	}
	res := parser.ParseWithRecovery(tokens)
	var diags []Diagnostic
	for _, e := range res.Errors {
		e.Source = src
		diags = append(diags, *e.ToDiagnostic())
	}
	diags = append(diags, sema.Check(res.Module, src)...)
	return Analysis{Module: res.Module, Diags: diags}
}

// Compile is the strict variant: the first lex or parse error aborts.
func Compile(src, code string) (*ast.Module, error) {
	tokens, lexErr := lexer.Lex(src, code)
	if lexErr != nil {
		return nil, lexErr
	}
	m, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		parseErr.Source = src
		return nil, parseErr
	}
	return m, nil
}
