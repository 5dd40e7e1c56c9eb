package main

import (
	"fmt"
	"os"
	"path/filepath"

	codegen "github.com/kvlift/kvlift/backend"
	"github.com/kvlift/kvlift/frontend"
	"github.com/kvlift/kvlift/frontend/ast"
)

type ConvertCmd struct {
	Path      string `arg:"" help:"KV file to translate." type:"existingfile"`
	Output    string `help:"Write Python to this file instead of stdout." short:"o"`
	Manifest  string `help:"Project manifest path." default:"kvlift.toml"`
	UUIDNames bool   `help:"Use random suffixes for generated names." name:"uuid-names"`
	Tolerant  bool   `help:"Skip malformed rules and translate the rest."`
}

func (c *ConvertCmd) Run() error {
	code, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	m, err := c.compile(string(code))
	if err != nil {
		return err
	}

	opts, err := loadOptions(c.Manifest)
	if err != nil {
		return err
	}
	if c.UUIDNames {
		opts.UUIDNames = true
	}

	out := codegen.Generate(m, opts)
	if c.Output == "" {
		fmt.Print(out)
		return nil
	}
	return os.WriteFile(c.Output, []byte(out), 0o644)
}

// compile parses the file strictly, or in tolerant mode recovers past
// malformed rules, reporting their diagnostics on stderr and translating
// whatever survived.
func (c *ConvertCmd) compile(code string) (*ast.Module, error) {
	src := filepath.Base(c.Path)
	if !c.Tolerant {
		return frontend.Compile(src, code)
	}
	analysis := frontend.Analyze(src, code)
	for _, d := range analysis.Diags {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
			c.Path, d.Range.Start.Line+1, d.Range.Start.Character+1,
			severityLabel(d.Severity), d.Message)
	}
	if analysis.Module == nil {
		return nil, fmt.Errorf("%s: nothing to translate", c.Path)
	}
	return analysis.Module, nil
}

// loadOptions reads the manifest when it exists; a missing default manifest
// is not an error.
func loadOptions(path string) (codegen.Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return codegen.Options{}, nil
		}
		return codegen.Options{}, err
	}
	kt, err := frontend.HandleKvliftToml(string(content))
	if err != nil {
		return codegen.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return codegen.OptionsFromManifest(kt), nil
}
