package main

import (
	"fmt"
	"os"
	"path/filepath"

	protocol "github.com/gluax-lang/lsp"

	"github.com/kvlift/kvlift/frontend"
)

type CheckCmd struct {
	Paths []string `arg:"" help:"KV files to validate." type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	failed := false
	for _, path := range c.Paths {
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		analysis := frontend.Analyze(filepath.Base(path), string(code))
		for _, d := range analysis.Diags {
			fmt.Printf("%s:%d:%d: %s: %s\n",
				path, d.Range.Start.Line+1, d.Range.Start.Character+1,
				severityLabel(d.Severity), d.Message)
		}
		if analysis.HasErrors() {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}

func severityLabel(s *protocol.DiagnosticSeverity) string {
	if s == nil {
		return "info"
	}
	switch *s {
	case protocol.DiagnosticSeverityError:
		return "error"
	case protocol.DiagnosticSeverityWarning:
		return "warning"
	}
	return "info"
}
