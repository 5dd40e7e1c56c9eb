package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kvlift/kvlift/frontend"
	"github.com/kvlift/kvlift/frontend/kvfmt"
)

type FmtCmd struct {
	Path  string `arg:"" help:"KV file to reformat." type:"existingfile"`
	Write bool   `help:"Rewrite the file instead of printing to stdout." short:"w"`
}

func (f *FmtCmd) Run() error {
	code, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	m, err := frontend.Compile(filepath.Base(f.Path), string(code))
	if err != nil {
		return err
	}
	out := kvfmt.Format(m)
	if !f.Write {
		fmt.Print(out)
		return nil
	}
	return os.WriteFile(f.Path, []byte(out), 0o644)
}
