package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kvlift"),
		kong.Description("KV to Python translator"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Translate a KV file to Python classes." aliases:"build"`
	Check   CheckCmd   `cmd:"" help:"Validate a KV file and print diagnostics."`
	Fmt     FmtCmd     `cmd:"" help:"Reformat a KV file in place or to stdout."`
	Lsp     LspCmd     `cmd:"" help:"Run the LSP server."`
	Version VersionCmd `cmd:"" help:"Show version."`
}
