// Smolcalc is a calculator with exact rational, floating-point and complex
// evaluation modes. It evaluates expressions on the command line, and also
// runs as a terminal front-end, a web server or a language server.
package main

import (
	"os"

	"src.smolcalc.dev/pkg/buildinfo"
	"src.smolcalc.dev/pkg/cli"
	"src.smolcalc.dev/pkg/lsp"
	"src.smolcalc.dev/pkg/pprof"
	"src.smolcalc.dev/pkg/prog"
	"src.smolcalc.dev/pkg/tui"
	"src.smolcalc.dev/pkg/web"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &web.Program{},
			&tui.Program{}, &cli.Program{})))
}
