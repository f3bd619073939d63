package web

import (
	"testing"

	. "src.smolcalc.dev/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatSmolcalc().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
		ThatSmolcalc("-web", "1+1").
			ExitsWith(2).
			WritesStderrContaining("arguments are not allowed with -web\nUsage:"),
		ThatSmolcalc("-web", "-addr", "bad address").
			ExitsWith(2).
			WritesStderrContaining("Serving on http://bad address\n"),
	)
}
