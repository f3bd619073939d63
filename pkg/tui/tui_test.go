package tui

import (
	"testing"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
	. "src.smolcalc.dev/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatSmolcalc().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
		ThatSmolcalc("-tui").
			ExitsWith(2).
			WritesStderr("-tui requires a terminal\n"),
	)
}

func TestLocation(t *testing.T) {
	s := &prog.Settings{Mode: mode.Float64, Typeset: true}
	s.Config.Web.Addr = "localhost:3171"
	if got, want := location(s, "").String(), "http://localhost:3171/?typeset#f64"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	s.Typeset = false
	if got, want := location(s, "1/3").String(), "http://localhost:3171/#f64-MS8z"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
