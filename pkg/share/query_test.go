package share

import (
	"net/url"
	"testing"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/tt"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw         string
		wantTypeset bool
		wantLegacy  string
	}{
		{"", false, ""},
		{"?typeset", true, ""},
		{"typeset=", true, ""},
		{"katex", true, ""},
		{"?mode=f64", false, "f64"},
		{"?katex&mode=cmplx&lang=en", true, "cmplx"},
	}
	for _, test := range tests {
		q := ParseQuery(test.raw)
		if q.Typeset != test.wantTypeset || q.LegacyMode != test.wantLegacy {
			t.Errorf("ParseQuery(%q) -> {Typeset: %v, LegacyMode: %q}, want {%v, %q}",
				test.raw, q.Typeset, q.LegacyMode, test.wantTypeset, test.wantLegacy)
		}
	}
}

func reencode(raw string, typeset bool) string {
	q := ParseQuery(raw)
	q.Typeset = typeset
	return q.Encode()
}

func TestQuery_Encode(t *testing.T) {
	tt.Test(t, tt.Fn("reencode", reencode), tt.Table{
		tt.Args("", true).Rets("typeset"),
		tt.Args("?typeset", false).Rets(""),
		// The legacy flag name is rewritten.
		tt.Args("?katex=", true).Rets("typeset"),
		tt.Args("?katex", false).Rets(""),
		// Other parameters are kept, flags stay bare.
		tt.Args("?lang=en&debug", true).Rets("typeset&debug&lang=en"),
		tt.Args("?mode=f64", false).Rets("mode=f64"),
		tt.Args("?q=a+b%26c", false).Rets("q=a+b%26c"),
	})
}

func modeTokenOf(rawURL string) string {
	return ModeToken(must.OK1(url.Parse(rawURL)))
}

func TestModeToken(t *testing.T) {
	tt.Test(t, tt.Fn("modeTokenOf", modeTokenOf), tt.Table{
		tt.Args("https://calc.example/#f64-MS8z").Rets("f64"),
		tt.Args("https://calc.example/#f32").Rets("f32"),
		tt.Args("https://calc.example/?mode=cmplx").Rets("cmplx"),
		// The fragment wins over the legacy parameter, even when it selects
		// the default mode.
		tt.Args("https://calc.example/?mode=cmplx#f32-YQ==").Rets("f32"),
		tt.Args("https://calc.example/?mode=cmplx#-YQ==").Rets(""),
		tt.Args("https://calc.example/").Rets(""),
	})
}

func TestCurrentMode(t *testing.T) {
	loc := must.OK1(url.Parse("https://calc.example/?mode=cmplx_f64"))
	if got := CurrentMode(loc); got != mode.Complex64 {
		t.Errorf("CurrentMode -> %v, want %v", got, mode.Complex64)
	}
	loc = must.OK1(url.Parse("https://calc.example/#bogus-YQ=="))
	if got := CurrentMode(loc); got != mode.Rational {
		t.Errorf("CurrentMode -> %v, want %v", got, mode.Rational)
	}
}
