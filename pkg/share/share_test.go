package share

import (
	"net/url"
	"testing"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/tt"
)

func TestEncode(t *testing.T) {
	tt.Test(t, tt.Fn("Encode", Encode), tt.Table{
		tt.Args(State{mode.Rational, "1/3+1/6"}).Rets("-MS8zKzEvNg=="),
		tt.Args(State{mode.Float64, "1/3"}).Rets("f64-MS8z"),
		tt.Args(State{mode.ComplexRational, "π÷2"}).Rets("cmplx-z4DDtzI="),
		tt.Args(State{mode.Float32, ""}).Rets("f32-"),
	})
}

func TestDecode(t *testing.T) {
	tt.Test(t, tt.Fn("Decode", Decode), tt.Table{
		tt.Args("#-MS8zKzEvNg==").Rets(State{mode.Rational, "1/3+1/6"}, true, nil),
		tt.Args("f64-MS8z").Rets(State{mode.Float64, "1/3"}, true, nil),
		// Padding may be missing or percent-encoded.
		tt.Args("#-YQ").Rets(State{mode.Rational, "a"}, true, nil),
		tt.Args("#-YQ%3D%3D").Rets(State{mode.Rational, "a"}, true, nil),
		// Only the first separator splits.
		tt.Args("#cmplx_f32-LTE=").Rets(State{mode.Complex32, "-1"}, true, nil),
		// Mode only.
		tt.Args("#f32").Rets(State{Mode: mode.Float32}, false, nil),
		tt.Args("").Rets(State{}, false, nil),
		// Unknown tokens give the default mode.
		tt.Args("#f16-YQ==").Rets(State{mode.Rational, "a"}, true, nil),
		// Malformed payloads keep the mode but report an error.
		tt.Args("#f64-!!!").Rets(State{Mode: mode.Float64}, true, ErrMalformed),
		tt.Args("#f64-Y").Rets(State{Mode: mode.Float64}, true, ErrMalformed),
	})
}

var roundTripTexts = []string{
	"",
	"1/3+1/6",
	"2π × sqrt(2)",
	"½ + ⅓ - ∛(27)",
	`\alpha-\pi`,
	"日本語 ✓",
	"emoji 🧮 with surrogate pairs 𝔸",
	"  spaces and\ttabs\nand newlines  ",
	"#-?&=+/%",
	"\x00\x7f",
}

func TestRoundTrip(t *testing.T) {
	for _, m := range mode.All() {
		for _, text := range roundTripTexts {
			s := State{m, text}
			got, hasText, err := Decode(Encode(s))
			if got != s || !hasText || err != nil {
				t.Errorf("Decode(Encode(%v)) -> (%v, %v, %v)", s, got, hasText, err)
			}
		}
	}
}

func TestRoundTrip_ThroughURL(t *testing.T) {
	loc := must.OK1(url.Parse("https://calc.example/app/?typeset#old"))
	for _, m := range mode.All() {
		for _, text := range roundTripTexts {
			s := State{m, text}
			parsed := must.OK1(url.Parse(URL(loc, s)))
			got, _, err := Decode(parsed.Fragment)
			if got != s || err != nil {
				t.Errorf("state %v did not survive URL %q: got (%v, %v)", s, URL(loc, s), got, err)
			}
		}
	}
}

func TestURL(t *testing.T) {
	loc := must.OK1(url.Parse("https://calc.example/app/?typeset#f32-YQ=="))
	got := URL(loc, State{mode.Rational, "1/3+1/6"})
	want := "https://calc.example/app/?typeset#-MS8zKzEvNg=="
	if got != want {
		t.Errorf("URL -> %q, want %q", got, want)
	}
	if loc.Fragment != "f32-YQ==" {
		t.Errorf("URL modified its argument")
	}
}
