package mode

import (
	"errors"
	"testing"

	"src.smolcalc.dev/pkg/calc"
	"src.smolcalc.dev/pkg/diag"
	"src.smolcalc.dev/pkg/tt"
)

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", Parse), tt.Table{
		tt.Args("").Rets(Rational, true),
		tt.Args("f32").Rets(Float32, true),
		tt.Args("f64").Rets(Float64, true),
		tt.Args("cmplx_f32").Rets(Complex32, true),
		tt.Args("cmplx_f64").Rets(Complex64, true),
		tt.Args("cmplx").Rets(ComplexRational, true),
		tt.Args("f16").Rets(Rational, false),
		tt.Args("F32").Rets(Rational, false),
	})
}

func TestToken_RoundTrips(t *testing.T) {
	for _, m := range All() {
		got, ok := Parse(m.Token())
		if got != m || !ok {
			t.Errorf("Parse(%q) -> (%v, %v), want (%v, true)", m.Token(), got, ok, m)
		}
	}
}

func TestMode_String(t *testing.T) {
	tt.Test(t, tt.Fn("Mode.String", Mode.String), tt.Table{
		tt.Args(Rational).Rets("rational"),
		tt.Args(Complex64).Rets("complex float64"),
		tt.Args(Mode(42)).Rets("Mode(42)"),
	})
}

func TestMode_Next(t *testing.T) {
	tt.Test(t, tt.Fn("Mode.Next", Mode.Next), tt.Table{
		tt.Args(Rational).Rets(Float32),
		tt.Args(Complex64).Rets(ComplexRational),
		tt.Args(ComplexRational).Rets(Rational),
	})
}

var errBroken = errors.New("broken evaluator")

func TestWrap(t *testing.T) {
	ok := Wrap(func(string) (calc.Value, error) {
		return calc.Value{Output: "1/2", Latex: `\frac{1}{2}`}, nil
	})
	failing := Wrap(func(string) (calc.Value, error) {
		return calc.Value{}, &calc.Error{Message: "division by zero", Ranging: diag.Ranging{From: 0, To: 3}}
	})
	broken := Wrap(func(string) (calc.Value, error) {
		return calc.Value{}, errBroken
	})

	tt.Test(t, tt.Fn("ok", ok), tt.Table{
		tt.Args("1/2").Rets(Success{"1/2", `\frac{1}{2}`}, nil),
	})
	tt.Test(t, tt.Fn("failing", failing), tt.Table{
		tt.Args("1/0").Rets(Failure{diag.Ranging{From: 0, To: 3}, "division by zero"}, nil),
	})
	if _, err := broken("1"); err != errBroken {
		t.Errorf("broken handle returns error %v, want %v", err, errBroken)
	}
}
