package calc

import (
	"testing"

	"src.smolcalc.dev/pkg/diag"
	"src.smolcalc.dev/pkg/tt"
)

// Returns a matcher for a successful evaluation with the given output.
func out(s string) tt.Matcher { return outputMatcher(s) }

type outputMatcher string

func (m outputMatcher) Match(v tt.RetValue) bool {
	return v.(Value).Output == string(m)
}

func fail(msg string, from, to int) *Error {
	return &Error{msg, diag.Ranging{From: from, To: to}}
}

var noValue = Value{}

func TestEvalRational(t *testing.T) {
	tt.Test(t, tt.Fn("EvalRational", EvalRational), tt.Table{
		tt.Args("1/3+1/6").Rets(out("1/2"), nil),
		tt.Args("1+2*3").Rets(out("7"), nil),
		tt.Args("(1+2)*3").Rets(out("9"), nil),
		tt.Args("10-2-3").Rets(out("5"), nil),
		tt.Args("2*3^2").Rets(out("18"), nil),
		tt.Args("2^3^2").Rets(out("512"), nil),
		tt.Args("2^-1").Rets(out("1/2"), nil),
		tt.Args("-2^2").Rets(out("4"), nil),
		tt.Args("2(3+4)").Rets(out("14"), nil),
		tt.Args("3 × 4 ÷ 6").Rets(out("2"), nil),
		tt.Args("0.25").Rets(out("1/4"), nil),
		tt.Args(".5+1.").Rets(out("3/2"), nil),
		tt.Args("7.5%2").Rets(out("3/2"), nil),
		tt.Args("-5%3").Rets(out("-2"), nil),
		tt.Args("floor(-1.5)").Rets(out("-2"), nil),
		tt.Args("ceil(-1.5)").Rets(out("-1"), nil),
		tt.Args("round(2.5)").Rets(out("3"), nil),
		tt.Args("round(-2.5)").Rets(out("-3"), nil),
		tt.Args("trunc(-7/2)").Rets(out("-3"), nil),
		tt.Args("fract(7/2)").Rets(out("1/2"), nil),
		tt.Args("abs(-2/3)").Rets(out("2/3"), nil),
		tt.Args("sqrt(9/4)").Rets(out("3/2"), nil),
		tt.Args("√(16)").Rets(out("4"), nil),
		tt.Args("cbrt(27)").Rets(out("3"), nil),
		tt.Args("(8/27)^(2/3)").Rets(out("4/9"), nil),
		tt.Args("sqrt(2)").Rets(out("1767766953/1250000000"), nil),
		tt.Args("max(1, 3, 2)").Rets(out("3"), nil),
		tt.Args("min[4, -1]").Rets(out("-1"), nil),
		tt.Args("c_m/s").Rets(out("299792458"), nil),
		tt.Args("½+⅓").Rets(out("5/6"), nil),

		tt.Args("1/0").Rets(noValue, fail("division by zero", 0, 3)),
		tt.Args("1+(2%0)").Rets(noValue, fail("division by zero", 3, 6)),
		tt.Args("0^-1").Rets(noValue, fail("division by zero", 0, 4)),
		tt.Args("min()").Rets(noValue, fail("expect ≥1 arguments", 0, 5)),
		tt.Args("sin(1)").Rets(noValue, fail("function not supported", 0, 6)),
		tt.Args("i").Rets(noValue, fail("this constant is not supported", 0, 1)),
	})
}

func TestEvalFloat(t *testing.T) {
	tt.Test(t, tt.Fn("EvalFloat32", EvalFloat32), tt.Table{
		tt.Args("1/3").Rets(out("0.333333"), nil),
		tt.Args("½+¼").Rets(out("0.75"), nil),
		tt.Args("2.5*4").Rets(out("10"), nil),
		tt.Args("1/0").Rets(noValue, fail("division by zero", 0, 3)),
	})
	tt.Test(t, tt.Fn("EvalFloat64", EvalFloat64), tt.Table{
		tt.Args("1/3").Rets(out("0.3333333333333"), nil),
		tt.Args(`\pi`).Rets(out("3.1415926535898"), nil),
		tt.Args("2π").Rets(out("6.2831853071796"), nil),
		tt.Args("log(100)").Rets(out("2"), nil),
		tt.Args("log(8, 2)").Rets(out("3"), nil),
		tt.Args("-7%3").Rets(out("-1"), nil),
		tt.Args("fract(2.25)").Rets(out("0.25"), nil),
		tt.Args("max(1, 5, 2)").Rets(out("5"), nil),
		tt.Args("sqrt(-1)").Rets(noValue, fail("number is not finite", 0, 8)),
		tt.Args("sin(1, 2)").Rets(noValue, fail("function not supported", 0, 9)),
		tt.Args("foo(1)").Rets(noValue, fail("function not supported", 0, 6)),
	})
}

func TestEvalComplex(t *testing.T) {
	tt.Test(t, tt.Fn("EvalComplex64", EvalComplex64), tt.Table{
		tt.Args("i^2").Rets(out("-1"), nil),
		tt.Args("3i").Rets(out("3i"), nil),
		tt.Args("1-2i").Rets(out("1-2i"), nil),
		tt.Args("-2i").Rets(out("-2i"), nil),
		tt.Args("(1+i)(1-i)").Rets(out("2"), nil),
		tt.Args("sqrt(-4)").Rets(out("2i"), nil),
		tt.Args("conj(1+i)").Rets(out("1-1i"), nil),
		tt.Args("norm(3+4i)").Rets(out("5"), nil),
		tt.Args("log(8, 2i)").Rets(noValue, fail("expect 2nd argument is a real number", 0, 10)),
		tt.Args("i%2").Rets(noValue, fail("modulo needs real operands", 0, 3)),
	})
	tt.Test(t, tt.Fn("EvalComplex32", EvalComplex32), tt.Table{
		tt.Args("1/3+i").Rets(out("0.333333+1i"), nil),
		tt.Args("sqrt(-4)").Rets(out("2i"), nil),
		tt.Args("sqrt(-(2+2))").Rets(out("2i"), nil),
	})
	tt.Test(t, tt.Fn("EvalComplexRational", EvalComplexRational), tt.Table{
		tt.Args("i^2").Rets(out("-1"), nil),
		tt.Args("(1+2i)/(3-4i)").Rets(out("(-1/5)+(2/5)i"), nil),
		tt.Args("1/2i").Rets(out("(1/2)i"), nil),
		tt.Args("(1+i)^-2").Rets(out("-(1/2)i"), nil),
		tt.Args("conj(2-i)").Rets(out("2+1i"), nil),
		tt.Args("1/3").Rets(out("1/3"), nil),
		tt.Args("1/(i-i)").Rets(noValue, fail("division by zero", 0, 7)),
	})
}

func TestEval_ParseErrors(t *testing.T) {
	modes := []struct {
		name string
		fn   func(string) (Value, error)
	}{
		{"EvalRational", EvalRational},
		{"EvalFloat32", EvalFloat32},
		{"EvalFloat64", EvalFloat64},
		{"EvalComplex32", EvalComplex32},
		{"EvalComplex64", EvalComplex64},
		{"EvalComplexRational", EvalComplexRational},
	}
	for _, mode := range modes {
		tt.Test(t, tt.Fn(mode.name, mode.fn), tt.Table{
			// An unmatched bracket is reported at the bracket itself.
			tt.Args("(").Rets(noValue, fail("unclosed bracket", 0, 1)),
			tt.Args("2*(3+4").Rets(noValue, fail("unclosed bracket", 2, 3)),
			tt.Args("max(1, 2").Rets(noValue, fail("unclosed bracket", 0, 4)),
			tt.Args("").Rets(noValue, fail("unexpected end of expression", 0, 0)),
			tt.Args("1+").Rets(noValue, fail("unexpected end of expression", 2, 2)),
			tt.Args("1+2)").Rets(noValue, fail("expected end of expression", 3, 4)),
			tt.Args("(1]").Rets(noValue, fail("bracket type mismatch", 2, 3)),
			tt.Args("(1,2)").Rets(noValue, fail("expected bracket end", 2, 3)),
			tt.Args("max(1 2 ;").Rets(noValue, fail("this constant is not supported", 8, 9)),
			tt.Args("*2").Rets(noValue, fail("did not expect this", 0, 1)),
			tt.Args("1..2").Rets(noValue, fail("number format is incorrect", 0, 4)),
			tt.Args("foo 1").Rets(noValue, fail("this constant is not supported", 0, 4)),
		})
	}
}
