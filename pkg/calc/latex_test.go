package calc

import (
	"testing"

	"src.smolcalc.dev/pkg/tt"
)

func latexOf(text string) string {
	v, err := EvalFloat64(text)
	if err != nil {
		return "error: " + err.Error()
	}
	return v.Latex
}

func TestLatex(t *testing.T) {
	tt.Test(t, tt.Fn("latexOf", latexOf), tt.Table{
		tt.Args("1/3+1/6").Rets(`\frac{1}{3}+\frac{1}{6}`),
		tt.Args("(1+2)/3").Rets(`\frac{1+2}{3}`),
		tt.Args("2π").Rets(`2 \pi`),
		tt.Args("2*3").Rets(`2 \times 3`),
		tt.Args("(1+2)^2").Rets(`{(1+2)}^{2}`),
		tt.Args("-2^2").Rets(`{(-2)}^{2}`),
		tt.Args("2^(1/2)").Rets(`{2}^{\frac{1}{2}}`),
		tt.Args("5%3").Rets(`5 \operatorname{mod} 3`),
		tt.Args("sqrt(2)*3").Rets(`\sqrt{2} \times 3`),
		tt.Args("∛(8)").Rets(`\sqrt[3]{8}`),
		tt.Args("abs(-1)").Rets(`\vert -1 \vert`),
		tt.Args("log(8, 2)").Rets(`\log(8, 2)`),
		tt.Args("floor(1.5)").Rets(`\operatorname{floor}(1.5)`),
		tt.Args("½").Rets(`\frac{1}{2}`),
		tt.Args(`\tau+γ`).Rets(`\tau+\gamma`),
	})
}
