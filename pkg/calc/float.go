package calc

import (
	"math"
	"strconv"
	"strings"
)

// floatDomain computes in float64 and rounds every intermediate result to the
// configured width.
type floatDomain struct {
	bits   int
	digits int
}

var (
	float32Domain = floatDomain{bits: 32, digits: 6}
	float64Domain = floatDomain{bits: 64, digits: 13}
)

func (d floatDomain) round(x float64) float64 {
	if d.bits == 32 {
		return float64(float32(x))
	}
	return x
}

func (d floatDomain) literal(lit string) (float64, error) {
	x, err := strconv.ParseFloat(lit, d.bits)
	if err != nil {
		return 0, errNotFinite
	}
	return x, nil
}

func (d floatDomain) constant(name string) (float64, bool) {
	x, ok := floatConstant(name)
	return d.round(x), ok
}

func (d floatDomain) binary(op BinaryOp, l, r float64) (float64, error) {
	v, err := floatBinary(op, l, r)
	if err != nil {
		return 0, err
	}
	return d.finite(v)
}

func floatBinary(op BinaryOp, l, r float64) (float64, error) {
	switch op {
	case Add:
		return l + r, nil
	case Sub:
		return l - r, nil
	case Mul:
		return l * r, nil
	case Div:
		if r == 0 {
			return 0, errDivisionByZero
		}
		return l / r, nil
	case Mod:
		if r == 0 {
			return 0, errDivisionByZero
		}
		return math.Mod(l, r), nil
	default:
		return math.Pow(l, r), nil
	}
}

func (d floatDomain) negate(x float64) float64 { return -x }

func (d floatDomain) call(name string, args []float64) (float64, error) {
	f, ok := floatFuncs[name]
	if !ok {
		return 0, errUnsupportedFunc
	}
	v, err := f(args)
	if err != nil {
		return 0, err
	}
	return d.finite(v)
}

func (d floatDomain) finite(x float64) (float64, error) {
	x = d.round(x)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, errNotFinite
	}
	return x, nil
}

func (d floatDomain) format(x float64) string {
	return formatFloat(x, d.digits)
}

// Formats x with a fixed number of decimal places and trims trailing zeros.
func formatFloat(x float64, digits int) string {
	s := strconv.FormatFloat(x, 'f', digits, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

type floatFunc func(args []float64) (float64, error)

var floatFuncs = map[string]floatFunc{
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"trunc": unary(math.Trunc),
	"fract": unary(func(x float64) float64 { return x - math.Trunc(x) }),
	"abs":   unary(math.Abs),
	"sqrt":  unary(math.Sqrt),
	"√":     unary(math.Sqrt),
	"ln":    unary(math.Log),
	"log": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Log10(args[0]), nil
		case 2:
			return math.Log(args[0]) / math.Log(args[1]), nil
		}
		return 0, errUnsupportedFunc
	},
	"min":     fold(math.Min),
	"max":     fold(math.Max),
	"cbrt":    unary(math.Cbrt),
	"∛":       unary(math.Cbrt),
	"sin":     unary(math.Sin),
	"cos":     unary(math.Cos),
	"tan":     unary(math.Tan),
	"arcsin":  unary(math.Asin),
	"arccos":  unary(math.Acos),
	"arctan":  unary(math.Atan),
	"sinh":    unary(math.Sinh),
	"cosh":    unary(math.Cosh),
	"tanh":    unary(math.Tanh),
	"arcsinh": unary(math.Asinh),
	"arccosh": unary(math.Acosh),
	"arctanh": unary(math.Atanh),
}

func unary(f func(float64) float64) floatFunc {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, errUnsupportedFunc
		}
		return f(args[0]), nil
	}
}

func fold(f func(a, b float64) float64) floatFunc {
	return func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, errNeedArgs
		}
		acc := args[0]
		for _, x := range args[1:] {
			acc = f(acc, x)
		}
		return acc, nil
	}
}
