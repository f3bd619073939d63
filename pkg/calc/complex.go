package calc

import (
	"math"
	"math/cmplx"
)

// complexDomain is the complex counterpart of floatDomain. Both parts are
// rounded to the width of the underlying float domain.
type complexDomain struct {
	part floatDomain
}

var (
	complex64Domain  = complexDomain{float32Domain}
	complex128Domain = complexDomain{float64Domain}
)

func (d complexDomain) round(z complex128) complex128 {
	return complex(d.part.round(real(z)), d.part.round(imag(z)))
}

func (d complexDomain) literal(lit string) (complex128, error) {
	x, err := d.part.literal(lit)
	return complex(x, 0), err
}

func (d complexDomain) constant(name string) (complex128, bool) {
	if name == imaginaryUnit {
		return 1i, true
	}
	x, ok := d.part.constant(name)
	return complex(x, 0), ok
}

func (d complexDomain) binary(op BinaryOp, l, r complex128) (complex128, error) {
	var v complex128
	switch op {
	case Add:
		v = l + r
	case Sub:
		v = l - r
	case Mul:
		v = l * r
	case Div:
		if r == 0 {
			return 0, errDivisionByZero
		}
		v = l / r
	case Mod:
		if imag(l) != 0 || imag(r) != 0 {
			return 0, errModuloReal
		}
		x, err := floatBinary(Mod, real(l), real(r))
		if err != nil {
			return 0, err
		}
		v = complex(x, 0)
	default:
		v = cmplx.Pow(l, r)
	}
	return d.finite(v)
}

// Subtracting from zero keeps a zero part positive. cmplx.Sqrt of -4-0i is -2i.
func (d complexDomain) negate(z complex128) complex128 { return 0 - z }

func (d complexDomain) call(name string, args []complex128) (complex128, error) {
	f, ok := complexFuncs[name]
	if !ok {
		return 0, errUnsupportedFunc
	}
	v, err := f(args)
	if err != nil {
		return 0, err
	}
	return d.finite(v)
}

func (d complexDomain) finite(z complex128) (complex128, error) {
	z = d.round(z)
	if cmplx.IsInf(z) || cmplx.IsNaN(z) {
		return 0, errNotFinite
	}
	return z, nil
}

func (d complexDomain) format(z complex128) string {
	return formatComplex(real(z), imag(z), floatSign, math.Abs, func(x float64) string {
		return formatFloat(x, d.part.digits)
	})
}

// Formats a complex number as "a", "bi", "a+bi" or "a-bi". Parts that format
// as zero are left out.
func formatComplex[T any](re, im T, sign func(T) int, abs func(T) T, part func(T) string) string {
	reText, imText := part(re), part(abs(im))
	switch {
	case imText == "0":
		return reText
	case reText == "0" && sign(im) > 0:
		return imText + "i"
	case reText == "0":
		return "-" + imText + "i"
	case sign(im) > 0:
		return reText + "+" + imText + "i"
	default:
		return reText + "-" + imText + "i"
	}
}

func floatSign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

type complexFunc func(args []complex128) (complex128, error)

var complexFuncs = map[string]complexFunc{
	"sqrt": cunary(cmplx.Sqrt),
	"√":    cunary(cmplx.Sqrt),
	"ln":   cunary(cmplx.Log),
	"log": func(args []complex128) (complex128, error) {
		switch len(args) {
		case 1:
			return cmplx.Log10(args[0]), nil
		case 2:
			if imag(args[1]) != 0 {
				return 0, errLogBase
			}
			return cmplx.Log(args[0]) / complex(math.Log(real(args[1])), 0), nil
		}
		return 0, errLogArity
	},
	"cbrt":    cunary(ccbrt),
	"∛":       cunary(ccbrt),
	"sin":     cunary(cmplx.Sin),
	"cos":     cunary(cmplx.Cos),
	"tan":     cunary(cmplx.Tan),
	"arcsin":  cunary(cmplx.Asin),
	"arccos":  cunary(cmplx.Acos),
	"arctan":  cunary(cmplx.Atan),
	"sinh":    cunary(cmplx.Sinh),
	"cosh":    cunary(cmplx.Cosh),
	"tanh":    cunary(cmplx.Tanh),
	"arcsinh": cunary(cmplx.Asinh),
	"arccosh": cunary(cmplx.Acosh),
	"arctanh": cunary(cmplx.Atanh),
	"conj":    cunary(cmplx.Conj),
	"norm":    cunary(func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) }),
}

// Cube root, real for real arguments.
func ccbrt(z complex128) complex128 {
	if imag(z) == 0 {
		return complex(math.Cbrt(real(z)), 0)
	}
	return cmplx.Pow(z, 1.0/3)
}

func cunary(f func(complex128) complex128) complexFunc {
	return func(args []complex128) (complex128, error) {
		if len(args) != 1 {
			return 0, errUnsupportedFunc
		}
		return f(args[0]), nil
	}
}
