package calc

import (
	"math/big"
	"math/cmplx"
)

// cmplxRat is a complex number with exact rational parts.
type cmplxRat struct {
	re, im rat
}

func realRat(x rat) cmplxRat { return cmplxRat{x, new(big.Rat)} }

func (z cmplxRat) isReal() bool { return z.im.Sign() == 0 }

func (z cmplxRat) complex128() complex128 {
	re, _ := z.re.Float64()
	im, _ := z.im.Float64()
	return complex(re, im)
}

func approxCmplxRat(z complex128) (cmplxRat, error) {
	if cmplx.IsInf(z) || cmplx.IsNaN(z) {
		return cmplxRat{}, errNotFinite
	}
	re, err := approxRat(real(z))
	if err != nil {
		return cmplxRat{}, err
	}
	im, err := approxRat(imag(z))
	if err != nil {
		return cmplxRat{}, err
	}
	return cmplxRat{re, im}, nil
}

type cmplxRatDomain struct{}

func (cmplxRatDomain) literal(lit string) (cmplxRat, error) {
	return realRat(decimalRat(lit)), nil
}

func (cmplxRatDomain) constant(name string) (cmplxRat, bool) {
	if name == imaginaryUnit {
		return cmplxRat{new(big.Rat), big.NewRat(1, 1)}, true
	}
	x, ok := ratConstant(name)
	if !ok {
		return cmplxRat{}, false
	}
	return realRat(x), true
}

func (cmplxRatDomain) binary(op BinaryOp, l, r cmplxRat) (cmplxRat, error) {
	switch op {
	case Add:
		return cmplxRat{new(big.Rat).Add(l.re, r.re), new(big.Rat).Add(l.im, r.im)}, nil
	case Sub:
		return cmplxRat{new(big.Rat).Sub(l.re, r.re), new(big.Rat).Sub(l.im, r.im)}, nil
	case Mul:
		return cmplxMul(l, r), nil
	case Div:
		return cmplxQuo(l, r)
	case Mod:
		if !l.isReal() || !r.isReal() {
			return cmplxRat{}, errModuloReal
		}
		if r.re.Sign() == 0 {
			return cmplxRat{}, errDivisionByZero
		}
		return realRat(ratMod(l.re, r.re)), nil
	default:
		return cmplxPow(l, r)
	}
}

func cmplxMul(l, r cmplxRat) cmplxRat {
	ac := new(big.Rat).Mul(l.re, r.re)
	bd := new(big.Rat).Mul(l.im, r.im)
	ad := new(big.Rat).Mul(l.re, r.im)
	bc := new(big.Rat).Mul(l.im, r.re)
	return cmplxRat{ac.Sub(ac, bd), ad.Add(ad, bc)}
}

func cmplxQuo(l, r cmplxRat) (cmplxRat, error) {
	den := new(big.Rat).Mul(r.re, r.re)
	den.Add(den, new(big.Rat).Mul(r.im, r.im))
	if den.Sign() == 0 {
		return cmplxRat{}, errDivisionByZero
	}
	conj := cmplxRat{r.re, new(big.Rat).Neg(r.im)}
	num := cmplxMul(l, conj)
	return cmplxRat{num.re.Quo(num.re, den), num.im.Quo(num.im, den)}, nil
}

func cmplxPow(base, exp cmplxRat) (cmplxRat, error) {
	if exp.isReal() && exp.re.IsInt() {
		n := exp.re.Num()
		if n.BitLen() > maxExponentBits {
			return cmplxRat{}, errExponentTooBig
		}
		if n.Sign() < 0 {
			inv, err := cmplxQuo(realRat(big.NewRat(1, 1)), base)
			if err != nil {
				return cmplxRat{}, err
			}
			base = inv
		}
		acc := realRat(big.NewRat(1, 1))
		for i := new(big.Int).Abs(n).Int64(); i > 0; i >>= 1 {
			if i&1 == 1 {
				acc = cmplxMul(acc, base)
			}
			base = cmplxMul(base, base)
		}
		return acc, nil
	}
	if base.isReal() && exp.isReal() && base.re.Sign() >= 0 {
		x, err := ratPow(base.re, exp.re)
		if err != nil {
			return cmplxRat{}, err
		}
		return realRat(x), nil
	}
	return approxCmplxRat(cmplx.Pow(base.complex128(), exp.complex128()))
}

func (cmplxRatDomain) negate(z cmplxRat) cmplxRat {
	return cmplxRat{new(big.Rat).Neg(z.re), new(big.Rat).Neg(z.im)}
}

func (cmplxRatDomain) call(name string, args []cmplxRat) (cmplxRat, error) {
	if len(args) != 1 {
		return cmplxRat{}, errUnsupportedFunc
	}
	z := args[0]
	switch name {
	case "conj":
		return cmplxRat{z.re, new(big.Rat).Neg(z.im)}, nil
	case "ln":
		if z.re.Sign() == 0 && z.im.Sign() == 0 {
			return cmplxRat{}, errNotFinite
		}
		return approxCmplxRat(cmplx.Log(z.complex128()))
	case "exp":
		return approxCmplxRat(cmplx.Exp(z.complex128()))
	}
	return cmplxRat{}, errUnsupportedFunc
}

func (cmplxRatDomain) format(z cmplxRat) string {
	if z.isReal() {
		return z.re.RatString()
	}
	// Fractional parts are bracketed so that "(1/2)i" does not read as 1/(2i).
	return formatComplex(z.re, z.im, (*big.Rat).Sign, func(x rat) rat { return new(big.Rat).Abs(x) },
		func(x rat) string {
			if x.IsInt() {
				return x.RatString()
			}
			return "(" + x.RatString() + ")"
		})
}
