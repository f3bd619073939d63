package calc

import (
	"math"
	"math/big"
	"strings"
)

type rat = *big.Rat

type ratDomain struct{}

func (ratDomain) literal(lit string) (rat, error) { return decimalRat(lit), nil }

func (ratDomain) constant(name string) (rat, bool) { return ratConstant(name) }

func (ratDomain) binary(op BinaryOp, l, r rat) (rat, error) { return ratBinary(op, l, r) }

func (ratDomain) negate(x rat) rat { return new(big.Rat).Neg(x) }

func (ratDomain) call(name string, args []rat) (rat, error) {
	f, ok := ratFuncs[name]
	if !ok {
		return nil, errUnsupportedFunc
	}
	return f(args)
}

func (ratDomain) format(x rat) string { return x.RatString() }

// Converts a validated decimal literal exactly.
func decimalRat(lit string) rat {
	intPart, fracPart, _ := strings.Cut(lit, ".")
	num, _ := new(big.Int).SetString("0"+intPart+fracPart, 10)
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	return new(big.Rat).SetFrac(num, den)
}

func ratConstant(name string) (rat, bool) {
	if c, ok := namedConstants[name]; ok {
		return big.NewRat(c.num, c.den), true
	}
	if f, ok := vulgarFractions[name]; ok {
		return big.NewRat(f[0], f[1]), true
	}
	return nil, false
}

func ratBinary(op BinaryOp, l, r rat) (rat, error) {
	switch op {
	case Add:
		return new(big.Rat).Add(l, r), nil
	case Sub:
		return new(big.Rat).Sub(l, r), nil
	case Mul:
		return new(big.Rat).Mul(l, r), nil
	case Div:
		if r.Sign() == 0 {
			return nil, errDivisionByZero
		}
		return new(big.Rat).Quo(l, r), nil
	case Mod:
		if r.Sign() == 0 {
			return nil, errDivisionByZero
		}
		return ratMod(l, r), nil
	default:
		return ratPow(l, r)
	}
}

// Truncated remainder: the result has the sign of l.
func ratMod(l, r rat) rat {
	q := ratTrunc(new(big.Rat).Quo(l, r))
	return new(big.Rat).Sub(l, q.Mul(q, r))
}

// Exponents beyond this many bits would produce numbers too large to print.
const maxExponentBits = 16

func ratPow(base, exp rat) (rat, error) {
	if exp.IsInt() {
		return ratIntPow(base, exp.Num())
	}
	// Try an exact root first, as in 9^(1/2) or (8/27)^(2/3).
	if exp.Denom().IsInt64() && exp.Denom().Int64() <= 64 && base.Sign() >= 0 {
		q := int(exp.Denom().Int64())
		num, okNum := intRoot(base.Num(), q)
		den, okDen := intRoot(base.Denom(), q)
		if okNum && okDen {
			return ratIntPow(new(big.Rat).SetFrac(num, den), exp.Num())
		}
	}
	b, _ := base.Float64()
	e, _ := exp.Float64()
	return approxRat(math.Pow(b, e))
}

func ratIntPow(base rat, exp *big.Int) (rat, error) {
	if exp.BitLen() > maxExponentBits {
		return nil, errExponentTooBig
	}
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return nil, errDivisionByZero
		}
		base = new(big.Rat).Inv(base)
	}
	e := new(big.Int).Abs(exp)
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den), nil
}

// Returns the exact q-th root of a non-negative n, if there is one.
func intRoot(n *big.Int, q int) (*big.Int, bool) {
	if n.BitLen() > 53 {
		return nil, false
	}
	guess := math.Round(math.Pow(float64(n.Int64()), 1/float64(q)))
	root := big.NewInt(int64(guess))
	if new(big.Int).Exp(root, big.NewInt(int64(q)), nil).Cmp(n) != 0 {
		return nil, false
	}
	return root, true
}

// Decimal places kept when an irrational result is approximated.
const approxDigits = 10

// Converts a float result to a rational with approxDigits decimal places.
func approxRat(x float64) (rat, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return nil, errNotFinite
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(approxDigits), nil)
	f := new(big.Float).SetFloat64(x)
	f.Mul(f, new(big.Float).SetInt(scale))
	if x < 0 {
		f.Sub(f, big.NewFloat(0.5))
	} else {
		f.Add(f, big.NewFloat(0.5))
	}
	num, _ := f.Int(nil)
	return new(big.Rat).SetFrac(num, scale), nil
}

func ratFloor(x rat) rat {
	q := new(big.Int).Div(x.Num(), x.Denom())
	return new(big.Rat).SetInt(q)
}

func ratTrunc(x rat) rat {
	q := new(big.Int).Quo(x.Num(), x.Denom())
	return new(big.Rat).SetInt(q)
}

func ratCeil(x rat) rat {
	return new(big.Rat).Neg(ratFloor(new(big.Rat).Neg(x)))
}

// Rounds half away from zero.
func ratRound(x rat) rat {
	half := big.NewRat(1, 2)
	if x.Sign() < 0 {
		return ratCeil(new(big.Rat).Sub(x, half))
	}
	return ratFloor(new(big.Rat).Add(x, half))
}

type ratFunc func(args []rat) (rat, error)

var ratFuncs = map[string]ratFunc{
	"floor": runary(ratFloor),
	"ceil":  runary(ratCeil),
	"round": runary(ratRound),
	"trunc": runary(ratTrunc),
	"fract": runary(func(x rat) rat { return new(big.Rat).Sub(x, ratTrunc(x)) }),
	"abs":   runary(func(x rat) rat { return new(big.Rat).Abs(x) }),
	"sqrt":  rroot(2),
	"√":     rroot(2),
	"cbrt":  rroot(3),
	"∛":     rroot(3),
	"min":   rfold(-1),
	"max":   rfold(1),
}

func runary(f func(rat) rat) ratFunc {
	return func(args []rat) (rat, error) {
		if len(args) != 1 {
			return nil, errUnsupportedFunc
		}
		return f(args[0]), nil
	}
}

func rroot(q int64) ratFunc {
	return func(args []rat) (rat, error) {
		if len(args) != 1 {
			return nil, errUnsupportedFunc
		}
		return ratPow(args[0], big.NewRat(1, q))
	}
}

// Returns the extreme argument: the smallest when want is -1, the largest when
// want is 1.
func rfold(want int) ratFunc {
	return func(args []rat) (rat, error) {
		if len(args) == 0 {
			return nil, errNeedArgs
		}
		acc := args[0]
		for _, x := range args[1:] {
			if x.Cmp(acc) == want {
				acc = x
			}
		}
		return acc, nil
	}
}
