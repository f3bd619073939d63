// Package calc implements the expression engine: a parser producing a small
// syntax tree with character spans, and evaluators for each numeric domain.
//
// Every Eval function is pure. A failure that can be located in the input is
// returned as an *Error; no other error is ever returned.
package calc

import (
	"errors"
	"fmt"

	"src.smolcalc.dev/pkg/diag"
)

// Value is the result of a successful evaluation.
type Value struct {
	// Output is the formatted result.
	Output string
	// Latex is the LaTeX rendering of the parsed input, without math
	// delimiters.
	Latex string
}

// Error is a parse or evaluation failure located in the input. The range
// indexes characters (runes) and always lies within the input.
type Error struct {
	Message string
	diag.Ranging
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d-%d: %s", e.From, e.To, e.Message)
}

// Errors produced by the numeric domains. They are wrapped into *Error with
// the span of the offending node.
var (
	errDivisionByZero  = errors.New("division by zero")
	errNotFinite       = errors.New("number is not finite")
	errUnsupportedFunc = errors.New("function not supported")
	errNeedArgs        = errors.New("expect ≥1 arguments")
	errModuloReal      = errors.New("modulo needs real operands")
	errLogBase         = errors.New("expect 2nd argument is a real number")
	errLogArity        = errors.New("expect 1 or 2 arguments")
	errExponentTooBig  = errors.New("exponent is too large")
)

// EvalRational evaluates text with exact rational arithmetic.
func EvalRational(text string) (Value, error) { return evaluate[rat](ratDomain{}, text) }

// EvalFloat32 evaluates text with 32-bit floating point arithmetic.
func EvalFloat32(text string) (Value, error) { return evaluate[float64](float32Domain, text) }

// EvalFloat64 evaluates text with 64-bit floating point arithmetic.
func EvalFloat64(text string) (Value, error) { return evaluate[float64](float64Domain, text) }

// EvalComplex32 evaluates text with complex numbers made of two 32-bit floats.
func EvalComplex32(text string) (Value, error) { return evaluate[complex128](complex64Domain, text) }

// EvalComplex64 evaluates text with complex numbers made of two 64-bit
// floats.
func EvalComplex64(text string) (Value, error) { return evaluate[complex128](complex128Domain, text) }

// EvalComplexRational evaluates text with complex numbers made of two exact
// rationals.
func EvalComplexRational(text string) (Value, error) {
	return evaluate[cmplxRat](cmplxRatDomain{}, text)
}

// A domain supplies the arithmetic of one numeric mode.
type domain[T any] interface {
	// Converts a validated decimal literal.
	literal(lit string) (T, error)
	// Looks up a named constant. The lexer uses this to decide where an
	// identifier ends.
	constant(name string) (T, bool)
	binary(op BinaryOp, l, r T) (T, error)
	negate(x T) T
	call(name string, args []T) (T, error)
	format(x T) string
}

func evaluate[T any](d domain[T], text string) (Value, error) {
	expr, err := parse(text, func(name string) bool {
		_, ok := d.constant(name)
		return ok
	})
	if err != nil {
		return Value{}, err
	}
	v, err := eval(d, expr)
	if err != nil {
		return Value{}, err
	}
	return Value{Output: d.format(v), Latex: Latex(expr)}, nil
}

func eval[T any](d domain[T], e Expr) (T, error) {
	var zero T
	switch e := e.(type) {
	case *Number:
		v, err := d.literal(e.Text)
		if err != nil {
			return zero, locate(err, e)
		}
		return v, nil
	case *Constant:
		v, _ := d.constant(e.Name)
		return v, nil
	case *Group:
		return eval(d, e.X)
	case *Unary:
		x, err := eval(d, e.X)
		if err != nil {
			return zero, err
		}
		if e.Op == Neg {
			return d.negate(x), nil
		}
		return x, nil
	case *Binary:
		l, err := eval(d, e.L)
		if err != nil {
			return zero, err
		}
		r, err := eval(d, e.R)
		if err != nil {
			return zero, err
		}
		v, err := d.binary(e.Op, l, r)
		if err != nil {
			return zero, locate(err, e)
		}
		return v, nil
	case *Call:
		args := make([]T, len(e.Args))
		for i, arg := range e.Args {
			v, err := eval(d, arg)
			if err != nil {
				return zero, err
			}
			args[i] = v
		}
		v, err := d.call(e.Name, args)
		if err != nil {
			return zero, locate(err, e)
		}
		return v, nil
	default:
		panic(fmt.Sprintf("unexpected node type %T", e))
	}
}

func locate(err error, r diag.Ranger) *Error {
	return &Error{Message: err.Error(), Ranging: r.Range()}
}
