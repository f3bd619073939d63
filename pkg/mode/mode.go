// Package mode defines the numeric evaluation modes and the registry that maps
// each mode to its evaluator.
package mode

import (
	"errors"
	"fmt"

	"src.smolcalc.dev/pkg/calc"
	"src.smolcalc.dev/pkg/diag"
)

// Mode is a numeric evaluation mode. The zero value is the default mode.
type Mode int

// Evaluation modes.
const (
	Rational Mode = iota
	Float32
	Float64
	Complex32
	Complex64
	ComplexRational
)

var modeTokens = [...]string{
	Rational:        "",
	Float32:         "f32",
	Float64:         "f64",
	Complex32:       "cmplx_f32",
	Complex64:       "cmplx_f64",
	ComplexRational: "cmplx",
}

var modeNames = [...]string{
	Rational:        "rational",
	Float32:         "float32",
	Float64:         "float64",
	Complex32:       "complex float32",
	Complex64:       "complex float64",
	ComplexRational: "complex rational",
}

// All returns all modes, in the order they are offered to the user.
func All() []Mode {
	return []Mode{Rational, Float32, Float64, Complex32, Complex64, ComplexRational}
}

// Parse returns the mode with the given token. It reports false for an
// unknown token, in which case the returned mode is Rational.
func Parse(token string) (Mode, bool) {
	switch token {
	case "":
		return Rational, true
	case "f32":
		return Float32, true
	case "f64":
		return Float64, true
	case "cmplx_f32":
		return Complex32, true
	case "cmplx_f64":
		return Complex64, true
	case "cmplx":
		return ComplexRational, true
	default:
		return Rational, false
	}
}

// Token returns the token identifying m in share addresses and mode selectors.
func (m Mode) Token() string {
	if m < 0 || int(m) >= len(modeTokens) {
		return ""
	}
	return modeTokens[m]
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode following m in the order of All, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeTokens))
}

// Outcome is the result of evaluating an expression. It is either a Success
// or a Failure.
type Outcome interface{ isOutcome() }

// Success is a successful evaluation.
type Success struct {
	Output string
	// LaTeX source of the interpreted input, or empty if there is nothing to
	// typeset.
	Typeset string
}

// Failure is an evaluation failure that can be located in the input.
type Failure struct {
	Span    diag.Ranging
	Message string
}

func (Success) isOutcome() {}
func (Failure) isOutcome() {}

// Handle evaluates text in one mode. A non-nil error means that the evaluator
// broke its contract; it is never used for failures of the input.
type Handle func(text string) (Outcome, error)

// Wrap turns an engine function into a Handle. An *calc.Error becomes a
// Failure; any other error is passed through.
func Wrap(f func(string) (calc.Value, error)) Handle {
	return func(text string) (Outcome, error) {
		v, err := f(text)
		if err != nil {
			var calcErr *calc.Error
			if errors.As(err, &calcErr) {
				return Failure{calcErr.Ranging, calcErr.Message}, nil
			}
			return nil, err
		}
		return Success{v.Output, v.Latex}, nil
	}
}
