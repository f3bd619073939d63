package mode

import (
	"src.smolcalc.dev/pkg/calc"
	"src.smolcalc.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[mode] ")

// Registry maps modes to their handles. It is built once and never modified.
type Registry struct {
	handles map[Mode]Handle
}

// NewRegistry returns a Registry with the given handles. The Rational handle
// is required, since every unknown token resolves to it.
func NewRegistry(handles map[Mode]Handle) *Registry {
	if handles[Rational] == nil {
		panic("mode: registry without a Rational handle")
	}
	copied := make(map[Mode]Handle, len(handles))
	for m, h := range handles {
		copied[m] = h
	}
	return &Registry{copied}
}

// Builtin returns the Registry backed by the calculator engine.
func Builtin() *Registry {
	return NewRegistry(map[Mode]Handle{
		Rational:        Wrap(calc.EvalRational),
		Float32:         Wrap(calc.EvalFloat32),
		Float64:         Wrap(calc.EvalFloat64),
		Complex32:       Wrap(calc.EvalComplex32),
		Complex64:       Wrap(calc.EvalComplex64),
		ComplexRational: Wrap(calc.EvalComplexRational),
	})
}

// Resolve returns the handle for a mode token. Missing, empty and unknown
// tokens resolve to the Rational handle.
func (r *Registry) Resolve(token string) Handle {
	m, ok := Parse(token)
	if !ok {
		logger.Printf("unknown mode token %q, using default", token)
	}
	return r.Get(m)
}

// Get returns the handle for a mode, falling back to the Rational handle if
// the registry has none for it.
func (r *Registry) Get(m Mode) Handle {
	var h Handle
	switch m {
	case Rational, Float32, Float64, Complex32, Complex64, ComplexRational:
		h = r.handles[m]
	default:
		logger.Printf("invalid mode %d, using default", int(m))
	}
	if h == nil {
		h = r.handles[Rational]
	}
	return h
}
