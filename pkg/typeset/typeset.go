// Package typeset renders the LaTeX interpretation of an expression.
//
// Typesetting is optional. A Renderer is resolved once at startup by a Loader;
// when typesetting is disabled or unavailable, Nop stands in and hides the
// typeset surface.
package typeset

import (
	"context"
	"fmt"

	"src.smolcalc.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[typeset] ")

// Target is the surface that shows typeset output.
type Target interface {
	ShowTypeset(markup string)
	HideTypeset()
}

// Renderer renders LaTeX math into a Target. Render never fails: malformed
// sources degrade to an error rendering inside the target.
type Renderer interface {
	Render(source string, t Target)
}

// Nop is the Renderer used when typesetting is off. It hides the target.
type Nop struct{}

// Render hides t.
func (Nop) Render(_ string, t Target) { t.HideTypeset() }

// Loader acquires a Renderer once, before the first evaluation.
type Loader struct {
	// Acquire obtains the renderer. If nil, the MathML renderer is acquired.
	Acquire func(context.Context) (Renderer, error)
}

// Load returns Nop if enabled is false or the acquisition fails, and the
// acquired Renderer otherwise. Failures are logged but not returned, since
// the calculator works without typesetting.
func (l Loader) Load(ctx context.Context, enabled bool) Renderer {
	if !enabled {
		return Nop{}
	}
	acquire := l.Acquire
	if acquire == nil {
		acquire = acquireMathML
	}
	r, err := acquire(ctx)
	if err != nil {
		logger.Printf("typesetting unavailable: %v", err)
		return Nop{}
	}
	return r
}

func acquireMathML(ctx context.Context) (Renderer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := ToMathML(`\frac{1}{2}`); err != nil {
		return nil, fmt.Errorf("self check: %w", err)
	}
	return MathML{}, nil
}
