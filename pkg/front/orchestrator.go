// Package front implements the calculator front-end logic shared by all hosts:
// evaluating the input in the selected mode, showing the result or a located
// error, typesetting the input and keeping the share address up to date.
//
// Hosts implement Navigation and Page for their environment (a browser page,
// a terminal UI, an HTTP request) and drive a Controller with user events.
package front

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"src.smolcalc.dev/pkg/diag"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/share"
	"src.smolcalc.dev/pkg/typeset"
)

var logger = logutil.GetLogger("[front] ")

// Navigation is the address of the page.
type Navigation interface {
	// Location returns the current address.
	Location() *url.URL
	// SetFragment replaces the fragment of the address. It is only called in
	// response to an explicit user action.
	SetFragment(fragment string)
}

// Surfaces are the parts of the page an evaluation reads and writes.
type Surfaces interface {
	// InputText returns the current input text.
	InputText() string
	// SetResult replaces the content of the result surface.
	SetResult(text string)
	// SetShare replaces the content of the share-address surface.
	SetShare(address string)
	typeset.Target
}

// Orchestrator runs one evaluation and writes all its visible output.
type Orchestrator struct {
	Registry *mode.Registry
	// Typesetter renders the LaTeX interpretation of the input. If nil,
	// typesetting is off.
	Typesetter typeset.Renderer
}

// Evaluate evaluates the input text of s in the mode selected by the address
// of nav. It writes the result or an error diagram to the result surface,
// renders or hides the typeset surface, and writes the share address.
//
// Evaluate never changes the address. An error from the evaluator means that
// the evaluator is broken; it is returned unchanged and nothing is written.
func (o *Orchestrator) Evaluate(nav Navigation, s Surfaces) error {
	loc := nav.Location()
	token := share.ModeToken(loc)
	text := s.InputText()

	outcome, err := o.Registry.Resolve(token)(text)
	if err != nil {
		return err
	}
	switch outcome := outcome.(type) {
	case mode.Success:
		s.SetResult(outcome.Output)
		if outcome.Typeset != "" {
			o.typesetter().Render(outcome.Typeset, s)
		} else {
			s.HideTypeset()
		}
	case mode.Failure:
		if !spanInText(outcome.Span, text) {
			logger.Printf("failure span %v out of range for %q", outcome.Span, text)
		}
		s.SetResult(diag.Annotate(text, outcome.Span))
		s.HideTypeset()
	default:
		return fmt.Errorf("unexpected outcome type %T", outcome)
	}

	m, _ := mode.Parse(token)
	s.SetShare(share.URL(loc, share.State{Mode: m, Text: text}))
	return nil
}

func (o *Orchestrator) typesetter() typeset.Renderer {
	if o.Typesetter == nil {
		return typeset.Nop{}
	}
	return o.Typesetter
}

func spanInText(r diag.Ranging, text string) bool {
	return 0 <= r.From && r.From <= r.To && r.To <= utf8.RuneCountInString(text)
}
