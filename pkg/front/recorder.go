package front

import "net/url"

// Recorder is a Surfaces that keeps what is written to it. Hosts that
// evaluate away from their display, like the web backend, evaluate against
// a Recorder and ship its content.
type Recorder struct {
	Text    string
	Result  string
	Share   string
	Typeset string
	// Shown is whether the typeset surface is shown.
	Shown bool
}

func (r *Recorder) InputText() string         { return r.Text }
func (r *Recorder) SetResult(text string)     { r.Result = text }
func (r *Recorder) SetShare(address string)   { r.Share = address }
func (r *Recorder) ShowTypeset(markup string) { r.Typeset, r.Shown = markup, true }
func (r *Recorder) HideTypeset()              { r.Typeset, r.Shown = "", false }

// Fixed is a Navigation whose address never changes.
type Fixed struct{ URL *url.URL }

func (f Fixed) Location() *url.URL { return f.URL }

// SetFragment does nothing.
func (f Fixed) SetFragment(string) {}
