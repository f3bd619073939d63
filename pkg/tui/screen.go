package tui

import (
	"net/url"
	"sync"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/typeset"
)

// What the controller last wrote to the page.
type view struct {
	Text      string
	Result    string
	Share     string
	Typeset   string
	Mode      mode.Mode
	Auto      bool
	Trigger   bool
	TypesetOn bool
	Blocked   string
}

// The page and address a front.Controller drives. Controller operations run
// in commands, off the bubbletea goroutine, so every access is locked; the
// model only ever reads snapshots.
type screen struct {
	mu  sync.Mutex
	loc url.URL
	v   view
}

func newScreen(loc *url.URL) *screen { return &screen{loc: *loc} }

func (s *screen) snapshot() view {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

func (s *screen) Location() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc := s.loc
	return &loc
}

func (s *screen) SetFragment(fragment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc.Fragment = fragment
	s.loc.RawFragment = ""
}

func (s *screen) InputText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Text
}

func (s *screen) set(f func(v *view)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.v)
}

func (s *screen) SetInputText(text string)    { s.set(func(v *view) { v.Text = text }) }
func (s *screen) SetResult(text string)       { s.set(func(v *view) { v.Result = text }) }
func (s *screen) SetShare(address string)     { s.set(func(v *view) { v.Share = address }) }
func (s *screen) ShowTypeset(markup string)   { s.set(func(v *view) { v.Typeset = markup }) }
func (s *screen) HideTypeset()                { s.set(func(v *view) { v.Typeset = "" }) }
func (s *screen) SetModeSelector(m mode.Mode) { s.set(func(v *view) { v.Mode = m }) }
func (s *screen) SetAutoEval(auto bool)       { s.set(func(v *view) { v.Auto = auto }) }
func (s *screen) SetTriggerVisible(vis bool)  { s.set(func(v *view) { v.Trigger = vis }) }
func (s *screen) SetTypesetToggle(on bool)    { s.set(func(v *view) { v.TypesetOn = on }) }
func (s *screen) Block(message string)        { s.set(func(v *view) { v.Blocked = message }) }

// A terminal cannot typeset, so it shows the LaTeX source instead.
type latexSource struct{}

func (latexSource) Render(source string, t typeset.Target) { t.ShowTypeset(source) }
