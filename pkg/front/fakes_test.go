package front

import (
	"net/url"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/share"
)

type fakeNav struct {
	loc       *url.URL
	fragments []string
}

func newNav(address string) *fakeNav {
	return &fakeNav{loc: must.OK1(url.Parse(address))}
}

func (n *fakeNav) Location() *url.URL { return n.loc }

func (n *fakeNav) SetFragment(fragment string) {
	n.fragments = append(n.fragments, fragment)
	n.loc.Fragment = fragment
	n.loc.RawFragment = ""
}

type fakePage struct {
	input   string
	result  string
	share   string
	typeset string
	shown   bool

	selected       mode.Mode
	auto           bool
	triggerVisible bool
	typesetToggle  bool
	blocked        string

	results int
}

func (p *fakePage) InputText() string           { return p.input }
func (p *fakePage) SetResult(text string)       { p.result = text; p.results++ }
func (p *fakePage) SetShare(address string)     { p.share = address }
func (p *fakePage) ShowTypeset(markup string)   { p.typeset, p.shown = markup, true }
func (p *fakePage) HideTypeset()                { p.typeset, p.shown = "", false }
func (p *fakePage) SetInputText(text string)    { p.input = text }
func (p *fakePage) SetModeSelector(m mode.Mode) { p.selected = m }
func (p *fakePage) SetAutoEval(auto bool)       { p.auto = auto }
func (p *fakePage) SetTriggerVisible(v bool)    { p.triggerVisible = v }
func (p *fakePage) SetTypesetToggle(on bool)    { p.typesetToggle = on }
func (p *fakePage) Block(message string)        { p.blocked = message }

func base64Of(s string) string {
	return share.Encode(share.State{Text: s})[1:]
}
