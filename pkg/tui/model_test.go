package tui

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/store"
	"src.smolcalc.dev/pkg/store/storedefs"
)

const base = "http://localhost:3171/"

func start(t *testing.T, address string, history storedefs.Store, manual bool) *model {
	t.Helper()
	m := newModel(mode.Builtin(), must.OK1(url.Parse(address)), history, manual)
	feed(m, m.Init()())
	if !m.started {
		t.Fatal("model not started")
	}
	return m
}

// Delivers msgs to m, followed by everything their commands produce.
func feed(m *model, msgs ...tea.Msg) {
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		if batch, ok := msg.(tea.BatchMsg); ok {
			msgs = append(msgs, collect(tea.Batch(batch...))...)
			continue
		}
		_, cmd := m.Update(msg)
		msgs = append(msgs, collect(cmd)...)
	}
}

// Runs cmd without delivering what it produces.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, cmd := range batch {
			msgs = append(msgs, collect(cmd)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	ctrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
	ctrlE = tea.KeyMsg{Type: tea.KeyCtrlE}
)

func fragment(token, text string) string {
	return "#" + token + "-" + base64.StdEncoding.EncodeToString([]byte(text))
}

func TestModel_StartsFromAddress(t *testing.T) {
	m := start(t, base+fragment("f64", "1/3"), nil, false)

	if got := m.input.Value(); got != "1/3" {
		t.Errorf("input = %q, want %q", got, "1/3")
	}
	if m.mode != mode.Float64 {
		t.Errorf("mode = %v, want float64", m.mode)
	}
	if m.v.Result != "0.3333333333333" {
		t.Errorf("result = %q", m.v.Result)
	}
	if want := base + fragment("f64", "1/3"); m.v.Share != want {
		t.Errorf("share = %q, want %q", m.v.Share, want)
	}
}

func TestModel_EvaluatesEveryEditInAutoMode(t *testing.T) {
	m := start(t, base, nil, false)
	feed(m, runes("1+"))
	if !strings.HasPrefix(m.v.Result, "Error:\n") {
		t.Errorf("result = %q, want an error diagram", m.v.Result)
	}
	feed(m, runes("2"))
	if m.v.Result != "3" {
		t.Errorf("result = %q, want 3", m.v.Result)
	}
	if want := base + fragment("", "1+2"); m.v.Share != want {
		t.Errorf("share = %q, want %q", m.v.Share, want)
	}
}

func TestModel_ManualMode(t *testing.T) {
	m := start(t, base, nil, true)
	if m.v.Auto || !m.v.Trigger {
		t.Errorf("auto, trigger = %v, %v; want false, true", m.v.Auto, m.v.Trigger)
	}
	feed(m, runes("1+2"))
	if m.v.Result == "3" {
		t.Errorf("edit evaluated in manual mode")
	}
	feed(m, enter)
	if m.v.Result != "3" {
		t.Errorf("result after enter = %q, want 3", m.v.Result)
	}
	feed(m, runes("*3"), ctrlE)
	if m.v.Result != "7" {
		t.Errorf("result after ctrl+e = %q, want 7", m.v.Result)
	}
}

func TestModel_ToggleAuto(t *testing.T) {
	m := start(t, base, nil, false)
	feed(m, ctrlT)
	if m.v.Auto || !m.v.Trigger {
		t.Errorf("auto, trigger = %v, %v; want false, true", m.v.Auto, m.v.Trigger)
	}
	feed(m, runes("4"))
	if m.v.Result == "4" {
		t.Errorf("edit evaluated after switching to manual")
	}
	feed(m, ctrlT, runes("2"))
	if m.v.Result != "42" {
		t.Errorf("result = %q, want 42", m.v.Result)
	}
}

func TestModel_CyclesModes(t *testing.T) {
	m := start(t, base+fragment("", "1/3"), nil, false)
	feed(m, tab)
	if m.mode != mode.Float32 || m.v.Result != "0.333333" {
		t.Errorf("mode, result = %v, %q", m.mode, m.v.Result)
	}
	if got := "#" + m.screen.Location().Fragment; got != fragment("f32", "1/3") {
		t.Errorf("fragment = %q, want %q", got, fragment("f32", "1/3"))
	}
	feed(m, tab)
	if m.mode != mode.Float64 || m.v.Result != "0.3333333333333" {
		t.Errorf("mode, result = %v, %q", m.mode, m.v.Result)
	}
}

func TestModel_DropsSupersededResults(t *testing.T) {
	m := start(t, base, nil, false)
	first := collect(m.key(runes("1")))
	second := collect(m.key(runes("2")))
	feed(m, second...)
	feed(m, first...)
	if m.v.Result != "12" {
		t.Errorf("result = %q, want 12", m.v.Result)
	}
}

func TestModel_ModeChangesApplyInIssueOrder(t *testing.T) {
	m := start(t, base+fragment("", "1/3"), nil, false)
	first := m.key(tab)
	second := m.key(tab)
	feed(m, collect(second)...)
	feed(m, collect(first)...)
	if m.mode != mode.Float64 || m.ctrl.Mode() != mode.Float64 {
		t.Errorf("model mode = %v, controller mode = %v; want float64", m.mode, m.ctrl.Mode())
	}
	if m.v.Result != "0.3333333333333" {
		t.Errorf("result = %q", m.v.Result)
	}
	if want := base + fragment("f64", "1/3"); m.v.Share != want {
		t.Errorf("share = %q, want %q", m.v.Share, want)
	}

	feed(m, runes("+1"))
	if m.v.Result != "1.3333333333333" {
		t.Errorf("result after edit = %q, want it evaluated in float64", m.v.Result)
	}
}

func TestModel_History(t *testing.T) {
	st := store.MustTempStore(t)
	must.OK1(st.Add(mode.Float32, "1/3"))

	m := start(t, base, st, false)
	feed(m, runes("1+2"), enter, runes("*3"))
	if m.v.Result != "7" {
		t.Fatalf("result = %q, want 7", m.v.Result)
	}

	feed(m, up)
	if m.input.Value() != "1+2" || m.v.Result != "3" {
		t.Errorf("after ↑: input, result = %q, %q", m.input.Value(), m.v.Result)
	}
	feed(m, up)
	if m.input.Value() != "1/3" || m.mode != mode.Float32 || m.v.Result != "0.333333" {
		t.Errorf("after ↑↑: input, mode, result = %q, %v, %q",
			m.input.Value(), m.mode, m.v.Result)
	}
	feed(m, up)
	if m.input.Value() != "1/3" {
		t.Errorf("↑ past the oldest entry changed input to %q", m.input.Value())
	}
	feed(m, down, down)
	if m.input.Value() != "" {
		t.Errorf("↓ past the newest entry left input %q", m.input.Value())
	}

	entries := must.OK1(st.Entries(0, 100))
	if len(entries) != 2 || entries[1].Text != "1+2" || entries[1].Mode != mode.Rational {
		t.Errorf("entries = %v", entries)
	}
}

func TestModel_View(t *testing.T) {
	m := start(t, base+"?typeset"+fragment("", "1/2"), nil, false)
	view := m.View()
	for _, want := range []string{
		"rational",
		"= 1/2",
		`$\frac{1}{2}$`,
		"Share: " + base + "?typeset" + fragment("", "1/2"),
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view doesn't contain %q:\n%s", want, view)
		}
	}
}

func TestModel_Blocked(t *testing.T) {
	m := start(t, base, nil, false)
	m.apply(view{Blocked: "engine failed"})
	if view := m.View(); !strings.Contains(view, "engine failed") {
		t.Errorf("view = %q", view)
	}
	if msgs := collect(m.key(runes("1"))); len(msgs) != 1 || msgs[0] != tea.Quit() {
		t.Errorf("key on a blocked screen produced %v, want quit", msgs)
	}
}
