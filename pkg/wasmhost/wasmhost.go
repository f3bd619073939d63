//go:build js && wasm

// Package wasmhost drives the browser page of smolcalc from WebAssembly.
//
// The page is the one served by the web subprogram, with evaluation done in
// the browser instead of through the evaluation API. Element ids are shared
// with that page.
package wasmhost

import (
	"context"
	"net/url"
	"syscall/js"

	"src.smolcalc.dev/pkg/front"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
)

var logger = logutil.GetLogger("[wasmhost] ")

// Element ids.
const (
	idInput         = "input"
	idResult        = "result"
	idShare         = "share_url"
	idTypeset       = "typeset"
	idModeSelector  = "type_selector"
	idAutoEval      = "auto_eval"
	idTrigger       = "eval_btn"
	idTypesetToggle = "typeset_toggle"
)

// Run attaches a controller to the document and runs the first evaluation.
// The event handlers stay registered after Run returns.
func Run(ctx context.Context, registry *mode.Registry) error {
	doc := js.Global().Get("document")
	p := page{doc}
	nav := navigation{js.Global().Get("location")}
	c := front.NewController(registry, nav, p, front.Options{})

	check := func(err error) {
		if err != nil {
			logger.Println("evaluation failed:", err)
			p.Block("Internal error: " + err.Error())
		}
	}
	on(p.el(idInput), "input", func(js.Value) { check(c.Edit()) })
	on(p.el(idInput), "keydown", func(e js.Value) { check(c.Key(e.Get("key").String())) })
	on(p.el(idTrigger), "click", func(js.Value) { check(c.Activate()) })
	on(p.el(idAutoEval), "change", func(js.Value) { c.ToggleAuto() })
	on(p.el(idModeSelector), "change", func(js.Value) {
		m, _ := mode.Parse(p.el(idModeSelector).Get("value").String())
		check(c.SelectMode(m))
	})
	on(p.el(idTypesetToggle), "change", func(js.Value) {
		// Typesetting is only loaded at startup, so the page is reloaded.
		nav.loc.Set("href", c.ToggleTypeset())
	})
	on(js.Global(), "hashchange", func(js.Value) { check(c.Navigated()) })

	return c.Start(ctx, nil)
}

func on(target js.Value, event string, f func(event js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(_ js.Value, args []js.Value) any {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		f(e)
		return nil
	}))
}

type navigation struct{ loc js.Value }

func (n navigation) Location() *url.URL {
	href := n.loc.Get("href").String()
	u, err := url.Parse(href)
	if err != nil {
		logger.Printf("cannot parse location %q: %v", href, err)
		return &url.URL{}
	}
	return u
}

func (n navigation) SetFragment(fragment string) {
	n.loc.Set("hash", fragment)
}

type page struct{ doc js.Value }

func (p page) el(id string) js.Value { return p.doc.Call("getElementById", id) }

func (p page) InputText() string          { return p.el(idInput).Get("value").String() }
func (p page) SetInputText(text string)   { p.el(idInput).Set("value", text) }
func (p page) SetResult(text string)      { p.el(idResult).Set("textContent", text) }
func (p page) SetShare(address string)    { p.el(idShare).Set("textContent", address) }
func (p page) SetAutoEval(auto bool)      { p.el(idAutoEval).Set("checked", auto) }
func (p page) SetTriggerVisible(vis bool) { p.el(idTrigger).Set("hidden", !vis) }
func (p page) SetTypesetToggle(on bool)   { p.el(idTypesetToggle).Set("checked", on) }

func (p page) SetModeSelector(m mode.Mode) {
	p.el(idModeSelector).Set("value", m.Token())
}

func (p page) ShowTypeset(markup string) {
	t := p.el(idTypeset)
	t.Set("innerHTML", markup)
	t.Set("hidden", false)
}

func (p page) HideTypeset() {
	t := p.el(idTypeset)
	t.Set("innerHTML", "")
	t.Set("hidden", true)
}

func (p page) Block(message string) {
	p.SetResult(message)
	for _, id := range []string{idInput, idModeSelector, idAutoEval, idTrigger, idTypesetToggle} {
		p.el(id).Set("disabled", true)
	}
}
