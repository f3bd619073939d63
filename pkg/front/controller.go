package front

import (
	"context"
	"fmt"
	"sync"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/share"
	"src.smolcalc.dev/pkg/trigger"
	"src.smolcalc.dev/pkg/typeset"
)

// Page is the full set of surfaces a Controller drives.
type Page interface {
	Surfaces
	// SetInputText replaces the input text.
	SetInputText(text string)
	// SetModeSelector shows m as the selected mode.
	SetModeSelector(m mode.Mode)
	// SetAutoEval shows the state of the auto-evaluation toggle.
	SetAutoEval(auto bool)
	// SetTriggerVisible shows or hides the manual evaluation trigger.
	SetTriggerVisible(visible bool)
	// SetTypesetToggle shows the state of the typesetting toggle.
	SetTypesetToggle(on bool)
	// Block shows a message that blocks all interaction.
	Block(message string)
}

// Options configure a Controller.
type Options struct {
	// Manual starts the controller in manual trigger mode.
	Manual bool
	// Loader acquires the typesetter if the address enables typesetting.
	Loader typeset.Loader
}

// Controller reacts to user events on a page. All methods are safe to call
// from multiple goroutines; events are handled one at a time.
type Controller struct {
	nav     Navigation
	page    Page
	loader  typeset.Loader
	trigger *trigger.Controller
	orch    Orchestrator

	mu    sync.Mutex
	ready bool
}

// NewController creates a Controller. It does nothing until Start is called.
func NewController(registry *mode.Registry, nav Navigation, page Page, opts Options) *Controller {
	return &Controller{
		nav:     nav,
		page:    page,
		loader:  opts.Loader,
		trigger: trigger.New(!opts.Manual),
		orch:    Orchestrator{Registry: registry},
	}
}

// Start initializes the page from the address, waits for load to return and
// runs the first evaluation. Events arriving before that are dropped.
//
// If load fails, the page is blocked and the error is returned. A nil load is
// treated as already loaded.
func (c *Controller) Start(ctx context.Context, load func(context.Context) error) error {
	c.mu.Lock()
	loc := c.nav.Location()
	query := share.ParseQuery(loc.RawQuery)
	c.showTrigger()
	c.page.SetTypesetToggle(query.Typeset)
	c.page.SetModeSelector(share.CurrentMode(loc))
	c.restoreText()
	c.mu.Unlock()

	if load != nil {
		if err := load(ctx); err != nil {
			c.page.Block("The calculator engine failed to load: " + err.Error())
			return fmt.Errorf("load engine: %w", err)
		}
	}
	typesetter := c.loader.Load(ctx, query.Typeset)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.orch.Typesetter = typesetter
	c.ready = true
	return c.evaluate()
}

// Edit handles an edit of the input text.
func (c *Controller) Edit() error {
	return c.maybeEvaluate(c.trigger.OnEdit)
}

// Key handles a key pressed in the input.
func (c *Controller) Key(key string) error {
	return c.maybeEvaluate(func() bool { return c.trigger.OnKey(key) })
}

// Activate handles the manual evaluation trigger.
func (c *Controller) Activate() error {
	return c.maybeEvaluate(c.trigger.OnActivate)
}

// SelectMode handles the mode selector. It points the address at m and
// evaluates. The new fragment always carries the input text, so it overrides
// a legacy mode parameter even for the default mode, whose token is empty.
func (c *Controller) SelectMode(m mode.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil
	}
	c.nav.SetFragment(share.Encode(share.State{Mode: m, Text: c.page.InputText()}))
	c.page.SetModeSelector(m)
	if !c.trigger.OnModeChange() {
		return nil
	}
	return c.evaluate()
}

// Navigated handles a change of the address. A text payload in the new
// fragment replaces the input text.
func (c *Controller) Navigated() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil
	}
	c.restoreText()
	c.page.SetModeSelector(share.CurrentMode(c.nav.Location()))
	if !c.trigger.OnModeChange() {
		return nil
	}
	return c.evaluate()
}

// ToggleAuto switches between automatic and manual evaluation.
func (c *Controller) ToggleAuto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trigger.Toggle()
	c.showTrigger()
}

// ToggleTypeset returns the address to reload in order to switch typesetting
// on or off. The current mode and input text are kept in its fragment.
// A loaded typesetter is never swapped in place.
func (c *Controller) ToggleTypeset() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc := *c.nav.Location()
	query := share.ParseQuery(loc.RawQuery)
	query.Typeset = !query.Typeset
	loc.RawQuery = query.Encode()
	return share.URL(&loc, share.State{
		Mode: share.CurrentMode(c.nav.Location()),
		Text: c.page.InputText(),
	})
}

// Mode returns the mode selected by the current address.
func (c *Controller) Mode() mode.Mode {
	return share.CurrentMode(c.nav.Location())
}

// Auto reports whether the controller evaluates on every edit.
func (c *Controller) Auto() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trigger.Mode() == trigger.Auto
}

func (c *Controller) maybeEvaluate(decide func() bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready || !decide() {
		return nil
	}
	return c.evaluate()
}

func (c *Controller) evaluate() error {
	return c.orch.Evaluate(c.nav, c.page)
}

func (c *Controller) showTrigger() {
	c.page.SetAutoEval(c.trigger.Mode() == trigger.Auto)
	c.page.SetTriggerVisible(c.trigger.TriggerVisible())
}

// Replaces the input text with the payload of the fragment, if there is a
// well-formed one.
func (c *Controller) restoreText() {
	state, hasText, err := share.Decode(c.nav.Location().Fragment)
	if err != nil {
		logger.Printf("ignoring fragment: %v", err)
		return
	}
	if hasText {
		c.page.SetInputText(state.Text)
	}
}
