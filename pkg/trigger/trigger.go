// Package trigger decides when an evaluation runs.
//
// In Auto mode every edit evaluates; in Manual mode only the activation key
// or the explicit trigger control does. Mode changes and navigations always
// evaluate. The mode only changes on an explicit toggle.
package trigger

// Mode is the trigger mode.
type Mode int

// Trigger modes. The zero value is Auto.
const (
	Auto Mode = iota
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto"
}

// ActivationKey is the key that triggers evaluation in Manual mode.
const ActivationKey = "Enter"

// Controller holds the trigger mode. The zero value is a Controller in Auto
// mode.
type Controller struct {
	mode Mode
}

// New returns a Controller in Auto mode if auto is true, and in Manual mode
// otherwise.
func New(auto bool) *Controller {
	c := &Controller{}
	c.SetAuto(auto)
	return c
}

// Mode returns the current trigger mode.
func (c *Controller) Mode() Mode { return c.mode }

// Toggle switches between Auto and Manual and returns the new mode.
func (c *Controller) Toggle() Mode {
	if c.mode == Auto {
		c.mode = Manual
	} else {
		c.mode = Auto
	}
	return c.mode
}

// SetAuto sets the mode to Auto if auto is true, and to Manual otherwise.
func (c *Controller) SetAuto(auto bool) {
	if auto {
		c.mode = Auto
	} else {
		c.mode = Manual
	}
}

// OnEdit reports whether an edit of the input text should evaluate.
func (c *Controller) OnEdit() bool { return c.mode == Auto }

// OnKey reports whether a key pressed in the input should evaluate.
func (c *Controller) OnKey(key string) bool {
	return c.mode == Manual && key == ActivationKey
}

// OnActivate reports whether engaging the trigger control should evaluate.
// The control is only visible in Manual mode, but it always evaluates.
func (c *Controller) OnActivate() bool { return true }

// OnModeChange reports whether a mode change or navigation should evaluate.
func (c *Controller) OnModeChange() bool { return true }

// TriggerVisible reports whether the trigger control should be shown.
func (c *Controller) TriggerVisible() bool { return c.mode == Manual }
