// Package tui is the interactive terminal subprogram of smolcalc.
//
// The terminal is driven through the same front.Controller as the browser
// page. Controller operations run as bubbletea commands, and their results
// are shown only if no later operation has been issued since.
package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"src.smolcalc.dev/pkg/errutil"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
	"src.smolcalc.dev/pkg/share"
	"src.smolcalc.dev/pkg/store"
	"src.smolcalc.dev/pkg/store/storedefs"
	"src.smolcalc.dev/pkg/sys"
)

var logger = logutil.GetLogger("[tui] ")

// ErrNotTerminal is returned when -tui is used without a terminal.
var ErrNotTerminal = errors.New("-tui requires a terminal")

// Program is the terminal subprogram.
type Program struct {
	// Registry is used for evaluation. If nil, mode.Builtin() is used.
	Registry *mode.Registry

	run      bool
	settings *prog.Settings
}

// RegisterFlags registers -tui.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "tui", false, "run the interactive terminal front-end")
	p.settings = fs.Settings()
}

// Run runs the terminal front-end until the user quits. Arguments, if any,
// are joined into the initial input.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[1].Fd()) {
		return ErrNotTerminal
	}
	registry := p.Registry
	if registry == nil {
		registry = mode.Builtin()
	}
	var history store.DBStore
	var st storedefs.Store
	if p.settings.DB != "" {
		var err error
		history, err = store.NewStore(p.settings.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be available.")
		} else {
			st = history
		}
	}

	m := newModel(registry, location(p.settings, strings.Join(args, " ")), st, p.settings.Manual)
	_, err := tea.NewProgram(m,
		tea.WithInput(fds[0]), tea.WithOutput(fds[1]), tea.WithAltScreen()).Run()
	err = errutil.Multi(err, m.err)
	if history != nil {
		err = errutil.Multi(err, history.Close())
	}
	return err
}

// Returns the initial address of the terminal front-end. Share addresses
// point at the web front-end, so that they can be opened in a browser served
// by -web.
func location(s *prog.Settings, text string) *url.URL {
	loc := &url.URL{Scheme: "http", Host: s.Config.Web.Addr, Path: "/"}
	if s.Typeset {
		loc.RawQuery = share.Query{Typeset: true}.Encode()
	}
	if text == "" {
		loc.Fragment = s.Mode.Token()
	} else {
		loc.Fragment = share.Encode(share.State{Mode: s.Mode, Text: text})
	}
	return loc
}
