// Package lsp implements a language server for smolcalc expression files.
//
// Every line of an expression file is an expression, evaluated on its own.
// Lines starting with "#" are comments; a "#mode <token>" comment switches the
// mode for the lines after it. Evaluation failures are published as
// diagnostics, and hovering over a line shows its result.
package lsp

import (
	"context"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
)

var logger = logutil.GetLogger("[lsp] ")

// Program is the LSP subprogram.
type Program struct {
	// Registry is used for evaluation. If nil, mode.Builtin() is used.
	Registry *mode.Registry

	run      bool
	settings *prog.Settings
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "lsp", false, "run language server instead of evaluating")
	p.settings = fs.Settings()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	registry := p.Registry
	if registry == nil {
		registry = mode.Builtin()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(registry, p.settings.Mode)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	<-conn.DisconnectNotify()
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
