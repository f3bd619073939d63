// Package web is the subprogram serving the browser front-end of smolcalc and
// its evaluation API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"time"

	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
)

var logger = logutil.GetLogger("[web] ")

// Program is the web subprogram.
type Program struct {
	run      bool
	addr     string
	settings *prog.Settings
}

// RegisterFlags registers -web and -addr.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "web", false, "serve the web front-end instead of evaluating")
	fs.StringVar(&p.addr, "addr", "", "address for -web to listen on; defaults to the configured web.addr")
	p.settings = fs.Settings()
}

// Run serves until interrupted.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -web")
	}
	web := p.settings.Config.Web
	addr := p.addr
	if addr == "" {
		addr = web.Addr
	}
	var assets fs.FS
	if web.Assets != "" {
		assets = os.DirFS(web.Assets)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(mode.Builtin(), assets),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	fmt.Fprintf(fds[2], "Serving on http://%s\n", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if srvErr := <-errCh; !errors.Is(srvErr, http.ErrServerClosed) && err == nil {
			err = srvErr
		}
		return err
	}
}
