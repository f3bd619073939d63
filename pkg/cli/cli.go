// Package cli is the command-line subprogram of smolcalc. It evaluates the
// expression given as arguments, or every line of stdin when there are no
// arguments.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"src.smolcalc.dev/pkg/diag"
	"src.smolcalc.dev/pkg/env"
	"src.smolcalc.dev/pkg/errutil"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
	"src.smolcalc.dev/pkg/store"
	"src.smolcalc.dev/pkg/store/storedefs"
	"src.smolcalc.dev/pkg/sys"
)

var logger = logutil.GetLogger("[cli] ")

// Program is the command-line subprogram. It is always applicable, so it
// should come last in a composite program.
type Program struct {
	// Registry is used for evaluation. If nil, mode.Builtin() is used.
	Registry *mode.Registry

	settings *prog.Settings
}

// RegisterFlags registers the shared settings flags.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.settings = fs.Settings()
}

// Run evaluates the arguments joined by spaces, or each line of stdin if
// there are no arguments. It exits with 2 if any evaluation fails.
func (p *Program) Run(fds [3]*os.File, args []string) error {
	diag.SetColor(sys.IsATTY(fds[2].Fd()) && os.Getenv(env.NO_COLOR) == "")
	defer diag.SetColor(true)

	e := &evaluator{
		registry: p.Registry,
		mode:     p.settings.Mode,
		typeset:  p.settings.Typeset,
		out:      fds[1],
		errOut:   fds[2],
		bold:     sys.IsATTY(fds[1].Fd()) && os.Getenv(env.NO_COLOR) == "",
	}
	if e.registry == nil {
		e.registry = mode.Builtin()
	}
	if _, cols := sys.WinSize(fds[2]); cols > 0 {
		e.width = cols
	}
	var history store.DBStore
	if p.settings.DB != "" {
		st, err := store.NewStore(p.settings.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		} else {
			history = st
			e.history = st
		}
	}

	var failed bool
	var err error
	if len(args) > 0 {
		failed, err = e.eval("", strings.Join(args, " "))
	} else {
		failed, err = e.evalLines(fds[0])
	}
	if history != nil {
		err = errutil.Multi(err, history.Close())
	}
	if err != nil {
		return err
	}
	if failed {
		return prog.Exit(2)
	}
	return nil
}

type evaluator struct {
	registry *mode.Registry
	mode     mode.Mode
	typeset  bool
	history  storedefs.Store
	out      io.Writer
	errOut   io.Writer
	bold     bool
	// Width of the error output in columns, or 0 if unknown.
	width int
}

func (e *evaluator) evalLines(r io.Reader) (failed bool, err error) {
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineFailed, err := e.eval(fmt.Sprintf("line %d", lineno), line)
		if err != nil {
			return failed, err
		}
		failed = failed || lineFailed
	}
	return failed, scanner.Err()
}

// Evaluates one expression and prints its result or error. The name, if not
// empty, identifies the expression in error messages.
func (e *evaluator) eval(name, text string) (failed bool, err error) {
	outcome, err := e.registry.Get(e.mode)(text)
	if err != nil {
		return false, err
	}
	if e.history != nil {
		if _, err := e.history.Add(e.mode, text); err != nil {
			logger.Printf("add %q to history: %v", text, err)
		}
	}
	switch outcome := outcome.(type) {
	case mode.Success:
		if e.typeset && outcome.Typeset != "" {
			fmt.Fprintf(e.out, "%s $%s$\n", e.style("Input interpretation:"), outcome.Typeset)
		}
		fmt.Fprintln(e.out, "=", outcome.Output)
		return false, nil
	case mode.Failure:
		source, span := fitWidth(text, outcome.Span, e.width-len(indent))
		diag.ShowError(e.errOut, &diag.Error{
			Type:    "error",
			Message: outcome.Message,
			Context: *diag.NewContext(name, source, span),
		})
		return true, nil
	default:
		return false, fmt.Errorf("unexpected outcome type %T", outcome)
	}
}

func (e *evaluator) style(s string) string {
	if !e.bold {
		return s
	}
	return "\033[1m" + s + "\033[m"
}

// Indentation of the source line in error reports.
const indent = "  "

const ellipsis = "…"

// Cuts text to at most width runes around the start of r, marking cut ends
// with an ellipsis, and returns the cut text with r adjusted to it. Texts that
// fit, and non-positive widths, are returned unchanged.
func fitWidth(text string, r diag.Ranging, width int) (string, diag.Ranging) {
	runes := []rune(text)
	n := len(runes)
	if width <= 0 || n <= width {
		return text, r
	}
	r = r.Clamp(n)
	start := r.From - width/3
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > n {
		end, start = n, n-width
	}
	cut := string(runes[start:end])
	if start > 0 {
		_, size := utf8.DecodeRuneInString(cut)
		cut = ellipsis + cut[size:]
	}
	if end < n {
		_, size := utf8.DecodeLastRuneInString(cut)
		cut = cut[:len(cut)-size] + ellipsis
	}
	shifted := diag.Ranging{From: r.From - start, To: r.To - start}
	return cut, shifted.Clamp(end - start)
}
