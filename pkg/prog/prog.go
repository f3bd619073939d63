// Package prog supports building testable, composable programs.
//
// The main abstraction of this package is the [Program] interface, which can
// be combined using [Composite]. The smolcalc binary is a composite of the
// subprograms in the pkg/buildinfo, pkg/lsp, pkg/web, pkg/tui and pkg/cli
// packages; each of them handles the flags it registers and passes control to
// the next one otherwise.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"src.smolcalc.dev/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram.
	Run(fds [3]*os.File, args []string) error
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: smolcalc [flags] [expression ...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the [Program]. It returns the exit
// status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet("smolcalc", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	var log string
	var help bool
	fs.StringVar(&log, "log", "", "a file to write debug log to")
	fs.BoolVar(&help, "help", false, "show usage help and quit")

	f := &FlagSet{FlagSet: fs}
	p.RegisterFlags(f)

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if log != "" {
		err = logutil.SetOutputFile(log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	if f.settings != nil {
		if err := f.settings.resolve(fs); err != nil {
			fmt.Fprintln(fds[2], err)
			return 2
		}
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if np := (*nextProgramError)(nil); errors.As(err, &np) {
		// Composite guarantees that the error it returns is not a
		// nextProgramError, so this only happens when running a single
		// program.
		np.cleanup(fds)
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a [Program] made up from other programs. It runs them in
// order, until one returns something other than [ErrNextProgram] or
// [NextProgram]. The cleanup functions of all programs that deferred control
// are run, last first, before Composite returns.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(f *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(f)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	var cleanups []func([3]*os.File)
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i](fds)
		}
	}()
	for _, p := range cp {
		err := p.Run(fds, args)
		if np := (*nextProgramError)(nil); errors.As(err, &np) {
			cleanups = append(cleanups, np.cleanups...)
			continue
		}
		return err
	}
	return errNoSuitableSubprogram
}

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// ErrNextProgram is a special error that may be returned by [Program.Run] that
// is part of a [Composite] program, indicating that the next program should be
// tried.
var ErrNextProgram = NextProgram()

// NextProgram returns a special error that may be returned by [Program.Run]
// that is part of a [Composite] program, indicating that the next program
// should be tried. It can carry cleanup functions that should be run in
// reverse order after the composite program finishes.
func NextProgram(cleanups ...func([3]*os.File)) error {
	return &nextProgramError{cleanups}
}

type nextProgramError struct{ cleanups []func([3]*os.File) }

func (e *nextProgramError) Error() string { return "next program" }

func (e *nextProgramError) cleanup(fds [3]*os.File) {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i](fds)
	}
}

// BadUsage returns a special error that may be returned by [Program.Run]. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by [Program.Run]. It
// causes the main function to exit with the given code without printing any
// error messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
