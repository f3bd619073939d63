// Package progtest contains utilities for testing subprograms in pkg/prog.
package progtest

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"src.smolcalc.dev/pkg/env"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/prog"
	"src.smolcalc.dev/pkg/testutil"
)

// Case is a test case that can be used in [Test].
type Case struct {
	args   []string
	stdin  string
	tty    bool
	checks []check
}

type check struct {
	name  string
	match func(r *result) (bool, string)
}

type result struct {
	exit           int
	stdout, stderr string
}

// ThatSmolcalc returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "smolcalc -bad-flag" exits with 2
// can be written as:
//
//	ThatSmolcalc("-bad-flag").ExitsWith(2)
func ThatSmolcalc(args ...string) Case {
	return Case{args: append([]string{"smolcalc"}, args...)}
}

// WithStdin returns an altered copy of c that feeds the given text to the
// program's stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// OnTTY returns an altered copy of c that connects the program's stdout to a
// pseudo-terminal. Line endings written to it are normalized to "\n".
func (c Case) OnTTY() Case {
	c.tty = true
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatSmolcalc("-version").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered copy of c that expects the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	return c.with(check{"exit code", func(r *result) (bool, string) {
		return r.exit == code, "got " + strconv.Itoa(r.exit)
	}})
}

// WritesStdout returns an altered copy of c that expects the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	return c.with(check{"stdout " + strconv.Quote(s), func(r *result) (bool, string) {
		return r.stdout == s, "got " + strconv.Quote(r.stdout)
	}})
}

// WritesStdoutContaining returns an altered copy of c that expects the program
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	return c.with(check{"stdout containing " + strconv.Quote(s), func(r *result) (bool, string) {
		return strings.Contains(r.stdout, s), "got " + strconv.Quote(r.stdout)
	}})
}

// WritesStderr returns an altered copy of c that expects the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	return c.with(check{"stderr " + strconv.Quote(s), func(r *result) (bool, string) {
		return r.stderr == s, "got " + strconv.Quote(r.stderr)
	}})
}

// WritesStderrContaining returns an altered copy of c that expects the program
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	return c.with(check{"stderr containing " + strconv.Quote(s), func(r *result) (bool, string) {
		return strings.Contains(r.stderr, s), "got " + strconv.Quote(r.stderr)
	}})
}

func (c Case) with(ch check) Case {
	c.checks = append(append([]check(nil), c.checks...), ch)
	return c
}

// Test runs test cases against a given program.
//
// Unless a case says otherwise, it expects the program to exit with 0 and
// write nothing to stdout or stderr. The configuration file is redirected to
// a path that does not exist, so that the defaults apply.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	testutil.Setenv(t, env.SMOLCALC_CONFIG, filepath.Join(t.TempDir(), "no-config.yaml"))
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c)
			checks := c.checks
			if !hasCheck(checks, "exit code") {
				checks = append(checks, Case{}.ExitsWith(0).checks...)
			}
			if !hasCheck(checks, "stdout") {
				checks = append(checks, Case{}.WritesStdout("").checks...)
			}
			if !hasCheck(checks, "stderr") {
				checks = append(checks, Case{}.WritesStderr("").checks...)
			}
			for _, ch := range checks {
				if ok, got := ch.match(r); !ok {
					t.Errorf("want %s, %s", ch.name, got)
				}
			}
		})
	}
}

func hasCheck(checks []check, prefix string) bool {
	for _, ch := range checks {
		if strings.HasPrefix(ch.name, prefix) {
			return true
		}
	}
	return false
}

func run(t *testing.T, p prog.Program, c Case) *result {
	t.Helper()
	r0, w0 := must.Pipe()
	go func() {
		io.WriteString(w0, c.stdin)
		w0.Close()
	}()
	defer r0.Close()

	var w1 *os.File
	var stdout <-chan string
	if c.tty {
		w1, stdout = captureTTY(t)
	} else {
		var r1 *os.File
		r1, w1 = must.Pipe()
		stdout = capture(r1)
	}
	r2, w2 := must.Pipe()
	stderr := capture(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, c.args, p)
	w1.Close()
	w2.Close()
	return &result{exit, <-stdout, <-stderr}
}

// Reads r until EOF concurrently, so that the program never blocks on a full
// pipe.
func capture(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
