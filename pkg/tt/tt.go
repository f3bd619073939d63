// Package tt supports table-driven tests with little boilerplate.
//
// A typical use looks like:
//
//	tt.Test(t, tt.Fn("Annotate", diag.Annotate), tt.Table{
//		tt.Args("(", diag.Ranging{From: 0, To: 1}).Rets("Error:\n(\n^"),
//	})
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and offers
// setters that augment and return itself; those calls can be chained like
// Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. The arguments may implement the
// Matcher interface, in which case its Match method is called with the actual
// return value. Otherwise, cmp.Equal is used to determine matches.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnDescriptor describes a function to test.
type FnDescriptor struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
}

// Fn makes a new FnDescriptor with the given function name and body.
func Fn(name string, body any) *FnDescriptor {
	return &FnDescriptor{name: name, body: body}
}

// ArgsFmt sets the string for formatting arguments in test error messages, and
// returns fn itself.
func (fn *FnDescriptor) ArgsFmt(s string) *FnDescriptor {
	fn.argsFmt = s
	return fn
}

// RetsFmt sets the string for formatting return values in test error messages,
// and returns fn itself.
func (fn *FnDescriptor) RetsFmt(s string) *FnDescriptor {
	fn.retsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases.
func Test(t T, fn *FnDescriptor, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var args string
			if fn.argsFmt == "" {
				args = sprintCommaDelimited(test.args...)
			} else {
				args = fmt.Sprintf(fn.argsFmt, test.args...)
			}
			var diff string
			if fn.retsFmt == "" {
				diff = cmp.Diff(retsMatcher, rets, cmp.Exporter(func(reflect.Type) bool { return true }))
			} else {
				diff = fmt.Sprintf("-"+fn.retsFmt+"\n+"+fn.retsFmt, append(retsMatcher, rets...)...)
			}
			t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s", fn.name, args, diff)
		}
	}
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

func match(matchers, actual []any) bool {
	if len(matchers) != len(actual) {
		return false
	}
	for i, matcher := range matchers {
		if m, ok := matcher.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
		} else if !cmp.Equal(matcher, actual[i], cmp.Exporter(func(reflect.Type) bool { return true })) {
			return false
		}
	}
	return true
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value, but this is not what
			// we want. Work around this by taking the ValueOf a pointer to nil
			// and then get the Elem.
			var v any
			argsReflect[i] = reflect.ValueOf(&v).Elem()
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}

func sprintCommaDelimited(args ...any) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, arg)
	}
	return b.String()
}
