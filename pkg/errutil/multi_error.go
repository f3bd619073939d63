// Package errutil contains utilities for combining errors.
package errutil

import "strings"

// Multi combines multiple errors into one. Nil arguments are dropped; if only
// one error remains it is returned as is, and if none remains Multi returns
// nil.
//
// Nested results of Multi are flattened, so
// Multi(Multi(err1, err2), err3) is the same as Multi(err1, err2, err3).
// The combined error supports errors.Is and errors.As on any of its parts.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if multi, ok := err.(multiError); ok {
			nonNil = append(nonNil, multi...)
		} else if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, e := range me {
		msgs[i] = e.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }
