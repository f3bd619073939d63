// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"

	"src.smolcalc.dev/pkg/mode"
)

// ErrNoMatchingEntry is the error returned when a query for a history entry
// completes with no result.
var ErrNoMatchingEntry = errors.New("no matching history entry")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextSeq() (int, error)
	Add(mode mode.Mode, text string) (int, error)
	Del(seq int) error
	Entry(seq int) (Entry, error)
	Entries(from, upto int) ([]Entry, error)
	Next(from int, prefix string) (Entry, error)
	Prev(upto int, prefix string) (Entry, error)
}

// Entry is an entry in the evaluation history.
type Entry struct {
	Seq  int
	Mode mode.Mode
	Text string
}
