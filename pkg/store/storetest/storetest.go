// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/store/storedefs"
)

var (
	entries = []storedefs.Entry{
		{Seq: 1, Mode: mode.Rational, Text: "1/3+1/6"},
		{Seq: 2, Mode: mode.Float32, Text: "1/3"},
		{Seq: 3, Mode: mode.ComplexRational, Text: "i^2"},
		{Seq: 4, Mode: mode.Rational, Text: "1+\n1"},
	}
	// Sequence number past the last entry.
	end = len(entries) + 1
)

// TestHistory tests the evaluation history functionality of a Store.
func TestHistory(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextSeq() -> %v, %v, want 1, nil", startSeq, err)
	}
	for i, e := range entries {
		wantSeq := startSeq + i
		seq, err := store.Add(e.Mode, e.Text)
		if seq != wantSeq || err != nil {
			t.Errorf("store.Add(%v, %q) -> %v, %v, want %v, nil", e.Mode, e.Text, seq, err, wantSeq)
		}
		seq, err = store.NextSeq()
		if seq != wantSeq+1 || err != nil {
			t.Errorf("store.NextSeq() -> %v, %v, want %v, nil", seq, err, wantSeq+1)
		}
	}

	last := entries[len(entries)-1]
	seq, err := store.Add(last.Mode, last.Text)
	if seq != last.Seq || err != nil {
		t.Errorf("store.Add(duplicate) -> %v, %v, want %v, nil", seq, err, last.Seq)
	}

	for _, e := range entries {
		got, err := store.Entry(e.Seq)
		if got != e || err != nil {
			t.Errorf("store.Entry(%v) -> %v, %v, want %v, nil", e.Seq, got, err, e)
		}
	}

	got, err := store.Entries(2, end)
	if diff := cmp.Diff(entries[1:], got); diff != "" || err != nil {
		t.Errorf("store.Entries(2, end) -> err %v, diff (-want +got):\n%s", err, diff)
	}

	for _, tc := range []struct {
		from   int
		prefix string
		want   storedefs.Entry
		err    error
	}{
		{1, "1/3", entries[0], nil},
		{2, "1/3", entries[1], nil},
		{3, "1/3", storedefs.Entry{}, storedefs.ErrNoMatchingEntry},
		{1, "", entries[0], nil},
	} {
		got, err := store.Next(tc.from, tc.prefix)
		if got != tc.want || err != tc.err {
			t.Errorf("store.Next(%v, %q) -> %v, %v, want %v, %v", tc.from, tc.prefix, got, err, tc.want, tc.err)
		}
	}

	for _, tc := range []struct {
		upto   int
		prefix string
		want   storedefs.Entry
		err    error
	}{
		{end, "1", entries[3], nil},
		{4, "1", entries[1], nil},
		{2, "1/3", entries[0], nil},
		{1, "", storedefs.Entry{}, storedefs.ErrNoMatchingEntry},
	} {
		got, err := store.Prev(tc.upto, tc.prefix)
		if got != tc.want || err != tc.err {
			t.Errorf("store.Prev(%v, %q) -> %v, %v, want %v, %v", tc.upto, tc.prefix, got, err, tc.want, tc.err)
		}
	}

	if err := store.Del(2); err != nil {
		t.Errorf("store.Del(2) -> %v", err)
	}
	if _, err := store.Entry(2); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.Entry(2) after deletion -> %v, want ErrNoMatchingEntry", err)
	}
	got2, err := store.Prev(3, "1/3")
	if got2 != entries[0] || err != nil {
		t.Errorf("store.Prev(3, \"1/3\") after deletion -> %v, %v", got2, err)
	}
}
