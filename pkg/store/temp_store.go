package store

import (
	"path/filepath"
	"testing"
)

// MustTempStore returns a Store backed by a temporary file for testing. The
// Store and its file are cleaned up at the end of the test.
func MustTempStore(t testing.TB) DBStore {
	st, err := NewStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open temp store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
