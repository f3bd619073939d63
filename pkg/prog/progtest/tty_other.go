//go:build !unix

package progtest

import (
	"os"
	"testing"
)

func captureTTY(t *testing.T) (*os.File, <-chan string) {
	t.Skip("pseudo-terminals are not supported on this platform")
	return nil, nil
}
