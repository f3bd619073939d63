//go:build unix

package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
)

// Returns the terminal side of a pseudo-terminal, and a channel that receives
// everything written to it once it is closed.
func captureTTY(t *testing.T) (*os.File, <-chan string) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("no pty: %v", err)
	}
	pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80})
	ch := make(chan string, 1)
	go func() {
		// Reading the controlling side fails with EIO once the terminal side
		// is closed and drained.
		b, _ := io.ReadAll(ptm)
		ptm.Close()
		ch <- strings.ReplaceAll(string(b), "\r\n", "\n")
	}()
	return pts, ch
}
