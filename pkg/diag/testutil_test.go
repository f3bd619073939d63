package diag

import (
	"testing"

	"src.smolcalc.dev/pkg/testutil"
)

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

func setMessageMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &messageStart, start)
	testutil.Set(t, &messageEnd, end)
}

func lines(l ...string) string {
	s := ""
	for i, line := range l {
		if i > 0 {
			s += "\n"
		}
		s += line
	}
	return s
}
