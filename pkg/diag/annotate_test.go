package diag

import (
	"strings"
	"testing"

	"src.smolcalc.dev/pkg/tt"
)

func TestAnnotate(t *testing.T) {
	tt.Test(t, tt.Fn("Annotate", Annotate), tt.Table{
		// Unmatched bracket.
		tt.Args("(", Ranging{0, 1}).Rets("Error:\n(\n^"),
		tt.Args("1+2)", Ranging{3, 4}).Rets("Error:\n1+2)\n   ^"),
		tt.Args("1/0+sqrt", Ranging{0, 3}).Rets("Error:\n1/0+sqrt\n^^^"),
		// Zero-width spans still get one caret.
		tt.Args("1+", Ranging{2, 2}).Rets("Error:\n1+\n  ^"),
		tt.Args("", Ranging{0, 0}).Rets("Error:\n\n^"),
		// Out-of-range spans are clamped.
		tt.Args("1+", Ranging{1, 10}).Rets("Error:\n1+\n ^"),
		tt.Args("abc", Ranging{-3, 1}).Rets("Error:\nabc\n^"),
		tt.Args("abc", Ranging{2, 1}).Rets("Error:\nabc\n  ^"),
		// Spans index characters, not bytes.
		tt.Args("π÷0", Ranging{1, 3}).Rets("Error:\nπ÷0\n ^^"),
	})
}

func TestAnnotate_CaretLineShape(t *testing.T) {
	text := "12345678"
	for from := 0; from <= len(text); from++ {
		for to := from; to <= len(text); to++ {
			got := Annotate(text, Ranging{from, to})
			caret := got[strings.LastIndex(got, "\n")+1:]
			width := to - from
			if width < 1 {
				width = 1
			}
			want := strings.Repeat(" ", from) + strings.Repeat("^", width)
			if caret != want {
				t.Errorf("Annotate(%q, %d-%d) caret line = %q, want %q",
					text, from, to, caret, want)
			}
		}
	}
}
