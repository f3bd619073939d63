package diag

import (
	"strings"
	"unicode/utf8"
)

// Annotate formats an evaluation failure as three lines: a literal "Error:"
// header, the text itself, and a caret line pointing at the failing span.
//
// The span is clamped into the text first. The caret line always has at least
// one caret, so zero-width spans are still visible.
func Annotate(text string, r Ranging) string {
	return "Error:\n" + text + "\n" + caretLine(text, r, "", "")
}

// Returns r.From spaces followed by max(1, To-From) carets, with the carets
// wrapped in the given style sequences.
func caretLine(text string, r Ranging, begin, end string) string {
	r = r.Clamp(utf8.RuneCountInString(text))
	width := r.To - r.From
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", r.From) + begin + strings.Repeat("^", width) + end
}
