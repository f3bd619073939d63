package diag

import (
	"fmt"
	"io"
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError shows an error. It uses the Show method if the error
// implements Shower, and uses Complain to print the error message otherwise.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", messageStart, msg, messageEnd)
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}

// SetColor turns the escape sequences used by Show and Complain on or off.
// Programs call it once at startup, depending on whether the output is a
// terminal.
func SetColor(on bool) {
	if on {
		culpritStart, culpritEnd = "\033[1;33m", "\033[m"
		messageStart, messageEnd = "\033[31;1m", "\033[m"
	} else {
		culpritStart, culpritEnd = "", ""
		messageStart, messageEnd = "", ""
	}
}
