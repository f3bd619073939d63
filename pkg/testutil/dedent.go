package testutil

// This code is a fork of https://github.com/lithammer/dedent, with a fix so
// that raw strings can be written with the first indented line following the
// opening backtick on a new line.

import (
	"regexp"
	"strings"
)

var (
	whitespaceOnly    = regexp.MustCompile("(?m)^[ \t]+$")
	leadingWhitespace = regexp.MustCompile("(?m)(^[ \t]*)(?:[^ \t\n])")
)

// Dedent removes any common leading whitespace from every line in text. An
// initial newline is removed.
func Dedent(text string) string {
	var margin string

	text = strings.TrimPrefix(text, "\n")
	text = whitespaceOnly.ReplaceAllString(text, "")
	indents := leadingWhitespace.FindAllStringSubmatch(text, -1)

	for i, indent := range indents {
		switch {
		case i == 0:
			margin = indent[1]
		case strings.HasPrefix(indent[1], margin):
			// Deeper than the current margin; keep it.
		case strings.HasPrefix(margin, indent[1]):
			margin = indent[1]
		default:
			margin = ""
		}
		if margin == "" {
			break
		}
	}

	if margin != "" {
		text = regexp.MustCompile("(?m)^"+margin).ReplaceAllString(text, "")
	}
	return text
}
