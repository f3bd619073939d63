package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a range of characters in an expression. It is typically used
// for errors that can be associated with a part of the input, like parse
// errors and evaluation errors.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart = "\033[1;33m"
	culpritEnd   = "\033[m"
)

// Show shows the Context as an optional position line, the source and a caret
// line, each prefixed with indent. Ranges that do not fit in the source are
// clamped.
func (c *Context) Show(indent string) string {
	var sb strings.Builder
	if c.Name != "" {
		fmt.Fprintf(&sb, "%s%s, %s\n", indent, c.Name, c.describe())
	}
	sb.WriteString(indent + c.Source + "\n")
	sb.WriteString(indent + caretLine(c.Source, c.Ranging, culpritStart, culpritEnd))
	return sb.String()
}

func (c *Context) describe() string {
	r := c.Clamp(utf8.RuneCountInString(c.Source))
	if r.To-r.From <= 1 {
		return fmt.Sprintf("column %d", r.From+1)
	}
	return fmt.Sprintf("columns %d-%d", r.From+1, r.To)
}
