package share

import (
	"net/url"
	"sort"
	"strings"

	"src.smolcalc.dev/pkg/mode"
)

// Names of query parameters.
const (
	TypesetFlag = "typeset"
	// Older addresses used this name for the typeset flag.
	legacyTypesetFlag = "katex"
	// Older addresses selected the mode in the query.
	LegacyModeParam = "mode"
)

// Query is the query part of a page address.
type Query struct {
	// Typeset is whether typeset rendering is enabled. It is carried by the
	// presence of the typeset flag.
	Typeset bool
	// LegacyMode is the value of the legacy mode parameter, if present.
	LegacyMode string

	// Parameters not understood by this package, preserved by Encode.
	others url.Values
}

// ParseQuery parses a raw query, with or without the leading "?".
// Unparsable parameters are dropped.
func ParseQuery(raw string) Query {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	q := Query{others: url.Values{}}
	for name, vs := range values {
		switch name {
		case TypesetFlag, legacyTypesetFlag:
			q.Typeset = true
		case LegacyModeParam:
			if len(vs) > 0 {
				q.LegacyMode = vs[0]
			}
			q.others[name] = vs
		default:
			q.others[name] = vs
		}
	}
	return q
}

// Encode encodes q as a raw query without the leading "?". Flags are written
// bare, without "=". Parameters are sorted by name.
func (q Query) Encode() string {
	var parts []string
	if q.Typeset {
		parts = append(parts, TypesetFlag)
	}
	names := make([]string, 0, len(q.others))
	for name := range q.others {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range q.others[name] {
			if v == "" {
				parts = append(parts, url.QueryEscape(name))
			} else {
				parts = append(parts, url.QueryEscape(name)+"="+url.QueryEscape(v))
			}
		}
	}
	return strings.Join(parts, "&")
}

// ModeToken returns the mode token selected by loc. The fragment is
// authoritative: the legacy query parameter is only consulted when loc has no
// fragment at all.
func ModeToken(loc *url.URL) string {
	if loc.Fragment != "" {
		token, _, _ := strings.Cut(loc.Fragment, separator)
		return token
	}
	return ParseQuery(loc.RawQuery).LegacyMode
}

// CurrentMode is like ModeToken, but parses the token.
func CurrentMode(loc *url.URL) mode.Mode {
	m, _ := mode.Parse(ModeToken(loc))
	return m
}
