// Package share encodes the calculator state into page addresses, so that a
// single URL can restore the mode and the input text.
//
// The state lives in the address fragment as "<mode token>-<base64 text>".
// The query carries display preferences that survive across navigations.
package share

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"src.smolcalc.dev/pkg/mode"
)

// State is the shareable part of the calculator state.
type State struct {
	Mode mode.Mode
	Text string
}

// ErrMalformed is returned by Decode when the text payload of a fragment is
// not valid base64.
var ErrMalformed = errors.New("malformed share fragment")

const separator = "-"

// Encode encodes s as an address fragment, without the leading "#". The text
// is encoded as the base64 of its UTF-8 bytes, so every string can be
// encoded.
func Encode(s State) string {
	return s.Mode.Token() + separator + base64.StdEncoding.EncodeToString([]byte(s.Text))
}

// Decode decodes an address fragment, with or without the leading "#".
//
// The mode is taken from the part before the first "-"; empty or unknown
// tokens give the default mode. The boolean reports whether the fragment has
// a text payload at all. If the payload is present but malformed, Decode
// returns ErrMalformed along with the decoded mode; callers keep their
// current text.
func Decode(fragment string) (State, bool, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	token, payload, hasPayload := strings.Cut(fragment, separator)
	m, _ := mode.Parse(token)
	if !hasPayload {
		return State{Mode: m}, false, nil
	}
	text, err := decodeText(payload)
	if err != nil {
		return State{Mode: m}, true, ErrMalformed
	}
	return State{m, text}, true, nil
}

func decodeText(payload string) (string, error) {
	// Addresses pasted by hand often lose the padding, and some clients
	// percent-encode it.
	if unescaped, err := url.PathUnescape(payload); err == nil {
		payload = unescaped
	}
	payload = strings.TrimRight(payload, "=")
	b, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// URL returns the share address for s: loc with its fragment replaced by the
// encoding of s.
func URL(loc *url.URL, s State) string {
	u := *loc
	u.Fragment = Encode(s)
	u.RawFragment = ""
	return u.String()
}
