package calc

import (
	"unicode"

	"src.smolcalc.dev/pkg/diag"
)

type tokenKind int

const (
	opToken tokenKind = iota
	numberToken
	constantToken
	openToken
	closeToken
	commaToken
	// A function name directly followed by an opening bracket.
	funcToken
)

type token struct {
	kind    tokenKind
	text    string
	op      rune
	bracket Bracket
	diag.Ranging
}

// lexer splits the input into tokens. Positions count runes.
type lexer struct {
	src     []rune
	pos     int
	isConst func(string) bool
}

// next returns the next token, or nil at the end of input.
func (lx *lexer) next() (*token, error) {
	for lx.pos < len(lx.src) && unicode.IsSpace(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos >= len(lx.src) {
		return nil, nil
	}
	start := lx.pos
	c := lx.src[lx.pos]
	lx.pos++
	simple := func(kind tokenKind) *token {
		return &token{kind: kind, Ranging: diag.Ranging{From: start, To: lx.pos}}
	}

	switch c {
	case '+', '-', '*', '/', '%', '^':
		t := simple(opToken)
		t.op = c
		return t, nil
	case '×':
		t := simple(opToken)
		t.op = '*'
		return t, nil
	case '÷':
		t := simple(opToken)
		t.op = '/'
		return t, nil
	case ',':
		return simple(commaToken), nil
	}
	if b, open, ok := bracketOf(c); ok {
		t := simple(closeToken)
		if open {
			t.kind = openToken
		}
		t.bracket = b
		return t, nil
	}
	if isDigit(c) || c == '.' {
		for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '.') {
			lx.pos++
		}
		t := simple(numberToken)
		t.text = string(lx.src[start:lx.pos])
		if !validDecimal(t.text) {
			return nil, &Error{"number format is incorrect", t.Ranging}
		}
		return t, nil
	}

	// An identifier extends until it spells a known constant, or is followed
	// by an opening bracket, in which case it names a function.
	name := string(c)
	if lx.isConst(unalias(name)) {
		t := simple(constantToken)
		t.text = unalias(name)
		return t, nil
	}
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++
		if unicode.IsSpace(c) {
			break
		}
		if b, open, ok := bracketOf(c); ok && open {
			t := simple(funcToken)
			t.text = unalias(name)
			t.bracket = b
			return t, nil
		}
		name += string(c)
		if lx.isConst(unalias(name)) {
			t := simple(constantToken)
			t.text = unalias(name)
			return t, nil
		}
	}
	return nil, &Error{"this constant is not supported", diag.Ranging{From: start, To: lx.pos}}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// Reports whether s is a run of digits with at most one decimal point.
func validDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		if r == '.' {
			dots++
		} else {
			digits++
		}
	}
	return digits > 0 && dots <= 1
}
