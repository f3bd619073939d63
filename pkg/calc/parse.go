package calc

import (
	"unicode/utf8"

	"src.smolcalc.dev/pkg/diag"
)

// Parse parses text into a syntax tree. The isConst predicate reports which
// identifiers are constants; it differs between numeric modes (only complex
// modes know "i", for example).
func Parse(text string, isConst func(string) bool) (Expr, error) {
	return parse(text, isConst)
}

type parser struct {
	lx   *lexer
	size int

	peeked  *token
	hasPeek bool
}

func parse(text string, isConst func(string) bool) (Expr, error) {
	p := &parser{
		lx:   &lexer{src: []rune(text), isConst: isConst},
		size: utf8.RuneCountInString(text),
	}
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t != nil {
		return nil, &Error{"expected end of expression", t.Ranging}
	}
	return e, nil
}

func (p *parser) peek() (*token, error) {
	if !p.hasPeek {
		t, err := p.lx.next()
		if err != nil {
			return nil, err
		}
		p.peeked, p.hasPeek = t, true
	}
	return p.peeked, nil
}

func (p *parser) next() (*token, error) {
	if p.hasPeek {
		p.hasPeek = false
		return p.peeked, nil
	}
	return p.lx.next()
}

func (p *parser) atEnd() diag.Ranging { return diag.PointRanging(p.size) }

// Parses an expression whose infix operators bind at least as tightly as
// minPrec, using precedence climbing.
func (p *parser) expr(minPrec int) (Expr, error) {
	lhs, err := p.single()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return lhs, nil
		}
		switch t.kind {
		case opToken:
			op := binaryOpOf(t.op)
			if op.precedence() < minPrec {
				return lhs, nil
			}
			p.next()
			next := op.precedence()
			if op.leftAssociative() {
				next++
			}
			rhs, err := p.expr(next)
			if err != nil {
				return nil, err
			}
			lhs = &Binary{Ranging: diag.MixedRanging(lhs, rhs), Op: op, L: lhs, R: rhs}
		case numberToken, constantToken, openToken, funcToken:
			if Mul.precedence() < minPrec {
				return lhs, nil
			}
			rhs, err := p.expr(Mul.precedence() + 1)
			if err != nil {
				return nil, err
			}
			lhs = &Binary{Ranging: diag.MixedRanging(lhs, rhs), Op: Mul, Implicit: true, L: lhs, R: rhs}
		default:
			return lhs, nil
		}
	}
}

func (p *parser) single() (Expr, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &Error{"unexpected end of expression", p.atEnd()}
	}
	switch t.kind {
	case numberToken:
		return &Number{t.Ranging, t.text}, nil
	case constantToken:
		return &Constant{t.Ranging, t.text}, nil
	case openToken:
		if end, err := p.peek(); err != nil {
			return nil, err
		} else if end == nil {
			return nil, &Error{"unclosed bracket", t.Ranging}
		}
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		end, err := p.closing(t)
		if err != nil {
			return nil, err
		}
		return &Group{diag.MixedRanging(t, end), t.bracket, inner}, nil
	case funcToken:
		return p.call(t)
	case opToken:
		if t.op == '+' || t.op == '-' {
			op := Pos
			if t.op == '-' {
				op = Neg
			}
			x, err := p.expr(unaryPrecedence)
			if err != nil {
				return nil, err
			}
			return &Unary{diag.MixedRanging(t, x), op, x}, nil
		}
	}
	return nil, &Error{"did not expect this", t.Ranging}
}

func (p *parser) call(fn *token) (Expr, error) {
	var args []Expr
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, &Error{"unclosed bracket", fn.Ranging}
		}
		if t.kind == closeToken {
			break
		}
		arg, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, &Error{"unclosed bracket", fn.Ranging}
		}
		if t.kind == closeToken {
			break
		}
		p.next()
		if t.kind != commaToken {
			return nil, &Error{"expected comma or bracket end", t.Ranging}
		}
	}
	end, err := p.closing(fn)
	if err != nil {
		return nil, err
	}
	return &Call{diag.MixedRanging(fn, end), fn.text, args}, nil
}

// Consumes the bracket closing open.
func (p *parser) closing(open *token) (*token, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case t == nil:
		return nil, &Error{"unclosed bracket", open.Ranging}
	case t.kind != closeToken:
		return nil, &Error{"expected bracket end", t.Ranging}
	case t.bracket != open.bracket:
		return nil, &Error{"bracket type mismatch", t.Ranging}
	}
	return t, nil
}

func binaryOpOf(r rune) BinaryOp {
	switch r {
	case '+':
		return Add
	case '-':
		return Sub
	case '*':
		return Mul
	case '/':
		return Div
	case '%':
		return Mod
	default:
		return Pow
	}
}
