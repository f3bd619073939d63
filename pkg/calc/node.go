package calc

import "src.smolcalc.dev/pkg/diag"

// Expr is a node in the syntax tree.
type Expr interface {
	diag.Ranger
	isExpr()
}

// Number is a decimal literal such as "12" or "0.5".
type Number struct {
	diag.Ranging
	Text string
}

// Constant is a named constant such as "π", or a vulgar fraction such as "½".
// Greek aliases like `\pi` are already replaced in Name.
type Constant struct {
	diag.Ranging
	Name string
}

// Group is an expression in brackets.
type Group struct {
	diag.Ranging
	Bracket Bracket
	X       Expr
}

// Unary is a prefix operation.
type Unary struct {
	diag.Ranging
	Op UnaryOp
	X  Expr
}

// Binary is an infix operation. Implicit is set for multiplication by
// juxtaposition, like "2π" or "3(1+2)".
type Binary struct {
	diag.Ranging
	Op       BinaryOp
	Implicit bool
	L, R     Expr
}

// Call is a function call such as "sqrt(2)" or "max[1, 2]".
type Call struct {
	diag.Ranging
	Name string
	Args []Expr
}

func (*Number) isExpr()   {}
func (*Constant) isExpr() {}
func (*Group) isExpr()    {}
func (*Unary) isExpr()    {}
func (*Binary) isExpr()   {}
func (*Call) isExpr()     {}

// BinaryOp is an infix operator.
type BinaryOp int

// Infix operators.
const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
)

var binaryOpNames = [...]string{"+", "-", "*", "/", "%", "^"}

func (op BinaryOp) String() string { return binaryOpNames[op] }

func (op BinaryOp) precedence() int {
	switch op {
	case Pow:
		return 3
	case Mul, Div, Mod:
		return 2
	default:
		return 1
	}
}

func (op BinaryOp) leftAssociative() bool { return op != Pow }

// UnaryOp is a prefix operator.
type UnaryOp int

// Prefix operators.
const (
	Pos UnaryOp = iota
	Neg
)

func (op UnaryOp) String() string {
	if op == Neg {
		return "-"
	}
	return "+"
}

// Prefix operators bind tighter than any infix operator, so "-2^2" is 4.
const unaryPrecedence = 4

// Bracket is the kind of a bracket pair.
type Bracket int

// Bracket kinds.
const (
	Round Bracket = iota
	Square
	Curly
)

func bracketOf(r rune) (b Bracket, open bool, ok bool) {
	switch r {
	case '(':
		return Round, true, true
	case ')':
		return Round, false, true
	case '[':
		return Square, true, true
	case ']':
		return Square, false, true
	case '{':
		return Curly, true, true
	case '}':
		return Curly, false, true
	}
	return 0, false, false
}
