package calc

import (
	"fmt"
	"strings"
)

// Latex renders e as LaTeX math, without the surrounding delimiters. The
// output only uses commands understood by common math typesetters.
func Latex(e Expr) string {
	var sb strings.Builder
	writeLatex(&sb, e)
	return sb.String()
}

var funcLatex = map[string]string{
	"√": "sqrt",
	"∛": "cbrt",
}

func writeLatex(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Number:
		sb.WriteString(e.Text)
	case *Constant:
		sb.WriteString(constantLatex(e.Name))
	case *Group:
		sb.WriteString("(")
		writeLatex(sb, e.X)
		sb.WriteString(")")
	case *Unary:
		sb.WriteString(e.Op.String())
		writeLatex(sb, e.X)
	case *Binary:
		switch {
		case e.Op == Div:
			sb.WriteString(`\frac{`)
			writeLatex(sb, ungroup(e.L))
			sb.WriteString("}{")
			writeLatex(sb, ungroup(e.R))
			sb.WriteString("}")
		case e.Op == Pow:
			sb.WriteString("{")
			if needsParens(e.L) {
				sb.WriteString("(")
				writeLatex(sb, e.L)
				sb.WriteString(")")
			} else {
				writeLatex(sb, e.L)
			}
			sb.WriteString("}^{")
			writeLatex(sb, ungroup(e.R))
			sb.WriteString("}")
		default:
			writeLatex(sb, e.L)
			sb.WriteString(binaryLatex(e))
			writeLatex(sb, e.R)
		}
	case *Call:
		writeCallLatex(sb, e)
	default:
		panic(fmt.Sprintf("unexpected node type %T", e))
	}
}

func binaryLatex(e *Binary) string {
	switch e.Op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		if e.Implicit {
			return " "
		}
		return ` \times `
	default:
		return ` \operatorname{mod} `
	}
}

func writeCallLatex(sb *strings.Builder, e *Call) {
	name := e.Name
	if canonical, ok := funcLatex[name]; ok {
		name = canonical
	}
	if len(e.Args) == 1 {
		arg := ungroup(e.Args[0])
		switch name {
		case "sqrt":
			sb.WriteString(`\sqrt{`)
			writeLatex(sb, arg)
			sb.WriteString("}")
			return
		case "cbrt":
			sb.WriteString(`\sqrt[3]{`)
			writeLatex(sb, arg)
			sb.WriteString("}")
			return
		case "abs":
			sb.WriteString(`\vert `)
			writeLatex(sb, arg)
			sb.WriteString(` \vert`)
			return
		}
	}
	switch name {
	case "ln", "log", "sin", "cos", "tan", "arcsin", "arccos", "arctan",
		"sinh", "cosh", "tanh", "min", "max":
		sb.WriteString(`\` + name)
	default:
		sb.WriteString(`\operatorname{` + name + "}")
	}
	sb.WriteString("(")
	for i, arg := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeLatex(sb, arg)
	}
	sb.WriteString(")")
}

func constantLatex(name string) string {
	if c, ok := namedConstants[name]; ok {
		return c.latex
	}
	if f, ok := vulgarFractions[name]; ok {
		return fmt.Sprintf(`\frac{%d}{%d}`, f[0], f[1])
	}
	return name
}

// Removes brackets that a fraction or exponent already delimits.
func ungroup(e Expr) Expr {
	if g, ok := e.(*Group); ok {
		return g.X
	}
	return e
}

func needsParens(e Expr) bool {
	switch e.(type) {
	case *Binary, *Unary:
		return true
	}
	return false
}
