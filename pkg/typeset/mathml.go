package typeset

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-latex/latex"
	"github.com/go-latex/latex/ast"
)

// MathML renders LaTeX math as MathML markup.
type MathML struct{}

// Render shows the MathML rendering of source in t, or an <merror> element
// if source cannot be rendered.
func (MathML) Render(source string, t Target) {
	markup, err := ToMathML(source)
	if err != nil {
		logger.Printf("render %q: %v", source, err)
		markup = mathElement("<merror><mtext>" + html.EscapeString(source) + "</mtext></merror>")
	}
	t.ShowTypeset(markup)
}

// ToMathML converts LaTeX math, without delimiters, to a MathML element.
func ToMathML(source string) (markup string, err error) {
	// The LaTeX parser panics on input it does not understand.
	defer func() {
		if r := recover(); r != nil {
			markup, err = "", fmt.Errorf("parse: %v", r)
		}
	}()
	node, err := latex.ParseExpr("$" + source + "$")
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	if list, ok := node.(ast.List); ok && len(list) == 1 {
		if m, ok := list[0].(*ast.MathExpr); ok {
			node = m
		}
	}
	var w mathmlWriter
	w.node(node)
	return mathElement(w.sb.String()), nil
}

func mathElement(inner string) string {
	return `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block">` + inner + `</math>`
}

type mathmlWriter struct {
	sb strings.Builder
}

var macroOperators = map[string]string{
	`\times`: "×",
	`\div`:   "÷",
	`\cdot`:  "⋅",
	`\pm`:    "±",
	`\vert`:  "|",
}

var macroIdentifiers = map[string]string{
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ε", `\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\lambda`: "λ", `\mu`: "μ", `\pi`: "π", `\rho`: "ρ",
	`\sigma`: "σ", `\tau`: "τ", `\phi`: "φ", `\varphi`: "ϕ",
	`\chi`: "χ", `\psi`: "ψ", `\omega`: "ω",
}

func (w *mathmlWriter) node(n ast.Node) {
	switch n := n.(type) {
	case ast.List:
		w.list(n)
	case *ast.MathExpr:
		w.list(n.List)
	case *ast.Arg:
		w.list(n.List)
	case *ast.OptArg:
		w.list(n.List)
	case *ast.Literal:
		w.element("mn", n.Text)
	case *ast.Word:
		w.element("mi", n.Text)
	case *ast.Symbol:
		w.element("mo", n.Text)
	case *ast.Macro:
		w.macro(n)
	case *ast.Sup:
		// A superscript without a base.
		w.script("msup", nil, n.Node)
	case *ast.Sub:
		w.script("msub", nil, n.Node)
	case nil:
	default:
		panic(fmt.Sprintf("unsupported node %T", n))
	}
}

// Writes a list as an <mrow>, attaching scripts to the node before them.
func (w *mathmlWriter) list(l ast.List) {
	w.sb.WriteString("<mrow>")
	for i := 0; i < len(l); i++ {
		base := l[i]
		if i+1 < len(l) {
			switch script := l[i+1].(type) {
			case *ast.Sup:
				w.script("msup", base, script.Node)
				i++
				continue
			case *ast.Sub:
				w.script("msub", base, script.Node)
				i++
				continue
			}
		}
		w.node(base)
	}
	w.sb.WriteString("</mrow>")
}

func (w *mathmlWriter) script(tag string, base, script ast.Node) {
	w.sb.WriteString("<" + tag + ">")
	if base == nil {
		w.sb.WriteString("<mrow></mrow>")
	} else {
		w.node(base)
	}
	w.node(script)
	w.sb.WriteString("</" + tag + ">")
}

func (w *mathmlWriter) macro(m *ast.Macro) {
	name := m.Name.Name
	switch name {
	case `\frac`:
		w.wrap("mfrac", m.Args...)
		return
	case `\sqrt`:
		if len(m.Args) == 2 {
			// The index comes first in the source but last in MathML.
			w.wrap("mroot", m.Args[1], m.Args[0])
		} else {
			w.wrap("msqrt", m.Args...)
		}
		return
	case `\operatorname`:
		w.element("mo", plainText(m.Args))
		return
	}
	if op, ok := macroOperators[name]; ok {
		w.element("mo", op)
	} else if id, ok := macroIdentifiers[name]; ok {
		w.element("mi", id)
	} else {
		// Function names like \sin and \log.
		w.element("mi", strings.TrimPrefix(name, `\`))
	}
}

func (w *mathmlWriter) wrap(tag string, children ...ast.Node) {
	w.sb.WriteString("<" + tag + ">")
	for _, child := range children {
		w.node(child)
	}
	w.sb.WriteString("</" + tag + ">")
}

func (w *mathmlWriter) element(tag, text string) {
	fmt.Fprintf(&w.sb, "<%s>%s</%s>", tag, html.EscapeString(text), tag)
}

// Concatenates the text of all words and literals in l.
func plainText(l ast.List) string {
	var sb strings.Builder
	ast.Inspect(l, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Word:
			sb.WriteString(n.Text)
		case *ast.Literal:
			sb.WriteString(n.Text)
		case *ast.Symbol:
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}
