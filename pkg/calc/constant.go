package calc

import (
	"math"
	"strings"
)

type namedConstant struct {
	value float64
	// Rational approximation used by the exact modes.
	num, den int64
	latex    string
}

var namedConstants = map[string]namedConstant{
	"π":     {math.Pi, 312689, 99532, `\pi`},
	"φ":     {math.Phi, 121393, 75025, `\phi`},
	"ϕ":     {math.Phi, 121393, 75025, `\varphi`},
	"e":     {math.E, 517656, 190435, "e"},
	"τ":     {2 * math.Pi, 312689, 49766, `\tau`},
	"γ":     {0.57721566490153286060, 30316449, 52521875, `\gamma`},
	"c_m/s": {299792458, 299792458, 1, `c_{m/s}`},
}

// Vulgar fractions, as numerator and denominator.
var vulgarFractions = map[string][2]int64{
	"↉": {0, 3},
	"½": {1, 2}, "⅓": {1, 3}, "¼": {1, 4}, "⅕": {1, 5}, "⅙": {1, 6},
	"⅐": {1, 7}, "⅛": {1, 8}, "⅑": {1, 9}, "⅒": {1, 10},
	"⅔": {2, 3}, "⅖": {2, 5},
	"¾": {3, 4}, "⅗": {3, 5}, "⅜": {3, 8},
	"⅘": {4, 5},
	"⅚": {5, 6}, "⅝": {5, 8},
	"⅞": {7, 8},
}

const imaginaryUnit = "i"

// Lets users type Greek letters as LaTeX commands.
var greekAliases = map[string]string{
	`\alpha`: "α", `\Alpha`: "Α", `\beta`: "β", `\Beta`: "Β",
	`\gamma`: "γ", `\Gamma`: "Γ", `\delta`: "δ", `\Delta`: "Δ",
	`\epsilon`: "ε", `\Epsilon`: "Ε", `\zeta`: "ζ", `\Zeta`: "Ζ",
	`\eta`: "η", `\Eta`: "Η", `\theta`: "θ", `\Theta`: "Θ",
	`\iota`: "ι", `\Iota`: "Ι", `\kappa`: "κ", `\Kappa`: "Κ",
	`\lambda`: "λ", `\Lambda`: "Λ", `\mu`: "μ", `\Mu`: "Μ",
	`\nu`: "ν", `\Nu`: "Ν", `\xi`: "ξ", `\Xi`: "Ξ",
	`\omicron`: "ο", `\Omicron`: "Ο", `\pi`: "π", `\Pi`: "Π",
	`\rho`: "ρ", `\Rho`: "Ρ", `\sigma`: "σ", `\Sigma`: "Σ",
	`\tau`: "τ", `\Tau`: "Τ", `\upsilon`: "υ", `\Upsilon`: "Υ",
	`\phi`: "φ", `\Phi`: "Φ", `\chi`: "χ", `\Chi`: "Χ",
	`\psi`: "ψ", `\Psi`: "Ψ", `\omega`: "ω", `\Omega`: "Ω",

	`\varpi`: "ϖ", `\varphi`: "ϕ", `\varkai`: "ϗ", `\varsigma`: "ς",
	`\stigma`: "ҁ", `\Stigma`: "Ҁ", `\digamma`: "ϝ", `\Digamma`: "Ϝ",
	`\koppa`: "ϟ", `\Koppa`: "Ϟ", `\sampi`: "ϡ", `\Sampi`: "Ϡ",
}

func unalias(s string) string {
	if strings.HasPrefix(s, `\`) {
		if g, ok := greekAliases[s]; ok {
			return g
		}
	}
	return s
}

// Looks up a real constant that every mode knows, as a float.
func floatConstant(name string) (float64, bool) {
	if c, ok := namedConstants[name]; ok {
		return c.value, true
	}
	if f, ok := vulgarFractions[name]; ok {
		return float64(f[0]) / float64(f[1]), true
	}
	return 0, false
}
