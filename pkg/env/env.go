// Package env keeps names of environment variables with special significance to
// smolcalc.
package env

// Environment variables with special significance to smolcalc.
const (
	HOME            = "HOME"
	NO_COLOR        = "NO_COLOR"
	SMOLCALC_CONFIG = "SMOLCALC_CONFIG"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
)
