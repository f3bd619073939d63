package prog

import (
	"flag"
	"fmt"

	"src.smolcalc.dev/pkg/config"
	"src.smolcalc.dev/pkg/mode"
)

// FlagSet wraps a [flag.FlagSet] and adds flags shared by multiple
// subprograms. Subprograms call the methods for the shared flags they use;
// each shared flag is registered only once.
type FlagSet struct {
	*flag.FlagSet
	json     *bool
	settings *Settings
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}

// Settings returns the settings shared by the calculator front-ends. They are
// filled from flags and the configuration file before any program runs.
func (fs *FlagSet) Settings() *Settings {
	if fs.settings == nil {
		s := &Settings{}
		fs.StringVar(&s.ConfigPath, "config", "",
			"path to the configuration file; defaults to $XDG_CONFIG_HOME/smolcalc/config.yaml")
		fs.StringVar(&s.modeToken, "mode", "",
			`evaluation mode: "" (rational), f32, f64, cmplx_f32, cmplx_f64 or cmplx`)
		fs.BoolVar(&s.Typeset, "typeset", false, "show the typeset input interpretation")
		fs.BoolVar(&s.Manual, "manual", false, "evaluate only on Enter in the TUI")
		fs.StringVar(&s.DB, "db", "", "path to the history database")
		fs.settings = s
	}
	return fs.settings
}

// Settings are the options of the calculator front-ends.
type Settings struct {
	ConfigPath string
	Mode       mode.Mode
	Typeset    bool
	Manual     bool
	DB         string
	// Config is the loaded configuration file, for options without a flag.
	Config config.Config

	modeToken string
}

// Fills in values not given as flags from the configuration file.
func (s *Settings) resolve(fs *flag.FlagSet) error {
	path := s.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Printf("no configuration file: %v", err)
			s.Config = config.Default()
		} else {
			path = p
		}
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		s.Config = cfg
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["mode"] {
		m, ok := mode.Parse(s.modeToken)
		if !ok {
			return fmt.Errorf("unknown mode %q", s.modeToken)
		}
		s.Mode = m
	} else {
		s.Mode = s.Config.EvalMode()
	}
	if !set["typeset"] {
		s.Typeset = s.Config.Typeset
	}
	if !set["manual"] {
		s.Manual = !s.Config.AutoEval
	}
	if !set["db"] {
		s.DB = s.Config.DB
	}
	return nil
}
