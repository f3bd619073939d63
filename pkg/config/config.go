// Package config reads the smolcalc configuration file.
//
// The file is YAML:
//
//	mode: f64        # mode token, see package mode
//	auto_eval: true
//	typeset: false
//	db: ~/.local/share/smolcalc/history.db
//	web:
//	  addr: localhost:3171
//	  assets: ./pages
//
// Command-line flags override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"src.smolcalc.dev/pkg/env"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/mode"
)

var logger = logutil.GetLogger("[config] ")

// Config is the content of a configuration file.
type Config struct {
	// Mode is the token of the initial evaluation mode.
	Mode     string `yaml:"mode"`
	AutoEval bool   `yaml:"auto_eval"`
	Typeset  bool   `yaml:"typeset"`
	// DB is the path of the history database. History is not kept if empty.
	DB  string `yaml:"db"`
	Web Web    `yaml:"web"`
}

// Web configures the web backend.
type Web struct {
	Addr string `yaml:"addr"`
	// Assets is a directory to serve the page from instead of the embedded
	// one.
	Assets string `yaml:"assets"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{AutoEval: true, Web: Web{Addr: "localhost:3171"}}
}

// EvalMode returns the mode selected by c.Mode.
func (c Config) EvalMode() mode.Mode {
	m, _ := mode.Parse(c.Mode)
	return m
}

// DefaultPath returns the path of the configuration file: $SMOLCALC_CONFIG if
// set, otherwise smolcalc/config.yaml under the XDG config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(env.SMOLCALC_CONFIG); p != "" {
		return p, nil
	}
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		home := os.Getenv(env.HOME)
		if home == "" {
			return "", errors.New("neither XDG_CONFIG_HOME nor HOME is set")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "smolcalc", "config.yaml"), nil
}

// Load reads the configuration file at path. A missing file is not an error
// and yields Default().
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("%s does not exist, using defaults", path)
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Read(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read parses a configuration. Fields missing from r keep their default
// values; unknown fields are errors.
func Read(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if _, ok := mode.Parse(cfg.Mode); !ok {
		return Config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	cfg.DB = expandHome(cfg.DB)
	cfg.Web.Assets = expandHome(cfg.Web.Assets)
	return cfg, nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home := os.Getenv(env.HOME); home != "" {
			return filepath.Join(home, rest)
		}
	}
	return path
}
