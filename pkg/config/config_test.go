package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.smolcalc.dev/pkg/env"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/testutil"
)

func TestRead(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/home/calc")
	cfg, err := Read(strings.NewReader(testutil.Dedent(`
		mode: cmplx_f64
		auto_eval: false
		db: ~/history.db
		web:
		  assets: /srv/pages
		`)))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Mode: "cmplx_f64",
		DB:   "/home/calc/history.db",
		Web:  Web{Addr: "localhost:3171", Assets: "/srv/pages"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Read (-want +got):\n%s", diff)
	}
	if cfg.EvalMode() != mode.Complex64 {
		t.Errorf("EvalMode() = %v", cfg.EvalMode())
	}
}

func TestRead_Empty(t *testing.T) {
	cfg, err := Read(strings.NewReader(""))
	if err != nil || cfg != Default() {
		t.Errorf("Read(\"\") -> %v, %v, want defaults", cfg, err)
	}
}

var readErrorTests = []struct {
	name    string
	content string
	wantErr string
}{
	{"unknown field", "modes: f32\n", "field modes not found"},
	{"unknown mode", "mode: f16\n", `unknown mode "f16"`},
	{"wrong type", "auto_eval: [1]\n", "cannot unmarshal"},
}

func TestRead_Errors(t *testing.T) {
	for _, tc := range readErrorTests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("got error %v, want one containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := testutil.InTempDir(t)

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg != Default() {
		t.Errorf("Load(missing) -> %v, %v, want defaults", cfg, err)
	}

	must.WriteFile("config.yaml", "typeset: true\n")
	cfg, err = Load("config.yaml")
	if err != nil || !cfg.Typeset || !cfg.AutoEval {
		t.Errorf("Load(config.yaml) -> %v, %v", cfg, err)
	}

	must.WriteFile("bad.yaml", "mode: nope\n")
	if _, err := Load("bad.yaml"); err == nil || !strings.HasPrefix(err.Error(), "bad.yaml: ") {
		t.Errorf("Load(bad.yaml) -> %v, want error prefixed with the path", err)
	}
}

func TestDefaultPath(t *testing.T) {
	testutil.Unsetenv(t, env.SMOLCALC_CONFIG)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, "/xdg")
	testutil.Setenv(t, env.HOME, "/home/calc")
	if p := must.OK1(DefaultPath()); p != "/xdg/smolcalc/config.yaml" {
		t.Errorf("with XDG_CONFIG_HOME: %q", p)
	}

	testutil.Unsetenv(t, env.XDG_CONFIG_HOME)
	if p := must.OK1(DefaultPath()); p != "/home/calc/.config/smolcalc/config.yaml" {
		t.Errorf("with HOME: %q", p)
	}

	testutil.Setenv(t, env.SMOLCALC_CONFIG, "/etc/smolcalc.yaml")
	if p := must.OK1(DefaultPath()); p != "/etc/smolcalc.yaml" {
		t.Errorf("with SMOLCALC_CONFIG: %q", p)
	}

	testutil.Unsetenv(t, env.SMOLCALC_CONFIG)
	testutil.Unsetenv(t, env.HOME)
	if _, err := DefaultPath(); err == nil {
		t.Errorf("no error with neither XDG_CONFIG_HOME nor HOME")
	}
}
