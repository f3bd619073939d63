package pprof_test

import (
	"os"
	"path/filepath"
	"testing"

	"src.smolcalc.dev/pkg/must"
	"src.smolcalc.dev/pkg/pprof"
	"src.smolcalc.dev/pkg/prog"
	. "src.smolcalc.dev/pkg/prog/progtest"
	"src.smolcalc.dev/pkg/testutil"
)

func TestProgram(t *testing.T) {
	dir := testutil.InTempDir(t)
	must.WriteFile("file", "")

	Test(t, prog.Composite(&pprof.Program{}, noopProgram{}),
		ThatSmolcalc().DoesNothing(),
		ThatSmolcalc("-profile", "prof").DoesNothing(),
		ThatSmolcalc("-profile", filepath.Join("file", "prof")).
			WritesStderrContaining("Warning: cannot create profile directory:"),
	)

	// There isn't much to test beyond a sanity check that the profiles now
	// exist.
	for _, name := range []string{pprof.CPUProfile, pprof.AllocsProfile} {
		if _, err := os.Stat(filepath.Join(dir, "prof", name)); err != nil {
			t.Errorf("profile %s does not exist: %v", name, err)
		}
	}
}

type noopProgram struct{}

func (noopProgram) RegisterFlags(*prog.FlagSet)     {}
func (noopProgram) Run([3]*os.File, []string) error { return nil }
