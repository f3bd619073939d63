package testutil

import (
	"os"
	"path/filepath"

	"src.smolcalc.dev/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "smolcalctest"))
	c.Cleanup(func() { os.RemoveAll(dir) })
	return must.OK1(filepath.EvalSymlinks(dir))
}

// InTempDir is like TempDir, but also changes into the directory, changing
// back to the original directory when the test finishes. It returns the path
// of the temporary directory.
func InTempDir(c Cleanuper) string {
	tmpDir := TempDir(c)
	oldDir := must.OK1(os.Getwd())
	must.OK(os.Chdir(tmpDir))
	c.Cleanup(func() { must.OK(os.Chdir(oldDir)) })
	return tmpDir
}
