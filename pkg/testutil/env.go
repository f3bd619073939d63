package testutil

import "os"

// Setenv sets an environment variable for the duration of a test, and returns
// value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv removes an environment variable for the duration of a test. Tests
// of programs use it to keep variables like NO_COLOR of the environment
// running the tests from leaking in.
func Unsetenv(c Cleanuper, name string) {
	restoreEnv(c, name)
	os.Unsetenv(name)
}

func restoreEnv(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}
