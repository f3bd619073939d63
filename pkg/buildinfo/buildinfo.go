// Package buildinfo contains build information.
//
// Most of the information is determined at build time from the module
// information embedded in the binary. VCSOverride can be set with
// -ldflags "-X src.smolcalc.dev/pkg/buildinfo.VCSOverride=..." when the
// binary is built outside a VCS checkout.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/prog"
)

// VersionBase is the version of smolcalc, without any suffix. On development
// commits, it identifies the next release.
const VersionBase = "0.4.0"

// VCSOverride may be set during compilation to "time-commit" (e.g.
// "20220401235958-123456789012") for a binary built outside a VCS checkout.
var VCSOverride string

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
	// Modes lists the names of the evaluation modes compiled in.
	Modes []string `json:"modes"`
}

// Value contains all the build information.
var Value = Type{
	Version:   devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion: runtime.Version(),
	Modes:     modeNames(),
}

func modeNames() []string {
	var names []string
	for _, m := range mode.All() {
		names = append(names, m.String())
	}
	return names
}

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	var revision, modified string
	var vcsTime time.Time
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			t, err := time.Parse(time.RFC3339, setting.Value)
			if err != nil {
				return fallback
			}
			vcsTime = t
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" || vcsTime.IsZero() {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := next + "-dev.0." + vcsTime.UTC().Format("20060102150405") + "-" + revision
	if modified == "true" {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

// RegisterFlags registers -version and -buildinfo.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	p.json = fs.JSON()
}

// Run runs the program.
func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Modes:", strings.Join(Value.Modes, ", "))
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
