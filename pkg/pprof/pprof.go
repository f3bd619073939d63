// Package pprof adds profiling support to smolcalc, for finding slow paths in
// the evaluation engines.
package pprof

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"src.smolcalc.dev/pkg/prog"
)

// Names of the profiles written to the -profile directory.
const (
	CPUProfile    = "cpu.pprof"
	AllocsProfile = "allocs.pprof"
)

// Program adds support for the -profile flag. It never runs on its own, so it
// should come first in a composite program.
type Program struct {
	dir string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.dir, "profile", "",
		"write CPU and memory allocation profiles of the run to this directory")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	if p.dir == "" {
		return prog.ErrNextProgram
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot create profile directory:", err)
		fmt.Fprintln(fds[2], "Continuing without profiling.")
		return prog.ErrNextProgram
	}

	var cleanups []func([3]*os.File)
	cpu, err := os.Create(filepath.Join(p.dir, CPUProfile))
	if err == nil {
		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			cpu.Close()
		}
	}
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot start CPU profiling:", err)
	} else {
		cleanups = append(cleanups, func([3]*os.File) {
			pprof.StopCPUProfile()
			cpu.Close()
		})
	}
	cleanups = append(cleanups, func(fds [3]*os.File) {
		allocs, err := os.Create(filepath.Join(p.dir, AllocsProfile))
		if err == nil {
			err = pprof.Lookup("allocs").WriteTo(allocs, 0)
			allocs.Close()
		}
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot write memory allocation profile:", err)
		}
	})
	return prog.NextProgram(cleanups...)
}
