// seehuhn.de/go/arcfour - RC4 and exhaustive key search
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package profile writes CPU and memory profiles for the command line tools,
// so that the cost of a key search can be inspected with "go tool pprof".
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Files names the profile outputs.  Empty names disable the corresponding
// profile.
type Files struct {
	CPU    string
	Memory string
}

// Session is a running profile.
type Session struct {
	files   Files
	cpuFile *os.File
}

// Start begins CPU profiling, if f.CPU is set.  The caller must call Stop
// on the returned session.
func Start(f Files) (*Session, error) {
	s := &Session{files: f}
	if f.CPU == "" {
		return s, nil
	}

	fd, err := os.Create(f.CPU)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	err = pprof.StartCPUProfile(fd)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	s.cpuFile = fd
	return s, nil
}

// Stop ends CPU profiling and writes the allocation profile, if requested.
func (s *Session) Stop() error {
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.files.Memory != "" {
		errs = append(errs, writeAllocs(s.files.Memory))
	}
	return errors.Join(errs...)
}

func writeAllocs(fname string) error {
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return errors.New("could not look up memory profile")
	}

	fd, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	runtime.GC()
	err = allocs.WriteTo(fd, 0)
	if err != nil {
		fd.Close()
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return fd.Close()
}
