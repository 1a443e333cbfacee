// Package version reports build identification for the codediff library.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the library version reported to all callers, including Lua
// callers across the FFI boundary. It is fixed at compile time and is
// identical on every read for the life of a build.
const Version = "0.3.0"

// Build provenance, set via ldflags:
//
//	go build -ldflags "-X github.com/briandipalma/codediff.nvim/internal/version.Commit=<sha>"
var (
	// Commit is the git commit SHA of the build.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// Info is a snapshot of build identification.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns build identification. When Commit was not injected at build
// time, it falls back to the VCS revision recorded by the Go toolchain.
func Get() Info {
	commit := Commit
	if commit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
					break
				}
			}
		}
	}

	return Info{
		Version: Version,
		Commit:  commit,
		Date:    Date,
	}
}

// String returns a human-readable version line.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
