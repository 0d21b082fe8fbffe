// Package compileinfo reports the module path, Go version and VCS stamp the
// running binary was built from.
package compileinfo

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

type CompileInfo struct {
	Package    string `json:"package"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Commit     string `json:"commit"`
	CommitTime string `json:"commit_time"`
	Modified   bool   `json:"modified"`
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s %s binary was built with %s at commit %v at time %v.%s", c.Package, c.Version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// MarshalZerologObject lets the build stamp be attached to a log line with
// Object("build", info).
func (c CompileInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("package", c.Package).
		Str("version", c.Version).
		Str("go", c.GoVersion).
		Str("commit", c.Commit).
		Str("commit_time", c.CommitTime).
		Bool("modified", c.Modified)
}

// Get reads the build info embedded by the Go toolchain. Fields are empty
// when the binary was built without module or VCS information, as in tests.
func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
