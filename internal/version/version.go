// Package version holds build information, set with
// -ldflags "-X github.com/MrSnakeDoc/vitae/internal/version.Version=v1.2.0".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = ""                // ex: abcd123, read from the VCS stamp when empty
	BuildDate = ""                // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version() // go version
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "":
			Commit = s.Value[:min(len(s.Value), 7)]
		case s.Key == "vcs.time" && BuildDate == "":
			BuildDate = s.Value
		}
	}
}

// String renders the one-line banner shared by the CLI and the server log.
func String() string {
	return fmt.Sprintf("vitae %s (commit=%s, built=%s, go=%s)",
		Version, orNone(Commit), orNone(BuildDate), GoVersion)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
