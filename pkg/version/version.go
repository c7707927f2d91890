package version

import (
	"runtime/debug"
	"sync"
)

var (
	// Version is the release version, set with
	// -ldflags "-X github.com/macropower/csprojfix/pkg/version.Version=...".
	Version = "0.0.0"

	// Revision is the VCS revision the binary was built from.
	Revision = revision()
)

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return &debug.BuildInfo{}
	}

	return bi
})

func revision() string {
	rev, dirty := "unknown", false

	for _, s := range buildInfo().Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if dirty {
		rev += "-dirty"
	}

	return rev
}

// GoVersion returns the Go version the binary was built with.
func GoVersion() string {
	if v := buildInfo().GoVersion; v != "" {
		return v
	}

	return "unknown"
}
