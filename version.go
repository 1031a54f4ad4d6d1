package counters

import "runtime/debug"

// Version is the build version sent as the "version" tag. Set it at link time:
//
//	go build -ldflags "-X github.com/One-com/gone/counters.Version=1.4.2"
//
// If left empty the main module version from the build info is used.
var Version string

// BuildVersion returns the version injected into all counter events.
func BuildVersion() string {
	if Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}
