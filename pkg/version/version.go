// Package version reports the build version of portalgun.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/rshade/portalgun/pkg/version.version=v1.2.3".
var version = "" //nolint:gochecknoglobals // Set by the linker.

const devVersion = "dev"

// GetVersion returns the linker-injected version, the module version when
// installed with go install, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}
