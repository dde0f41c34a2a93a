package version

// version is injected at build time via -ldflags.
var version = "development"

// Version returns the build version of hostctl.
func Version() string {
	return version
}
