// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Videoflix is the canonical application identifier used for filesystem paths and CLI branding.
	Videoflix = "videoflix"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every request to the Videoflix API.
	UserAgent = Videoflix + "-cli/" + Version
)

// Platform identifiers for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
