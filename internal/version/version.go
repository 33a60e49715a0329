// Package version holds the release string both binaries report. Release
// builds override it with -ldflags "-X .../internal/version.Version=...".
package version

var Version = "0.1.0"
